package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/BTreeMap/ZaloGen/internal/api"
	"github.com/BTreeMap/ZaloGen/internal/genai"
	"github.com/BTreeMap/ZaloGen/internal/util"
	"github.com/joho/godotenv"
)

// logLevel is shared by the default handler so -debug can raise verbosity after startup.
var logLevel = new(slog.LevelVar)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags, err := parseCommandLineFlags(config, flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("Failed to parse command line flags", "error", err)
		os.Exit(1)
	}
	setDebug(*flags.debug)

	// Build module options
	genaiOpts := buildGenAIOptions(flags)
	apiOpts := buildAPIOptions(flags)

	// Start the service
	slog.Info("Bootstrapping ZaloGen", "provider", *flags.provider)
	slog.Debug("Module options counts", "genai", len(genaiOpts), "api", len(apiOpts))
	if err := api.Run(genaiOpts, apiOpts); err != nil {
		slog.Error("ZaloGen failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("ZaloGen exited successfully")
}

// Config holds environment configuration
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	APIAddr  string
	Debug    bool
}

// Flags holds command line flag values
type Flags struct {
	provider *string
	apiKey   *string
	model    *string
	baseURL  *string
	apiAddr  *string
	debug    *bool
}

// initializeLogger sets up structured logging on stdout
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	setDebug(util.BoolEnv("ZALOGEN_DEBUG", false))
}

func setDebug(debug bool) {
	if debug {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// apiKeyEnv returns the environment variable holding the credential for provider.
func apiKeyEnv(provider string) string {
	if strings.EqualFold(strings.TrimSpace(provider), genai.ProviderOpenAI) {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		Provider: util.StringEnv("ZALOGEN_PROVIDER", genai.ProviderGemini),
		Model:    util.StringEnv("ZALOGEN_MODEL", ""),
		BaseURL:  util.StringEnv("OPENAI_BASE_URL", ""),
		APIAddr:  util.StringEnv("API_ADDR", api.DefaultServerAddr),
		Debug:    util.BoolEnv("ZALOGEN_DEBUG", false),
	}
	config.APIKey = util.StringEnv(apiKeyEnv(config.Provider), "")

	slog.Debug("environment variables loaded",
		"ZALOGEN_PROVIDER", config.Provider,
		"API_KEY_SET", config.APIKey != "",
		"ZALOGEN_MODEL", config.Model,
		"OPENAI_BASE_URL_SET", config.BaseURL != "",
		"API_ADDR", config.APIAddr,
		"ZALOGEN_DEBUG", config.Debug)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config, fs *flag.FlagSet, args []string) (Flags, error) {
	flags := Flags{
		provider: fs.String("provider", config.Provider, "generative AI provider: gemini or openai (overrides $ZALOGEN_PROVIDER)"),
		apiKey:   fs.String("api-key", config.APIKey, "API key of the chosen provider (overrides $GEMINI_API_KEY or $OPENAI_API_KEY)"),
		model:    fs.String("model", config.Model, "model name (overrides $ZALOGEN_MODEL)"),
		baseURL:  fs.String("base-url", config.BaseURL, "OpenAI-compatible API base URL (overrides $OPENAI_BASE_URL)"),
		apiAddr:  fs.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		debug:    fs.Bool("debug", config.Debug, "enable debug logging (overrides $ZALOGEN_DEBUG)"),
	}

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	slog.Debug("flags parsed",
		"provider", *flags.provider,
		"apiKeySet", *flags.apiKey != "",
		"model", *flags.model,
		"baseURLSet", *flags.baseURL != "",
		"apiAddr", *flags.apiAddr,
		"debug", *flags.debug)

	// The env-derived key belongs to the env provider; drop it when -provider switches providers
	if *flags.apiKey == config.APIKey && apiKeyEnv(*flags.provider) != apiKeyEnv(config.Provider) {
		*flags.apiKey = util.StringEnv(apiKeyEnv(*flags.provider), "")
		slog.Debug("Reloaded API key for provider from flag", "provider", *flags.provider, "apiKeySet", *flags.apiKey != "")
	}

	return flags, nil
}

// buildGenAIOptions constructs GenAI configuration options
func buildGenAIOptions(flags Flags) []genai.Option {
	var genaiOpts []genai.Option
	if *flags.provider != "" {
		genaiOpts = append(genaiOpts, genai.WithProvider(*flags.provider))
	}
	if *flags.apiKey != "" {
		genaiOpts = append(genaiOpts, genai.WithAPIKey(*flags.apiKey))
	}
	if *flags.model != "" {
		genaiOpts = append(genaiOpts, genai.WithModel(*flags.model))
	}
	if *flags.baseURL != "" {
		genaiOpts = append(genaiOpts, genai.WithBaseURL(*flags.baseURL))
	}
	return genaiOpts
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	return apiOpts
}
