// Package genai generates Zalo marketing message drafts through a generative-AI text endpoint.
//
// The Client builds a fixed prompt from a persona and an offer, calls the configured provider
// (Gemini by default, or an OpenAI-compatible API) with a declared JSON output schema, and
// validates the shape of the returned payload.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BTreeMap/ZaloGen/internal/models"
	"github.com/google/uuid"
)

// Provider names accepted by WithProvider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default generation constants
const (
	// DefaultGeminiModel is the model used with the Gemini provider when none is configured
	DefaultGeminiModel = "gemini-2.5-flash"
	// DefaultOpenAIModel is the model used with the OpenAI provider when none is configured
	DefaultOpenAIModel = "gpt-4o-mini"
	// Temperature biases the endpoint toward varied phrasing
	Temperature = 0.8
)

// Display strings surfaced to the user.
const (
	// MalformedResponseMessage is shown when the endpoint payload cannot be used.
	MalformedResponseMessage = "Đã có lỗi xảy ra khi xử lý dữ liệu từ AI. Vui lòng thử lại."
	// serviceFailurePrefix is followed by the provider display name and the upstream error text.
	serviceFailurePrefix = "Lỗi khi gọi API"
)

// Error variables for better error handling and testability
var (
	ErrMissingAPIKey      = errors.New("generation API key not set")
	ErrUnknownProvider    = errors.New("unknown generation provider")
	ErrMalformedResponse  = errors.New("malformed response from generation endpoint")
	ErrServiceFailure     = errors.New("generation endpoint call failed")
	ErrNoCandidates       = errors.New("no candidates returned")
	ErrNoChoicesReturned  = errors.New("no choices returned")
	ErrEmptyMessageResult = errors.New("response contained no messages")
)

// GenerationError is the single failure returned by Generate. Error returns the display
// string; errors.Is matches ErrMalformedResponse or ErrServiceFailure.
type GenerationError struct {
	kind    error
	display string
	cause   error
}

func (e *GenerationError) Error() string { return e.display }

// Unwrap returns the underlying parse or upstream error.
func (e *GenerationError) Unwrap() error { return e.cause }

// Is reports whether target is the kind of this failure.
func (e *GenerationError) Is(target error) bool { return target == e.kind }

func malformedError(cause error) error {
	return &GenerationError{kind: ErrMalformedResponse, display: MalformedResponseMessage, cause: cause}
}

func serviceError(provider string, cause error) error {
	return &GenerationError{
		kind:    ErrServiceFailure,
		display: fmt.Sprintf("%s %s: %s", serviceFailurePrefix, provider, cause.Error()),
		cause:   cause,
	}
}

// backend performs one schema-constrained completion and returns the raw payload text.
type backend interface {
	// displayName is used in service failure messages.
	displayName() string
	complete(ctx context.Context, prompt string) (string, error)
}

// Opts holds configuration options for the GenAI client.
type Opts struct {
	Provider string // gemini (default) or openai
	APIKey   string // credential of the chosen provider
	Model    string // model override
	BaseURL  string // OpenAI-compatible gateway URL
}

// Option defines a configuration option for the GenAI client.
type Option func(*Opts)

// WithProvider selects the generation provider.
func WithProvider(provider string) Option {
	return func(o *Opts) {
		o.Provider = provider
	}
}

// WithAPIKey sets the provider credential.
func WithAPIKey(key string) Option {
	return func(o *Opts) {
		o.APIKey = key
	}
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(o *Opts) {
		o.Model = model
	}
}

// WithBaseURL points the OpenAI provider at an OpenAI-compatible endpoint.
func WithBaseURL(url string) Option {
	return func(o *Opts) {
		o.BaseURL = url
	}
}

// Client generates message drafts using the configured backend.
type Client struct {
	backend backend
}

// NewClient initializes a new GenAI client. When no API key option is given, the provider's
// environment variable (GEMINI_API_KEY or OPENAI_API_KEY) is used. A missing key is a fatal
// configuration error.
func NewClient(opts ...Option) (*Client, error) {
	cfg := Opts{Provider: ProviderGemini}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = ProviderGemini
	}
	slog.Debug("GenAI NewClient options set", "provider", cfg.Provider, "api_key_set", cfg.APIKey != "", "model", cfg.Model, "base_url_set", cfg.BaseURL != "")

	var (
		b   backend
		err error
	)
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY environment variable is not set", ErrMissingAPIKey)
		}
		b, err = newGeminiBackend(cfg)
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable is not set", ErrMissingAPIKey)
		}
		b, err = newOpenAIBackend(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", cfg.Provider, err)
	}
	slog.Info("GenAI client initialized", "provider", cfg.Provider)
	return &Client{backend: b}, nil
}

// Generate asks the endpoint for marketing messages for persona and offer. The returned
// sequence is the endpoint's, unchanged. Whether it holds exactly four messages with the
// four-part structure is best-effort and only requested by the prompt.
func (c *Client) Generate(ctx context.Context, persona, offer string) ([]models.GeneratedMessage, error) {
	requestID := uuid.NewString()
	start := time.Now()
	slog.Debug("Client.Generate: calling endpoint", "request_id", requestID, "provider", c.backend.displayName(), "persona_len", len(persona), "offer_len", len(offer))

	raw, err := c.backend.complete(ctx, BuildPrompt(persona, offer))
	if err != nil {
		slog.Error("Client.Generate: endpoint call failed", "request_id", requestID, "error", err, "duration", time.Since(start))
		if errors.Is(err, ErrMalformedResponse) {
			return nil, malformedError(err)
		}
		return nil, serviceError(c.backend.displayName(), err)
	}

	messages, err := ParseMessages(raw)
	if err != nil {
		slog.Error("Client.Generate: malformed response", "request_id", requestID, "error", err, "raw_len", len(raw))
		return nil, malformedError(err)
	}

	slog.Info("Client.Generate: messages generated", "request_id", requestID, "count", len(messages), "duration", time.Since(start))
	return messages, nil
}
