package genai

import (
	"context"
	"fmt"

	googlegenai "google.golang.org/genai"
)

// contentGenerator is the subset of the Gemini Models service used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*googlegenai.Content, config *googlegenai.GenerateContentConfig) (*googlegenai.GenerateContentResponse, error)
}

// geminiBackend calls the Gemini API with a response schema.
type geminiBackend struct {
	models contentGenerator
	model  string
}

func newGeminiBackend(cfg Opts) (*geminiBackend, error) {
	cli, err := googlegenai.NewClient(context.Background(), &googlegenai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: googlegenai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &geminiBackend{models: cli.Models, model: model}, nil
}

func (g *geminiBackend) displayName() string { return "Gemini" }

func (g *geminiBackend) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, googlegenai.Text(prompt), &googlegenai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiMessageSchema(),
		Temperature:      googlegenai.Ptr[float32](Temperature),
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", ErrNoCandidates, resp.PromptFeedback.BlockReason)
		}
		return "", ErrNoCandidates
	}
	return resp.Text(), nil
}

// geminiMessageSchema is an array of objects with one required string field "message".
func geminiMessageSchema() *googlegenai.Schema {
	return &googlegenai.Schema{
		Type: googlegenai.TypeArray,
		Items: &googlegenai.Schema{
			Type: googlegenai.TypeObject,
			Properties: map[string]*googlegenai.Schema{
				"message": {
					Type:        googlegenai.TypeString,
					Description: messageFieldDescription,
				},
			},
			Required: []string{"message"},
		},
	}
}
