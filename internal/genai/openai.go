package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// chatCompletions is the subset of the OpenAI chat completions service used here.
type chatCompletions interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// openaiBackend calls an OpenAI-compatible chat completions API with a strict JSON schema.
// Structured outputs require an object root, so the message array is requested inside a
// "messages" envelope and unwrapped before validation.
type openaiBackend struct {
	chat  chatCompletions
	model string
}

func newOpenAIBackend(cfg Opts) (*openaiBackend, error) {
	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	cli := openai.NewClient(reqOpts...)
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &openaiBackend{chat: &cli.Chat.Completions, model: model}, nil
}

func (o *openaiBackend) displayName() string { return "OpenAI" }

func (o *openaiBackend) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.chat.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(Temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "zalo_messages",
					Description: openai.String("Danh sách tin nhắn marketing Zalo"),
					Schema:      openAIEnvelopeSchema(),
					Strict:      openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrNoChoicesReturned
	}
	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return "", fmt.Errorf("model refused: %s", msg.Refusal)
	}
	return unwrapMessagesEnvelope(msg.Content), nil
}

// unwrapMessagesEnvelope returns the raw "messages" member of content, or content itself when
// it has no such member.
func unwrapMessagesEnvelope(content string) string {
	node, err := sonic.GetFromString(strings.TrimSpace(content), "messages")
	if err != nil {
		return content
	}
	raw, err := node.Raw()
	if err != nil {
		return content
	}
	return raw
}

func openAIEnvelopeSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"messages": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"message": map[string]interface{}{
							"type":        "string",
							"description": messageFieldDescription,
						},
					},
					"required":             []string{"message"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"messages"},
		"additionalProperties": false,
	}
}
