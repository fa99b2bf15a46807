package genai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// mockChatCompletions implements chatCompletions for testing.
type mockChatCompletions struct {
	resp      *openai.ChatCompletion
	err       error
	gotParams openai.ChatCompletionNewParams
}

func (m *mockChatCompletions) New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.gotParams = body
	return m.resp, m.err
}

func completion(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestOpenAIBackend_UnwrapsEnvelope(t *testing.T) {
	mock := &mockChatCompletions{resp: completion(`{"messages":[{"message":"a"},{"message":"b"}]}`)}
	b := &openaiBackend{chat: mock, model: DefaultOpenAIModel}

	raw, err := b.complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msgs, err := ParseMessages(raw)
	if err != nil {
		t.Fatalf("unwrapped payload did not validate: %v (raw %q)", err, raw)
	}
	if len(msgs) != 2 || msgs[0].Message != "a" || msgs[1].Message != "b" {
		t.Errorf("unexpected messages %+v", msgs)
	}

	params := mock.gotParams
	if string(params.Model) != DefaultOpenAIModel {
		t.Errorf("expected model %q, got %q", DefaultOpenAIModel, params.Model)
	}
	if params.Temperature.Value != 0.8 {
		t.Errorf("expected temperature 0.8, got %v", params.Temperature.Value)
	}
	if params.ResponseFormat.OfJSONSchema == nil {
		t.Fatal("expected json_schema response format")
	}
	if !params.ResponseFormat.OfJSONSchema.JSONSchema.Strict.Value {
		t.Error("expected strict schema")
	}
	if len(params.Messages) != 1 {
		t.Errorf("expected a single user message, got %d", len(params.Messages))
	}
}

func TestOpenAIBackend_PassThroughWithoutEnvelope(t *testing.T) {
	for _, content := range []string{`[{"message":"a"}]`, `not json`, `{"other":1}`} {
		b := &openaiBackend{chat: &mockChatCompletions{resp: completion(content)}, model: DefaultOpenAIModel}
		raw, err := b.complete(context.Background(), "p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if raw != content {
			t.Errorf("expected content %q passed through, got %q", content, raw)
		}
	}
}

func TestOpenAIBackend_Failures(t *testing.T) {
	b := &openaiBackend{chat: &mockChatCompletions{err: errors.New("429 Too Many Requests")}, model: DefaultOpenAIModel}
	if _, err := b.complete(context.Background(), "p"); err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("expected upstream error, got %v", err)
	}

	b = &openaiBackend{chat: &mockChatCompletions{resp: &openai.ChatCompletion{}}, model: DefaultOpenAIModel}
	if _, err := b.complete(context.Background(), "p"); err != ErrNoChoicesReturned {
		t.Errorf("expected ErrNoChoicesReturned, got %v", err)
	}

	refused := &openai.ChatCompletion{Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Refusal: "cannot help"}}}}
	b = &openaiBackend{chat: &mockChatCompletions{resp: refused}, model: DefaultOpenAIModel}
	if _, err := b.complete(context.Background(), "p"); err == nil || !strings.Contains(err.Error(), "cannot help") {
		t.Errorf("expected refusal error, got %v", err)
	}
}

func TestGenerate_OpenAIServicePrefix(t *testing.T) {
	client := &Client{backend: &openaiBackend{chat: &mockChatCompletions{err: errors.New("quota exceeded")}, model: DefaultOpenAIModel}}
	_, err := client.Generate(context.Background(), "p", "o")
	if err == nil || err.Error() != "Lỗi khi gọi API OpenAI: quota exceeded" {
		t.Errorf("unexpected error %v", err)
	}
}
