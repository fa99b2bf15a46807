package genai

import (
	"fmt"
	"strings"

	"github.com/BTreeMap/ZaloGen/internal/models"
	"github.com/bytedance/sonic"
)

// ParseMessages decodes the endpoint payload and checks its container shape: a non-empty JSON
// array whose elements are objects with a string "message" field. Message content is not
// inspected. Every failure wraps ErrMalformedResponse.
func ParseMessages(raw string) ([]models.GeneratedMessage, error) {
	trimmed := strings.TrimSpace(raw)

	var decoded interface{}
	if err := sonic.UnmarshalString(trimmed, &decoded); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedResponse, err)
	}

	items, ok := decoded.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected array, got %T", ErrMalformedResponse, decoded)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, ErrEmptyMessageResult)
	}

	messages := make([]models.GeneratedMessage, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T, not an object", ErrMalformedResponse, i, item)
		}
		text, ok := obj["message"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: element %d has no string message field", ErrMalformedResponse, i)
		}
		messages = append(messages, models.GeneratedMessage{Message: text})
	}
	return messages, nil
}
