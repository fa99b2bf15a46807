package genai

import (
	"errors"
	"testing"
)

func TestParseMessages(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{name: "valid array", raw: `[{"message":"a"},{"message":"b"}]`, want: []string{"a", "b"}},
		{name: "surrounding whitespace", raw: "\n\t [{\"message\":\"a\"}] \n", want: []string{"a"}},
		{name: "extra fields ignored", raw: `[{"message":"a","tone":"friendly"}]`, want: []string{"a"}},
		{name: "empty message text allowed", raw: `[{"message":""}]`, want: []string{""}},
		{name: "not json", raw: `not json`, wantErr: true},
		{name: "empty payload", raw: ``, wantErr: true},
		{name: "wrong field", raw: `[{"msg":"x"}]`, wantErr: true},
		{name: "object root", raw: `{"message":"x"}`, wantErr: true},
		{name: "non-string message", raw: `[{"message":42}]`, wantErr: true},
		{name: "null element", raw: `[null]`, wantErr: true},
		{name: "string element", raw: `["x"]`, wantErr: true},
		{name: "one bad element", raw: `[{"message":"a"},{"message":null}]`, wantErr: true},
		{name: "empty array", raw: `[]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMessages(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedResponse) {
					t.Fatalf("expected ErrMalformedResponse, got %v", err)
				}
				if got != nil {
					t.Errorf("expected nil result on error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d messages, got %d", len(tt.want), len(got))
			}
			for i, w := range tt.want {
				if got[i].Message != w {
					t.Errorf("message %d: expected %q, got %q", i, w, got[i].Message)
				}
			}
		})
	}
}
