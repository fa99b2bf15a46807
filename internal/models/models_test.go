package models

import (
	"encoding/json"
	"testing"
)

func TestGenerationRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     GenerationRequest
		wantErr error
	}{
		{"valid", GenerationRequest{Persona: "Chủ shop thời trang online", Offer: "Bộ công thức tăng đơn hàng"}, nil},
		{"empty persona", GenerationRequest{Persona: "", Offer: "x"}, ErrEmptyPersona},
		{"whitespace persona", GenerationRequest{Persona: " \n\t ", Offer: "x"}, ErrEmptyPersona},
		{"empty offer", GenerationRequest{Persona: "x", Offer: ""}, ErrEmptyOffer},
		{"whitespace offer", GenerationRequest{Persona: "x", Offer: "   "}, ErrEmptyOffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGeneratedMessageJSONTag(t *testing.T) {
	data, err := json.Marshal(GeneratedMessage{Message: "Chào {full_name},"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"message":"Chào {full_name},"}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestAPIResponses(t *testing.T) {
	tests := []struct {
		name string
		resp APIResponse
		want string
	}{
		{"success", Success(map[string]string{"state": "idle"}), `{"status":"ok","result":{"state":"idle"}}`},
		{"success without result", Success(nil), `{"status":"ok"}`},
		{"error", Error("boom"), `{"status":"error","message":"boom"}`},
		{"error with result", Error("boom").WithResult(42), `{"status":"error","message":"boom","result":42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.resp)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}
		})
	}
}

func TestWithResultLeavesOriginal(t *testing.T) {
	base := Error("boom")
	_ = base.WithResult("view")
	if base.Result != nil {
		t.Errorf("expected original response unchanged, got %+v", base)
	}
}
