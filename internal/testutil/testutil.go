// Package testutil provides common test utilities and helpers for ZaloGen tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/BTreeMap/ZaloGen/internal/models"
)

// SampleMessages is a typical four-message generation result.
var SampleMessages = []models.GeneratedMessage{
	{Message: "Chào {full_name}, anh/chị có đang mất ngủ vì bài toán nhân sự?"},
	{Message: "Chào {full_name}, điều gì sẽ xảy ra nếu doanh thu tăng gấp ba?"},
	{Message: "Chào {full_name}, quy trình tự động có thể giải phóng bao nhiêu giờ mỗi tuần?"},
	{Message: "Chào {full_name}, em muốn gửi anh/chị bộ công thức đã giúp 200 chủ doanh nghiệp."},
}

// StubGenerator is a controllable message generator for tests. It records every call.
type StubGenerator struct {
	Messages []models.GeneratedMessage
	Err      error
	// Block, when non-nil, is received from before returning.
	Block chan struct{}
	// Started, when non-nil, is closed on the first call.
	Started chan struct{}

	mu      sync.Mutex
	calls   int
	persona string
	offer   string
}

// Generate records the inputs and returns the configured outcome.
func (g *StubGenerator) Generate(ctx context.Context, persona, offer string) ([]models.GeneratedMessage, error) {
	g.mu.Lock()
	g.calls++
	first := g.calls == 1
	g.persona, g.offer = persona, offer
	g.mu.Unlock()

	if first && g.Started != nil {
		close(g.Started)
	}
	if g.Block != nil {
		<-g.Block
	}
	return g.Messages, g.Err
}

// Calls returns the number of Generate calls so far.
func (g *StubGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// LastInput returns the persona and offer of the most recent call.
func (g *StubGenerator) LastInput() (persona, offer string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.persona, g.offer
}

// AssertHTTPStatus checks the HTTP status code and fails the test if it doesn't match.
func AssertHTTPStatus(t testing.TB, expected, actual int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected status %d, got %d", context, expected, actual)
	}
}

// AssertJSONResponse decodes JSON response and validates the status field.
func AssertJSONResponse(t testing.TB, rr *httptest.ResponseRecorder, expectedStatus string) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}

	if status, ok := response["status"].(string); ok {
		if status != expectedStatus {
			t.Errorf("expected status '%s', got '%s'", expectedStatus, status)
		}
	} else {
		t.Error("response missing or invalid 'status' field")
	}

	return response
}

// CreateHTTPRequest creates an HTTP request with optional JSON body for testing.
func CreateHTTPRequest(t testing.TB, method, url string, body interface{}) *http.Request {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = bytes.NewBuffer(MustMarshalJSON(t, body))
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create HTTP request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// MustMarshalJSON marshals an object to JSON and fails test on error.
func MustMarshalJSON(t testing.TB, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return data
}

// MustUnmarshalJSON unmarshals JSON data into target and fails test on error.
func MustUnmarshalJSON(t testing.TB, data []byte, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, target); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}
}
