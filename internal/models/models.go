// Package models defines the core data structures for ZaloGen.
//
// It includes the generation request and message types and the JSON response envelope shared
// by the API server and its clients.
package models

import (
	"errors"
	"strings"
)

// Error variables for better error handling and testability
var (
	ErrEmptyPersona = errors.New("persona cannot be empty")
	ErrEmptyOffer   = errors.New("offer cannot be empty")
)

// GenerationRequest carries the two free-text inputs of one generation.
type GenerationRequest struct {
	Persona string `json:"persona"`
	Offer   string `json:"offer"`
}

// Validate checks that both fields are non-empty after trimming surrounding whitespace.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Persona) == "" {
		return ErrEmptyPersona
	}
	if strings.TrimSpace(r.Offer) == "" {
		return ErrEmptyOffer
	}
	return nil
}

// GeneratedMessage is one marketing message draft.
type GeneratedMessage struct {
	Message string `json:"message"`
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse is the JSON envelope of every API response. Error responses may still carry a
// result, such as the state view after a failed generation.
type APIResponse struct {
	Status  APIStatus   `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// Success creates an ok response wrapping result.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: APIStatusOK, Result: result}
}

// Error creates an error response with a display message.
func Error(message string) APIResponse {
	return APIResponse{Status: APIStatusError, Message: message}
}

// WithResult returns a copy of r carrying result.
func (r APIResponse) WithResult(result interface{}) APIResponse {
	r.Result = result
	return r
}
