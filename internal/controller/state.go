package controller

import "github.com/BTreeMap/ZaloGen/internal/models"

// State is the display state of the form. It is exactly one of Idle, Loading, Success or
// Failure.
type State interface {
	// Name returns the lowercase state name used by the presentation layer.
	Name() string
	isState()
}

// Idle means nothing has been requested yet.
type Idle struct{}

// Loading means a generation is in flight.
type Loading struct{}

// Success holds the messages of the last generation, in endpoint order.
type Success struct {
	Messages []models.GeneratedMessage
}

// Failure holds the display string of the last failed action. Validation is set when the
// failure was detected locally before any network call.
type Failure struct {
	Message    string
	Validation bool
}

func (Idle) Name() string    { return "idle" }
func (Loading) Name() string { return "loading" }
func (Success) Name() string { return "success" }
func (Failure) Name() string { return "error" }

func (Idle) isState()    {}
func (Loading) isState() {}
func (Success) isState() {}
func (Failure) isState() {}
