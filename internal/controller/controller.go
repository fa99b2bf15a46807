// Package controller owns the persona/offer form state and runs the generation lifecycle.
//
// The Controller validates input, enters Loading for the duration of one Generator call and
// always leaves it, ending in Success or Failure.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/BTreeMap/ZaloGen/internal/models"
)

// Display strings and form defaults
const (
	// ValidationMessage is shown when persona or offer is blank.
	ValidationMessage = "Vui lòng nhập đầy đủ chân dung khách hàng và sản phẩm cung cấp."
	// UnknownErrorMessage is shown when a failure carries no usable text.
	UnknownErrorMessage = "Đã có lỗi không xác định xảy ra."
	// DefaultPersona prefills the persona field.
	DefaultPersona = "Chủ doanh nghiệp 40 tuổi, đang gặp khó khăn trong việc quản lý nhân sự và tối ưu hoá quy trình."
	// DefaultOffer prefills the offer field.
	DefaultOffer = "Bộ công thức giúp X3 doanh thu và tự động hoá doanh nghiệp"
)

// Controller errors
var (
	// ErrNilGenerator is returned by New when no Generator is supplied.
	ErrNilGenerator = errors.New("generator is required")
	// ErrGenerationInFlight is returned when input is edited while a generation runs.
	ErrGenerationInFlight = errors.New("generation already in progress")
)

// Generator produces message drafts for a persona and an offer.
type Generator interface {
	Generate(ctx context.Context, persona, offer string) ([]models.GeneratedMessage, error)
}

// Opts holds configuration options for the Controller.
type Opts struct {
	Persona  string
	Offer    string
	Observer func(State)
}

// Option defines a configuration option for the Controller.
type Option func(*Opts)

// WithInput seeds the persona and offer fields.
func WithInput(persona, offer string) Option {
	return func(o *Opts) {
		o.Persona = persona
		o.Offer = offer
	}
}

// WithObserver registers fn to receive every state transition. fn is called without the
// Controller lock held.
func WithObserver(fn func(State)) Option {
	return func(o *Opts) {
		o.Observer = fn
	}
}

// Controller mediates between user input and the Generator.
type Controller struct {
	gen      Generator
	observer func(State)

	mu      sync.Mutex
	persona string
	offer   string
	state   State
}

// New creates a Controller in the Idle state with the default form values.
func New(gen Generator, opts ...Option) (*Controller, error) {
	if gen == nil {
		return nil, ErrNilGenerator
	}
	cfg := Opts{Persona: DefaultPersona, Offer: DefaultOffer}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Controller{
		gen:      gen,
		observer: cfg.Observer,
		persona:  cfg.Persona,
		offer:    cfg.Offer,
		state:    Idle{},
	}, nil
}

// SetPersona replaces the persona text. The input is frozen while Loading.
func (c *Controller) SetPersona(persona string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.state.(Loading); busy {
		return ErrGenerationInFlight
	}
	c.persona = persona
	return nil
}

// SetOffer replaces the offer text. The input is frozen while Loading.
func (c *Controller) SetOffer(offer string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.state.(Loading); busy {
		return ErrGenerationInFlight
	}
	c.offer = offer
	return nil
}

// Input returns the current persona and offer text.
func (c *Controller) Input() (persona, offer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persona, c.offer
}

// State returns the current display state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Trigger runs one generation for the current input and returns the settled state.
//
// Blank input yields a validation Failure without calling the Generator. Otherwise the state
// is Loading until the Generator returns. If a generation is already in flight, Trigger
// returns Loading and does nothing else. Trigger never retries.
func (c *Controller) Trigger(ctx context.Context) State {
	return c.trigger(ctx, nil)
}

// TriggerWith stores persona and offer and runs Trigger in one step. While a generation is in
// flight it returns Loading and leaves the stored input untouched.
func (c *Controller) TriggerWith(ctx context.Context, persona, offer string) State {
	return c.trigger(ctx, &models.GenerationRequest{Persona: persona, Offer: offer})
}

// trigger checks for a running generation, stores input when given and enters Loading under a
// single lock.
func (c *Controller) trigger(ctx context.Context, input *models.GenerationRequest) State {
	c.mu.Lock()
	if _, busy := c.state.(Loading); busy {
		c.mu.Unlock()
		slog.Warn("Controller.Trigger: generation already in flight, ignoring trigger")
		return Loading{}
	}
	if input != nil {
		c.persona, c.offer = input.Persona, input.Offer
	}

	req := models.GenerationRequest{Persona: c.persona, Offer: c.offer}
	if err := req.Validate(); err != nil {
		st := Failure{Message: ValidationMessage, Validation: true}
		c.state = st
		c.mu.Unlock()
		slog.Debug("Controller.Trigger: input validation failed", "error", err)
		c.notify(st)
		return st
	}

	c.state = Loading{}
	c.mu.Unlock()
	c.notify(Loading{})

	return c.run(ctx, req)
}

// run calls the Generator and always replaces Loading with the outcome, including when the
// Generator panics.
func (c *Controller) run(ctx context.Context, req models.GenerationRequest) (st State) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Controller.Trigger: generator panicked", "panic", r)
			st = Failure{Message: UnknownErrorMessage}
		}
		c.mu.Lock()
		c.state = st
		c.mu.Unlock()
		c.notify(st)
	}()

	messages, err := c.gen.Generate(ctx, req.Persona, req.Offer)
	if err != nil {
		msg := err.Error()
		if strings.TrimSpace(msg) == "" {
			msg = UnknownErrorMessage
		}
		slog.Warn("Controller.Trigger: generation failed", "error", msg)
		return Failure{Message: msg}
	}
	if len(messages) == 0 {
		slog.Warn("Controller.Trigger: generator returned no messages")
		return Failure{Message: UnknownErrorMessage}
	}

	result := make([]models.GeneratedMessage, len(messages))
	copy(result, messages)
	slog.Info("Controller.Trigger: generation succeeded", "count", len(result))
	return Success{Messages: result}
}

func (c *Controller) notify(st State) {
	if c.observer != nil {
		c.observer(st)
	}
}
