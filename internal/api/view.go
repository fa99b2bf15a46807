package api

import (
	"github.com/BTreeMap/ZaloGen/internal/controller"
	"github.com/BTreeMap/ZaloGen/internal/models"
)

// stateView is the rendering of a Controller state shared by the HTML page and the JSON API.
type stateView struct {
	State    string                    `json:"state"`
	Persona  string                    `json:"persona"`
	Offer    string                    `json:"offer"`
	Messages []models.GeneratedMessage `json:"messages"`
	Error    string                    `json:"error,omitempty"`
}

// Loading reports whether a generation is in flight.
func (v stateView) Loading() bool {
	return v.State == controller.Loading{}.Name()
}

func newStateView(st controller.State, persona, offer string) stateView {
	v := stateView{
		State:    st.Name(),
		Persona:  persona,
		Offer:    offer,
		Messages: []models.GeneratedMessage{},
	}
	switch s := st.(type) {
	case controller.Success:
		v.Messages = s.Messages
	case controller.Failure:
		v.Error = s.Message
	}
	return v
}

// UnknownError is the message the page script shows when a request gets no usable answer.
func (stateView) UnknownError() string {
	return controller.UnknownErrorMessage
}

func (s *Server) currentView() stateView {
	return s.viewOf(s.ctrl.State())
}

func (s *Server) viewOf(st controller.State) stateView {
	persona, offer := s.ctrl.Input()
	return newStateView(st, persona, offer)
}
