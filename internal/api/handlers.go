package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/BTreeMap/ZaloGen/internal/models"
)

// indexHandler renders the form page for the current state.
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	slog.Debug("Server.indexHandler: rendering page", "method", r.Method)
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, r, "Server.indexHandler", "GET, HEAD")
		return
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, s.currentView()); err != nil {
		slog.Error("Server.indexHandler: failed to render page", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Server.indexHandler: failed to write page", "error", err)
	}
}

// generateFormHandler handles the script-free form post and redirects back to the page, which
// renders the settled state.
func (s *Server) generateFormHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.generateFormHandler: processing form post", "method", r.Method)
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "Server.generateFormHandler", http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.Warn("Server.generateFormHandler: failed to parse form", "error", err)
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	st := s.ctrl.TriggerWith(context.WithoutCancel(r.Context()), r.PostForm.Get("persona"), r.PostForm.Get("offer"))
	slog.Debug("Server.generateFormHandler: trigger settled", "state", st.Name())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// generateHandler handles POST /api/generate with a JSON body of persona and offer.
func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.generateHandler: processing generate request", "method", r.Method)
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "Server.generateHandler", http.MethodPost)
		return
	}
	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.generateHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	// The generation outlives a disconnected client so the Controller always settles.
	st := s.ctrl.TriggerWith(context.WithoutCancel(r.Context()), req.Persona, req.Offer)
	writeTriggerResult(w, st, s.viewOf(st))
}

// stateHandler reports the current state. Failures are carried in the view, not the status.
func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "Server.stateHandler", http.MethodGet)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.currentView()))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "Server.healthHandler", http.MethodGet)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(nil))
}
