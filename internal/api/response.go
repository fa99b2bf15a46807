package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/BTreeMap/ZaloGen/internal/controller"
	"github.com/BTreeMap/ZaloGen/internal/models"
)

const (
	internalErrorMessage = "Internal server error"
	// busyMessage is returned when a generate action arrives while another is in flight.
	busyMessage = "generation already in progress"
)

// fallbackErrorResponse is written when a response cannot be encoded.
var fallbackErrorResponse = mustMarshal(models.Error(internalErrorMessage))

func mustMarshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal fallback response: %v", err))
	}
	return data
}

// writeJSONResponse encodes resp and writes it with statusCode. An encoding failure is answered
// with a 500 and the fallback body. State responses are never cached.
func writeJSONResponse(w http.ResponseWriter, statusCode int, resp models.APIResponse) {
	body, err := json.Marshal(resp)
	if err != nil {
		slog.Error("Server.writeJSONResponse: failed to marshal JSON response", "error", err)
		body, statusCode = fallbackErrorResponse, http.StatusInternalServerError
	}

	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		slog.Error("Server.writeJSONResponse: failed to write JSON response", "error", err)
	}
}

// writeTriggerResult maps the state returned by a trigger to its JSON response.
func writeTriggerResult(w http.ResponseWriter, st controller.State, view stateView) {
	switch res := st.(type) {
	case controller.Success:
		writeJSONResponse(w, http.StatusOK, models.Success(view))
	case controller.Failure:
		status := http.StatusBadGateway
		if res.Validation {
			status = http.StatusBadRequest
		}
		writeJSONResponse(w, status, models.Error(res.Message).WithResult(view))
	case controller.Loading:
		writeJSONResponse(w, http.StatusConflict, models.Error(busyMessage).WithResult(view))
	default:
		slog.Error("Server.writeTriggerResult: unexpected state", "state", st.Name())
		writeJSONResponse(w, http.StatusInternalServerError, models.Error(internalErrorMessage))
	}
}

// methodNotAllowed answers a request whose method the route does not accept.
func methodNotAllowed(w http.ResponseWriter, r *http.Request, handler, allow string) {
	w.Header().Set("Allow", allow)
	slog.Warn(handler+": method not allowed", "method", r.Method)
	w.WriteHeader(http.StatusMethodNotAllowed)
}
