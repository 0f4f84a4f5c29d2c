package server

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform API error body.
type ErrorResponse struct {
	Error json.RawMessage `json:"error"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with a string message.
func writeError(w http.ResponseWriter, status int, message string) {
	quoted, err := json.Marshal(message)
	if err != nil {
		quoted = []byte(`"internal error"`)
	}
	writeErrorPayload(w, status, quoted)
}

// writeErrorPayload writes an error response whose error field is an already
// encoded JSON value, such as an upstream rejection body.
func writeErrorPayload(w http.ResponseWriter, status int, payload json.RawMessage) {
	if len(payload) == 0 {
		payload = json.RawMessage(`"upstream error"`)
	}
	writeJSON(w, status, ErrorResponse{Error: payload})
}
