package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

// ndjsonWriter emits newline-delimited JSON records, flushing after each one
// so tokens reach the client as they arrive.
type ndjsonWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	rc      *http.ResponseController
}

// newNDJSONWriter prepares a streaming response. It sets headers but does not
// write the status; the caller commits the status once the upstream has
// accepted the request.
func newNDJSONWriter(w http.ResponseWriter) (*ndjsonWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	return &ndjsonWriter{w: w, flusher: flusher, rc: http.NewResponseController(w)}, nil
}

// writeRecord writes one token record as a single line and flushes it.
func (n *ndjsonWriter) writeRecord(rec types.TokenRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(n.w, "%s\n", data); err != nil {
		return err
	}

	// ResponseController flushes through middleware wrappers; fall back to
	// the plain flusher when it cannot.
	if flushErr := n.rc.Flush(); flushErr != nil {
		n.flusher.Flush()
	}

	return nil
}
