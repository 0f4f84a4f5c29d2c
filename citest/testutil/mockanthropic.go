// Package testutil provides shared helpers for the black-box server suites.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockAnthropicServer mimics the Anthropic Messages endpoint for testing.
// It answers both streaming and non-streaming requests and records every
// request it receives for later verification.
type MockAnthropicServer struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []MockRequest

	// ReplyText is the assistant text returned for every request. Streaming
	// responses emit it word by word.
	ReplyText string
	// FailStatus, when non-zero, makes the server reject every request with
	// that status and FailBody.
	FailStatus int
	FailBody   string
}

// MockRequest records one incoming request for verification.
type MockRequest struct {
	Timestamp time.Time
	Method    string
	Path      string
	Headers   http.Header
	Body      map[string]any
}

// NewMockAnthropicServer creates and starts a mock upstream.
func NewMockAnthropicServer() *MockAnthropicServer {
	m := &MockAnthropicServer{
		ReplyText: "Hello from the mock upstream",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/messages", m.handleMessages)

	m.server = httptest.NewServer(mux)
	return m
}

// URL returns the mock server's base URL.
func (m *MockAnthropicServer) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAnthropicServer) Close() {
	m.server.Close()
}

// Requests returns a copy of all recorded requests.
func (m *MockAnthropicServer) Requests() []MockRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Reset clears recorded requests and restores default behavior.
func (m *MockAnthropicServer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.ReplyText = "Hello from the mock upstream"
	m.FailStatus = 0
	m.FailBody = ""
}

func (m *MockAnthropicServer) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.requests = append(m.requests, MockRequest{
		Timestamp: time.Now(),
		Method:    r.Method,
		Path:      r.URL.Path,
		Headers:   r.Header.Clone(),
		Body:      body,
	})
	failStatus, failBody := m.FailStatus, m.FailBody
	replyText := m.ReplyText
	m.mu.Unlock()

	if failStatus != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(failStatus)
		fmt.Fprint(w, failBody)
		return
	}

	model, _ := body["model"].(string)
	stream, _ := body["stream"].(bool)

	if stream {
		m.writeStreamingResponse(w, model, replyText)
	} else {
		m.writeResponse(w, model, replyText)
	}
}

func (m *MockAnthropicServer) writeResponse(w http.ResponseWriter, model, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":    "msg_mock_001",
		"model": model,
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"usage": map[string]any{
			"input_tokens":  12,
			"output_tokens": len(strings.Fields(text)),
		},
	})
}

func (m *MockAnthropicServer) writeStreamingResponse(w http.ResponseWriter, model, text string) {
	w.Header().Set("Content-Type", "text/event-stream")
	flusher := w.(http.Flusher)

	writeEvent := func(payload any) {
		data, _ := json.Marshal(payload)
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	writeEvent(map[string]any{
		"type":    "message_start",
		"message": map[string]any{"id": "msg_mock_001", "model": model},
	})

	words := strings.Fields(text)
	for i, word := range words {
		token := word
		if i < len(words)-1 {
			token += " "
		}
		writeEvent(map[string]any{
			"type":  "content_block_delta",
			"delta": map[string]any{"type": "text_delta", "text": token},
		})
	}

	writeEvent(map[string]any{
		"type":  "message_delta",
		"usage": map[string]any{"output_tokens": len(words)},
	})
	writeEvent(map[string]any{"type": "message_stop"})
}
