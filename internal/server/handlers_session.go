package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/event"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

// listSessions handles GET /api/sessions.
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListSessions())
}

// createSession handles POST /api/sessions. The new session becomes current.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	title := req.Title
	if title == "" {
		title = "New Session"
	}

	session := s.store.CreateSession(title)

	s.bus.Publish(event.Event{
		Type: event.SessionCreated,
		Data: map[string]string{"id": session.ID, "title": session.Title},
	})

	writeJSON(w, http.StatusCreated, session)
}

// getSession handles GET /api/sessions/{sessionID}.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, ok := s.store.GetSession(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// deleteSession handles DELETE /api/sessions/{sessionID}.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if !s.store.DeleteSession(sessionID) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	s.bus.Publish(event.Event{
		Type: event.SessionDeleted,
		Data: map[string]string{"id": sessionID},
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
		"id":     sessionID,
	})
}

// appendMessage handles POST /api/sessions/{sessionID}/messages.
func (s *Server) appendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req types.AppendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Role == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "role and content are required")
		return
	}

	entry, ok := s.store.AppendMessage(sessionID, req)
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	s.bus.Publish(event.Event{
		Type: event.MessageAppended,
		Data: map[string]string{"session_id": sessionID, "message_id": entry.ID},
	})

	writeJSON(w, http.StatusCreated, entry)
}
