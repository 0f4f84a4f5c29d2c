package server

import (
	"encoding/json"
	"net/http"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/event"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

// getSettings handles GET /api/settings.
func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Settings())
}

// updateSettings handles POST /api/settings. The submitted value replaces the
// stored one wholesale; omitted fields become their zero values.
func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var settings types.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	s.store.ReplaceSettings(settings)

	s.bus.Publish(event.Event{
		Type: event.SettingsUpdated,
		Data: settings,
	})

	writeJSON(w, http.StatusOK, settings)
}

// setAPIKey handles POST /api/settings/api-key. The response and the
// published event name the provider only; the key itself is never echoed.
func (s *Server) setAPIKey(w http.ResponseWriter, r *http.Request) {
	var req types.APIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Provider == "" || req.Key == "" {
		writeError(w, http.StatusBadRequest, "provider and key are required")
		return
	}

	s.store.SetCredential(req.Provider, req.Key)

	s.bus.Publish(event.Event{
		Type: event.KeyConfigured,
		Data: map[string]string{"provider": req.Provider},
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "configured",
		"provider": req.Provider,
	})
}
