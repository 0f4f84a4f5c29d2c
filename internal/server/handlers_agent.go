package server

import (
	"net/http"
)

// listAgents handles GET /api/agents.
func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Agents())
}
