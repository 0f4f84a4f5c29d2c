package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/agent"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/logging"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/provider"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

// anthropicProvider is the credential-map key for the Anthropic backend.
const anthropicProvider = "anthropic"

// listModels handles GET /api/claude/models.
func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	available := s.store.HasCredential(anthropicProvider)

	models := []types.ModelInfo{
		{
			ID:        agent.ModelForTier(agent.TierCommander),
			Name:      "Claude Opus",
			Tier:      agent.TierCommander,
			Provider:  anthropicProvider,
			Available: available,
		},
		{
			ID:        agent.ModelForTier(agent.TierCoordinator),
			Name:      "Claude Sonnet",
			Tier:      agent.TierCoordinator,
			Provider:  anthropicProvider,
			Available: available,
		},
		{
			ID:        agent.ModelForTier(agent.TierExecutor),
			Name:      "Claude Haiku",
			Tier:      agent.TierExecutor,
			Provider:  anthropicProvider,
			Available: available,
		},
	}

	writeJSON(w, http.StatusOK, models)
}

// prepareChat validates the request body and copies everything needed out of
// the store before any network activity.
func (s *Server) prepareChat(w http.ResponseWriter, r *http.Request) (string, *provider.MessageRequest, bool) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return "", nil, false
	}

	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages must not be empty")
		return "", nil, false
	}

	apiKey, ok := s.store.Credential(anthropicProvider)
	if !ok {
		writeError(w, http.StatusBadRequest, "Anthropic API key not configured")
		return "", nil, false
	}

	model := req.Model
	if model == "" {
		model = s.store.Settings().DefaultModel
	}

	return apiKey, &provider.MessageRequest{
		Model:       model,
		MaxTokens:   req.MaxTokens,
		Messages:    req.Messages,
		Temperature: req.Temperature,
	}, true
}

// chat handles POST /api/claude/chat.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	apiKey, req, ok := s.prepareChat(w, r)
	if !ok {
		return
	}

	resp, err := s.client.Complete(r.Context(), apiKey, req)
	if err != nil {
		writeUpstreamFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// chatStream handles POST /api/claude/chat/stream. It relays normalized token
// records as NDJSON, one record per line, flushed as they arrive.
func (s *Server) chatStream(w http.ResponseWriter, r *http.Request) {
	apiKey, req, ok := s.prepareChat(w, r)
	if !ok {
		return
	}

	stream, err := s.client.Stream(r.Context(), apiKey, req)
	if err != nil {
		writeUpstreamFailure(w, err)
		return
	}
	defer stream.Close()

	out, err := newNDJSONWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)

	sawTerminal := false
	for {
		rec, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if rec.Done {
			sawTerminal = true
		}
		if err := out.writeRecord(rec); err != nil {
			// Client went away; the deferred Close tears down upstream.
			return
		}
	}

	if !sawTerminal {
		logging.Warn().
			Str("model", req.Model).
			Msg("upstream stream ended without a stop event")
	}
}

// writeUpstreamFailure maps provider errors onto HTTP responses. Upstream
// rejections keep their original status and body; transport failures become
// 502.
func writeUpstreamFailure(w http.ResponseWriter, err error) {
	var upstream *provider.UpstreamError
	if errors.As(err, &upstream) {
		status := upstream.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		writeErrorPayload(w, status, upstream.Payload)
		return
	}

	var connect *provider.ConnectError
	if errors.As(err, &connect) {
		writeError(w, http.StatusBadGateway, connect.Error())
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}
