// Package state provides the in-memory store for all mutable server-side
// data: settings, credentials, the agent roster, and chat sessions.
//
// Every operation runs under a single process-wide mutex held for its full
// duration, so each read observes a consistent snapshot and each write is
// atomic with respect to all other operations. Nothing here performs I/O;
// callers must copy values out before making network calls.
package state

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

// Store is the single point of truth for server state.
type Store struct {
	mu sync.Mutex

	settings         types.Settings
	credentials      map[string]string
	agents           []types.Agent
	sessions         []*types.Session
	currentSessionID string

	startTime time.Time
}

// New creates a store seeded with the given settings, credentials, and agent
// roster. The credential map is copied; the caller keeps ownership of its
// argument.
func New(settings types.Settings, credentials map[string]string, agents []types.Agent) *Store {
	creds := make(map[string]string, len(credentials))
	for provider, key := range credentials {
		creds[provider] = key
	}

	return &Store{
		settings:    settings,
		credentials: creds,
		agents:      agents,
		startTime:   time.Now(),
	}
}

// Settings returns the current settings value.
func (s *Store) Settings() types.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// ReplaceSettings atomically swaps the settings record. The new value fully
// supersedes the old; there is no field merge.
func (s *Store) ReplaceSettings(settings types.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// SetCredential inserts or overwrites the key for a provider. Unknown
// provider names are accepted.
func (s *Store) SetCredential(provider, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[provider] = key
}

// Credential returns the key for a provider. The second result is false when
// the provider is not configured.
func (s *Store) Credential(provider string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.credentials[provider]
	return key, ok
}

// HasCredential reports whether a provider is configured.
func (s *Store) HasCredential(provider string) bool {
	_, ok := s.Credential(provider)
	return ok
}

// ProviderStatuses reports credential availability for the given providers,
// in the given order.
func (s *Store) ProviderStatuses(providers ...string) []types.ProviderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]types.ProviderStatus, 0, len(providers))
	for _, name := range providers {
		_, ok := s.credentials[name]
		statuses = append(statuses, types.ProviderStatus{Name: name, Available: ok})
	}
	return statuses
}

// Agents returns a copy of the agent roster.
func (s *Store) Agents() []types.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	agents := make([]types.Agent, len(s.agents))
	copy(agents, s.agents)
	return agents
}

// ListSessions returns session summaries in creation order.
func (s *Store) ListSessions() []types.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]types.SessionSummary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		summaries = append(summaries, types.SessionSummary{
			ID:           sess.ID,
			Title:        sess.Title,
			CreatedAt:    sess.CreatedAt,
			MessageCount: len(sess.Messages),
		})
	}
	return summaries
}

// CreateSession allocates a new session with the given title, appends it to
// the collection, and makes it the current session.
func (s *Store) CreateSession(title string) types.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &types.Session{
		ID:        newID(),
		Title:     title,
		CreatedAt: nowUTC(),
		Messages:  []types.HistoryEntry{},
	}
	s.sessions = append(s.sessions, sess)
	s.currentSessionID = sess.ID

	return copySession(sess)
}

// GetSession returns a copy of the named session. The second result is false
// when it does not exist.
func (s *Store) GetSession(id string) (types.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.find(id)
	if sess == nil {
		return types.Session{}, false
	}
	return copySession(sess), true
}

// DeleteSession removes the named session, clearing the current-session
// pointer if it matched. Returns whether a session was removed.
func (s *Store) DeleteSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			if s.currentSessionID == id {
				s.currentSessionID = ""
			}
			return true
		}
	}
	return false
}

// AppendMessage builds a history entry with a fresh id and timestamp and
// appends it to the named session. The second result is false when the
// session does not exist.
func (s *Store) AppendMessage(id string, req types.AppendMessageRequest) (types.HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.find(id)
	if sess == nil {
		return types.HistoryEntry{}, false
	}

	entry := types.HistoryEntry{
		ID:        newID(),
		Role:      req.Role,
		Content:   req.Content,
		Model:     req.Model,
		Agent:     req.Agent,
		Timestamp: nowUTC(),
	}
	sess.Messages = append(sess.Messages, entry)
	return entry, true
}

// CurrentSessionID returns the current-session pointer. The second result is
// false when no session is selected.
func (s *Store) CurrentSessionID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSessionID, s.currentSessionID != ""
}

// Uptime returns the elapsed time since the store was created.
func (s *Store) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.startTime)
}

// find returns the live session pointer for id, or nil. Callers must hold
// the mutex.
func (s *Store) find(id string) *types.Session {
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

// copySession deep-copies a session so callers never share the history slice
// with the store.
func copySession(sess *types.Session) types.Session {
	out := *sess
	out.Messages = make([]types.HistoryEntry, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	return out
}

// newID generates a new ULID.
func newID() string {
	return ulid.Make().String()
}

// nowUTC returns the current UTC time at second precision, RFC 3339.
func nowUTC() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}
