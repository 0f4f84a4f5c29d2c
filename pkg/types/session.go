package types

// Session is a conversation session. History order is append-only and is
// never reordered.
type Session struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	CreatedAt string         `json:"created_at"`
	Messages  []HistoryEntry `json:"messages"`
}

// HistoryEntry is a single conversation turn. Immutable once appended.
type HistoryEntry struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Model     string `json:"model,omitempty"`
	Agent     string `json:"agent,omitempty"`
	Timestamp string `json:"timestamp"`
}

// SessionSummary is the lightweight view returned by session listing; it
// omits the history body.
type SessionSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CreatedAt    string `json:"created_at"`
	MessageCount int    `json:"message_count"`
}

// CreateSessionRequest is the request body for creating a session.
type CreateSessionRequest struct {
	Title string `json:"title"`
}

// AppendMessageRequest is the request body for appending a history entry.
type AppendMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
	Agent   string `json:"agent,omitempty"`
}
