// Package types provides the core data types for the ClaudeHydra server.
package types

// ChatMessage is a single message in a conversation.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Model     string `json:"model,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChatRequest is the inbound chat-completion request body, shared by the
// streaming and non-streaming endpoints.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Model       string        `json:"model,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
}

// ChatResponse is the non-streaming completion response.
type ChatResponse struct {
	ID      string      `json:"id"`
	Message ChatMessage `json:"message"`
	Model   string      `json:"model"`
	Usage   *UsageInfo  `json:"usage,omitempty"`
}

// UsageInfo reports token usage for a completed request.
type UsageInfo struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// TokenRecord is one newline-delimited JSON unit of the normalized token
// stream. Incremental records carry only Token and Done=false. The single
// terminal record carries Done=true plus the model name and the final
// output-token total (present even when zero).
type TokenRecord struct {
	Token       string `json:"token"`
	Done        bool   `json:"done"`
	Model       string `json:"model,omitempty"`
	TotalTokens *int64 `json:"total_tokens,omitempty"`
}

// Terminal reports whether the record ends the stream.
func (r TokenRecord) Terminal() bool { return r.Done }
