package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

const (
	messagesPath = "/v1/messages"
	apiVersion   = "2023-06-01"

	// DefaultMaxTokens caps generation when the request does not specify one.
	DefaultMaxTokens = 4096

	// Non-streaming calls get a short budget; streaming generations can run
	// for minutes.
	completeTimeout = 120 * time.Second
	streamTimeout   = 300 * time.Second
)

// Client issues requests against the Anthropic Messages endpoint.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient creates a client for the given base URL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: completeTimeout},
		streamClient: &http.Client{Timeout: streamTimeout},
	}
}

// MessageRequest is a normalized chat request toward the provider.
type MessageRequest struct {
	Model       string
	MaxTokens   int
	Messages    []types.ChatMessage
	Temperature *float64
}

// wireMessage is the messages-array element the provider accepts; the
// inbound ChatMessage extras (model, timestamp) are not forwarded.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireBody struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []wireMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
}

// Complete issues a non-streaming completion and maps the full response body
// into a ChatResponse: all content-block text fragments concatenated in
// order, usage totals taken from the summary field.
func (c *Client) Complete(ctx context.Context, apiKey string, req *MessageRequest) (*types.ChatResponse, error) {
	resp, err := c.send(ctx, c.httpClient, apiKey, req, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectError{Err: fmt.Errorf("read response: %w", err)}
	}
	if !gjson.ValidBytes(body) {
		return nil, &ConnectError{Err: fmt.Errorf("invalid JSON from Anthropic")}
	}

	parsed := gjson.ParseBytes(body)

	var content strings.Builder
	for _, block := range parsed.Get("content").Array() {
		content.WriteString(block.Get("text").String())
	}

	model := parsed.Get("model").String()
	if model == "" {
		model = req.Model
	}

	var usage *types.UsageInfo
	if u := parsed.Get("usage"); u.Exists() {
		in := u.Get("input_tokens").Int()
		out := u.Get("output_tokens").Int()
		usage = &types.UsageInfo{
			PromptTokens:     in,
			CompletionTokens: out,
			TotalTokens:      in + out,
		}
	}

	id := parsed.Get("id").String()
	if id == "" {
		id = "unknown"
	}

	return &types.ChatResponse{
		ID: id,
		Message: types.ChatMessage{
			Role:      "assistant",
			Content:   content.String(),
			Model:     model,
			Timestamp: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		},
		Model: model,
		Usage: usage,
	}, nil
}

// Stream opens a streaming completion and hands the response body to the
// translator. The caller must drain or Close the returned stream.
func (c *Client) Stream(ctx context.Context, apiKey string, req *MessageRequest) (*Stream, error) {
	resp, err := c.send(ctx, c.streamClient, apiKey, req, true)
	if err != nil {
		return nil, err
	}
	return NewStream(resp.Body, req.Model), nil
}

// send issues the request and normalizes transport and status failures. On
// success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, client *http.Client, apiKey string, req *MessageRequest, stream bool) (*http.Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	messages := make([]wireMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, wireMessage{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(wireBody{
		Model:       req.Model,
		MaxTokens:   maxTokens,
		Messages:    messages,
		Temperature: req.Temperature,
		Stream:      stream,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, &ConnectError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Payload: errorPayload(body),
		}
	}

	return resp, nil
}

// errorPayload preserves the upstream error body when it decodes as JSON and
// otherwise wraps the raw text so it stays representable in a JSON response.
func errorPayload(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if gjson.ValidBytes(body) {
		return json.RawMessage(body)
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return json.RawMessage(quoted)
}
