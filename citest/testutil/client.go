package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

// TestClient is a thin HTTP client for exercising the API in tests.
type TestClient struct {
	baseURL string
	http    *http.Client
}

// NewTestClient creates a client for the given base URL.
func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Get issues a GET and decodes the JSON response into out.
func (c *TestClient) Get(path string, out any) (int, error) {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeInto(resp.Body, out)
}

// Post issues a POST with a JSON body and decodes the JSON response into out.
func (c *TestClient) Post(path string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeInto(resp.Body, out)
}

// Delete issues a DELETE and decodes the JSON response into out.
func (c *TestClient) Delete(path string, out any) (int, error) {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeInto(resp.Body, out)
}

// StreamChat posts a streaming chat request and collects every NDJSON token
// record until the response ends.
func (c *TestClient) StreamChat(body any) (int, []types.TokenRecord, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.http.Post(c.baseURL+"/api/claude/chat/stream", "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, nil, fmt.Errorf("stream rejected: %s", raw)
	}

	var records []types.TokenRecord
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec types.TokenRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return resp.StatusCode, records, fmt.Errorf("bad record %q: %w", line, err)
		}
		records = append(records, rec)
	}
	return resp.StatusCode, records, scanner.Err()
}

func decodeInto(r io.Reader, out any) error {
	if out == nil {
		_, err := io.Copy(io.Discard, r)
		return err
	}
	return json.NewDecoder(r).Decode(out)
}
