package testutil

import (
	"net/http/httptest"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/agent"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/provider"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/server"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/internal/state"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

// TestServer runs the full API surface against a mock upstream.
type TestServer struct {
	http     *httptest.Server
	srv      *server.Server
	upstream *MockAnthropicServer
}

// StartTestServer starts a server wired to a fresh mock upstream. credentials
// may be nil for a server without configured providers.
func StartTestServer(credentials map[string]string) *TestServer {
	upstream := NewMockAnthropicServer()

	store := state.New(types.Settings{
		Theme:        "dark",
		Language:     "en",
		DefaultModel: "claude-sonnet-4-5-20250929",
	}, credentials, agent.Roster())

	srv := server.New(server.DefaultConfig(), store, provider.NewClient(upstream.URL()))

	return &TestServer{
		http:     httptest.NewServer(srv.Router()),
		srv:      srv,
		upstream: upstream,
	}
}

// URL returns the API base URL.
func (ts *TestServer) URL() string {
	return ts.http.URL
}

// Upstream returns the mock Anthropic server backing this instance.
func (ts *TestServer) Upstream() *MockAnthropicServer {
	return ts.upstream
}

// Client returns a TestClient bound to this server.
func (ts *TestServer) Client() *TestClient {
	return NewTestClient(ts.http.URL)
}

// Stop shuts down the server and its mock upstream.
func (ts *TestServer) Stop() {
	ts.http.Close()
	ts.upstream.Close()
}
