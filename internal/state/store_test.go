package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

func newTestStore() *Store {
	return New(
		types.Settings{Theme: "dark", Language: "en", DefaultModel: "claude-sonnet-4-5-20250929"},
		map[string]string{"anthropic": "sk-test"},
		[]types.Agent{{ID: "agent-001", Name: "Geralt"}},
	)
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore()

	created := s.CreateSession("first")
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.CreatedAt)

	got, ok := s.GetSession(created.ID)
	require.True(t, ok)
	assert.Equal(t, "first", got.Title)
	assert.Empty(t, got.Messages)

	current, ok := s.CurrentSessionID()
	require.True(t, ok)
	assert.Equal(t, created.ID, current)
}

func TestGetSessionNotFound(t *testing.T) {
	s := newTestStore()

	_, ok := s.GetSession("missing")
	assert.False(t, ok)
}

func TestSessionIDsUnique(t *testing.T) {
	s := newTestStore()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		sess := s.CreateSession("s")
		assert.False(t, seen[sess.ID], "duplicate id %s", sess.ID)
		seen[sess.ID] = true
	}
}

func TestListSessionsOrder(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 5; i++ {
		s.CreateSession(fmt.Sprintf("session-%d", i))
	}

	summaries := s.ListSessions()
	require.Len(t, summaries, 5)
	for i, summary := range summaries {
		assert.Equal(t, fmt.Sprintf("session-%d", i), summary.Title)
		assert.Zero(t, summary.MessageCount)
	}
}

func TestDeleteSessionClearsCurrentPointer(t *testing.T) {
	s := newTestStore()

	first := s.CreateSession("first")
	second := s.CreateSession("second")

	// second is current; deleting first leaves the pointer alone.
	require.True(t, s.DeleteSession(first.ID))
	current, ok := s.CurrentSessionID()
	require.True(t, ok)
	assert.Equal(t, second.ID, current)

	// Deleting the current session clears the pointer.
	require.True(t, s.DeleteSession(second.ID))
	_, ok = s.CurrentSessionID()
	assert.False(t, ok)
}

func TestDeleteSessionNotFound(t *testing.T) {
	s := newTestStore()
	s.CreateSession("keep")

	assert.False(t, s.DeleteSession("missing"))
	assert.Len(t, s.ListSessions(), 1)
}

func TestAppendMessage(t *testing.T) {
	s := newTestStore()
	sess := s.CreateSession("chat")

	entry, ok := s.AppendMessage(sess.ID, types.AppendMessageRequest{
		Role:    "user",
		Content: "hello",
		Agent:   "Geralt",
	})
	require.True(t, ok)
	assert.NotEmpty(t, entry.ID)
	assert.NotEmpty(t, entry.Timestamp)
	assert.Equal(t, "user", entry.Role)

	got, ok := s.GetSession(sess.ID)
	require.True(t, ok)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, entry, got.Messages[0])
}

func TestAppendMessageOrderPreserved(t *testing.T) {
	s := newTestStore()
	sess := s.CreateSession("chat")

	for i := 0; i < 10; i++ {
		_, ok := s.AppendMessage(sess.ID, types.AppendMessageRequest{
			Role:    "user",
			Content: fmt.Sprintf("msg-%d", i),
		})
		require.True(t, ok)
	}

	got, _ := s.GetSession(sess.ID)
	require.Len(t, got.Messages, 10)
	for i, entry := range got.Messages {
		assert.Equal(t, fmt.Sprintf("msg-%d", i), entry.Content)
	}
}

func TestAppendMessageUnknownSession(t *testing.T) {
	s := newTestStore()
	sess := s.CreateSession("gone")
	require.True(t, s.DeleteSession(sess.ID))

	_, ok := s.AppendMessage(sess.ID, types.AppendMessageRequest{Role: "user", Content: "x"})
	assert.False(t, ok)
}

func TestGetSessionReturnsCopy(t *testing.T) {
	s := newTestStore()
	sess := s.CreateSession("chat")
	s.AppendMessage(sess.ID, types.AppendMessageRequest{Role: "user", Content: "original"})

	got, _ := s.GetSession(sess.ID)
	got.Messages[0].Content = "mutated"

	again, _ := s.GetSession(sess.ID)
	assert.Equal(t, "original", again.Messages[0].Content)
}

func TestReplaceSettingsWholesale(t *testing.T) {
	s := newTestStore()

	s.ReplaceSettings(types.Settings{Theme: "light"})

	got := s.Settings()
	assert.Equal(t, "light", got.Theme)
	// Wholesale replace: untouched fields of the new value win, even zero.
	assert.Empty(t, got.Language)
	assert.Empty(t, got.DefaultModel)
}

func TestCredentials(t *testing.T) {
	s := newTestStore()

	key, ok := s.Credential("anthropic")
	require.True(t, ok)
	assert.Equal(t, "sk-test", key)

	_, ok = s.Credential("google")
	assert.False(t, ok)

	s.SetCredential("google", "g-key")
	assert.True(t, s.HasCredential("google"))

	s.SetCredential("anthropic", "sk-new")
	key, _ = s.Credential("anthropic")
	assert.Equal(t, "sk-new", key)
}

func TestProviderStatuses(t *testing.T) {
	s := newTestStore()

	statuses := s.ProviderStatuses("anthropic", "google")
	require.Len(t, statuses, 2)
	assert.Equal(t, types.ProviderStatus{Name: "anthropic", Available: true}, statuses[0])
	assert.Equal(t, types.ProviderStatus{Name: "google", Available: false}, statuses[1])
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess := s.CreateSession(fmt.Sprintf("c-%d", i))
			s.AppendMessage(sess.ID, types.AppendMessageRequest{Role: "user", Content: "hi"})
			s.ListSessions()
			s.ReplaceSettings(types.Settings{Theme: "light"})
			s.Settings()
			s.SetCredential("anthropic", "sk")
			s.Credential("anthropic")
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.ListSessions(), 50)
	assert.Equal(t, "light", s.Settings().Theme)
}
