package server_test

import (
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/citest/testutil"
	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

var _ = Describe("Chat", func() {
	chatRequest := func() types.ChatRequest {
		return types.ChatRequest{
			Messages: []types.ChatMessage{{Role: "user", Content: "Say hello"}},
		}
	}

	Describe("POST /api/claude/chat", func() {
		It("returns a completed response with usage", func() {
			var resp types.ChatResponse
			status, err := client.Post("/api/claude/chat", chatRequest(), &resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))

			Expect(resp.ID).To(Equal("msg_mock_001"))
			Expect(resp.Message.Role).To(Equal("assistant"))
			Expect(resp.Message.Content).To(Equal("Hello from the mock upstream"))
			Expect(resp.Usage).NotTo(BeNil())
			Expect(resp.Usage.TotalTokens).To(BeNumerically(">", 0))
		})

		It("forwards the configured API key and default model upstream", func() {
			var resp types.ChatResponse
			_, err := client.Post("/api/claude/chat", chatRequest(), &resp)
			Expect(err).NotTo(HaveOccurred())

			requests := testServer.Upstream().Requests()
			Expect(requests).To(HaveLen(1))
			Expect(requests[0].Headers.Get("x-api-key")).To(Equal("sk-mock-key"))
			Expect(requests[0].Headers.Get("anthropic-version")).To(Equal("2023-06-01"))
			Expect(requests[0].Body["model"]).To(Equal("claude-sonnet-4-5-20250929"))
		})

		It("relays upstream rejections with their original status", func() {
			testServer.Upstream().FailStatus = http.StatusTooManyRequests
			testServer.Upstream().FailBody = `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`

			var body map[string]any
			status, err := client.Post("/api/claude/chat", chatRequest(), &body)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusTooManyRequests))
			Expect(body).To(HaveKey("error"))
		})

		It("rejects empty message lists", func() {
			var body map[string]any
			status, err := client.Post("/api/claude/chat", types.ChatRequest{}, &body)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/claude/chat/stream", func() {
		It("streams token records ending with a terminal record", func() {
			status, records, err := client.StreamChat(chatRequest())
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))
			Expect(len(records)).To(BeNumerically(">", 1))

			var text strings.Builder
			for _, rec := range records[:len(records)-1] {
				Expect(rec.Done).To(BeFalse())
				text.WriteString(rec.Token)
			}
			Expect(text.String()).To(Equal("Hello from the mock upstream"))

			terminal := records[len(records)-1]
			Expect(terminal.Done).To(BeTrue())
			Expect(terminal.Token).To(BeEmpty())
			Expect(terminal.Model).To(Equal("claude-sonnet-4-5-20250929"))
			Expect(terminal.TotalTokens).NotTo(BeNil())
			Expect(*terminal.TotalTokens).To(BeNumerically(">", 0))
		})

		It("requests streaming mode upstream", func() {
			_, _, err := client.StreamChat(chatRequest())
			Expect(err).NotTo(HaveOccurred())

			requests := testServer.Upstream().Requests()
			Expect(requests).To(HaveLen(1))
			Expect(requests[0].Body["stream"]).To(Equal(true))
		})

		It("fails before contacting upstream when no key is configured", func() {
			bare := testutil.StartTestServer(nil)
			defer bare.Stop()

			status, _, err := bare.Client().StreamChat(chatRequest())
			Expect(err).To(HaveOccurred())
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(bare.Upstream().Requests()).To(BeEmpty())
		})
	})
})
