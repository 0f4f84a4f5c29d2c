package server_test

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

var _ = Describe("Endpoints", func() {
	Describe("GET /api/health", func() {
		It("reports identity, uptime, and provider availability", func() {
			var health types.HealthResponse
			status, err := client.Get("/api/health", &health)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))

			Expect(health.Status).To(Equal("ok"))
			Expect(health.App).To(Equal("ClaudeHydra"))
			Expect(health.Version).To(Equal("4.0.0"))
			Expect(health.UptimeSeconds).To(BeNumerically(">=", 0))
			Expect(health.Providers).To(ContainElement(types.ProviderStatus{Name: "anthropic", Available: true}))
		})
	})

	Describe("GET /api/agents", func() {
		It("returns the full static roster", func() {
			var agents []types.Agent
			status, err := client.Get("/api/agents", &agents)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))
			Expect(agents).To(HaveLen(12))
			for _, a := range agents {
				Expect(a.Status).To(Equal("active"))
				Expect(a.Model).NotTo(BeEmpty())
			}
		})
	})

	Describe("GET /api/claude/models", func() {
		It("returns the static catalog", func() {
			var models []types.ModelInfo
			status, err := client.Get("/api/claude/models", &models)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))
			Expect(models).To(HaveLen(3))
		})
	})

	Describe("Sessions", func() {
		It("supports the full lifecycle", func() {
			var created types.Session
			status, err := client.Post("/api/sessions", types.CreateSessionRequest{Title: "suite session"}, &created)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusCreated))
			Expect(created.ID).NotTo(BeEmpty())

			var entry types.HistoryEntry
			status, err = client.Post("/api/sessions/"+created.ID+"/messages", types.AppendMessageRequest{
				Role:    "user",
				Content: "hello",
			}, &entry)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusCreated))
			Expect(entry.Timestamp).NotTo(BeEmpty())

			var fetched types.Session
			status, err = client.Get("/api/sessions/"+created.ID, &fetched)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))
			Expect(fetched.Messages).To(HaveLen(1))

			var deleted map[string]string
			status, err = client.Delete("/api/sessions/"+created.ID, &deleted)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))
			Expect(deleted["status"]).To(Equal("deleted"))
			Expect(deleted["id"]).To(Equal(created.ID))

			var body map[string]any
			status, _ = client.Get("/api/sessions/"+created.ID, &body)
			Expect(status).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Settings", func() {
		It("replaces settings wholesale and never echoes API keys", func() {
			var updated types.Settings
			status, err := client.Post("/api/settings", types.Settings{
				Theme:        "light",
				Language:     "pl",
				DefaultModel: "claude-sonnet-4-5-20250929",
			}, &updated)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))
			Expect(updated.Theme).To(Equal("light"))

			var keyResp map[string]string
			status, err = client.Post("/api/settings/api-key", types.APIKeyRequest{
				Provider: "google",
				Key:      "sk-google-secret",
			}, &keyResp)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))
			Expect(keyResp).To(Equal(map[string]string{
				"status":   "configured",
				"provider": "google",
			}))
		})
	})
})
