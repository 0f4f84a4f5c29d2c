package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

// cpuSampleWindow is how long the stats endpoint samples CPU usage.
const cpuSampleWindow = 200 * time.Millisecond

// health handles GET /api/health.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:        "ok",
		Version:       Version,
		App:           AppName,
		UptimeSeconds: int64(s.store.Uptime().Seconds()),
		Providers:     s.store.ProviderStatuses("anthropic", "google"),
	})
}

// systemStats handles GET /api/system/stats.
func (s *Server) systemStats(w http.ResponseWriter, r *http.Request) {
	percents, err := cpu.PercentWithContext(r.Context(), cpuSampleWindow, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var cpuPercent float64
	if len(percents) > 0 {
		cpuPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	const mb = 1024 * 1024
	writeJSON(w, http.StatusOK, types.SystemStats{
		CPUUsagePercent: cpuPercent,
		MemoryUsedMB:    float64(vm.Used) / mb,
		MemoryTotalMB:   float64(vm.Total) / mb,
		Platform:        runtime.GOOS,
	})
}
