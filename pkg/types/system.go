package types

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status        string           `json:"status"`
	Version       string           `json:"version"`
	App           string           `json:"app"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	Providers     []ProviderStatus `json:"providers"`
}

// ProviderStatus reports whether a provider has a credential configured. It
// never carries the credential itself.
type ProviderStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// SystemStats is a point-in-time host telemetry sample.
type SystemStats struct {
	CPUUsagePercent float64 `json:"cpu_usage_percent"`
	MemoryUsedMB    float64 `json:"memory_used_mb"`
	MemoryTotalMB   float64 `json:"memory_total_mb"`
	Platform        string  `json:"platform"`
}
