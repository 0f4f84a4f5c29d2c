package types

// Settings is the single process-wide settings record. Updates replace the
// whole value; there is no partial-field merge.
type Settings struct {
	Theme        string `json:"theme"`
	Language     string `json:"language"`
	DefaultModel string `json:"default_model"`
	AutoStart    bool   `json:"auto_start"`
}

// APIKeyRequest sets or overwrites the credential for a provider. The key is
// never echoed back.
type APIKeyRequest struct {
	Provider string `json:"provider"`
	Key      string `json:"key"`
}
