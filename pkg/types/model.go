package types

// ModelInfo describes one entry of the static model catalog.
type ModelInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Tier      string `json:"tier"`
	Provider  string `json:"provider"`
	Available bool   `json:"available"`
}
