package types

// Agent is one persona from the static roster. The roster is read-only after
// process start.
type Agent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Tier        string `json:"tier"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Model       string `json:"model"`
}
