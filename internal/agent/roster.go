// Package agent provides the static roster of ClaudeHydra personas.
package agent

import (
	"fmt"

	"github.com/pawelserkowski-lang/ClaudeHydra-v4/pkg/types"
)

// Tiers, in descending order of capability.
const (
	TierCommander   = "Commander"
	TierCoordinator = "Coordinator"
	TierExecutor    = "Executor"
)

// ModelForTier returns the backing model for a tier.
func ModelForTier(tier string) string {
	switch tier {
	case TierCommander:
		return "claude-opus-4-6"
	case TierCoordinator:
		return "claude-sonnet-4-5-20250929"
	case TierExecutor:
		return "claude-haiku-4-5-20251001"
	default:
		return "claude-sonnet-4-5-20250929"
	}
}

type rosterDef struct {
	name        string
	role        string
	tier        string
	description string
}

var rosterDefs = []rosterDef{
	{"Geralt", "Security", TierCommander, "Master witcher and security specialist - hunts vulnerabilities like monsters"},
	{"Yennefer", "Architecture", TierCommander, "Powerful sorceress of system architecture - designs elegant magical structures"},
	{"Vesemir", "Testing", TierCommander, "Veteran witcher mentor - rigorously tests and validates all operations"},
	{"Triss", "Data", TierCoordinator, "Skilled sorceress of data management - weaves information with precision"},
	{"Jaskier", "Documentation", TierCoordinator, "Legendary bard - chronicles every detail with flair and accuracy"},
	{"Ciri", "Performance", TierCoordinator, "Elder Blood carrier - optimises performance with dimensional speed"},
	{"Dijkstra", "Strategy", TierCoordinator, "Spymaster strategist - plans operations with cunning intelligence"},
	{"Lambert", "DevOps", TierExecutor, "Bold witcher - executes deployments and infrastructure operations"},
	{"Eskel", "Backend", TierExecutor, "Steady witcher - builds and maintains robust backend services"},
	{"Regis", "Research", TierExecutor, "Scholarly higher vampire - researches and analyses with ancient wisdom"},
	{"Zoltan", "Frontend", TierExecutor, "Dwarven warrior - forges powerful and resilient frontend interfaces"},
	{"Philippa", "Monitoring", TierExecutor, "All-seeing sorceress - monitors systems with her magical owl familiar"},
}

// Roster returns the built-in agent roster. The returned slice is a fresh
// copy; callers may not mutate shared state through it.
func Roster() []types.Agent {
	agents := make([]types.Agent, 0, len(rosterDefs))
	for i, def := range rosterDefs {
		agents = append(agents, types.Agent{
			ID:          fmt.Sprintf("agent-%03d", i+1),
			Name:        def.name,
			Role:        def.role,
			Tier:        def.tier,
			Status:      "active",
			Description: def.description,
			Model:       ModelForTier(def.tier),
		})
	}
	return agents
}
