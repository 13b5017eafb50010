package api

import (
	"github.com/ericogr/trifate-cards/internal/engine"
	"github.com/ericogr/trifate-cards/internal/storage"
)

// MatchHandler groups all match-related HTTP handlers.
type MatchHandler struct {
	repo           storage.Repository
	archetypes     []engine.Archetype
	defaultWinGoal int
}

// NewMatchHandler creates a new MatchHandler with the given repository,
// configured extra wheel archetypes and default win goal.
func NewMatchHandler(repo storage.Repository, archetypes []engine.Archetype, defaultWinGoal int) *MatchHandler {
	return &MatchHandler{repo: repo, archetypes: archetypes, defaultWinGoal: defaultWinGoal}
}
