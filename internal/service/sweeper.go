package service

import (
	"github.com/ericogr/trifate-cards/internal/constants"
	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/logging"
)

// HandleStaleLobby closes a single lobby that never gathered two players
// within the configured TTL. Stale lobbies are finished with no winner
// and never touch player stats.
func HandleStaleLobby(repo interface {
	UpdateMatch(*game.Match) error
}, m *game.Match) error {
	if m.Status != game.StatusWaiting {
		return nil
	}
	m.Status = game.StatusFinished
	m.Message = "Lobby expired before a second player joined"
	m.StatsCounted = true
	if err := repo.UpdateMatch(m); err != nil {
		return err
	}
	logging.Info("stale lobby closed", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldJoinCode: m.JoinCode})
	return nil
}
