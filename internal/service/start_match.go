package service

import (
	"errors"

	"github.com/ericogr/trifate-cards/internal/constants"
	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/logging"
	"github.com/ericogr/trifate-cards/internal/storage"
)

var (
	ErrNotEnoughPlayers    = errors.New("two seated players are required to start")
	ErrMatchAlreadyStarted = errors.New("match already started")
)

// StartMatch performs all relay-side initialization when starting a match.
// It assigns sides to the two seated peers and flips the match in
// progress. The relay never arbitrates duel state: both peers derive
// everything else from the recorded seed and the intent journal.
func StartMatch(repo storage.Repository, m *game.Match) error {
	if len(m.Players) != 2 {
		return ErrNotEnoughPlayers
	}
	if m.Status != game.StatusWaiting {
		return ErrMatchAlreadyStarted
	}

	// The creator seats first and hosts; the joiner takes the guest side.
	m.Players[0].Side = game.SideHost
	m.Players[1].Side = game.SideGuest

	m.Status = game.StatusInProgress
	m.Message = "The match has started. Commit your cards."

	if err := repo.UpdateMatch(m); err != nil {
		return err
	}
	logging.Info("match started", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldJoinCode: m.JoinCode})
	return nil
}
