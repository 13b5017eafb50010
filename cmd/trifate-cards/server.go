package main

import (
	"time"

	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/logging"
	"github.com/ericogr/trifate-cards/internal/service"
)

// startLobbySweeper periodically closes lobbies that never gathered two
// players, delegating handling to service.HandleStaleLobby.
func startLobbySweeper(repo interface {
	FindStaleLobbies(time.Time) ([]game.Match, error)
	UpdateMatch(*game.Match) error
}) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			stale, err := repo.FindStaleLobbies(time.Now())
			if err != nil {
				logging.Error("lobby sweeper failed to list matches", err, nil)
				continue
			}
			for i := range stale {
				if err := service.HandleStaleLobby(repo, &stale[i]); err != nil {
					logging.Error("failed to close stale lobby", err, nil)
				}
			}
		}
	}()
}
