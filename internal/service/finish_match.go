package service

import (
	"errors"

	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/storage"
)

var (
	ErrOutcomeAlreadyCounted = errors.New("match outcome already counted")
	ErrNotAParticipant       = errors.New("reported player is not part of this match")
)

// FinishMatch records a reported outcome and updates player stats once.
// winnerEmail may be empty for a drawn or abandoned match; resignedEmail
// may be empty when nobody resigned. Both peers report the same outcome,
// so the first report wins and the second gets ErrOutcomeAlreadyCounted.
func FinishMatch(repo storage.Repository, m *game.Match, winnerEmail, resignedEmail string) error {
	if m.StatsCounted {
		return ErrOutcomeAlreadyCounted
	}
	if winnerEmail != "" && !hasEmail(m, winnerEmail) {
		return ErrNotAParticipant
	}
	if resignedEmail != "" && !hasEmail(m, resignedEmail) {
		return ErrNotAParticipant
	}

	m.Status = game.StatusFinished
	m.Winner = winnerName(m, winnerEmail)
	switch {
	case resignedEmail != "":
		m.Message = "Match ended by resignation"
	case m.Winner != "":
		m.Message = m.Winner + " won the match"
	default:
		m.Message = "Match ended"
	}

	if err := repo.UpdateStatsOnMatchEnd(m, winnerEmail, resignedEmail); err != nil {
		return err
	}
	m.StatsCounted = true
	return repo.UpdateMatch(m)
}

func hasEmail(m *game.Match, email string) bool {
	for i := range m.Players {
		if m.Players[i].Email == email {
			return true
		}
	}
	return false
}

func winnerName(m *game.Match, winnerEmail string) string {
	for i := range m.Players {
		if winnerEmail != "" && m.Players[i].Email == winnerEmail {
			return m.Players[i].PlayerName
		}
	}
	return ""
}
