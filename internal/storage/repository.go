package storage

import (
	"time"

	"github.com/ericogr/trifate-cards/internal/game"
)

type Repository interface {
	GetPublicMatches() ([]game.Match, error)
	CreateMatch(m *game.Match) error
	GetMatchByID(id uint) (*game.Match, error)
	FindMatchByJoinCode(code string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	RemovePlayerByUUID(matchID uint, peerUUID string) error

	// Intent journal. AppendIntent assigns the next per-match sequence
	// number atomically and returns it; ListIntentsAfter returns journaled
	// intents with Seq strictly greater than `after`, in Seq order.
	AppendIntent(matchID uint, peerUUID string, payload []byte) (uint64, error)
	ListIntentsAfter(matchID uint, after uint64) ([]game.IntentRecord, error)

	UpsertProfile(email, uuid, name, deckKey string) error
	UpdateStatsOnMatchEnd(m *game.Match, winnerEmail, resignedEmail string) error
	GetStatsByEmail(email string) (*game.Profile, error)
	SaveProfile(p *game.Profile) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.Profile, error)
	// FindStaleLobbies returns matches still waiting for players whose
	// lobby has been open longer than the configured TTL at the provided
	// time. The caller decides how to resolve them (for example, marking
	// them finished so they drop off the public list).
	FindStaleLobbies(now time.Time) ([]game.Match, error)
}
