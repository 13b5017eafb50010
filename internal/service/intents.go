package service

import (
	"errors"
	"strconv"

	"github.com/ericogr/trifate-cards/internal/dedupe"
	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/storage"
)

var (
	ErrMatchNotInProgress = errors.New("match is not in progress")
	ErrPeerNotInMatch     = errors.New("peer is not seated in this match")
	ErrPayloadTooLarge    = errors.New("intent payload too large")
)

// maxIntentPayload bounds journaled intents. Real intents are tiny JSON
// objects; anything bigger is a misbehaving client.
const maxIntentPayload = 8 * 1024

// AppendIntent journals one opaque intent payload for a running match.
// The relay stores and forwards; it never inspects the payload beyond
// its size.
func AppendIntent(repo storage.Repository, m *game.Match, peerUUID string, payload []byte) (uint64, error) {
	if m.Status != game.StatusInProgress {
		return 0, ErrMatchNotInProgress
	}
	if !hasPeer(m, peerUUID) {
		return 0, ErrPeerNotInMatch
	}
	if len(payload) > maxIntentPayload {
		return 0, ErrPayloadTooLarge
	}
	return repo.AppendIntent(m.ID, peerUUID, payload)
}

// ListIntents returns journaled intents after the given cursor. Both
// peers poll the same journal on the same cadence, so concurrent reads
// for the same cursor collapse into a single query.
func ListIntents(repo storage.Repository, matchID uint, after uint64) ([]game.IntentRecord, error) {
	key := strconv.FormatUint(uint64(matchID), 10) + ":" + strconv.FormatUint(after, 10)
	v, err, _ := dedupe.IntentsGroup.Do(key, func() (interface{}, error) {
		return repo.ListIntentsAfter(matchID, after)
	})
	if err != nil {
		return nil, err
	}
	return v.([]game.IntentRecord), nil
}

func hasPeer(m *game.Match, peerUUID string) bool {
	for i := range m.Players {
		if m.Players[i].PeerUUID == peerUUID {
			return true
		}
	}
	return false
}
