package storage

import (
	"time"

	"github.com/ericogr/trifate-cards/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
	// lobbyTTL bounds how long a waiting lobby stays open.
	lobbyTTL time.Duration
}

func NewSQLiteRepository(db *gorm.DB, lobbyTTL time.Duration) Repository {
	return &sqliteRepository{db: db, lobbyTTL: lobbyTTL}
}

func (r *sqliteRepository) CreateMatch(m *game.Match) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchByID(id uint) (*game.Match, error) {
	var m game.Match
	if err := r.db.Preload("Players").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) UpdateMatch(m *game.Match) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(m).Error
}

func (r *sqliteRepository) GetPublicMatches() ([]game.Match, error) {
	var matches []game.Match
	cutoff := time.Now().Add(-r.lobbyTTL)
	if err := r.db.Preload("Players").
		Where("private = ? AND status = ? AND created_at > ?", false, game.StatusWaiting, cutoff).
		Order("created_at desc").Find(&matches).Error; err != nil {
		return nil, err
	}
	// Only list lobbies with at least one seated player.
	filtered := make([]game.Match, 0, len(matches))
	for i := range matches {
		if len(matches[i].Players) >= 1 {
			filtered = append(filtered, matches[i])
		}
	}
	return filtered, nil
}

func (r *sqliteRepository) FindMatchByJoinCode(code string) (*game.Match, error) {
	var m game.Match
	err := r.db.Preload("Players").Where("join_code = ?", code).First(&m).Error
	return &m, err
}

func (r *sqliteRepository) RemovePlayerByUUID(matchID uint, peerUUID string) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var p game.MatchPlayer
	if err := tx.Where("match_id = ? AND peer_uuid = ?", matchID, peerUUID).First(&p).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&p).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *sqliteRepository) AppendIntent(matchID uint, peerUUID string, payload []byte) (uint64, error) {
	var seq uint64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var last game.IntentRecord
		err := tx.Where("match_id = ?", matchID).Order("seq desc").First(&last).Error
		switch {
		case err == nil:
			seq = last.Seq + 1
		case err == gorm.ErrRecordNotFound:
			seq = 1
		default:
			return err
		}
		rec := game.IntentRecord{MatchID: matchID, Seq: seq, PeerUUID: peerUUID, Payload: payload}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *sqliteRepository) ListIntentsAfter(matchID uint, after uint64) ([]game.IntentRecord, error) {
	var recs []game.IntentRecord
	if err := r.db.Where("match_id = ? AND seq > ?", matchID, after).
		Order("seq asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) UpsertProfile(email, uuid, name, deckKey string) error {
	p := game.Profile{Email: email, PeerUUID: uuid, PlayerName: name, DeckKey: deckKey}
	assign := []string{"peer_uuid", "player_name"}
	if deckKey != "" {
		assign = append(assign, "deck_key")
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns(assign),
	}).Create(&p).Error
}

func (r *sqliteRepository) UpdateStatsOnMatchEnd(m *game.Match, winnerEmail, resignedEmail string) error {
	// Helper to upsert and add deltas
	upsert := func(email, uuid, name string, played, wins, resigns int) error {
		var ps game.Profile
		if err := r.db.Where("email = ?", email).First(&ps).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				ps = game.Profile{Email: email, PeerUUID: uuid, PlayerName: name}
			} else {
				return err
			}
		}
		ps.PlayerName = name
		ps.PeerUUID = uuid
		ps.GamesPlayed += played
		ps.Wins += wins
		ps.Resignations += resigns
		return r.db.Save(&ps).Error
	}
	if len(m.Players) != 2 {
		return nil
	}
	p1 := m.Players[0]
	p2 := m.Players[1]
	// everyone played one match
	if err := upsert(p1.Email, p1.PeerUUID, p1.PlayerName, 1, 0, 0); err != nil {
		return err
	}
	if err := upsert(p2.Email, p2.PeerUUID, p2.PlayerName, 1, 0, 0); err != nil {
		return err
	}
	// winner
	if winnerEmail != "" {
		if p1.Email == winnerEmail {
			if err := upsert(p1.Email, p1.PeerUUID, p1.PlayerName, 0, 1, 0); err != nil {
				return err
			}
		} else if p2.Email == winnerEmail {
			if err := upsert(p2.Email, p2.PeerUUID, p2.PlayerName, 0, 1, 0); err != nil {
				return err
			}
		}
	}
	// resignation
	if resignedEmail != "" {
		if p1.Email == resignedEmail {
			return upsert(p1.Email, p1.PeerUUID, p1.PlayerName, 0, 0, 1)
		}
		if p2.Email == resignedEmail {
			return upsert(p2.Email, p2.PeerUUID, p2.PlayerName, 0, 0, 1)
		}
	}
	return nil
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.Profile, error) {
	var ps game.Profile
	if err := r.db.Where("email = ?", email).First(&ps).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.Profile{Email: email}, nil
		}
		return nil, err
	}
	return &ps, nil
}

func (r *sqliteRepository) SaveProfile(p *game.Profile) error {
	return r.db.Save(p).Error
}

// GetTopPlayers returns top N players ordered by Wins desc, then GamesPlayed desc
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.Profile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []game.Profile
	if err := r.db.Model(&game.Profile{}).
		Order("wins DESC").
		Order("games_played DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *sqliteRepository) FindStaleLobbies(now time.Time) ([]game.Match, error) {
	var matches []game.Match
	cutoff := now.Add(-r.lobbyTTL)
	if err := r.db.Preload("Players").
		Where("status = ? AND created_at <= ?", game.StatusWaiting, cutoff).
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}
