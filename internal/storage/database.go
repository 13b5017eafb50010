package storage

import (
	"github.com/ericogr/trifate-cards/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep schema updated via AutoMigrate; 'make backend-clean' removes the
	// DB file when a reset is needed.
	err = db.AutoMigrate(&game.Match{}, &game.MatchPlayer{}, &game.IntentRecord{}, &game.Profile{})
	if err != nil {
		return nil, err
	}

	// Enforce journal integrity with an explicit UNIQUE index: a match can
	// never hold two intents with the same sequence number, so concurrent
	// appends that race on the cursor fail instead of corrupting replay
	// order.
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_match_intents_seq ON match_intents(match_id, seq);").Error; execErr != nil {
		return nil, execErr
	}
	return db, nil
}
