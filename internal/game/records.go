package game

import "gorm.io/gorm"

// Match is the relay-side record of a duel lobby. The relay stores and
// forwards intents; it never arbitrates game state, so the only duel data
// it keeps is what the lobby UI needs plus the shared RNG seed both peers
// derive their wheel layouts from.
type Match struct {
	gorm.Model
	Name      string `json:"name" gorm:"size:32"`
	Private   bool   `json:"private"`
	JoinCode  string `json:"join_code" gorm:"unique"`
	Seed      int64  `json:"seed"`
	WinGoal   int    `json:"win_goal"`
	AnteMode  bool   `json:"ante_mode"`
	SkillMode bool   `json:"skill_mode"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Winner    string `json:"winner"`
	// StatsCounted guards profile stats against double counting when both
	// peers report the same outcome.
	StatsCounted bool          `json:"-"`
	Players      []MatchPlayer `json:"players"`
}

// MatchPlayer is one seat in a relay match.
type MatchPlayer struct {
	gorm.Model
	MatchID    uint   `json:"-"`
	PeerUUID   string `json:"peer_uuid"`
	PlayerName string `json:"player_name"`
	Email      string `json:"-"`
	Side       Side   `json:"side"`
}

func (MatchPlayer) TableName() string { return "match_players" }

// IntentRecord is one journaled intent for a match. Peers poll the
// journal with a cursor; Seq is the per-match cursor value.
type IntentRecord struct {
	gorm.Model
	MatchID  uint   `json:"-" gorm:"index:idx_match_seq,priority:1"`
	Seq      uint64 `json:"seq" gorm:"index:idx_match_seq,priority:2"`
	PeerUUID string `json:"peer_uuid"`
	Payload  []byte `json:"payload" gorm:"type:blob"`
}

func (IntentRecord) TableName() string { return "match_intents" }

// Profile stores a unique player identity and aggregate stats.
type Profile struct {
	gorm.Model
	PeerUUID     string `gorm:"index"`
	PlayerName   string
	Email        string `gorm:"uniqueIndex"`
	GamesPlayed  int
	Wins         int
	Resignations int
	// DeckKey is the canonical fingerprint of the last deck the player
	// brought to a match, used to group leaderboard stats.
	DeckKey string `gorm:"index"`
}

func (Profile) TableName() string { return "player_profiles" }
