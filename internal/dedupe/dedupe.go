package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent read bursts against the relay database. Using a centralized
// singleflight.Group ensures that only one query runs for a given key
// while other callers wait for the result.

import "golang.org/x/sync/singleflight"

// LeaderboardGroup deduplicates leaderboard queries keyed by the result
// limit (e.g. "top:10"). Lobby screens poll this endpoint aggressively.
var LeaderboardGroup singleflight.Group

// IntentsGroup deduplicates journal reads keyed by match and cursor
// (e.g. "42:17"). Both peers poll the same journal on the same cadence.
var IntentsGroup singleflight.Group
