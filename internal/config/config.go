package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ericogr/trifate-cards/internal/engine"
	"github.com/ericogr/trifate-cards/internal/game"
)

type archetypeEntry struct {
	ID      string `json:"id"`
	Lengths []int  `json:"lengths"`
}

type rawConfig struct {
	ArchetypeList []archetypeEntry `json:"archetype_list"`
	Server        *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Default win goal for matches created without an explicit goal.
	WinGoal int `json:"win_goal"`
	// TTL in seconds for public lobbies that never gathered two players.
	// Stale lobbies are swept by a background scanner.
	LobbyTTLSeconds int `json:"lobby_ttl_seconds"`
}

// LoadedConfig contains extra wheel archetypes and relay settings.
type LoadedConfig struct {
	Archetypes    []engine.Archetype
	ServerAddress string
	WinGoal       int
	LobbyTTL      time.Duration
}

// LoadConfig reads the configuration file at path. The file is optional
// extension material: every key may be omitted, but entries in
// `archetype_list` must be valid wheel layouts.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := make([]engine.Archetype, 0, len(rc.ArchetypeList))
	idSet := make(map[string]struct{}, len(rc.ArchetypeList))
	for _, a := range rc.ArchetypeList {
		id := strings.TrimSpace(a.ID)
		if id == "" {
			return nil, fmt.Errorf("config file %s: archetype entry missing 'id'", path)
		}
		if _, exists := idSet[id]; exists {
			return nil, fmt.Errorf("config file %s: duplicate archetype id '%s'", path, id)
		}
		idSet[id] = struct{}{}
		arch := engine.Archetype{ID: id, Lengths: a.Lengths}
		if !engine.ValidateArchetype(arch) {
			return nil, fmt.Errorf("config file %s: archetype '%s' must list %d section lengths of at least 1 summing to %d", path, id, len(game.SectionKinds), game.WheelSlices-1)
		}
		out = append(out, arch)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	winGoal := rc.WinGoal
	if winGoal < 0 {
		return nil, fmt.Errorf("config file %s: win_goal must not be negative", path)
	}
	if winGoal == 0 {
		winGoal = 5
	}

	lobbyTTL := 30 * time.Minute
	if rc.LobbyTTLSeconds > 0 {
		lobbyTTL = time.Duration(rc.LobbyTTLSeconds) * time.Second
	}

	return &LoadedConfig{
		Archetypes:    out,
		ServerAddress: addr,
		WinGoal:       winGoal,
		LobbyTTL:      lobbyTTL,
	}, nil
}
