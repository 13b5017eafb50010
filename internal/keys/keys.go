package keys

import (
	"sort"
	"strings"

	"github.com/ericogr/trifate-cards/internal/game"
)

// DeckKeyFromNames produces a canonical key for a list of card names.
// Behavior: trims names, lower-cases, replaces spaces with underscores,
// sorts the parts and joins with underscore. Suitable for stable DB keys.
func DeckKeyFromNames(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		s := strings.TrimSpace(n)
		if s == "" {
			continue
		}
		s = strings.ToLower(strings.ReplaceAll(s, " ", "_"))
		parts = append(parts, s)
	}
	sort.Strings(parts)
	return strings.Join(parts, "_")
}

// DeckKey fingerprints a deck by its card names. Duplicate names are kept
// so a deck running two copies keys differently from one running a single
// copy.
func DeckKey(deck []game.Card) string {
	names := make([]string, 0, len(deck))
	for _, c := range deck {
		names = append(names, c.Name)
	}
	return DeckKeyFromNames(names)
}
