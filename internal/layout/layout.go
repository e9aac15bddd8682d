// Package layout persists per-user dashboard layouts as one JSON blob
// under a fixed versioned key. Loading never fails: missing,
// inaccessible, or corrupt data silently falls back to the default
// card list so the dashboard always renders.
package layout

import (
	"context"
	"encoding/json"

	"github.com/slahq/sla/internal/core"
)

// Key is the versioned storage key for dashboard layouts. Bump the
// suffix when the card list format changes incompatibly.
const Key = "sla.dashboard.layout.v1"

// Storage is the injected persistence backend. The SQL store satisfies
// it; tests use an in-memory map or a failing stub.
type Storage interface {
	GetLayout(ctx context.Context, ownerID, key string) ([]byte, error)
	SetLayout(ctx context.Context, ownerID, key string, blob []byte) error
}

// Default returns the default layout: every known card visible, in
// default order, medium sized.
func Default() []core.CardConfig {
	cards := make([]core.CardConfig, len(core.KnownCardKeys))
	for i, key := range core.KnownCardKeys {
		cards[i] = core.CardConfig{Key: key, Visible: true, Size: core.CardSizeMedium}
	}
	return cards
}

// Load reads the owner's layout. Unknown card keys are dropped, cards
// missing from the persisted list are appended visible, and any
// storage or parse failure yields the default list.
func Load(ctx context.Context, st Storage, ownerID string) []core.CardConfig {
	blob, err := st.GetLayout(ctx, ownerID, Key)
	if err != nil {
		return Default()
	}

	var cards []core.CardConfig
	if err := json.Unmarshal(blob, &cards); err != nil {
		return Default()
	}

	return normalize(cards)
}

// Save persists exactly the given card list under the versioned key.
// Unknown keys are dropped before writing so a stale client cannot
// poison the stored list.
func Save(ctx context.Context, st Storage, ownerID string, cards []core.CardConfig) error {
	blob, err := json.Marshal(normalize(cards))
	if err != nil {
		return err
	}
	return st.SetLayout(ctx, ownerID, Key, blob)
}

// normalize makes the list a total function over the known card keys:
// unknown entries are dropped, duplicates keep their first occurrence,
// and missing cards are appended visible.
func normalize(cards []core.CardConfig) []core.CardConfig {
	seen := make(map[core.CardKey]bool, len(core.KnownCardKeys))
	result := make([]core.CardConfig, 0, len(core.KnownCardKeys))

	for _, c := range cards {
		if !c.Key.Valid() || seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		result = append(result, c)
	}

	for _, key := range core.KnownCardKeys {
		if !seen[key] {
			result = append(result, core.CardConfig{Key: key, Visible: true, Size: core.CardSizeMedium})
		}
	}

	return result
}
