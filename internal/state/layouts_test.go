package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slahq/sla/internal/core"
)

func TestLayouts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetLayout(ctx, "user_a", "dashboard.v1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	blob := []byte(`[{"key":"spend_summary","visible":true}]`)
	require.NoError(t, store.SetLayout(ctx, "user_a", "dashboard.v1", blob))

	got, err := store.GetLayout(ctx, "user_a", "dashboard.v1")
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	// Last write wins.
	updated := []byte(`[{"key":"spend_summary","visible":false}]`)
	require.NoError(t, store.SetLayout(ctx, "user_a", "dashboard.v1", updated))

	got, err = store.GetLayout(ctx, "user_a", "dashboard.v1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	// Blobs are per-owner.
	_, err = store.GetLayout(ctx, "user_b", "dashboard.v1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
