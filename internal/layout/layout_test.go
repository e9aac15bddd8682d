package layout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slahq/sla/internal/core"
)

// memStorage is an in-memory Storage backend.
type memStorage struct {
	blobs map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: make(map[string][]byte)}
}

func (m *memStorage) GetLayout(_ context.Context, ownerID, key string) ([]byte, error) {
	blob, ok := m.blobs[ownerID+"/"+key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return blob, nil
}

func (m *memStorage) SetLayout(_ context.Context, ownerID, key string, blob []byte) error {
	m.blobs[ownerID+"/"+key] = blob
	return nil
}

// failingStorage always errors.
type failingStorage struct{}

func (failingStorage) GetLayout(context.Context, string, string) ([]byte, error) {
	return nil, errors.New("storage down")
}

func (failingStorage) SetLayout(context.Context, string, string, []byte) error {
	return errors.New("storage down")
}

func TestLoad_MissingReturnsDefault(t *testing.T) {
	cards := Load(context.Background(), newMemStorage(), "user_a")

	assert.Equal(t, Default(), cards)
	assert.Len(t, cards, len(core.KnownCardKeys))
	for _, c := range cards {
		assert.True(t, c.Visible)
	}
}

func TestLoad_StorageFailureReturnsDefault(t *testing.T) {
	cards := Load(context.Background(), failingStorage{}, "user_a")
	assert.Equal(t, Default(), cards)
}

func TestLoad_CorruptJSONReturnsDefault(t *testing.T) {
	st := newMemStorage()
	st.blobs["user_a/"+Key] = []byte(`{not json!`)

	cards := Load(context.Background(), st, "user_a")
	assert.Equal(t, Default(), cards)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	st := newMemStorage()
	ctx := context.Background()

	edited := Default()
	edited[0].Visible = false
	edited[1].Size = core.CardSizeLarge
	edited[2].Metric = "on_time_rate"

	require.NoError(t, Save(ctx, st, "user_a", edited))
	assert.Equal(t, edited, Load(ctx, st, "user_a"))
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	st := newMemStorage()
	ctx := context.Background()

	blob := []byte(`[
		{"key":"spend_summary","visible":false},
		{"key":"vintage_widget","visible":true}
	]`)
	require.NoError(t, st.SetLayout(ctx, "user_a", Key, blob))

	cards := Load(ctx, st, "user_a")

	assert.Len(t, cards, len(core.KnownCardKeys))
	assert.Equal(t, core.CardSpendSummary, cards[0].Key)
	assert.False(t, cards[0].Visible)
	for _, c := range cards {
		assert.NotEqual(t, core.CardKey("vintage_widget"), c.Key)
	}
}

func TestLoad_MissingKeysDefaultVisible(t *testing.T) {
	st := newMemStorage()
	ctx := context.Background()

	blob := []byte(`[{"key":"cost_trend","visible":false}]`)
	require.NoError(t, st.SetLayout(ctx, "user_a", Key, blob))

	cards := Load(ctx, st, "user_a")

	require.Len(t, cards, len(core.KnownCardKeys))
	assert.Equal(t, core.CardCostTrend, cards[0].Key)
	assert.False(t, cards[0].Visible)
	for _, c := range cards[1:] {
		assert.True(t, c.Visible, "card %s should default to visible", c.Key)
	}
}

func TestSave_DropsUnknownKeys(t *testing.T) {
	st := newMemStorage()
	ctx := context.Background()

	cards := append(Default(), core.CardConfig{Key: "bogus", Visible: true})
	require.NoError(t, Save(ctx, st, "user_a", cards))

	assert.Equal(t, Default(), Load(ctx, st, "user_a"))
}

func TestSave_StorageFailurePropagates(t *testing.T) {
	err := Save(context.Background(), failingStorage{}, "user_a", Default())
	assert.Error(t, err)
}
