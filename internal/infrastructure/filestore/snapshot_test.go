package filestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-console/internal/domain"
)

func TestSnapshotStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)

	type payload struct {
		Items []string `json:"items"`
		Count int      `json:"count"`
	}
	in := payload{Items: []string{"a", "b"}, Count: 2}
	require.NoError(t, store.Save(context.Background(), "asset-storage", in))

	var out payload
	require.NoError(t, store.Load(context.Background(), "asset-storage", &out))
	assert.Equal(t, in, out)
}

func TestSnapshotStore_LoadMissingKey(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)

	var out map[string]any
	err = store.Load(context.Background(), "never-saved", &out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotStore_SaveReplacesPriorSnapshot(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "role-storage", map[string]int{"v": 1}))
	require.NoError(t, store.Save(context.Background(), "role-storage", map[string]int{"v": 2}))

	var out map[string]int
	require.NoError(t, store.Load(context.Background(), "role-storage", &out))
	assert.Equal(t, 2, out["v"])
}
