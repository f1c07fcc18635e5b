package chat

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*SessionStore, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	return NewSessionStore(fs, "state", zap.NewNop()), fs
}

func TestGetOrCreateGeneratesAndPersists(t *testing.T) {
	store, fs := newTestStore(t)

	id := store.GetOrCreate()
	require.NotEmpty(t, id)
	require.Equal(t, id, store.GetOrCreate(), "second call must return the same id")

	data, err := afero.ReadFile(fs, "state/session")
	require.NoError(t, err)
	require.Contains(t, string(data), id)

	// A fresh store over the same storage sees the same id.
	other := NewSessionStore(fs, "state", zap.NewNop())
	require.Equal(t, id, other.GetOrCreate())
}

func TestAdoptOverwritesOnlyWhenDifferent(t *testing.T) {
	store, fs := newTestStore(t)

	id := store.GetOrCreate()

	store.Adopt(id)
	require.True(t, store.Established())
	require.Equal(t, id, store.Current())

	store.Adopt("S1")
	require.Equal(t, "S1", store.Current())

	data, err := afero.ReadFile(fs, "state/session")
	require.NoError(t, err)
	require.Contains(t, string(data), "S1")
}

func TestAdoptIgnoresEmptyID(t *testing.T) {
	store, _ := newTestStore(t)

	id := store.GetOrCreate()
	store.Adopt("")

	require.True(t, store.Established())
	require.Equal(t, id, store.Current())
}

func TestGetOrCreateSurvivesUnwritableStorage(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	store := NewSessionStore(fs, "state", zap.NewNop())

	// Degraded mode: a per-process id, no error surfaced to the caller.
	id := store.GetOrCreate()
	require.NotEmpty(t, id)
	require.Equal(t, id, store.GetOrCreate())
}

func TestClearForgetsSession(t *testing.T) {
	store, fs := newTestStore(t)

	store.GetOrCreate()
	store.Adopt("S1")

	require.NoError(t, store.Clear())
	require.Empty(t, store.Current())
	require.False(t, store.Established())

	exists, err := afero.Exists(fs, "state/session")
	require.NoError(t, err)
	require.False(t, exists)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
