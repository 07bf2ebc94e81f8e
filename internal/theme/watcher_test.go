package theme

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/appshell/internal/storage"
)

func TestWatcher_ReloadsOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")

	st := NewStore(storage.NewFile(path, nil), StoreOptions{})
	require.Equal(t, Dark, st.Get())

	changed := make(chan Theme, 1)
	st.Subscribe(func(th Theme) {
		select {
		case changed <- th:
		default:
		}
	})

	w := NewWatcher(st, path, nil)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()
	assert.True(t, w.IsRunning())

	// A second process writes the same storage file
	other := storage.NewFile(path, nil)
	require.NoError(t, other.Write(DefaultStorageKey, "light"))

	select {
	case th := <-changed:
		assert.Equal(t, Light, th)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload the store")
	}
	assert.Equal(t, Light, st.Get())
}

func TestWatcher_StartStopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	st := NewStore(storage.NewMemory(), StoreOptions{})

	w := NewWatcher(st, path, nil)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	assert.False(t, w.IsRunning())
	w.Stop()
}

func TestWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "storage.json")
	st := NewStore(storage.NewMemory(), StoreOptions{})

	w := NewWatcher(st, path, nil)
	assert.Error(t, w.Start(context.Background()))
	assert.False(t, w.IsRunning())
}
