package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystem_PutGetOverwrite(t *testing.T) {
	ctx := context.Background()
	s, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(ctx, "ponds.json")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "ponds.json", []byte(`[1]`)))
	require.NoError(t, s.Put(ctx, "ponds.json", []byte(`[1,2]`)))

	data, err := s.Get(ctx, "ponds.json")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(data))

	entries, err := os.ReadDir(s.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFilesystem_RejectsTraversal(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape.json", "/etc/passwd"} {
		assert.Error(t, s.Put(context.Background(), key, []byte("x")), "key %q", key)
	}
}

// startWatch runs Watch until the test ends and returns once the watcher is
// known to be receiving events.
func startWatch(t *testing.T, s *FilesystemStore) <-chan string {
	t.Helper()
	s.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan string, 32)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(key string) { changed <- key })
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watch did not stop after cancel")
		}
	})

	// Give the watcher time to register the directory.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(s.Root(), "ready.json"), []byte(`[]`), 0o644)
		select {
		case key := <-changed:
			return key == "ready.json"
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 3*time.Second, 20*time.Millisecond)

	// Drop reports left over from the handshake.
	time.Sleep(3 * s.debounce)
	for len(changed) > 0 {
		<-changed
	}
	return changed
}

func nextKey(t *testing.T, changed <-chan string) string {
	t.Helper()
	select {
	case key := <-changed:
		return key
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
		return ""
	}
}

func TestFilesystem_WatchReportsExternalWrites(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)
	changed := startWatch(t, s)

	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), "logs.json"), []byte(`[]`), 0o644))
	assert.Equal(t, "logs.json", nextKey(t, changed))
}

func TestFilesystem_WatchCoalescesBursts(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)
	changed := startWatch(t, s)

	path := filepath.Join(s.Root(), "harvests.json")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	}
	assert.Equal(t, "harvests.json", nextKey(t, changed))

	time.Sleep(5 * s.debounce)
	assert.Empty(t, changed, "one report per burst")
}

func TestFilesystem_WatchIgnoresOwnPut(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)
	changed := startWatch(t, s)

	require.NoError(t, s.Put(context.Background(), "ponds.json", []byte(`[{"id":"a"}]`)))
	time.Sleep(5 * s.debounce)
	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), "logs.json"), []byte(`[]`), 0o644))

	assert.Equal(t, "logs.json", nextKey(t, changed), "own write is not reported")
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "harvests.json")
	require.ErrorIs(t, err, ErrNotFound)

	buf := []byte(`[]`)
	require.NoError(t, m.Put(ctx, "harvests.json", buf))
	buf[0] = 'x'

	data, err := m.Get(ctx, "harvests.json")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	assert.Error(t, m.Put(ctx, "", nil))
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{FSRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, s.Driver())

	s, err = Open(ctx, Config{Driver: DriverMemory})
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, s.Driver())

	_, err = Open(ctx, Config{Driver: DriverS3})
	assert.Error(t, err, "bucket is required")

	_, err = Open(ctx, Config{Driver: "ftp"})
	assert.Error(t, err)
}
