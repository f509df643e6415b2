package filelock

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLockBasic(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock := NewFileLock(lockPath)

	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Unlock())
}

func TestFileLockTryLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	first := NewFileLock(lockPath)
	require.NoError(t, first.Lock())
	defer first.Unlock()

	second := NewFileLock(lockPath)
	acquired, err := second.TryLock()
	require.NoError(t, err)
	assert.False(t, acquired, "second lock should not be acquirable while first is held")
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.txt")

	require.NoError(t, AtomicWrite(path, []byte("Missing img.003.png\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Missing img.003.png\n", string(data))

	// Overwrite leaves no temp files behind.
	require.NoError(t, AtomicWrite(path, []byte("updated")))
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.txt", entries[0].Name())
}

func TestLockAndWriteConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.txt")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, LockAndWrite(path, []byte("payload")))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}
