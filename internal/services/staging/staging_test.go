package staging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/reperio/internal/common"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Upload.StagingDir = t.TempDir()
	cfg.Upload.StaleAfter = "30m"

	service, err := NewService(cfg, nil)
	require.NoError(t, err)
	return service
}

func TestStage(t *testing.T) {
	t.Run("Writes bytes to a unique file", func(t *testing.T) {
		service := newTestService(t)

		path, err := service.Stage("notes.txt", strings.NewReader("hello"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
		assert.True(t, strings.HasSuffix(path, "notes.txt"))
	})

	t.Run("Concurrent same-name uploads do not collide", func(t *testing.T) {
		service := newTestService(t)

		first, err := service.Stage("same.txt", strings.NewReader("a"))
		require.NoError(t, err)
		second, err := service.Stage("same.txt", strings.NewReader("b"))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Sanitizes unsafe filename characters", func(t *testing.T) {
		service := newTestService(t)

		path, err := service.Stage("../../etc/passwd", strings.NewReader("x"))
		require.NoError(t, err)
		assert.Equal(t, service.Dir(), filepath.Dir(path))
		assert.NotContains(t, filepath.Base(path), "/")
	})
}

func TestRelease(t *testing.T) {
	t.Run("Removes the staged file", func(t *testing.T) {
		service := newTestService(t)

		path, err := service.Stage("notes.txt", strings.NewReader("hello"))
		require.NoError(t, err)

		service.Release(path)
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Releasing twice is harmless", func(t *testing.T) {
		service := newTestService(t)

		path, _ := service.Stage("notes.txt", strings.NewReader("hello"))
		service.Release(path)
		service.Release(path)
		service.Release("")
	})
}

func TestSweepStale(t *testing.T) {
	service := newTestService(t)

	stale, err := service.Stage("old.txt", strings.NewReader("old"))
	require.NoError(t, err)
	fresh, err := service.Stage("new.txt", strings.NewReader("new"))
	require.NoError(t, err)

	// Age one file past the TTL.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(stale, past, past))

	removed := service.SweepStale()
	assert.Equal(t, 1, removed)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestJanitorSchedule(t *testing.T) {
	t.Run("Valid schedule starts and stops", func(t *testing.T) {
		service := newTestService(t)
		require.NoError(t, service.Start())
		service.Stop()
	})

	t.Run("Invalid schedule is rejected", func(t *testing.T) {
		cfg := common.NewDefaultConfig()
		cfg.Upload.StagingDir = t.TempDir()
		cfg.Upload.JanitorSchedule = "not a schedule"

		service, err := NewService(cfg, nil)
		require.NoError(t, err)
		assert.Error(t, service.Start())
	})
}
