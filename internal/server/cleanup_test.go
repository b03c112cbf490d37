package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSweepRemovesExpiredUploads(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	old := filepath.Join(dir, "old.pdf")
	fresh := filepath.Join(dir, "fresh.pdf")
	require.NoError(t, os.WriteFile(old, []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("fresh"), 0o644))
	require.NoError(t, os.Chtimes(old, now.Add(-2*time.Hour), now.Add(-2*time.Hour)))

	sw := newSweeper(dir, time.Hour, zap.NewNop())
	sw.sweep(now)

	_, err := os.Stat(old)
	assert.True(t, os.IsNotExist(err), "expired upload should be removed")
	_, err = os.Stat(fresh)
	assert.NoError(t, err, "recent upload should survive")
}

func TestSweepMissingDirIsQuiet(t *testing.T) {
	sw := newSweeper(filepath.Join(t.TempDir(), "absent"), time.Hour, zap.NewNop())
	sw.sweep(time.Now()) // must not panic
}

func TestSweeperDefaultsRetention(t *testing.T) {
	sw := newSweeper(t.TempDir(), 0, zap.NewNop())
	assert.Equal(t, time.Hour, sw.retention)
}
