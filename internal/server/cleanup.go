package server

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// sweepInterval is how often the upload directory is scanned
const sweepInterval = 10 * time.Minute

// sweeper periodically deletes staged uploads older than the retention
// window
type sweeper struct {
	dir       string
	retention time.Duration
	log       *zap.Logger
	done      chan struct{}
}

func newSweeper(dir string, retention time.Duration, log *zap.Logger) *sweeper {
	if retention <= 0 {
		retention = time.Hour
	}
	return &sweeper{
		dir:       dir,
		retention: retention,
		log:       log,
		done:      make(chan struct{}),
	}
}

func (sw *sweeper) start() {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sw.sweep(time.Now())
			case <-sw.done:
				return
			}
		}
	}()
}

func (sw *sweeper) stop() {
	close(sw.done)
}

// sweep removes files whose modification time predates the retention
// cutoff
func (sw *sweeper) sweep(now time.Time) {
	entries, err := os.ReadDir(sw.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			sw.log.Warn("upload sweep failed", zap.Error(err))
		}
		return
	}

	cutoff := now.Add(-sw.retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(sw.dir, entry.Name())
			if err := os.Remove(path); err != nil {
				sw.log.Warn("failed to remove staged upload", zap.String("file", entry.Name()), zap.Error(err))
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		sw.log.Info("swept staged uploads", zap.Int("removed", removed))
	}
}
