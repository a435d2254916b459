package kitty

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultSweepAge is how old a leftover temp file must be before SweepTempFiles removes it.
const DefaultSweepAge = 24 * time.Hour

// SweepResult summarizes a SweepTempFiles run.
type SweepResult struct {
	Removed int
	Freed   int64
}

// SweepTempFiles removes files in dir starting with prefix whose
// modification time is older than maxAge. Files the terminal has not read
// yet are young, so a reasonable maxAge never races with a print.
// Entries that cannot be inspected or removed are skipped.
func SweepTempFiles(dir, prefix string, maxAge time.Duration, log *slog.Logger) (SweepResult, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if prefix == "" {
		prefix = DefaultTempPrefix
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return SweepResult{}, err
	}

	cutoff := time.Now().Add(-maxAge)
	var res SweepResult

	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			log.Debug("keep temp file", "name", entry.Name(), "err", err)
			continue
		}
		res.Removed++
		res.Freed += info.Size()
	}

	log.Debug("swept temp files",
		"dir", dir,
		"removed", res.Removed,
		"freed", humanize.IBytes(uint64(res.Freed))) //nolint:gosec // sum of file sizes is non-negative
	return res, nil
}
