package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mpavel/water-reports/constants"
)

// DirFetcher serves bulletins from a local directory of previously
// downloaded files, keyed by the canonical bulletin filename. It lets batch
// runs replay offline what the HTTP fetcher downloaded earlier.
type DirFetcher struct {
	root   string
	logger *slog.Logger
}

func NewDirFetcher(root string, logger *slog.Logger) *DirFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirFetcher{root: root, logger: logger}
}

// Fetch returns the stored bulletin bytes, or (nil, nil) when no file exists
// for that zone/date, mirroring the HTTP fetcher's absent-bulletin contract.
func (f *DirFetcher) Fetch(_ context.Context, zone int, date time.Time) ([]byte, error) {
	path := filepath.Join(f.root, constants.BulletinFilename(zone, date))
	body, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		f.logger.Info("bulletin not on disk", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(body) == 0 {
		f.logger.Info("bulletin file empty", "path", path)
		return nil, nil
	}
	return body, nil
}
