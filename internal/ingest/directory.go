package ingest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/mpavel/water-reports/constants"
)

// LocalBulletin is one bulletin PDF found on disk, identified by its
// canonical filename.
type LocalBulletin struct {
	Path string
	Zone int
	Date time.Time
}

// DirStats aggregates one directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
	Failed  uint32
}

// ScanDir walks root and collects every file whose name parses as a bulletin
// filename. Hidden files and directories are skipped; files that are PDFs
// but carry a foreign name count as skipped, not failed.
func ScanDir(root string) ([]LocalBulletin, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var found []LocalBulletin
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			return nil // continue walking
		}
		if isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if constants.NormalizeExt(filepath.Ext(path)) != "pdf" {
			stats.Skipped++
			return nil
		}
		zone, date, err := constants.ParseBulletinFilename(filepath.Base(path))
		if err != nil {
			stats.Skipped++
			return nil
		}
		stats.Matched++
		found = append(found, LocalBulletin{Path: path, Zone: zone, Date: date})
		return nil
	})
	if err != nil {
		return found, stats, err
	}
	return found, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
