package constants

import (
	"fmt"
	"strings"
	"time"
)

// BulletinDateLayout is the date portion of a local bulletin filename.
const BulletinDateLayout = "2006-01-02"

// BulletinFilename returns the canonical local name for a downloaded
// bulletin, e.g. "2020-01-22_z09.pdf".
func BulletinFilename(zone int, date time.Time) string {
	return fmt.Sprintf("%s_z%02d.pdf", date.Format(BulletinDateLayout), zone)
}

// ParseBulletinFilename recovers (zone, date) from a name produced by
// BulletinFilename.
func ParseBulletinFilename(name string) (int, time.Time, error) {
	base := strings.TrimSuffix(name, ".pdf")
	if base == name {
		return 0, time.Time{}, fmt.Errorf("%q: not a .pdf bulletin name", name)
	}
	var (
		year, month, day int
		zone             int
	)
	if _, err := fmt.Sscanf(base, "%04d-%02d-%02d_z%d", &year, &month, &day, &zone); err != nil {
		return 0, time.Time{}, fmt.Errorf("%q: not a bulletin name: %w", name, err)
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return zone, date, nil
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
