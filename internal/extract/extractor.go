package extract

import (
	"context"

	"github.com/mpavel/water-reports/internal/tabular"
)

// TableExtractor yields the raw tabular grids detected in one bulletin file.
// Implementations own all I/O; grid parsing downstream is pure.
type TableExtractor interface {
	Extract(ctx context.Context, path string) ([]tabular.RawGrid, error)
}
