package report

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mpavel/water-reports/constants"
	"github.com/mpavel/water-reports/internal/tabular"
)

var (
	// ErrUnrecognizedReportKind is fatal for the current grid: a table that
	// cannot be classified is skipped or surfaced, never mis-tagged.
	ErrUnrecognizedReportKind = errors.New("unrecognized report kind")

	// ErrMalformedHeader reports fixed column headers out of place.
	ErrMalformedHeader = errors.New("malformed header")
)

// Title strings printed by the two known bulletin layouts.
const (
	TitleMicrobiological = "Indicatori microbiologici"
	TitleChemical        = "Indicatori organoleptici si fizico-chimici"
)

const (
	headerUnit          = "Unitate de masura"
	headerObtained      = "Valori obtinute"
	headerAdmissible    = "Valori admise"
	headerMaxAdmissible = "Valori maxim admise"
)

// Builder turns one raw extraction grid into a Report.
type Builder struct {
	labels Dictionary
	logger *slog.Logger
}

func NewBuilder(labels Dictionary, logger *slog.Logger) *Builder {
	if labels == nil {
		labels = DefaultDictionary()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{labels: labels, logger: logger}
}

// Build assembles the grid, validates the header, and maps every parameter
// row. Duplicate canonical keys keep the last occurrence, preserving the
// record order of the first.
func (b *Builder) Build(grid tabular.RawGrid) (*Report, error) {
	header, rows, err := tabular.Assemble(grid)
	if err != nil {
		return nil, err
	}
	if len(header) < 5 {
		return nil, fmt.Errorf("header has %d columns, want 5: %w", len(header), ErrMalformedHeader)
	}

	var kind constants.ReportKind
	switch header[1] {
	case TitleMicrobiological:
		kind = constants.KindMicrobiological
	case TitleChemical:
		kind = constants.KindChemical
	default:
		return nil, fmt.Errorf("cannot identify report kind from %q: %w", header[1], ErrUnrecognizedReportKind)
	}

	if header[2] != headerUnit || header[3] != headerObtained ||
		!(strings.HasPrefix(header[4], headerMaxAdmissible) || strings.HasPrefix(header[4], headerAdmissible)) {
		return nil, fmt.Errorf("unexpected column headers %q: %w", header[2:5], ErrMalformedHeader)
	}

	mapper := NewMapper(b.labels)
	rep := &Report{Title: header[1], Kind: kind}
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		rec, err := mapper.MapRow(row)
		if err != nil {
			return nil, err
		}
		if i, ok := index[rec.Key]; ok {
			rep.Records[i] = rec
			continue
		}
		index[rec.Key] = len(rep.Records)
		rep.Records = append(rep.Records, rec)
	}

	b.logger.Debug("report built", "title", rep.Title, "kind", rep.Kind, "records", len(rep.Records))
	return rep, nil
}
