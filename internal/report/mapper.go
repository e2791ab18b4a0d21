package report

import (
	"errors"
	"fmt"

	"github.com/mpavel/water-reports/internal/parse"
)

var (
	// ErrUnknownLabel is fatal for the whole document: a label outside the
	// dictionary means the layout changed and silently skipping it would
	// hide a measurement.
	ErrUnknownLabel = errors.New("unknown label")

	// ErrMalformedRow reports a parameter row with fewer columns than the
	// fixed bulletin layout.
	ErrMalformedRow = errors.New("malformed parameter row")
)

// Mapper turns assembled parameter rows into measurement records using an
// immutable label dictionary.
type Mapper struct {
	labels Dictionary
}

func NewMapper(labels Dictionary) Mapper {
	if labels == nil {
		labels = DefaultDictionary()
	}
	return Mapper{labels: labels}
}

// MapRow maps one assembled parameter row: column 1 is the label, 2 the
// unit, 3 the obtained value, 4 the admissible range (column 0 is the
// engine's row number).
//
// The range cell is parsed first; if it fails the interval grammar both
// cells stay raw text. The value is only coerced to a number when there is a
// structured range to compare it against.
func (m Mapper) MapRow(row []string) (MeasurementRecord, error) {
	if len(row) < 5 {
		return MeasurementRecord{}, fmt.Errorf("row has %d columns, want 5: %w", len(row), ErrMalformedRow)
	}
	label, unit, valueCell, rangeCell := row[1], row[2], row[3], row[4]

	entry, ok := m.labels.Lookup(label)
	if !ok {
		return MeasurementRecord{}, fmt.Errorf("label %q: %w", label, ErrUnknownLabel)
	}

	rng := RawRange(rangeCell)
	val := RawValue(valueCell)
	if iv, err := parse.ParseInterval(rangeCell); err == nil {
		rng = ParsedRange(iv)
		if v, err := parse.ParseValue(valueCell); err == nil {
			val = NumericValue(v)
		}
	}

	return MeasurementRecord{
		Key:   entry.Key,
		Name:  entry.Name,
		Unit:  unit,
		Value: val,
		Range: rng,
	}, nil
}
