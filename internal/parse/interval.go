package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse failure kinds. Wrapped errors carry the offending cell text; match
// with errors.Is.
var (
	ErrUnparseableInterval = errors.New("unparseable interval")
	ErrAmbiguousScalar     = errors.New("ambiguous scalar")
)

// Interval is an inclusive permissible range with optional bounds. A nil Low
// means unbounded below, a nil High unbounded above; never both nil.
type Interval struct {
	Low  *float64
	High *float64
}

// Contains reports whether v lies within the interval. An absent bound
// imposes no constraint on that side.
func (iv Interval) Contains(v float64) bool {
	low, high := v, v
	if iv.Low != nil {
		low = *iv.Low
	}
	if iv.High != nil {
		high = *iv.High
	}
	return low <= v && v <= high
}

// ParseInterval converts a cell string into an Interval.
//
// A bare number becomes an upper bound only: admissible-value columns
// historically list a single ceiling ("2500" means at most 2500). Otherwise
// the text must lead with a comparator or a digit, and each comparator
// polarity contributes at most one bound:
//
//	">5"       -> (5, nil)
//	"≥6.5; ≤9.5" -> (6.5, 9.5)
//	"<4"       -> (nil, 4)
func ParseInterval(text string) (Interval, error) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
		return Interval{High: &v}, nil
	}

	runes := []rune(text)
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == len(runes) || !startsInterval(runes[i]) {
		return Interval{}, fmt.Errorf("cannot convert %q into range: %w", text, ErrUnparseableInterval)
	}

	var iv Interval
	if s := scanBound(runes, '<', '≤'); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Interval{}, fmt.Errorf("cannot convert %q into range: %w", text, ErrUnparseableInterval)
		}
		iv.High = &v
	}
	if s := scanBound(runes, '>', '≥'); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Interval{}, fmt.Errorf("cannot convert %q into range: %w", text, ErrUnparseableInterval)
		}
		iv.Low = &v
	}

	if iv.Low == nil && iv.High == nil {
		return Interval{}, fmt.Errorf("cannot convert %q into range: %w", text, ErrUnparseableInterval)
	}
	return iv, nil
}

func startsInterval(r rune) bool {
	switch r {
	case '<', '≤', '>', '≥':
		return true
	}
	return r >= '0' && r <= '9'
}

// scanBound finds the first occurrence of primary (falling back to
// secondary) and accumulates the digit/'.' run that follows, skipping
// interior whitespace and stopping at the first other character.
func scanBound(runes []rune, primary, secondary rune) string {
	pos := indexRune(runes, primary)
	if pos < 0 {
		pos = indexRune(runes, secondary)
	}
	if pos < 0 {
		return ""
	}

	var b strings.Builder
	for i := pos + 1; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '.' || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			return b.String()
		}
	}
	return b.String()
}

func indexRune(runes []rune, want rune) int {
	for i, r := range runes {
		if r == want {
			return i
		}
	}
	return -1
}
