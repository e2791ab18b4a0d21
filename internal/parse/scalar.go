package parse

import (
	"fmt"
	"math"
	"strconv"
)

// ParseValue collapses a cell string to one representative number.
//
// Text with a leading numeric run returns that prefix ("4.3 / 4.4" -> 4.3).
// Otherwise the text must be an interval with exactly one bound, and the
// result is nudged just inside the finite edge (">5" -> 5.01, "<0.002" ->
// 0.00198). The epsilon is the bound's fractional part divided by 100,
// falling back to 0.01 for whole numbers; the formula is kept exactly as the
// historical corpus was produced with so stored values stay comparable.
func ParseValue(text string) (float64, error) {
	i := 0
	for i < len(text) && (text[i] == '.' || (text[i] >= '0' && text[i] <= '9')) {
		i++
	}
	if i > 0 {
		v, err := strconv.ParseFloat(text[:i], 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q into number: %w", text, ErrUnparseableInterval)
		}
		return v, nil
	}

	iv, err := ParseInterval(text)
	if err != nil {
		return 0, err
	}
	if (iv.Low == nil) == (iv.High == nil) {
		return 0, fmt.Errorf("%q must contain exactly 1 valid value to be convertible from range to single value: %w", text, ErrAmbiguousScalar)
	}

	var bound float64
	if iv.Low != nil {
		bound = *iv.Low
	} else {
		bound = *iv.High
	}
	eps := math.Mod(bound, 1) / 100
	if eps == 0 {
		eps = 0.01
	}
	if iv.Low != nil {
		return bound + eps, nil
	}
	return bound - eps, nil
}
