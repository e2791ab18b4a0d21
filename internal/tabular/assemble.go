package tabular

import (
	"errors"
	"strings"
)

// ErrEmptyGrid reports a grid with no rows or no columns.
var ErrEmptyGrid = errors.New("tabular: empty grid")

// placeholder column names are emitted by the extraction engine for columns
// it could not title.
const placeholderPrefix = "Unnamed"

// Assemble reconstructs the logical table from a fragmented grid: one header
// row followed by one row per parameter.
//
// Lines that wrapped in the source document arrive as separate physical
// rows; the only reliable boundary marker is the row-number cell the engine
// emits as a pure-digit string in the first column. Header fragments
// accumulate until the first such marker; after that, every marker row
// flushes the parameter under construction and starts the next one, while
// also contributing its own cells to it. Column count is fixed by the row
// that opened the accumulator.
func Assemble(grid RawGrid) (header []string, rows [][]string, err error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, nil, ErrEmptyGrid
	}

	data := grid
	current := make([]string, len(data[0]))

	for len(data) > 0 && len(data[0]) > 0 && isHeaderFragment(data[0][0]) {
		row := data[0]
		data = data[1:]
		for i, c := range row {
			if i >= len(current) {
				break
			}
			if c.IsText() && !strings.HasPrefix(c.Text, placeholderPrefix) {
				current[i] = join(current[i], c.Text)
			}
		}
	}

	// current still points at the header accumulator; the first row-number
	// marker flushes it, exactly like every later parameter boundary.
	var assembled [][]string
	for _, row := range data {
		if len(row) > 0 && isRowMarker(row[0]) {
			assembled = append(assembled, current)
			current = make([]string, len(row))
		}
		for i, c := range row {
			if i >= len(current) {
				break
			}
			if c.IsText() {
				current[i] = join(current[i], c.Text)
			}
		}
	}
	assembled = append(assembled, current)

	return assembled[0], assembled[1:], nil
}

// isHeaderFragment reports a row that still belongs to the multi-line
// header: textual first cell that is not a row-number marker.
func isHeaderFragment(c Cell) bool {
	return c.IsText() && !isDigits(c.Text)
}

// isRowMarker reports the pure-digit row-number cell that opens a parameter.
func isRowMarker(c Cell) bool {
	return c.IsText() && isDigits(c.Text)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func join(acc, fragment string) string {
	return strings.TrimSpace(acc + " " + fragment)
}
