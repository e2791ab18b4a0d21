package tabular

// CellKind discriminates what the extraction engine delivered for one cell.
type CellKind int

const (
	CellEmpty  CellKind = iota // engine emitted no value for the slot
	CellText                   // plain text
	CellNumber                 // number the engine already parsed
)

// Cell is one raw extraction cell. Cells are immutable once placed in a grid.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

func Text(s string) Cell    { return Cell{Kind: CellText, Text: s} }
func Number(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }
func Empty() Cell           { return Cell{Kind: CellEmpty} }

func (c Cell) IsText() bool { return c.Kind == CellText }

// RawGrid is one detected table: physical rows of cells. The extraction
// engine does not preserve logical row boundaries, so a grid usually holds
// far more rows than the table it was read from.
type RawGrid [][]Cell
