package constants

// ReportKind classifies a bulletin table by its title row.
type ReportKind string

// Stable values (store these exact strings in DB).
const (
	KindChemical        ReportKind = "chemical"
	KindMicrobiological ReportKind = "microbiological"
)
