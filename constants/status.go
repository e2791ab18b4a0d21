package constants

// DocumentStatus is the canonical outcome for one (zone, date) document run.
type DocumentStatus string

const (
	DocumentQueued    DocumentStatus = "QUEUED"    // waiting for a worker
	DocumentMissing   DocumentStatus = "MISSING"   // no bulletin published for that zone/date
	DocumentProcessed DocumentStatus = "PROCESSED" // at least one table parsed and persisted
	DocumentFailed    DocumentStatus = "FAILED"    // terminal failure
)
