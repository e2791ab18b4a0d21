package report

// AbnormalSet maps canonical keys to records whose value escaped the
// admissible interval. Always derived from a Report, never persisted on its
// own.
type AbnormalSet map[string]MeasurementRecord

// Abnormal flags records whose numeric value falls outside their parsed
// interval. Records whose value or range stayed raw text are skipped: a
// qualitative pair has nothing numeric to compare.
func Abnormal(r *Report) AbnormalSet {
	out := AbnormalSet{}
	for _, rec := range r.Records {
		if !rec.Range.Parsed || !rec.Value.Numeric {
			continue
		}
		if !rec.Range.Interval.Contains(rec.Value.Number) {
			out[rec.Key] = rec
		}
	}
	return out
}
