package report

import (
	"encoding/json"
	"fmt"

	"github.com/mpavel/water-reports/constants"
	"github.com/mpavel/water-reports/internal/parse"
)

// Value is a measurement cell: the parsed number when the scalar grammar
// matched, otherwise the untouched source text.
type Value struct {
	Number  float64
	Raw     string
	Numeric bool
}

func NumericValue(v float64) Value { return Value{Number: v, Numeric: true} }
func RawValue(s string) Value      { return Value{Raw: s} }

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Raw)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumericValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("value is neither number nor string: %w", err)
	}
	*v = RawValue(s)
	return nil
}

// Range is the admissible interval, or the untouched source text when the
// cell does not follow the interval grammar (qualitative acceptability
// descriptions stay as written).
type Range struct {
	Interval parse.Interval
	Raw      string
	Parsed   bool
}

func ParsedRange(iv parse.Interval) Range { return Range{Interval: iv, Parsed: true} }
func RawRange(s string) Range             { return Range{Raw: s} }

func (r Range) MarshalJSON() ([]byte, error) {
	if r.Parsed {
		return json.Marshal([2]*float64{r.Interval.Low, r.Interval.High})
	}
	return json.Marshal(r.Raw)
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var bounds [2]*float64
	if err := json.Unmarshal(data, &bounds); err == nil {
		*r = ParsedRange(parse.Interval{Low: bounds[0], High: bounds[1]})
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("range is neither interval nor string: %w", err)
	}
	*r = RawRange(s)
	return nil
}

// MeasurementRecord is one typed measurement. Never mutated after creation.
type MeasurementRecord struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Unit  string `json:"um,omitempty"`
	Value Value  `json:"value"`
	Range Range  `json:"range"`
}

// Report is one parsed bulletin table plus document-level metadata.
// Immutable once built; Records is ordered and keyed uniquely.
type Report struct {
	Title        string               `json:"title"`
	Kind         constants.ReportKind `json:"type"`
	Filename     string               `json:"filename,omitempty"`
	ZoneID       int                  `json:"zone_id,omitempty"`
	IssueDate    string               `json:"issue_date,omitempty"`
	SampleDate   string               `json:"sample_date,omitempty"`
	AnalysisDate string               `json:"analysis_date,omitempty"`
	Records      []MeasurementRecord  `json:"result"`
}

// Record returns the record stored under a canonical key.
func (r *Report) Record(key string) (MeasurementRecord, bool) {
	for _, rec := range r.Records {
		if rec.Key == key {
			return rec, true
		}
	}
	return MeasurementRecord{}, false
}

// Keys returns the canonical keys in record order.
func (r *Report) Keys() []string {
	keys := make([]string, len(r.Records))
	for i, rec := range r.Records {
		keys[i] = rec.Key
	}
	return keys
}
