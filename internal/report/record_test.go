package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpavel/water-reports/internal/parse"
)

func TestReportJSONShape(t *testing.T) {
	rep := &Report{
		Title:    TitleChemical,
		Kind:     "chemical",
		Filename: "2020-02-20_z09.pdf",
		ZoneID:   9,
		Records: []MeasurementRecord{
			{Key: "smell", Name: "Miros", Value: RawValue("Acceptabila"), Range: RawRange("Acceptabila consumatorilor")},
			{Key: "conductivitate", Name: "Conductivitate", Unit: "µS/cm la 25°C", Value: NumericValue(340), Range: ParsedRange(parse.Interval{High: fp(2500)})},
		},
	}

	data, err := json.Marshal(rep)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"value":"Acceptabila"`)
	assert.Contains(t, s, `"value":340`)
	assert.Contains(t, s, `"range":[null,2500]`)

	var back Report
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rep.Keys(), back.Keys())

	rec, ok := back.Record("conductivitate")
	require.True(t, ok)
	require.True(t, rec.Value.Numeric)
	assert.Equal(t, 340.0, rec.Value.Number)
	require.True(t, rec.Range.Parsed)
	assert.Nil(t, rec.Range.Interval.Low)
	require.NotNil(t, rec.Range.Interval.High)
	assert.Equal(t, 2500.0, *rec.Range.Interval.High)
}
