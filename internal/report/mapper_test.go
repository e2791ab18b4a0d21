package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpavel/water-reports/internal/parse"
)

func fp(v float64) *float64 { return &v }

func TestMapRowNumericPair(t *testing.T) {
	m := NewMapper(nil)

	rec, err := m.MapRow([]string{"2", "Conductivitate", "µS/cm la 25°C", "340", "2500"})
	require.NoError(t, err)

	assert.Equal(t, "conductivitate", rec.Key)
	assert.Equal(t, "Conductivitate", rec.Name)
	assert.Equal(t, "µS/cm la 25°C", rec.Unit)
	require.True(t, rec.Value.Numeric)
	assert.Equal(t, 340.0, rec.Value.Number)
	require.True(t, rec.Range.Parsed)
	assert.Equal(t, parse.Interval{High: fp(2500)}, rec.Range.Interval)
}

func TestMapRowQualitativePairStaysRaw(t *testing.T) {
	m := NewMapper(nil)

	rec, err := m.MapRow([]string{"1", "Miros*", "", "Acceptabila", "Acceptabila consumatorilor si nici o modificare anormala"})
	require.NoError(t, err)

	assert.Equal(t, "smell", rec.Key)
	assert.False(t, rec.Range.Parsed)
	assert.Equal(t, "Acceptabila consumatorilor si nici o modificare anormala", rec.Range.Raw)
	assert.False(t, rec.Value.Numeric)
	assert.Equal(t, "Acceptabila", rec.Value.Raw)
}

func TestMapRowValueWithTrailingReading(t *testing.T) {
	m := NewMapper(nil)

	rec, err := m.MapRow([]string{"4", "pH", "unitati pH", "7.58/21.5°C", "≥6.5; ≤9.5"})
	require.NoError(t, err)

	require.True(t, rec.Range.Parsed)
	assert.Equal(t, parse.Interval{Low: fp(6.5), High: fp(9.5)}, rec.Range.Interval)
	// leading digit run wins: "7.58/21.5°C" -> 7.58
	require.True(t, rec.Value.Numeric)
	assert.Equal(t, 7.58, rec.Value.Number)
}

func TestMapRowOpenEndedValueGetsEpsilon(t *testing.T) {
	m := NewMapper(nil)

	rec, err := m.MapRow([]string{"7", "Nitriti", "mg/l", "<0.002", "0.5"})
	require.NoError(t, err)
	require.True(t, rec.Value.Numeric)
	assert.InDelta(t, 0.00198, rec.Value.Number, 1e-12)
}

func TestMapRowUnknownLabel(t *testing.T) {
	m := NewMapper(nil)

	_, err := m.MapRow([]string{"1", "Radon", "Bq/l", "3", "100"})
	require.ErrorIs(t, err, ErrUnknownLabel)
	assert.Contains(t, err.Error(), "Radon")
}

func TestMapRowTooFewColumns(t *testing.T) {
	m := NewMapper(nil)

	_, err := m.MapRow([]string{"1", "pH", "unitati pH"})
	require.ErrorIs(t, err, ErrMalformedRow)
}
