package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestParseInterval(t *testing.T) {
	tests := []struct {
		text string
		want Interval
	}{
		{"0", Interval{High: fp(0)}},
		{"45", Interval{High: fp(45)}},
		{"2500", Interval{High: fp(2500)}},
		{"0.0020", Interval{High: fp(0.002)}},
		{"≤0.002", Interval{High: fp(0.002)}},
		{"≥0.002", Interval{Low: fp(0.002)}},
		{"<45", Interval{High: fp(45)}},
		{"< 45", Interval{High: fp(45)}},
		{">5", Interval{Low: fp(5)}},
		{"≥ 5", Interval{Low: fp(5)}},
		{"≥6.5; ≤9.5", Interval{Low: fp(6.5), High: fp(9.5)}},
		{">0.1 <0.5", Interval{Low: fp(0.1), High: fp(0.5)}},
		{" 5.0 ", Interval{High: fp(5)}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseInterval(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntervalRejectsFreeText(t *testing.T) {
	for _, text := range []string{
		"Acceptabil",
		"Acceptabila consumatorilor si nici o modificare anormala",
		"",
		"   ",
		"max 5", // comparator token required, words are not a grammar
	} {
		_, err := ParseInterval(text)
		require.ErrorIs(t, err, ErrUnparseableInterval, "text %q", text)
	}
}

func TestParseIntervalDigitLeadingWithoutComparator(t *testing.T) {
	// A digit-leading composite that is neither a bare number nor an
	// interval has no bounds to extract.
	_, err := ParseInterval("4.3 / 4.4")
	require.ErrorIs(t, err, ErrUnparseableInterval)
}

func TestParseIntervalHonorsFirstComparatorOnly(t *testing.T) {
	// Only the first comparator of each polarity contributes a bound; the
	// capture stops at the second comparator token.
	got, err := ParseInterval("<5 <10")
	require.NoError(t, err)
	assert.Equal(t, Interval{High: fp(5)}, got)

	got, err = ParseInterval("<5; <10")
	require.NoError(t, err)
	assert.Equal(t, Interval{High: fp(5)}, got)
}

func TestParseIntervalSkipsInteriorWhitespace(t *testing.T) {
	// The bound scan skips whitespace inside the digit run, so separated
	// digit groups merge until a non-digit character appears.
	got, err := ParseInterval("< 4 5")
	require.NoError(t, err)
	assert.Equal(t, Interval{High: fp(45)}, got)
}

func TestIntervalContains(t *testing.T) {
	both := Interval{Low: fp(6.5), High: fp(9.5)}
	assert.True(t, both.Contains(7.58))
	assert.False(t, both.Contains(9.51))
	assert.False(t, both.Contains(6.49))

	ceiling := Interval{High: fp(2500)}
	assert.True(t, ceiling.Contains(340))
	assert.False(t, ceiling.Contains(2500.1))

	floor := Interval{Low: fp(5)}
	assert.True(t, floor.Contains(7.95))
	assert.False(t, floor.Contains(4.9))
}

func TestWellFormedIntervalsAreOrdered(t *testing.T) {
	// Every two-sided interval in the fixture corpus must satisfy low <= high;
	// the grammar itself does not guarantee it.
	for _, text := range []string{"≥6.5; ≤9.5", ">0.1 <0.5", ">0; ≤5"} {
		iv, err := ParseInterval(text)
		require.NoError(t, err)
		require.NotNil(t, iv.Low, "text %q", text)
		require.NotNil(t, iv.High, "text %q", text)
		assert.LessOrEqual(t, *iv.Low, *iv.High, "text %q", text)
	}
}
