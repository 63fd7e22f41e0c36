package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"slash month first", "4/13/2018", "18-Apr"},
		{"dash day first forced", "13-04-2018", "18-Apr"},
		{"same month different formats", "4/1/2018", "18-Apr"},
		{"single digit day and month", "1/5/2018", "18-Jan"},
		{"dash ambiguous resolves month first", "01-04-2018", "18-Jan"},
		{"december", "12/31/2019", "19-Dec"},
		{"surrounding whitespace", " 4/13/2018 ", "18-Apr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDate_BothFormatsSameBucket(t *testing.T) {
	slash, err := NormalizeDate("4/13/2018")
	require.NoError(t, err)
	dash, err := NormalizeDate("13-04-2018")
	require.NoError(t, err)
	assert.Equal(t, slash, dash)
}

func TestNormalizeDate_Unparseable(t *testing.T) {
	tests := []string{
		"2018-04-13",
		"April 13, 2018",
		"13.04.2018",
		"",
		"not a date",
	}
	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			_, err := NormalizeDate(value)
			var dateErr *DateParseError
			require.ErrorAs(t, err, &dateErr)
			assert.Equal(t, value, dateErr.Value)
		})
	}
}

func TestParseMonthKey(t *testing.T) {
	when, err := ParseMonthKey("18-Apr")
	require.NoError(t, err)
	assert.Equal(t, 2018, when.Year())
	assert.Equal(t, "April", when.Month().String())

	_, err = ParseMonthKey("Apr-18")
	require.Error(t, err)
}
