package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSiteDate_ShortForm(t *testing.T) {
	date, err := ParseSiteDate("Mon 03 Mar 2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", date)
}

func TestParseSiteDate_FullForm(t *testing.T) {
	date, err := ParseSiteDate("Monday 03 March 2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", date)
}

func TestParseSiteDate_AllMonths(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Wed 01 Jan 2025", "2025-01-01"},
		{"Sat 15 February 2025", "2025-02-15"},
		{"Mon 31 Mar 2025", "2025-03-31"},
		{"Tue 01 April 2025", "2025-04-01"},
		{"Thu 22 May 2025", "2025-05-22"},
		{"Mon 30 Jun 2025", "2025-06-30"},
		{"Fri 04 July 2025", "2025-07-04"},
		{"Sun 10 Aug 2025", "2025-08-10"},
		{"Tue 09 September 2025", "2025-09-09"},
		{"Fri 31 Oct 2025", "2025-10-31"},
		{"Sun 30 November 2025", "2025-11-30"},
		{"Thu 25 Dec 2025", "2025-12-25"},
	}

	for _, tt := range tests {
		got, err := ParseSiteDate(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseSiteDate_SurroundingWhitespace(t *testing.T) {
	date, err := ParseSiteDate("  Tue 12 Aug 2025\n")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-12", date)
}

func TestParseSiteDate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing weekday", "03 Mar 2025"},
		{"extra field", "Mon 03 Mar 2025 10:00"},
		{"localized month", "Mon 03 März 2025"},
		{"localized weekday", "Lundi 03 March 2025"},
		{"day zero", "Mon 00 Mar 2025"},
		{"day out of range", "Mon 32 Mar 2025"},
		{"impossible calendar date", "Mon 31 Feb 2025"},
		{"numeric month", "Mon 03 03 2025"},
		{"year too small", "Mon 03 Mar 999"},
		{"year not numeric", "Mon 03 Mar twenty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSiteDate(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseSiteDate_IgnoresWeekdayMismatch(t *testing.T) {
	// 2025-03-03 was a Monday, but the weekday is vocabulary-checked only.
	date, err := ParseSiteDate("Fri 03 Mar 2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", date)
}
