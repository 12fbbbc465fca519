package freshprompt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubNow(t *testing.T, fixed time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })
}

func TestCurrentDateUsesEvidenceTimezone(t *testing.T) {
	// Midnight UTC is still the previous evening in Chicago.
	stubNow(t, time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC))
	assert.Equal(t, "Apr 30, 2024", CurrentDate())
}

func TestFormatDateRelative(t *testing.T) {
	stubNow(t, time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC))
	require.Equal(t, "May 01, 2024", CurrentDate())

	assert.Equal(t, "May 01, 2024", FormatDate("5 seconds ago"))
	assert.Equal(t, "May 01, 2024", FormatDate("1 minute ago"))
	assert.Equal(t, "May 01, 2024", FormatDate("12 hours ago"))
	assert.Equal(t, "Apr 28, 2024", FormatDate("3 days ago"))
	assert.Equal(t, "Apr 30, 2024", FormatDate("1 day ago"))
}

func TestFormatDateAbsolute(t *testing.T) {
	assert.Equal(t, "Apr 30, 2024", FormatDate("Apr 30, 2024"))
	assert.Equal(t, "Jul 14, 2023", FormatDate("2023-07-14"))
	assert.Equal(t, "Jan 05, 2022", FormatDate("January 5, 2022"))
}

func TestFormatDateSalvagesToken(t *testing.T) {
	assert.Equal(t, "Jul 14, 2023", FormatDate("Updated 2023-07-14 by staff"))
}

func TestFormatDateDecorated(t *testing.T) {
	// Leading or trailing decoration must not collapse to the bare year.
	assert.Equal(t, "Apr 30, 2024", FormatDate("Updated Apr 30, 2024"))
	assert.Equal(t, "Apr 30, 2024", FormatDate("Apr 30, 2024 by John Doe"))
	assert.Equal(t, "Mar 01, 2024", FormatDate("Published 1 March 2024"))
}

func TestFormatDateUnparseable(t *testing.T) {
	assert.Equal(t, "", FormatDate(""))
	assert.Equal(t, "", FormatDate("   "))
	assert.Equal(t, "", FormatDate("no date here"))
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("Apr 30, 2024"))
	assert.False(t, IsDate("not a date at all"))
}

func TestParseEvidenceDate(t *testing.T) {
	ts, ok := parseEvidenceDate("Apr 30, 2024")
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.April, ts.Month())

	_, ok = parseEvidenceDate("")
	assert.False(t, ok)
	_, ok = parseEvidenceDate("2024-04-30")
	assert.False(t, ok)
}
