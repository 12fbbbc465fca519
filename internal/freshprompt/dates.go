package freshprompt

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the canonical evidence date format, e.g. "Apr 30, 2024".
const DateLayout = "Jan 02, 2006"

// Evidence dates are interpreted relative to this timezone.
const defaultTimezone = "America/Chicago"

// now is stubbed in tests for reproducible relative-date handling.
var now = time.Now

var daysAgoRe = regexp.MustCompile(`(\d+)\s+days?\s+ago`)

// Today returns the current date in the evidence timezone.
func Today() time.Time {
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return now()
	}
	return now().In(loc)
}

// CurrentDate returns today formatted with DateLayout.
func CurrentDate() string {
	return Today().Format(DateLayout)
}

// IsDate reports whether the string parses as a date.
func IsDate(s string) bool {
	_, err := dateparse.ParseAny(s)
	return err == nil
}

// FormatDate normalizes a heterogeneous date string to DateLayout.
// Relative forms resolve against today: "... minutes/hours/seconds ago"
// collapse to today, "N days ago" subtracts N. Strings that cannot be
// parsed, even token by token, yield "".
func FormatDate(d string) string {
	s := strings.TrimSpace(d)
	if s == "" {
		return ""
	}
	lc := strings.ToLower(s)

	for _, unit := range []string{"second", "minute", "hour"} {
		if strings.Contains(lc, unit+" ago") || strings.Contains(lc, unit+"s ago") {
			return CurrentDate()
		}
	}

	if strings.Contains(lc, "day ago") || strings.Contains(lc, "days ago") {
		if m := daysAgoRe.FindStringSubmatch(lc); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return Today().AddDate(0, 0, -n).Format(DateLayout)
			}
		}
		return CurrentDate()
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return t.Format(DateLayout)
	}

	// Decorated dates ("Updated Apr 30, 2024", "Apr 30, 2024 by staff")
	// defeat the whole-string parse. Retry with leading tokens stripped,
	// then with trailing tokens stripped, before falling back to single
	// tokens so a bare year cannot shadow a fuller date.
	toks := strings.Fields(s)
	for i := 1; i < len(toks)-1; i++ {
		if t, err := dateparse.ParseAny(strings.Join(toks[i:], " ")); err == nil {
			return t.Format(DateLayout)
		}
	}
	for j := len(toks) - 1; j > 1; j-- {
		if t, err := dateparse.ParseAny(strings.Join(toks[:j], " ")); err == nil {
			return t.Format(DateLayout)
		}
	}
	for _, tok := range toks {
		if t, err := dateparse.ParseAny(tok); err == nil {
			return t.Format(DateLayout)
		}
	}
	return ""
}

// parseEvidenceDate turns a DateLayout string back into a time for sorting.
func parseEvidenceDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
