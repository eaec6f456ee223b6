// Package normalize converts raw parser output into validated, canonically
// keyed records. Date parsing deliberately avoids layout-based parsing: the
// source site always renders English month and weekday names, so they are
// matched against explicit English tables here regardless of host locale.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// englishMonths maps both short ("Mar") and full ("March") English month
// names, lowercased, to their month number.
var englishMonths = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// englishWeekdays covers both short ("Mon") and full ("Monday") forms. The
// weekday carries no date information; it is only checked for vocabulary.
var englishWeekdays = map[string]bool{
	"mon": true, "monday": true,
	"tue": true, "tuesday": true,
	"wed": true, "wednesday": true,
	"thu": true, "thursday": true,
	"fri": true, "friday": true,
	"sat": true, "saturday": true,
	"sun": true, "sunday": true,
}

// CanonicalDateKey is the storage key layout for all per-date records.
const CanonicalDateKey = "2006-01-02"

// ParseSiteDate converts a site-rendered date such as "Mon 03 Mar 2025"
// (progress tables) or "Monday 03 March 2025" (diary headings) into the
// canonical YYYY-MM-DD key. A date that does not match either format is a
// fatal parse error for the page it came from.
func ParseSiteDate(text string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) != 4 {
		return "", fmt.Errorf("unrecognized date format %q: want 'Weekday DD Month YYYY'", text)
	}

	if !englishWeekdays[strings.ToLower(fields[0])] {
		return "", fmt.Errorf("unrecognized weekday %q in date %q", fields[0], text)
	}

	day, err := strconv.Atoi(fields[1])
	if err != nil || day < 1 || day > 31 {
		return "", fmt.Errorf("invalid day %q in date %q", fields[1], text)
	}

	month, ok := englishMonths[strings.ToLower(fields[2])]
	if !ok {
		return "", fmt.Errorf("unrecognized month %q in date %q", fields[2], text)
	}

	year, err := strconv.Atoi(fields[3])
	if err != nil || year < 1900 || year > 2200 {
		return "", fmt.Errorf("invalid year %q in date %q", fields[3], text)
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. 31 Feb -> 3 Mar); reject it.
	if date.Day() != day || date.Month() != month || date.Year() != year {
		return "", fmt.Errorf("impossible calendar date %q", text)
	}

	return date.Format(CanonicalDateKey), nil
}
