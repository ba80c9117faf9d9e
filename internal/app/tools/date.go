package tools

import (
	"fmt"
	"strings"
	"time"
)

// CurrentDateInfo renders the date-context block the reasoning step uses to
// resolve relative and year-less dates. The month guide always recommends
// future dates: a month already passed this calendar year maps to next
// year; the current month depends on the requested day relative to today.
func CurrentDateInfo(now time.Time) string {
	year, month, day := now.Year(), now.Month(), now.Day()
	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)

	var guide strings.Builder
	for m := time.January; m <= time.December; m++ {
		switch {
		case m < month:
			fmt.Fprintf(&guide, "  - %s → %d\n", m, year+1)
		case m == month:
			fmt.Fprintf(&guide, "  - %s → %d (if day > %d) or %d (if day <= %d)\n",
				m, year, day, year+1, day)
		default:
			fmt.Fprintf(&guide, "  - %s → %d\n", m, year)
		}
	}

	return fmt.Sprintf(`Current Date Information:
- Today: %s (%s)
- Current month: %s %d
- Day of month: %d
- Tomorrow: %s
- Next week: %s
- %s

CRITICAL - Month to Year Mapping (ALWAYS use future dates):
%s
RULE: If user mentions a month without a year:
- If that month has ALREADY PASSED this year → Use NEXT year (%d)
- If that month is UPCOMING this year → Use THIS year (%d)`,
		now.Format("Monday, January 02, 2006"), now.Format("2006-01-02"),
		month, year,
		day,
		tomorrow.Format("2006-01-02"),
		nextWeek.Format("2006-01-02"),
		nextEighteenth(now),
		guide.String(),
		year+1, year)
}

// nextEighteenth states the next occurrence of the 18th: this month while
// the 18th has not passed, otherwise next month, rolling December into
// January of the following year.
func nextEighteenth(now time.Time) string {
	if now.Day() < 18 {
		d := time.Date(now.Year(), now.Month(), 18, 0, 0, 0, 0, now.Location())
		return fmt.Sprintf("18th of this month (%s) is %s", now.Month(), d.Format("2006-01-02"))
	}
	year, month := now.Year(), now.Month()+1
	if now.Month() == time.December {
		year, month = now.Year()+1, time.January
	}
	d := time.Date(year, month, 18, 0, 0, 0, 0, now.Location())
	return fmt.Sprintf("18th of next month is %s", d.Format("2006-01-02"))
}
