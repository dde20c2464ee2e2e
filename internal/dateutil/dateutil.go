package dateutil

import (
	"strings"
	"time"
)

// Calendar answers the two date questions the month renderer needs. Weekday
// indexes are relative to WeekStart, so index 0 is always the first column
// of the grid.
type Calendar struct {
	WeekStart time.Weekday
}

// New returns a Calendar whose weeks begin on weekStart.
func New(weekStart time.Weekday) Calendar {
	return Calendar{WeekStart: weekStart}
}

// ParseWeekStart maps a config value ("sunday", "monday") to a weekday.
// Unknown values fall back to Sunday.
func ParseWeekStart(s string) time.Weekday {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday":
		return time.Monday
	default:
		return time.Sunday
	}
}

// DayOfWeek returns the 0-based column of the given date.
func (c Calendar) DayOfWeek(year, month, day int) int {
	wd := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) - int(c.WeekStart) + 7) % 7
}

// DaysInMonth returns the number of days in the month, honoring leap years.
// Month values outside 1-12 are normalized the way time.Date does it.
func (c Calendar) DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// WeekdayLabels rotates Sunday-first labels so that the label for weekStart
// comes first.
func WeekdayLabels(weekStart time.Weekday, sundayFirst [7]string) [7]string {
	var out [7]string
	for i := range out {
		out[i] = sundayFirst[(i+int(weekStart))%7]
	}
	return out
}
