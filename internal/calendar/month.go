package calendar

const (
	// WeekLength is the number of columns in the grid.
	WeekLength = 7
	// GridCells is the number of day cells on every page (6 weeks).
	GridCells = WeekLength * 6

	// FailureLabel replaces the month name when the month number is unknown.
	FailureLabel = "Failure"
)

// DayRange is an inclusive run of day numbers. A range with High < Low is
// empty.
type DayRange struct {
	Low  int
	High int
}

// Len returns the number of days in r.
func (r DayRange) Len() int {
	if r.High < r.Low {
		return 0
	}
	return r.High - r.Low + 1
}

// Contains reports whether day lies within r.
func (r DayRange) Contains(day int) bool {
	return r.Low <= day && day <= r.High
}

// Spans holds the days borrowed from the neighbouring months to fill the
// first and last rows of the grid.
type Spans struct {
	Leading  DayRange // tail of the previous month
	Trailing DayRange // head of the next month
}

// PreviousMonth returns the month before (year, month).
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// NextMonth returns the month after (year, month).
func NextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// ResolveSpans computes the leading and trailing spans for a month whose
// first day falls in column firstWeekday.
func ResolveSpans(firstWeekday, daysInMonth, daysInPreviousMonth int) Spans {
	return Spans{
		Leading: DayRange{
			Low:  daysInPreviousMonth - firstWeekday + 1,
			High: daysInPreviousMonth,
		},
		Trailing: DayRange{
			Low:  1,
			High: GridCells - daysInMonth - firstWeekday,
		},
	}
}

// MonthName looks up the name of month (1-12) in names.
func MonthName(month int, names [12]string) string {
	if month < 1 || month > 12 {
		return FailureLabel
	}
	return names[month-1]
}
