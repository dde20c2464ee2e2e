package model

import "fmt"

// Date is a calendar date as supplied by the caller. No validity checks are
// applied; an out-of-range day or month simply never matches a grid cell.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// Time is a wall-clock time of day without any timezone.
type Time struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// Event is a single dated entry shown inside a day cell.
type Event struct {
	Date        Date
	Time        Time
	Description string
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinuteOfDay returns the number of minutes since midnight.
func (t Time) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}
