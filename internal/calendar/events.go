package calendar

import (
	"sort"

	"txtcal/internal/model"
)

// TimeKey maps a time of day to a comparable value for ordering events
// within a day.
type TimeKey func(t model.Time) int

// MinuteOfDay orders times chronologically.
func MinuteOfDay(t model.Time) int {
	return t.MinuteOfDay()
}

// PackTime reproduces the legacy ordering value: the hour followed by two
// zeros on the full hour, otherwise the hour followed directly by the minute
// digits. 09:00 packs to 900 while 09:05 packs to 95.
func PackTime(t model.Time) int {
	if t.Minute == 0 {
		return t.Hour * 100
	}
	scale := 10
	for m := t.Minute; m >= 10; m /= 10 {
		scale *= 10
	}
	return t.Hour*scale + t.Minute
}

// SelectAndGroup keeps the events dated in (year, month) whose day lies in
// days, orders them by date and then by key, and groups them by day. The
// order inside each group is the sorted order. A nil key means MinuteOfDay.
func SelectAndGroup(year, month int, days DayRange, events []model.Event, key TimeKey) map[int][]model.Event {
	if key == nil {
		key = MinuteOfDay
	}

	selected := make([]model.Event, 0)
	for _, ev := range events {
		if ev.Date.Year == year && ev.Date.Month == month && days.Contains(ev.Date.Day) {
			selected = append(selected, ev)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if a.Date != b.Date {
			return dateLess(a.Date, b.Date)
		}
		return key(a.Time) < key(b.Time)
	})

	byDay := make(map[int][]model.Event)
	for _, ev := range selected {
		byDay[ev.Date.Day] = append(byDay[ev.Date.Day], ev)
	}
	return byDay
}

func dateLess(a, b model.Date) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}
