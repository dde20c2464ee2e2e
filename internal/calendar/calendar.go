// Package calendar renders one month as a 6x7 text grid with events placed
// in their day cells.
//
// The page is built in one pass: the spans borrowed from the neighbouring
// months are resolved, events are selected and grouped per day, every day
// becomes a cell, and the 42 cells plus a weekday header are laid out as a
// bordered table under a "<Month> <Year>" title. Rendering is delegated to a
// Composer and date questions to a DateUtil, so a Renderer holds no state of
// its own and is safe for concurrent use if its collaborators are.
package calendar

import (
	"strconv"

	appLog "txtcal/internal/log"
	"txtcal/internal/model"
	"txtcal/internal/textblock"
)

// DateUtil answers calendar questions. DayOfWeek must return a 0-based
// column that matches the order of Options.WeekdayLabels.
type DateUtil interface {
	DayOfWeek(year, month, day int) int
	DaysInMonth(year, month int) int
}

// Composer renders and combines text blocks.
type Composer interface {
	MakeBlock(text string) textblock.Block
	StackVertical(top, bottom textblock.Block) textblock.Block
	ConcatHorizontal(left, right textblock.Block) textblock.Block
	NormalizeHeights(blocks []textblock.Block) []textblock.Block
	BorderedTable(rows [][]textblock.Block) textblock.Block
}

// Options controls what a page shows.
type Options struct {
	// IncludeSurroundingEvents shows events in the leading and trailing
	// cells borrowed from the neighbouring months. Off by default.
	IncludeSurroundingEvents bool

	// LegacyTimeOrder orders events within a day by PackTime instead of
	// by minute of day.
	LegacyTimeOrder bool

	WeekdayLabels [7]string
	MonthNames    [12]string
}

var (
	DefaultWeekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	DefaultMonthNames    = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

// DefaultOptions returns Sunday-first labels, English month names and
// surrounding events hidden.
func DefaultOptions() Options {
	return Options{
		WeekdayLabels: DefaultWeekdayLabels,
		MonthNames:    DefaultMonthNames,
	}
}

// Renderer builds calendar pages.
type Renderer struct {
	dates DateUtil
	text  Composer
	opts  Options
}

// New returns a Renderer using the given collaborators.
func New(dates DateUtil, text Composer, opts Options) *Renderer {
	return &Renderer{dates: dates, text: text, opts: opts}
}

func (r *Renderer) timeKey() TimeKey {
	if r.opts.LegacyTimeOrder {
		return PackTime
	}
	return MinuteOfDay
}

// RenderDay returns the cell for day: the day number, with the day's event
// descriptions stacked underneath in the given order.
func (r *Renderer) RenderDay(day int, events []model.Event) textblock.Block {
	label := r.RenderEmptyDay(day)
	if len(events) == 0 {
		return label
	}

	body := r.text.MakeBlock(events[0].Description)
	for _, ev := range events[1:] {
		body = r.text.StackVertical(body, r.text.MakeBlock(ev.Description))
	}
	return r.text.StackVertical(label, body)
}

// RenderEmptyDay returns a cell holding only the day number.
func (r *Renderer) RenderEmptyDay(day int) textblock.Block {
	return r.text.MakeBlock(strconv.Itoa(day))
}

// BuildMonthSegment returns one cell per day in days, in order. Events are
// placed only when includeEvents is set.
func (r *Renderer) BuildMonthSegment(year, month int, days DayRange, includeEvents bool, events []model.Event) []textblock.Block {
	cells := make([]textblock.Block, 0, days.Len())

	if !includeEvents {
		for d := days.Low; d <= days.High; d++ {
			cells = append(cells, r.RenderEmptyDay(d))
		}
		return cells
	}

	byDay := SelectAndGroup(year, month, days, events, r.timeKey())
	for d := days.Low; d <= days.High; d++ {
		cells = append(cells, r.RenderDay(d, byDay[d]))
	}
	return cells
}

// DisplayMonth renders the page for (year, month).
func (r *Renderer) DisplayMonth(year, month int, events []model.Event) textblock.Block {
	daysInMonth := r.dates.DaysInMonth(year, month)
	firstWeekday := r.dates.DayOfWeek(year, month, 1)

	prevYear, prevMonth := PreviousMonth(year, month)
	nextYear, nextMonth := NextMonth(year, month)
	spans := ResolveSpans(firstWeekday, daysInMonth, r.dates.DaysInMonth(prevYear, prevMonth))

	leading := r.BuildMonthSegment(prevYear, prevMonth, spans.Leading, r.opts.IncludeSurroundingEvents, events)
	current := r.BuildMonthSegment(year, month, DayRange{Low: 1, High: daysInMonth}, true, events)
	trailing := r.BuildMonthSegment(nextYear, nextMonth, spans.Trailing, r.opts.IncludeSurroundingEvents, events)

	appLog.Debug("calendar: render month",
		"year", year,
		"month", month,
		"events", len(events),
		"leading", len(leading),
		"current", len(current),
		"trailing", len(trailing),
	)

	cells := make([]textblock.Block, 0, WeekLength+GridCells)
	for _, label := range r.opts.WeekdayLabels {
		cells = append(cells, r.text.MakeBlock(label))
	}
	cells = append(cells, leading...)
	cells = append(cells, current...)
	cells = append(cells, trailing...)
	cells = r.text.NormalizeHeights(cells)

	rows := make([][]textblock.Block, 0, len(cells)/WeekLength+1)
	for start := 0; start < len(cells); start += WeekLength {
		end := start + WeekLength
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[start:end])
	}
	grid := r.text.BorderedTable(rows)

	title := r.text.ConcatHorizontal(
		r.text.MakeBlock(MonthName(month, r.opts.MonthNames)+" "),
		r.text.MakeBlock(strconv.Itoa(year)),
	)
	return r.text.StackVertical(title, grid)
}
