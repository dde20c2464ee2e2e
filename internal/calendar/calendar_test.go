package calendar

import (
	"strings"
	"testing"
	"time"

	"txtcal/internal/dateutil"
	"txtcal/internal/model"
	"txtcal/internal/textblock"
)

// fakeComposer keeps blocks as plain newline-joined text and records the
// rows handed to BorderedTable.
type fakeComposer struct {
	rows [][]textblock.Block
}

func (f *fakeComposer) MakeBlock(text string) textblock.Block { return textblock.Block(text) }

func (f *fakeComposer) StackVertical(top, bottom textblock.Block) textblock.Block {
	return top + "\n" + bottom
}

func (f *fakeComposer) ConcatHorizontal(left, right textblock.Block) textblock.Block {
	return left + right
}

func (f *fakeComposer) NormalizeHeights(blocks []textblock.Block) []textblock.Block {
	maxLines := 0
	for _, b := range blocks {
		if n := strings.Count(string(b), "\n") + 1; n > maxLines {
			maxLines = n
		}
	}
	out := make([]textblock.Block, len(blocks))
	for i, b := range blocks {
		n := strings.Count(string(b), "\n") + 1
		out[i] = b + textblock.Block(strings.Repeat("\n", maxLines-n))
	}
	return out
}

func (f *fakeComposer) BorderedTable(rows [][]textblock.Block) textblock.Block {
	f.rows = rows
	return "<table>"
}

func event(y, m, d, hh, mm int, desc string) model.Event {
	return model.Event{
		Date:        model.Date{Year: y, Month: m, Day: d},
		Time:        model.Time{Hour: hh, Minute: mm},
		Description: desc,
	}
}

func newTestRenderer(opts Options) (*Renderer, *fakeComposer) {
	fc := &fakeComposer{}
	return New(dateutil.New(time.Sunday), fc, opts), fc
}

// cellText returns the non-padding lines of a rendered cell.
func cellText(b textblock.Block) []string {
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func dayCells(fc *fakeComposer) []textblock.Block {
	var out []textblock.Block
	for _, row := range fc.rows[1:] {
		out = append(out, row...)
	}
	return out
}

func TestPreviousNextMonth(t *testing.T) {
	if y, m := NextMonth(2023, 12); y != 2024 || m != 1 {
		t.Errorf("NextMonth(2023, 12) = %d, %d", y, m)
	}
	if y, m := PreviousMonth(2023, 1); y != 2022 || m != 12 {
		t.Errorf("PreviousMonth(2023, 1) = %d, %d", y, m)
	}

	for _, y := range []int{1999, 2000, 2023, 2024} {
		for m := 1; m <= 12; m++ {
			py, pm := PreviousMonth(y, m)
			if ny, nm := NextMonth(py, pm); ny != y || nm != m {
				t.Errorf("NextMonth(PreviousMonth(%d, %d)) = %d, %d", y, m, ny, nm)
			}
			ny, nm := NextMonth(y, m)
			if py, pm := PreviousMonth(ny, nm); py != y || pm != m {
				t.Errorf("PreviousMonth(NextMonth(%d, %d)) = %d, %d", y, m, py, pm)
			}
		}
	}
}

func TestResolveSpans(t *testing.T) {
	tests := []struct {
		name                      string
		first, days, prevDays     int
		wantLeading, wantTrailing DayRange
	}{
		{"february 2023", 3, 28, 31, DayRange{29, 31}, DayRange{1, 11}},
		{"starts on first column", 0, 31, 30, DayRange{31, 30}, DayRange{1, 11}},
		{"starts on last column", 6, 31, 30, DayRange{25, 30}, DayRange{1, 5}},
	}

	for _, tt := range tests {
		got := ResolveSpans(tt.first, tt.days, tt.prevDays)
		if got.Leading != tt.wantLeading || got.Trailing != tt.wantTrailing {
			t.Errorf("%s: got %+v, want leading=%+v trailing=%+v", tt.name, got, tt.wantLeading, tt.wantTrailing)
		}
		if n := got.Leading.Len() + tt.days + got.Trailing.Len(); n != GridCells {
			t.Errorf("%s: %d cells, want %d", tt.name, n, GridCells)
		}
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(2, DefaultMonthNames); got != "February" {
		t.Errorf("MonthName(2) = %q", got)
	}
	for _, m := range []int{0, 13, -1} {
		if got := MonthName(m, DefaultMonthNames); got != FailureLabel {
			t.Errorf("MonthName(%d) = %q, want %q", m, got, FailureLabel)
		}
	}
}

func TestPackTime(t *testing.T) {
	tests := []struct {
		hour, minute, want int
	}{
		{9, 0, 900},
		{9, 5, 95},
		{9, 50, 950},
		{10, 0, 1000},
		{14, 30, 1430},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := PackTime(model.Time{Hour: tt.hour, Minute: tt.minute}); got != tt.want {
			t.Errorf("PackTime(%02d:%02d) = %d, want %d", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestSelectAndGroup(t *testing.T) {
	events := []model.Event{
		event(2023, 2, 15, 14, 30, "Review"),
		event(2023, 2, 15, 9, 0, "Standup"),
		event(2023, 2, 15, 9, 5, "Coffee"),
		event(2023, 2, 3, 10, 0, "Dentist"),
		event(2023, 3, 15, 9, 0, "Other month"),
		event(2022, 2, 15, 9, 0, "Other year"),
		event(2023, 2, 27, 9, 0, "Out of range"),
	}

	got := SelectAndGroup(2023, 2, DayRange{1, 20}, events, nil)

	if len(got) != 2 {
		t.Fatalf("grouped days = %d, want 2: %v", len(got), got)
	}
	var order []string
	for _, ev := range got[15] {
		order = append(order, ev.Description)
	}
	if strings.Join(order, ",") != "Standup,Coffee,Review" {
		t.Errorf("day 15 order = %v", order)
	}
	if len(got[3]) != 1 || got[3][0].Description != "Dentist" {
		t.Errorf("day 3 = %v", got[3])
	}
}

func TestSelectAndGroupLegacyOrder(t *testing.T) {
	events := []model.Event{
		event(2023, 2, 15, 9, 0, "Standup"),
		event(2023, 2, 15, 9, 5, "Coffee"),
		event(2023, 2, 15, 9, 50, "Sync"),
		event(2023, 2, 15, 10, 0, "Review"),
	}

	got := SelectAndGroup(2023, 2, DayRange{1, 28}, events, PackTime)

	var order []string
	for _, ev := range got[15] {
		order = append(order, ev.Description)
	}
	// 09:05 packs to 95 and lands ahead of 09:00 (900).
	if strings.Join(order, ",") != "Coffee,Standup,Sync,Review" {
		t.Errorf("legacy order = %v", order)
	}
}

func TestSelectAndGroupStable(t *testing.T) {
	events := []model.Event{
		event(2023, 2, 1, 8, 0, "first"),
		event(2023, 2, 1, 8, 0, "second"),
	}
	got := SelectAndGroup(2023, 2, DayRange{1, 28}, events, nil)
	if got[1][0].Description != "first" || got[1][1].Description != "second" {
		t.Errorf("equal keys reordered: %v", got[1])
	}
}

func TestRenderDay(t *testing.T) {
	r, _ := newTestRenderer(DefaultOptions())

	if got := r.RenderDay(7, nil); got != "7" {
		t.Errorf("empty day = %q", got)
	}
	if got := r.RenderEmptyDay(7); got != "7" {
		t.Errorf("RenderEmptyDay = %q", got)
	}

	got := r.RenderDay(15, []model.Event{
		event(2023, 2, 15, 9, 0, "Meeting"),
		event(2023, 2, 15, 14, 30, "Gym"),
	})
	if got != "15\nMeeting\nGym" {
		t.Errorf("RenderDay = %q", got)
	}
}

func TestBuildMonthSegment(t *testing.T) {
	r, _ := newTestRenderer(DefaultOptions())
	events := []model.Event{event(2023, 1, 30, 9, 0, "Party")}

	cells := r.BuildMonthSegment(2023, 1, DayRange{29, 31}, true, events)
	if len(cells) != 3 {
		t.Fatalf("cells = %d, want 3", len(cells))
	}
	if cells[0] != "29" || cells[1] != "30\nParty" || cells[2] != "31" {
		t.Errorf("cells = %q", cells)
	}

	cells = r.BuildMonthSegment(2023, 1, DayRange{29, 31}, false, events)
	if cells[1] != "30" {
		t.Errorf("events shown with includeEvents off: %q", cells[1])
	}

	if cells := r.BuildMonthSegment(2023, 1, DayRange{32, 31}, true, events); len(cells) != 0 {
		t.Errorf("empty range produced %d cells", len(cells))
	}
}

func TestDisplayMonthFebruary2023(t *testing.T) {
	r, fc := newTestRenderer(DefaultOptions())
	page := r.DisplayMonth(2023, 2, []model.Event{event(2023, 2, 15, 9, 0, "Meeting")})

	if page != "February 2023\n<table>" {
		t.Errorf("page = %q", page)
	}
	if len(fc.rows) != 7 {
		t.Fatalf("rows = %d, want 7", len(fc.rows))
	}
	for i, row := range fc.rows {
		if len(row) != WeekLength {
			t.Errorf("row %d has %d cells", i, len(row))
		}
	}
	for i, label := range DefaultWeekdayLabels {
		if cellText(fc.rows[0][i])[0] != label {
			t.Errorf("header %d = %q, want %q", i, fc.rows[0][i], label)
		}
	}

	cells := dayCells(fc)
	if len(cells) != GridCells {
		t.Fatalf("day cells = %d, want %d", len(cells), GridCells)
	}

	// 2023-02-01 is a Wednesday: Jan 29-31 lead, Mar 1-11 trail.
	var days []string
	for _, c := range cells {
		days = append(days, cellText(c)[0])
	}
	if days[0] != "29" || days[2] != "31" || days[3] != "1" || days[30] != "28" || days[31] != "1" || days[41] != "11" {
		t.Errorf("unexpected day layout: %v", days)
	}

	meetings := 0
	for i, c := range cells {
		text := cellText(c)
		if strings.Contains(string(c), "Meeting") {
			meetings++
			if i != 3+14 || text[0] != "15" || text[1] != "Meeting" {
				t.Errorf("Meeting in cell %d: %q", i, text)
			}
		}
	}
	if meetings != 1 {
		t.Errorf("Meeting rendered %d times, want 1", meetings)
	}

	// All cells are padded to the tallest one.
	all := append(append([]textblock.Block{}, fc.rows[0]...), cells...)
	for i, c := range all {
		if n := strings.Count(string(c), "\n"); n != 1 {
			t.Errorf("cell %d not normalized: %q", i, c)
		}
	}
}

func TestDisplayMonthAlwaysFullGrid(t *testing.T) {
	for _, start := range []time.Weekday{time.Sunday, time.Monday} {
		for y := 2023; y <= 2024; y++ {
			for m := 1; m <= 12; m++ {
				fc := &fakeComposer{}
				r := New(dateutil.New(start), fc, DefaultOptions())
				r.DisplayMonth(y, m, nil)

				if len(fc.rows) != 7 {
					t.Fatalf("%d-%02d: rows = %d", y, m, len(fc.rows))
				}
				if n := len(dayCells(fc)); n != GridCells {
					t.Errorf("%d-%02d start=%v: %d day cells", y, m, start, n)
				}
			}
		}
	}
}

func TestDisplayMonthSurroundingEvents(t *testing.T) {
	events := []model.Event{
		event(2023, 1, 30, 9, 0, "January party"),
		event(2023, 3, 2, 9, 0, "March trip"),
	}

	r, fc := newTestRenderer(DefaultOptions())
	r.DisplayMonth(2023, 2, events)
	for _, c := range dayCells(fc) {
		if strings.Contains(string(c), "party") || strings.Contains(string(c), "trip") {
			t.Errorf("surrounding event shown with option off: %q", c)
		}
	}

	opts := DefaultOptions()
	opts.IncludeSurroundingEvents = true
	r, fc = newTestRenderer(opts)
	r.DisplayMonth(2023, 2, events)
	cells := dayCells(fc)
	if !strings.Contains(string(cells[1]), "January party") {
		t.Errorf("leading cell = %q, want January party", cells[1])
	}
	if !strings.Contains(string(cells[3+28+1]), "March trip") {
		t.Errorf("trailing cell = %q, want March trip", cells[3+28+1])
	}
}

func TestDisplayMonthTimeOrder(t *testing.T) {
	r, fc := newTestRenderer(DefaultOptions())
	r.DisplayMonth(2023, 2, []model.Event{
		event(2023, 2, 10, 14, 30, "Afternoon"),
		event(2023, 2, 10, 9, 0, "Morning"),
	})

	// 2023-02-10 sits at index 3+9.
	got := cellText(dayCells(fc)[12])
	if strings.Join(got, "|") != "10|Morning|Afternoon" {
		t.Errorf("cell = %q", got)
	}
}

func TestDisplayMonthRollover(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeSurroundingEvents = true
	r, fc := newTestRenderer(opts)

	page := r.DisplayMonth(2023, 12, []model.Event{
		event(2023, 11, 30, 8, 0, "November"),
		event(2024, 1, 1, 8, 0, "New year"),
	})
	if !strings.HasPrefix(string(page), "December 2023") {
		t.Errorf("title = %q", page)
	}

	var found []string
	for _, c := range dayCells(fc) {
		for _, want := range []string{"November", "New year"} {
			if strings.Contains(string(c), want) {
				found = append(found, want)
			}
		}
	}
	if strings.Join(found, ",") != "November,New year" {
		t.Errorf("surrounding events = %v", found)
	}
}

func TestDisplayMonthUnknownMonthName(t *testing.T) {
	r, _ := newTestRenderer(DefaultOptions())
	page := r.DisplayMonth(2023, 13, nil)
	if !strings.HasPrefix(string(page), FailureLabel+" 2023") {
		t.Errorf("page = %q", page)
	}
}

func TestDisplayMonthLipgloss(t *testing.T) {
	r := New(dateutil.New(time.Sunday), textblock.NewLipglossComposer(12), DefaultOptions())
	out := string(r.DisplayMonth(2023, 2, []model.Event{event(2023, 2, 15, 9, 0, "Meeting")}))

	for _, want := range []string{"February 2023", "Sun", "Sat", "15", "28", "Meeting", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q:\n%s", want, out)
		}
	}
}
