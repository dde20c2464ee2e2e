package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "txtcal/internal/log"
	"txtcal/internal/model"
)

// ParseICS parses a single ICS payload into calendar events.
//
//   - The wall clock of DTSTART becomes the event date and time; no
//     timezone conversion is done.
//   - All-day events (VALUE=DATE or a DTSTART without 'T') start at 00:00.
//   - SUMMARY is used as the description, falling back to DESCRIPTION.
//   - RRULE is not expanded; only the DTSTART instance is emitted.
//
// VEVENTs that cannot be read are logged and skipped.
func ParseICS(src Source, body []byte) ([]model.Event, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("ics: %s: empty body", src.ID)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ics: %s: %w", src.ID, err)
	}

	events := make([]model.Event, 0)
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			appLog.Error("ics vevent skipped", perr, "id", src.ID, "path", src.Path)
			continue
		}
		if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
			appLog.Debug("ics recurrence ignored", "id", src.ID, "rrule", p.Value, "description", ev.Description)
		}
		events = append(events, ev)
	}

	appLog.Info("ics parse completed", "id", src.ID, "path", src.Path, "event_count", len(events))
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (model.Event, error) {
	var out model.Event

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Description = p.Value
	}
	if out.Description == "" {
		if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
			out.Description = p.Value
		}
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || strings.TrimSpace(dtStart.Value) == "" {
		return out, errors.New("missing DTSTART")
	}

	var start time.Time
	if isAllDay(dtStart) {
		t, err := parseICSTime(dtStart.Value)
		if err != nil {
			return out, fmt.Errorf("DTSTART %q: %w", dtStart.Value, err)
		}
		start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		t, err := ve.GetStartAt()
		if err != nil {
			// Unknown TZID or similar; fall back to the literal value.
			t, err = parseICSTime(dtStart.Value)
			if err != nil {
				return out, fmt.Errorf("DTSTART %q: %w", dtStart.Value, err)
			}
		}
		start = t
	}

	out.Date = model.Date{Year: start.Year(), Month: int(start.Month()), Day: start.Day()}
	out.Time = model.Time{Hour: start.Hour(), Minute: start.Minute()}
	return out, nil
}

// isAllDay reports whether DTSTART is a plain date.
func isAllDay(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime parses a basic ICS date/date-time without parameter
// context, keeping the written wall clock.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	// UTC form, e.g., 20250101T090000Z
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}

	// Floating date-time, e.g., 20250101T090000
	if strings.Contains(v, "T") {
		return time.Parse("20060102T150405", v)
	}

	// Date-only (all-day), e.g., 20250101
	return time.Parse("20060102", v)
}
