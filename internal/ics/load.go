package ics

import (
	"errors"
	"fmt"
	"os"

	appLog "txtcal/internal/log"
	"txtcal/internal/model"
)

// Source is a single .ics file to read events from.
type Source struct {
	// ID is an internal identifier (e.g., config ICS ID).
	ID string
	// Path is the file location.
	Path string
}

// LoadFile reads and parses one source.
func LoadFile(src Source) ([]model.Event, error) {
	if src.Path == "" {
		return nil, errors.New("ics: source path is empty")
	}
	if src.ID == "" {
		src.ID = src.Path
	}

	body, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("ics: %s: %w", src.ID, err)
	}
	return ParseICS(src, body)
}

// LoadAll loads every source and concatenates their events in source order.
// A failing source is logged and reported in the error slice; the remaining
// sources are still loaded.
func LoadAll(sources []Source) ([]model.Event, []error) {
	events := make([]model.Event, 0)
	errs := make([]error, 0)

	for _, src := range sources {
		evs, err := LoadFile(src)
		if err != nil {
			errs = append(errs, err)
			appLog.Error("ics load failed", err, "id", src.ID, "path", src.Path)
			continue
		}
		events = append(events, evs...)
	}

	return events, errs
}
