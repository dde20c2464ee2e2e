package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"txtcal/internal/calendar"
	"txtcal/internal/config"
	"txtcal/internal/dateutil"
	"txtcal/internal/ics"
	appLog "txtcal/internal/log"
	"txtcal/internal/model"
	"txtcal/internal/textblock"
)

// loadEvents gathers inline events and events from every configured ICS
// file. Unreadable ICS files are logged and skipped.
func loadEvents(conf *config.Config) ([]model.Event, error) {
	events, err := conf.InlineEvents()
	if err != nil {
		return nil, err
	}

	sources := make([]ics.Source, 0, len(conf.ICS))
	for _, c := range conf.ICS {
		if c.Path == "" {
			continue
		}
		id := c.ID
		if id == "" {
			id = c.Path
		}
		sources = append(sources, ics.Source{ID: id, Path: c.Path})
	}

	fromFiles, errs := ics.LoadAll(sources)
	if len(errs) > 0 {
		appLog.Info("some ICS sources were skipped", "error_count", len(errs))
	}
	return append(events, fromFiles...), nil
}

// newRenderer wires the date and text collaborators from conf.
func newRenderer(conf *config.Config) *calendar.Renderer {
	return calendar.New(
		dateutil.New(conf.WeekStartDay()),
		textblock.NewLipglossComposer(conf.CellWidth),
		conf.CalendarOptions(),
	)
}

func renderOnce(conf *config.Config, year, month int) error {
	events, err := loadEvents(conf)
	if err != nil {
		return err
	}

	page := newRenderer(conf).DisplayMonth(year, month, events)

	if conf.Output == "" {
		return writePage(os.Stdout, page)
	}
	if err := writeFileAtomic(conf.Output, page); err != nil {
		return err
	}
	appLog.Info("page written", "path", conf.Output, "year", year, "month", month, "events", len(events))
	return nil
}

func writePage(w io.Writer, page textblock.Block) error {
	_, err := fmt.Fprintln(w, page.String())
	return err
}

// writeFileAtomic replaces path with the page so readers never see a
// partially written file.
func writeFileAtomic(path string, page textblock.Block) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".txtcal-page-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := writePage(tmp, page); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
