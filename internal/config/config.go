package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"txtcal/internal/calendar"
	"txtcal/internal/dateutil"
	"txtcal/internal/model"
)

const (
	defaultCellWidth = 12
	defaultLogLevel  = "info"
	defaultWeekStart = "sunday"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ICSConfig describes a local .ics file to read events from.
type ICSConfig struct {
	// ID is an internal identifier used for logging.
	ID string `yaml:"id" json:"id"`
	// Path is the file location; relative paths resolve against the
	// working directory.
	Path string `yaml:"path" json:"path"`
}

// EventConfig is an event written directly into the config file.
type EventConfig struct {
	Date        string `yaml:"date" json:"date"` // YYYY-MM-DD
	Time        string `yaml:"time" json:"time"` // HH:MM, empty means 00:00
	Description string `yaml:"description" json:"description"`
}

// Config is the top-level application configuration.
type Config struct {
	// WeekStart controls which weekday is the first grid column.
	// Supported values:
	//   - "sunday" (default)
	//   - "monday"
	WeekStart string `yaml:"week_start" json:"week_start"`

	// ShowSurroundingEvents places events of the previous and next month
	// in the borrowed leading/trailing cells.
	ShowSurroundingEvents bool `yaml:"show_surrounding_events" json:"show_surrounding_events"`

	// LegacyTimeOrder sorts same-day events by the packed hour/minute value
	// instead of chronologically.
	LegacyTimeOrder bool `yaml:"legacy_time_order" json:"legacy_time_order"`

	// CellWidth wraps event text wider than this many columns. 0 disables
	// wrapping.
	CellWidth int `yaml:"cell_width" json:"cell_width"`

	// WeekdayLabels are Sunday-first header labels (7 entries).
	WeekdayLabels []string `yaml:"weekday_labels" json:"weekday_labels"`

	// MonthNames are January-first month names (12 entries).
	MonthNames []string `yaml:"month_names" json:"month_names"`

	// RefreshCron is a cron-style schedule (e.g. "0 * * * *") for
	// re-rendering the current month. Empty means render once and exit.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// Output is the file the page is written to. Empty means stdout.
	Output string `yaml:"output" json:"output"`

	// LogLevel is one of "debug", "info", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`

	// ICS is the list of calendar files to read events from.
	ICS []ICSConfig `yaml:"ics" json:"ics"`

	// Events are listed inline in the config file.
	Events []EventConfig `yaml:"events" json:"events"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		WeekStart:     defaultWeekStart,
		CellWidth:     defaultCellWidth,
		WeekdayLabels: defaultWeekdayLabels(),
		MonthNames:    defaultMonthNames(),
		LogLevel:      defaultLogLevel,
		ICS:           []ICSConfig{},
		Events:        []EventConfig{},
	}
}

func defaultWeekdayLabels() []string {
	return append([]string(nil), calendar.DefaultWeekdayLabels[:]...)
}

func defaultMonthNames() []string {
	return append([]string(nil), calendar.DefaultMonthNames[:]...)
}

// Normalize fills in missing/invalid values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	switch strings.ToLower(c.WeekStart) {
	case "monday", "sunday":
		c.WeekStart = strings.ToLower(c.WeekStart)
	default:
		c.WeekStart = defaultWeekStart
	}
	if c.CellWidth < 0 {
		c.CellWidth = defaultCellWidth
	}
	if len(c.WeekdayLabels) != calendar.WeekLength {
		c.WeekdayLabels = defaultWeekdayLabels()
	}
	if len(c.MonthNames) != 12 {
		c.MonthNames = defaultMonthNames()
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.ICS == nil {
		c.ICS = []ICSConfig{}
	}
	if c.Events == nil {
		c.Events = []EventConfig{}
	}
}

// WeekStartDay returns the configured first weekday.
func (c *Config) WeekStartDay() time.Weekday {
	return dateutil.ParseWeekStart(c.WeekStart)
}

// CalendarOptions converts the config into renderer options. Weekday labels
// are rotated to match WeekStart.
func (c *Config) CalendarOptions() calendar.Options {
	opts := calendar.DefaultOptions()
	opts.IncludeSurroundingEvents = c.ShowSurroundingEvents
	opts.LegacyTimeOrder = c.LegacyTimeOrder

	labels := calendar.DefaultWeekdayLabels
	if len(c.WeekdayLabels) == calendar.WeekLength {
		copy(labels[:], c.WeekdayLabels)
	}
	opts.WeekdayLabels = dateutil.WeekdayLabels(c.WeekStartDay(), labels)

	if len(c.MonthNames) == 12 {
		copy(opts.MonthNames[:], c.MonthNames)
	}
	return opts
}

// InlineEvents parses the events listed in the config file.
func (c *Config) InlineEvents() ([]model.Event, error) {
	events := make([]model.Event, 0, len(c.Events))
	for i, ec := range c.Events {
		ev, err := ec.Event()
		if err != nil {
			return nil, fmt.Errorf("config: event %d (%q): %w", i, ec.Description, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Event converts the entry into a model.Event.
func (ec EventConfig) Event() (model.Event, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(ec.Date))
	if err != nil {
		return model.Event{}, fmt.Errorf("invalid date: %w", err)
	}

	var hh, mm int
	if s := strings.TrimSpace(ec.Time); s != "" {
		t, err := time.Parse(timeLayout, s)
		if err != nil {
			return model.Event{}, fmt.Errorf("invalid time: %w", err)
		}
		hh, mm = t.Hour(), t.Minute()
	}

	return model.Event{
		Date:        model.Date{Year: d.Year(), Month: int(d.Month()), Day: d.Day()},
		Time:        model.Time{Hour: hh, Minute: mm},
		Description: ec.Description,
	}, nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".txtcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
