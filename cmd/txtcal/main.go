package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"txtcal/internal/config"
	appLog "txtcal/internal/log"
)

// flagConfig holds CLI flag values; zero values mean "use config/defaults".
type flagConfig struct {
	configPath  string
	year        int
	month       int
	out         string
	surrounding string
	once        bool
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))
	applyFlags(conf, flags)

	appLog.Info("effective config",
		"week_start", conf.WeekStart,
		"show_surrounding_events", conf.ShowSurroundingEvents,
		"cell_width", conf.CellWidth,
		"refresh", conf.RefreshCron,
		"output", conf.Output,
		"ics_count", len(conf.ICS),
		"inline_events", len(conf.Events),
		"once", flags.once,
	)

	// An explicit month, -once, or no schedule renders a single page.
	if flags.once || flags.year != 0 || flags.month != 0 || conf.RefreshCron == "" {
		year, month := targetMonth(time.Now(), flags.year, flags.month)
		if err := renderOnce(conf, year, month); err != nil {
			appLog.Error("render failed", err, "year", year, "month", month)
			os.Exit(1)
		}
		return
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := runScheduled(ctx, conf); err != nil {
		appLog.Error("scheduler failed", err, "refresh", conf.RefreshCron)
		os.Exit(1)
	}
	appLog.Info("txtcal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "./txtcal.yaml", "Path to config file")
	flag.IntVar(&cfg.year, "year", 0, "Year to render (default: current year)")
	flag.IntVar(&cfg.month, "month", 0, "Month to render, 1-12 (default: current month)")
	flag.StringVar(&cfg.out, "out", "", "Write the page to this file instead of config output/stdout")
	flag.StringVar(&cfg.surrounding, "surrounding", "", "Show events of neighbouring months: true|false (overrides config)")
	flag.BoolVar(&cfg.once, "once", false, "Render one page and exit, ignoring the refresh schedule")

	flag.Parse()

	return cfg
}

func applyFlags(conf *config.Config, flags flagConfig) {
	if flags.out != "" {
		conf.Output = flags.out
	}
	switch flags.surrounding {
	case "true", "1", "yes":
		conf.ShowSurroundingEvents = true
	case "false", "0", "no":
		conf.ShowSurroundingEvents = false
	}
}

// targetMonth fills unset year/month from now.
func targetMonth(now time.Time, year, month int) (int, int) {
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, month
}

// runScheduled renders the current month on every tick of conf.RefreshCron
// until ctx is canceled. The first page is rendered immediately.
func runScheduled(ctx context.Context, conf *config.Config) error {
	tick := func() {
		year, month := targetMonth(time.Now(), 0, 0)
		if err := renderOnce(conf, year, month); err != nil {
			appLog.Error("scheduled render failed", err, "year", year, "month", month)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(conf.RefreshCron, tick); err != nil {
		return err
	}

	tick()
	c.Start()
	appLog.Info("scheduler started", "refresh", conf.RefreshCron)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
