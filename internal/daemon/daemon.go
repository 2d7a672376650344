package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/username/hours-pulse/internal/badge"
	"github.com/username/hours-pulse/internal/calendar"
	"github.com/username/hours-pulse/internal/holidays"
	"github.com/username/hours-pulse/internal/progress"
	"github.com/username/hours-pulse/internal/settings"
	"go.uber.org/zap"
)

// Daemon keeps the progress verdict current while the hours file and the
// settings change underneath it
type Daemon struct {
	store         *settings.Store
	calculator    *progress.Calculator
	holidays      holidays.Source // nil disables holiday import
	hoursFile     string
	checkInterval time.Duration
	systemTray    bool
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	trayApp       *TrayApp
	now           func() time.Time

	mu      sync.Mutex // Protects the fields below
	last    *progress.ProgressData
	lastErr error
	lastRun time.Time
}

// NewDaemon creates a new daemon instance
func NewDaemon(
	store *settings.Store,
	calculator *progress.Calculator,
	holidaySource holidays.Source,
	hoursFile string,
	checkInterval time.Duration,
	systemTray bool,
	logger *zap.Logger,
) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		store:         store,
		calculator:    calculator,
		holidays:      holidaySource,
		hoursFile:     hoursFile,
		checkInterval: checkInterval,
		systemTray:    systemTray,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		now:           time.Now,
	}
}

// Start starts the daemon and blocks until it is stopped
func (d *Daemon) Start() error {
	// Initialize system tray if enabled (Windows only)
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			return d.run()
		}
		d.trayApp = trayApp
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	return d.run()
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// run recomputes on start, on every tick and whenever the settings or hours
// file change
func (d *Daemon) run() error {
	d.logger.Info("Watch started",
		zap.String("hours_file", d.hoursFile),
		zap.String("settings_file", d.store.Path()),
		zap.Duration("check_interval", d.checkInterval))

	changed := make(chan string, 1)
	notify := func(reason string) {
		select {
		case changed <- reason:
		default:
		}
	}

	go func() {
		if err := d.store.Watch(d.ctx, func(settings.Settings) { notify("settings") }); err != nil {
			d.logger.Warn("Settings watch stopped", zap.Error(err))
		}
	}()
	go func() {
		if err := d.watchHoursFile(d.ctx, func() { notify("hours") }); err != nil {
			d.logger.Warn("Hours file watch stopped", zap.Error(err))
		}
	}()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(d.checkInterval)
	defer ticker.Stop()

	d.importHolidays()
	d.refreshAndReport("startup")

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Watch stopped")
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			return nil

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			d.Stop()
			return nil

		case reason := <-changed:
			d.refreshAndReport(reason)

		case <-ticker.C:
			d.importHolidays()
			d.refreshAndReport("interval")
		}
	}
}

func (d *Daemon) refreshAndReport(reason string) {
	p, err := d.Refresh()
	switch {
	case errors.Is(err, progress.ErrNotApplicable):
		d.logger.Info("No progress for the current month", zap.String("trigger", reason))
	case err != nil:
		d.logger.Error("Progress refresh failed", zap.String("trigger", reason), zap.Error(err))
		if d.trayApp != nil {
			d.trayApp.SetStatus("⚠️ error", err.Error())
		}
	default:
		d.logger.Info("Progress refreshed",
			zap.String("trigger", reason),
			zap.String("verdict", badge.Plain(p)),
			zap.String("expected", progress.FormatTime(p.ExpectedHours)),
			zap.String("actual", progress.FormatTime(p.ActualHours)),
			zap.Int("difference_minutes", p.Difference.SignedMinutes()),
			zap.Int("working_days_passed", p.WorkingDaysPassed),
			zap.Int("total_working_days", p.TotalWorkingDays),
			zap.Float64("progress_percent", p.ProgressPercentage))
		if d.trayApp != nil {
			d.trayApp.SetStatus(badge.Plain(p), d.Summary())
		}
	}
}

// Refresh reads the hours token and settings and recomputes progress
func (d *Daemon) Refresh() (*progress.ProgressData, error) {
	data, err := os.ReadFile(d.hoursFile)
	if err != nil {
		err = fmt.Errorf("failed to read hours file: %w", err)
		d.record(nil, err)
		return nil, err
	}
	text := strings.TrimSpace(string(data))

	st, err := d.store.Load()
	if err != nil {
		d.record(nil, err)
		return nil, err
	}

	p, err := d.calculator.Compute(text, st, nil, d.now())
	d.record(p, err)
	return p, err
}

func (d *Daemon) record(p *progress.ProgressData, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = p
	d.lastErr = err
	d.lastRun = d.now()
}

// Last returns the result of the most recent refresh
func (d *Daemon) Last() (*progress.ProgressData, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.lastErr
}

// Summary returns a multi-line status for tray tooltips
func (d *Daemon) Summary() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lastErr != nil {
		return fmt.Sprintf("Error: %v", d.lastErr)
	}
	if d.last == nil {
		return "No progress available"
	}

	p := d.last
	return fmt.Sprintf(
		"Logged: %s\nExpected: %s\nWorking days: %d / %d\nProgress: %s\nUpdated: %s",
		progress.FormatTime(p.ActualHours),
		progress.FormatTime(p.ExpectedHours),
		p.WorkingDaysPassed, p.TotalWorkingDays,
		progress.FormatPercentage(p.ProgressPercentage),
		d.lastRun.Format("15:04:05"),
	)
}

func (d *Daemon) importHolidays() {
	added, err := d.SyncHolidays(d.ctx)
	if err != nil {
		d.logger.Warn("Holiday import failed", zap.Error(err))
		return
	}
	if added > 0 {
		d.logger.Info("Holidays imported", zap.Int("added", added))
	}
}

// SyncHolidays merges the current year's holidays from the source into the
// settings and returns how many keys were added. The settings file is only
// written when something is missing.
func (d *Daemon) SyncHolidays(ctx context.Context) (int, error) {
	if d.holidays == nil {
		return 0, nil
	}

	year := d.now().Year()
	list, err := d.holidays.Holidays(ctx, year)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch holidays for %d: %w", year, err)
	}

	st, err := d.store.Load()
	if err != nil {
		return 0, err
	}

	known := calendar.NewHolidaySet(st.Holidays)
	var missing []string
	for _, key := range holidays.Keys(list) {
		if !known.Contains(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	if _, err := d.store.AddHolidays(missing); err != nil {
		return 0, err
	}
	return len(missing), nil
}

// RefreshNow triggers an immediate refresh (called from tray menu)
func (d *Daemon) RefreshNow() {
	d.logger.Info("Manual refresh triggered from tray")
	d.refreshAndReport("manual")
}

// watchHoursFile calls fn whenever the hours file is written or replaced
func (d *Daemon) watchHoursFile(ctx context.Context, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(d.hoursFile)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(d.hoursFile)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) == target &&
				(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				fn()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.logger.Warn("Hours file watcher error", zap.Error(err))
		}
	}
}
