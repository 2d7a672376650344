package main

import (
	"github.com/spf13/cobra"
	"github.com/username/hours-pulse/internal/daemon"
	"github.com/username/hours-pulse/internal/holidays"
	"github.com/username/hours-pulse/internal/progress"
	"go.uber.org/zap"
)

func watchCmd() *cobra.Command {
	var tray bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep recomputing progress while hours and settings change",
		Long: "Watch the hours file and the settings file, recompute progress on every change " +
			"and on watch.check_interval. With watch.import_holidays the current year's holidays are " +
			"merged from holidays.source on every check. With --tray (Windows) the verdict is shown in the system tray.",
		RunE: func(cmd *cobra.Command, args []string) error {
			systemTray := cfg.Watch.SystemTray
			if cmd.Flags().Changed("tray") {
				systemTray = tray
			}

			var source holidays.Source
			if cfg.Watch.ImportHolidays {
				source = newHolidaySource(&cfg.Holidays)
			}

			d := daemon.NewDaemon(
				openStore(),
				progress.NewCalculator(cfg.Progress.GetOnTrackTolerance()),
				source,
				cfg.Watch.HoursFile,
				cfg.Watch.GetCheckInterval(),
				systemTray,
				logger,
			)

			logger.Info("Starting watch",
				zap.Bool("system_tray", systemTray),
				zap.Bool("import_holidays", cfg.Watch.ImportHolidays))
			return d.Start()
		},
	}

	cmd.Flags().BoolVar(&tray, "tray", false, "Show a system tray icon (Windows only)")

	return cmd
}
