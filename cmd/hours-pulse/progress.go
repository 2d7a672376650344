package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/hours-pulse/internal/badge"
	"github.com/username/hours-pulse/internal/calendar"
	"github.com/username/hours-pulse/internal/progress"
	"github.com/username/hours-pulse/internal/settings"
	"go.uber.org/zap"
)

type progressReport struct {
	Month      string                 `json:"month" yaml:"month"`
	Applicable bool                   `json:"applicable" yaml:"applicable"`
	Message    string                 `json:"message,omitempty" yaml:"message,omitempty"`
	Progress   *progress.ProgressData `json:"progress,omitempty" yaml:"progress,omitempty"`
	Target     *progress.TargetStatus `json:"target,omitempty" yaml:"target,omitempty"`
}

func progressCmd() *cobra.Command {
	var monthStr, nowStr, format string

	cmd := &cobra.Command{
		Use:   "progress [hours]",
		Short: "Compare logged hours with the month-to-date pace",
		Long: "Compare logged hours (\"88h 30m\") with the hours expected from the working days passed so far. " +
			"Without an argument the hours are read from watch.hours_file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := parseMonthFlag(monthStr)
			if err != nil {
				return err
			}
			now, err := parseNowFlag(nowStr)
			if err != nil {
				return err
			}

			text, err := hoursText(args)
			if err != nil {
				return err
			}

			st, err := openStore().Load()
			if err != nil {
				return err
			}

			report, err := buildProgressReport(text, st, view, now)
			if err != nil {
				return err
			}

			return writeOutput(out, format, report, func() string {
				if !report.Applicable {
					return fmt.Sprintf("Progress is only tracked for the current month (%s)", report.Month)
				}
				return badge.Render(report.Progress, report.Target)
			})
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "Viewed month (YYYY-MM), defaults to the current month")
	cmd.Flags().StringVar(&nowStr, "now", "", "Override the current time (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVarP(&format, "output", "o", outputText, "Output format: text, json or yaml")

	return cmd
}

func buildProgressReport(text string, st settings.Settings, view *calendar.Month, now time.Time) (*progressReport, error) {
	calc := progress.NewCalculator(cfg.Progress.GetOnTrackTolerance())

	month := calendar.MonthOf(now)
	if view != nil {
		month = *view
	}
	report := &progressReport{Month: month.String()}

	p, err := calc.Compute(text, st, view, now)
	if errors.Is(err, progress.ErrNotApplicable) {
		logger.Debug("Viewed month is not the current one",
			zap.String("month", month.String()),
			zap.String("current", calendar.MonthOf(now).String()))
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compute progress: %w", err)
	}

	report.Applicable = true
	report.Progress = p
	report.Message = progress.FormatProgressMessage(p)
	report.Target = progress.MonthlyTargetStatus(p, st.MonthlyTarget)

	logger.Debug("Progress computed",
		zap.String("actual", progress.FormatTime(p.ActualHours)),
		zap.String("expected", progress.FormatTime(p.ExpectedHours)),
		zap.Int("difference_minutes", p.Difference.SignedMinutes()),
		zap.Bool("on_track", p.IsOnTrack))

	return report, nil
}

// hoursText takes the hours token from the argument or the configured hours file
func hoursText(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Watch.HoursFile == "" {
		return "", fmt.Errorf("no hours given and watch.hours_file is not configured")
	}
	data, err := os.ReadFile(cfg.Watch.HoursFile)
	if err != nil {
		return "", fmt.Errorf("failed to read hours file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func monthCmd() *cobra.Command {
	var monthStr, format string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show working days and holidays of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := parseMonthFlag(monthStr)
			if err != nil {
				return err
			}
			month := calendar.MonthOf(time.Now())
			if view != nil {
				month = *view
			}

			st, err := openStore().Load()
			if err != nil {
				return err
			}

			summary := progress.MonthSummary(month.Year, month.Month, st.Holidays)
			return writeOutput(out, format, summary, func() string {
				return badge.RenderMonth(summary)
			})
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "Month (YYYY-MM), defaults to the current month")
	cmd.Flags().StringVarP(&format, "output", "o", outputText, "Output format: text, json or yaml")

	return cmd
}
