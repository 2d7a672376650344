package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/username/hours-pulse/internal/settings"
	"go.uber.org/zap"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change daily hours and the monthly target",
	}

	cmd.AddCommand(
		settingsShowCmd(),
		settingsSetCmd(),
		settingsResetCmd(),
	)

	return cmd
}

func settingsShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			st, err := store.Load()
			if err != nil {
				return err
			}
			return writeOutput(out, format, st, func() string {
				return describeSettings(store.Path(), st)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", outputYAML, "Output format: text, json or yaml")

	return cmd
}

func settingsSetCmd() *cobra.Command {
	var dailyHours, monthlyTarget float64
	var clearTarget bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change daily hours or the monthly target",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("daily-hours") && !flags.Changed("monthly-target") && !clearTarget {
				return fmt.Errorf("nothing to set: use --daily-hours, --monthly-target or --clear-target")
			}
			if flags.Changed("monthly-target") && clearTarget {
				return fmt.Errorf("--monthly-target and --clear-target are mutually exclusive")
			}

			store := openStore()
			st, err := store.Update(func(st *settings.Settings) {
				if flags.Changed("daily-hours") {
					st.DailyHours = dailyHours
				}
				if flags.Changed("monthly-target") {
					target := monthlyTarget
					st.MonthlyTarget = &target
				}
				if clearTarget {
					st.MonthlyTarget = nil
				}
			})
			if err != nil {
				return err
			}

			logger.Info("Settings updated", zap.Float64("daily_hours", st.DailyHours))
			_, err = fmt.Fprintln(out, describeSettings(store.Path(), st))
			return err
		},
	}

	cmd.Flags().Float64Var(&dailyHours, "daily-hours", settings.DefaultDailyHours, "Hours expected per working day")
	cmd.Flags().Float64Var(&monthlyTarget, "monthly-target", 0, "Hours to reach by the end of the month")
	cmd.Flags().BoolVar(&clearTarget, "clear-target", false, "Remove the monthly target")

	return cmd
}

func settingsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings (drops holidays and target)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			st, err := store.Reset()
			if err != nil {
				return err
			}
			logger.Info("Settings reset", zap.String("path", store.Path()))
			_, err = fmt.Fprintln(out, describeSettings(store.Path(), st))
			return err
		},
	}
}

func describeSettings(path string, st settings.Settings) string {
	target := "none"
	if st.MonthlyTarget != nil {
		target = fmt.Sprintf("%gh", *st.MonthlyTarget)
	}
	return fmt.Sprintf("Settings file:  %s\nDaily hours:    %g\nMonthly target: %s\nHolidays:       %d",
		path, st.DailyHours, target, len(st.Holidays))
}
