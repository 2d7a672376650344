package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/hours-pulse/internal/config"
	"github.com/username/hours-pulse/internal/holidays"
	"go.uber.org/zap"
)

const importTimeout = 30 * time.Second

func holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage the holiday list used for working-day calculations",
	}

	cmd.AddCommand(
		holidaysListCmd(),
		holidaysAddCmd(),
		holidaysRemoveCmd(),
		holidaysImportCmd(),
	)

	return cmd
}

func holidaysListCmd() *cobra.Command {
	var year int
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore().Load()
			if err != nil {
				return err
			}

			keys := filterYear(st.Holidays, year)
			return writeOutput(out, format, keys, func() string {
				if len(keys) == 0 {
					return "No holidays"
				}
				return strings.Join(keys, "\n")
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Only show holidays of this year")
	cmd.Flags().StringVarP(&format, "output", "o", outputText, "Output format: text, json or yaml")

	return cmd
}

func holidaysAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add YYYY-MM-DD...",
		Short: "Add holidays",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore().AddHolidays(args)
			if err != nil {
				return err
			}
			logger.Info("Holidays added", zap.Strings("dates", args))
			_, err = fmt.Fprintf(out, "Stored %d holidays\n", len(st.Holidays))
			return err
		},
	}
}

func holidaysRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove YYYY-MM-DD...",
		Short: "Remove holidays",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			for _, key := range args {
				if _, err := store.RemoveHoliday(key); err != nil {
					return err
				}
			}
			logger.Info("Holidays removed", zap.Strings("dates", args))

			st, err := store.Load()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Stored %d holidays\n", len(st.Holidays))
			return err
		},
	}
}

func holidaysImportCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import holidays of a year from the configured source",
		Long: "Fetch the non-working weekdays of a year from holidays.source " +
			"(xmlcalendar, file or composite) and merge them into the stored list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().Year()
			}

			source := newHolidaySource(&cfg.Holidays)

			ctx, cancel := context.WithTimeout(cmd.Context(), importTimeout)
			defer cancel()

			list, err := source.Holidays(ctx, year)
			if err != nil {
				return fmt.Errorf("failed to import holidays for %d: %w", year, err)
			}

			st, err := openStore().AddHolidays(holidays.Keys(list))
			if err != nil {
				return err
			}

			logger.Info("Holidays imported",
				zap.Int("year", year),
				zap.String("source", cfg.Holidays.Source),
				zap.Int("count", len(list)))
			_, err = fmt.Fprintf(out, "Imported %d holidays for %d, %d stored\n", len(list), year, len(st.Holidays))
			return err
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to import, defaults to the current year")

	return cmd
}

// newHolidaySource builds the source selected by holidays.source
func newHolidaySource(hc *config.HolidaysConfig) holidays.Source {
	switch hc.Source {
	case config.SourceFile:
		return holidays.NewFileSource(hc.File, logger)
	case config.SourceComposite:
		return holidays.NewCompositeSource(
			holidays.NewXMLCalendarSource(hc.URL, hc.GetCacheTTL(), logger),
			holidays.NewFileSource(hc.File, logger),
			logger,
		)
	default:
		return holidays.NewXMLCalendarSource(hc.URL, hc.GetCacheTTL(), logger)
	}
}

func filterYear(keys []string, year int) []string {
	filtered := make([]string, 0, len(keys))
	prefix := strconv.Itoa(year) + "-"
	for _, k := range keys {
		if year == 0 || strings.HasPrefix(k, prefix) {
			filtered = append(filtered, k)
		}
	}
	return filtered
}
