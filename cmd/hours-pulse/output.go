package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/username/hours-pulse/internal/calendar"
	"github.com/username/hours-pulse/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// writeOutput prints v as json or yaml, or the result of text for plain output
func writeOutput(w io.Writer, format string, v interface{}, text func() string) error {
	switch format {
	case "", outputText:
		_, err := fmt.Fprintln(w, text())
		return err
	case outputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// parseMonthFlag parses YYYY-MM; empty means no explicit month
func parseMonthFlag(s string) (*calendar.Month, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	m := calendar.MonthOf(t)
	return &m, nil
}

// parseNowFlag parses an override for the current time; empty means time.Now()
func parseNowFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return dateutil.ParseDate(s)
}
