package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/username/hours-pulse/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	DefaultXMLCalendarURL = "https://xmlcalendar.ru/data/ru/{year}/calendar.json"
	defaultHTTPTimeout    = 10 * time.Second
	defaultCacheTTL       = 24 * time.Hour
)

// XMLCalendarSource reads public holidays from xmlcalendar.ru yearly JSON
type XMLCalendarSource struct {
	urlTemplate string
	httpClient  *http.Client
	logger      *zap.Logger
	cache       map[int]*cachedYear
	cacheMu     sync.RWMutex
	cacheTTL    time.Duration
}

type cachedYear struct {
	data      []Holiday
	fetchedAt time.Time
}

// xmlCalendarYear represents xmlcalendar.ru JSON structure
type xmlCalendarYear struct {
	Year      int                `json:"year"`
	Months    []xmlCalendarMonth `json:"months"`
	Statistic struct {
		Workdays int     `json:"workdays"`
		Holidays int     `json:"holidays"`
		Hours40  float64 `json:"hours40"`
	} `json:"statistic"`
}

type xmlCalendarMonth struct {
	Month int    `json:"month"`
	Days  string `json:"days"` // "1*,2,3+,4,8,9,..." where * = shortened, + = transferred
}

// NewXMLCalendarSource creates a source for urlTemplate, which must contain {year}
func NewXMLCalendarSource(urlTemplate string, cacheTTL time.Duration, logger *zap.Logger) *XMLCalendarSource {
	if urlTemplate == "" {
		urlTemplate = DefaultXMLCalendarURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &XMLCalendarSource{
		urlTemplate: urlTemplate,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cache:    make(map[int]*cachedYear),
		cacheTTL: cacheTTL,
	}
}

// Holidays returns the non-working weekdays of the year
func (s *XMLCalendarSource) Holidays(ctx context.Context, year int) ([]Holiday, error) {
	s.cacheMu.RLock()
	if cached, ok := s.cache[year]; ok {
		if time.Since(cached.fetchedAt) < s.cacheTTL {
			s.cacheMu.RUnlock()
			s.logger.Debug("Using cached holidays", zap.Int("year", year))
			return cached.data, nil
		}
	}
	s.cacheMu.RUnlock()

	yearData, err := s.downloadYear(ctx, year)
	if err != nil {
		return nil, err
	}

	var result []Holiday
	for i := range yearData.Months {
		month := yearData.Months[i].Month
		if month < 1 || month > 12 {
			s.logger.Warn("Skipping invalid month", zap.Int("month", month))
			continue
		}
		result = append(result, s.parseMonth(year, time.Month(month), &yearData.Months[i])...)
	}

	s.cacheMu.Lock()
	s.cache[year] = &cachedYear{
		data:      result,
		fetchedAt: time.Now(),
	}
	s.cacheMu.Unlock()

	s.logger.Info("Holidays fetched and cached",
		zap.Int("year", year),
		zap.Int("holidays", len(result)))

	return result, nil
}

// downloadYear downloads entire year from xmlcalendar.ru
func (s *XMLCalendarSource) downloadYear(ctx context.Context, year int) (*xmlCalendarYear, error) {
	url := strings.ReplaceAll(s.urlTemplate, "{year}", strconv.Itoa(year))

	s.logger.Info("Downloading holiday calendar",
		zap.String("url", url),
		zap.Int("year", year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday calendar returned status %d", resp.StatusCode)
	}

	var yearData xmlCalendarYear
	if err := json.NewDecoder(resp.Body).Decode(&yearData); err != nil {
		return nil, fmt.Errorf("failed to parse holiday calendar JSON: %w", err)
	}

	if yearData.Year != 0 && yearData.Year != year {
		return nil, fmt.Errorf("holiday calendar is for year %d, want %d", yearData.Year, year)
	}

	return &yearData, nil
}

// parseMonth parses xmlcalendar.ru compact format
// Format: "1*,2,3+,4,8,9,15,16,22,23,29,30"
// * = shortened day (still working), + = transferred day off, others = weekends/holidays.
// Only weekdays are returned: weekends never count as working days anyway.
func (s *XMLCalendarSource) parseMonth(year int, month time.Month, xmlMonth *xmlCalendarMonth) []Holiday {
	daysInMonth := dateutil.DaysInMonth(year, month)

	var result []Holiday
	for _, part := range strings.Split(xmlMonth.Days, ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasSuffix(part, "*") {
			continue
		}

		note := "public holiday"
		dayStr := part
		if strings.HasSuffix(part, "+") {
			note = "transferred day off"
			dayStr = strings.TrimSuffix(part, "+")
		}

		day, err := strconv.Atoi(dayStr)
		if err != nil || day < 1 || day > daysInMonth {
			s.logger.Warn("Failed to parse day number",
				zap.String("part", part),
				zap.Int("month", int(month)))
			continue
		}

		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		if dateutil.IsWeekend(date) {
			continue
		}

		result = append(result, Holiday{Date: date, Note: note})
	}

	return result
}

// ClearCache clears the cache
func (s *XMLCalendarSource) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache = make(map[int]*cachedYear)
	s.logger.Info("Holiday cache cleared")
}
