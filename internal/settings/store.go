package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/username/hours-pulse/pkg/dateutil"
	"go.uber.org/zap"
)

// Store persists Settings as a JSON file
type Store struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewStore creates a new settings store backed by path
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Load reads settings from file. A missing file yields Default().
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *Store) load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - will be created on first save
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var st Settings
	if err := json.Unmarshal(data, &st); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if st.DailyHours == 0 {
		st.DailyHours = DefaultDailyHours
	}
	if st.Holidays == nil {
		st.Holidays = []string{}
	}

	s.logger.Debug("Settings loaded",
		zap.String("file", s.path),
		zap.Float64("daily_hours", st.DailyHours),
		zap.Int("holidays", len(st.Holidays)))

	return st, nil
}

// Save validates and writes settings to file
func (s *Store) Save(st Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(st)
}

func (s *Store) save(st Settings) error {
	if err := st.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}

	// Write via rename so watchers never observe a partial file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	s.logger.Info("Settings saved",
		zap.String("file", s.path),
		zap.Float64("daily_hours", st.DailyHours),
		zap.Int("holidays", len(st.Holidays)))

	return nil
}

// Update applies fn to the stored settings and saves the result
func (s *Store) Update(fn func(*Settings)) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return Settings{}, err
	}

	fn(&st)

	if err := s.save(st); err != nil {
		return Settings{}, err
	}
	return st, nil
}

// AddHolidays adds YYYY-MM-DD keys in one write, keeping the list sorted and unique
func (s *Store) AddHolidays(keys []string) (Settings, error) {
	for _, key := range keys {
		if _, err := dateutil.ParseDateKey(key); err != nil {
			return Settings{}, err
		}
	}

	return s.Update(func(st *Settings) {
		seen := make(map[string]bool, len(st.Holidays)+len(keys))
		merged := make([]string, 0, len(st.Holidays)+len(keys))
		for _, h := range append(st.Holidays, keys...) {
			if seen[h] {
				continue
			}
			seen[h] = true
			merged = append(merged, h)
		}
		sort.Strings(merged)
		st.Holidays = merged
	})
}

// RemoveHoliday removes a key if present
func (s *Store) RemoveHoliday(key string) (Settings, error) {
	return s.Update(func(st *Settings) {
		kept := st.Holidays[:0]
		for _, h := range st.Holidays {
			if h != key {
				kept = append(kept, h)
			}
		}
		st.Holidays = kept
	})
}

// Reset overwrites the file with Default()
func (s *Store) Reset() (Settings, error) {
	st := Default()
	if err := s.Save(st); err != nil {
		return Settings{}, err
	}
	return st, nil
}

// Watch calls fn with freshly loaded settings every time the file changes.
// It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, fn func(Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}
	// Watch the directory: the file is replaced by rename on every save
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			st, err := s.Load()
			if err != nil {
				s.logger.Warn("Failed to reload settings", zap.Error(err))
				continue
			}
			fn(st)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Settings watcher error", zap.Error(err))
		}
	}
}
