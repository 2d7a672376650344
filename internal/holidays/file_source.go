package holidays

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/username/hours-pulse/pkg/dateutil"
	"go.uber.org/zap"
)

// FileSource reads holidays from a local text file
type FileSource struct {
	filePath string
	logger   *zap.Logger
	mu       sync.Mutex
	data     map[int][]Holiday // key: year
	loaded   bool
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
		data:     make(map[int][]Holiday),
	}
}

// Load loads holiday data from file
func (fs *FileSource) Load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.load()
}

func (fs *FileSource) load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holidays file: %w", err)
	}
	defer file.Close()

	data := make(map[int][]Holiday)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD [note], separated by any whitespace
		// Example: 2025-01-01 New Year
		key := strings.Fields(line)[0]

		date, err := dateutil.ParseDateKey(key)
		if err != nil {
			fs.logger.Warn("Failed to parse date", zap.String("line", line), zap.Error(err))
			continue
		}

		note := strings.TrimSpace(strings.TrimPrefix(line, key))

		data[date.Year()] = append(data[date.Year()], Holiday{Date: date, Note: note})
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holidays file: %w", err)
	}

	fs.data = data
	fs.loaded = true

	fs.logger.Info("Holidays file loaded",
		zap.String("file", fs.filePath),
		zap.Int("years", len(fs.data)))

	return nil
}

// Holidays returns the holidays listed for year, loading the file on first use
func (fs *FileSource) Holidays(ctx context.Context, year int) ([]Holiday, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.loaded {
		if err := fs.load(); err != nil {
			return nil, err
		}
	}

	list, ok := fs.data[year]
	if !ok {
		return nil, fmt.Errorf("year not found in holidays file: %d", year)
	}

	return list, nil
}
