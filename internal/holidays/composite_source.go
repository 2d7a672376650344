package holidays

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CompositeSource implements Source with fallback strategy
// Primary: XMLCalendarSource (network)
// Fallback: FileSource (local file)
type CompositeSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback Source, logger *zap.Logger) *CompositeSource {
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays tries the primary source and falls back on error
func (cs *CompositeSource) Holidays(ctx context.Context, year int) ([]Holiday, error) {
	list, err := cs.primary.Holidays(ctx, year)
	if err == nil {
		return list, nil
	}

	cs.logger.Warn("Primary holiday source failed, falling back",
		zap.Int("year", year),
		zap.Error(err))

	list, fallbackErr := cs.fallback.Holidays(ctx, year)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}
	return list, nil
}
