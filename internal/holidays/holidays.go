package holidays

import (
	"context"
	"time"

	"github.com/username/hours-pulse/pkg/dateutil"
)

// Holiday is a non-working day published by a holiday source
type Holiday struct {
	Date time.Time
	Note string
}

// Key returns the YYYY-MM-DD key stored in settings
func (h Holiday) Key() string {
	return dateutil.DateKey(h.Date)
}

// Source provides the holidays of a year
type Source interface {
	Holidays(ctx context.Context, year int) ([]Holiday, error)
}

// Keys converts holidays to settings keys, preserving order
func Keys(list []Holiday) []string {
	keys := make([]string, len(list))
	for i, h := range list {
		keys[i] = h.Key()
	}
	return keys
}
