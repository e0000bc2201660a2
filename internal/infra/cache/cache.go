package cache

import (
	"context"
	"time"
)

// ReportKey is the single cache entry for the analytics report.
// Mutating use cases delete it so deletes show up in the next aggregate.
const ReportKey = "analytics:report"

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
