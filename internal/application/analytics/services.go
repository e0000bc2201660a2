package analytics

import (
	"context"
	"time"

	"github.com/patriot1176/private-eye-sales-prospect/internal/application"
	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/analytics"
	"github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
	"github.com/patriot1176/private-eye-sales-prospect/internal/infra/cache"
)

// cache TTL pendek; mutasi record juga langsung invalidate
const reportTTL = 30 * time.Second

// Service reads the full record collection back out and aggregates it.
// Cache optional (nil = aggregate on every read).
type Service struct {
	Repo  prospects.Repository
	Cache cache.Cache
	Clock application.Clock
}

// Report builds (or serves the cached) analytics view.
func (s *Service) Report(ctx context.Context) (*domain.Report, error) {
	if s.Cache != nil {
		var cached domain.Report
		if hit, _ := s.Cache.GetJSON(ctx, cache.ReportKey, &cached); hit {
			return &cached, nil
		}
	}

	profiles, err := s.Repo.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	report := domain.Aggregate(profiles, s.Clock.Now())

	if s.Cache != nil {
		_ = s.Cache.SetJSON(ctx, cache.ReportKey, report, reportTTL)
	}
	return &report, nil
}
