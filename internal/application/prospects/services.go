package prospects

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/patriot1176/private-eye-sales-prospect/internal/application"
	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
	"github.com/patriot1176/private-eye-sales-prospect/internal/infra/cache"
)

// Service implements use-cases untuk Profile records.
// Repo and Generator are required; Documents and Cache are optional
// (nil = no markdown archive / no analytics cache invalidation).
type Service struct {
	Repo      domain.Repository
	Generator domain.Generator
	Documents domain.DocumentStore
	Cache     cache.Cache
	Clock     application.Clock
}

//
// ==== USE CASES ====
//

// Command untuk generate profile
type GenerateCommand struct {
	TargetName        string
	CompanyName       string
	AdditionalContext string
}

// Begin creates and saves the Pending placeholder record. GeneratedAt is
// stamped here, at creation, not at completion - all time bucketing keys
// off this timestamp.
func (s *Service) Begin(ctx context.Context, cmd GenerateCommand) (*domain.Profile, error) {
	initial := &domain.Profile{
		ID:                domain.ProfileID(uuid.New().String()),
		TargetName:        cmd.TargetName,
		CompanyName:       cmd.CompanyName,
		AdditionalContext: cmd.AdditionalContext,
		Status:            domain.StatusPending,
		GeneratedAt:       s.Clock.Now(),
	}
	if err := s.Repo.Save(ctx, initial); err != nil {
		return initial, err
	}
	s.invalidateAnalytics(ctx)
	return initial, nil
}

// Finish runs generation for a placeholder record: render document →
// extract sections → archive markdown (best effort) → save Completed.
// On generator error the record is marked Failed with document and
// sections left empty; never retried automatically.
func (s *Service) Finish(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	_ = s.Repo.UpdateStatus(ctx, p.ID, domain.StatusInProgress)

	doc, err := s.Generator.Generate(ctx, domain.GenerateRequest{
		TargetName:        p.TargetName,
		CompanyName:       p.CompanyName,
		AdditionalContext: p.AdditionalContext,
	})
	if err != nil {
		p.Status = domain.StatusFailed
		_ = s.Repo.UpdateStatus(context.Background(), p.ID, domain.StatusFailed)
		s.invalidateAnalytics(ctx)
		return p, err
	}

	p.RawDocument = doc
	p.Sections = domain.ExtractSections(doc)
	p.Status = domain.StatusCompleted

	if s.Documents != nil {
		key := fmt.Sprintf("profiles/%s.md", p.ID)
		url, uerr := s.Documents.PutDocument(ctx, key, []byte(doc))
		if uerr != nil {
			// arsip best-effort, record tetap Completed
			log.Printf("document archive failed for profile=%s: %v", p.ID, uerr)
		} else {
			p.ArtifactURL = url
		}
	}

	if err := s.Repo.Save(ctx, p); err != nil {
		return p, err
	}
	s.invalidateAnalytics(ctx)
	return p, nil
}

// Generate jalanin seluruh lifecycle secara sinkron.
func (s *Service) Generate(ctx context.Context, cmd GenerateCommand) (*domain.Profile, error) {
	p, err := s.Begin(ctx, cmd)
	if err != nil {
		return p, err
	}
	return s.Finish(ctx, p)
}

// FinishUntilDone → jalanin generation dengan context.Background()
// cocok dipanggil dari goroutine di router supaya gak kena context canceled
func (s *Service) FinishUntilDone(p *domain.Profile) (*domain.Profile, error) {
	return s.Finish(context.Background(), p)
}

// Regenerate re-runs generation for an existing record (abandoned Pending
// or Failed placeholders stay regenerable). The id and the original
// GeneratedAt are kept.
func (s *Service) Regenerate(ctx context.Context, id domain.ProfileID) (*domain.Profile, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.RawDocument = ""
	existing.Sections = nil
	existing.ArtifactURL = ""
	return s.Finish(ctx, existing)
}

// Latest ambil N record terakhir (newest first)
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Profile, error) {
	return s.Repo.List(ctx, limit)
}

// Get ambil 1 record by id
func (s *Service) Get(ctx context.Context, id domain.ProfileID) (*domain.Profile, error) {
	return s.Repo.Get(ctx, id)
}

// Delete removes the record entirely. No soft delete, no tombstones.
func (s *Service) Delete(ctx context.Context, id domain.ProfileID) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAnalytics(ctx)
	return nil
}

// Paginate offset pagination + filters (status, q)
func (s *Service) Paginate(ctx context.Context, page, pageSize int, filters map[string]any) (domain.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, page, pageSize, filters)
}

// invalidateAnalytics drops the cached report so mutations show up in the
// next aggregate read.
func (s *Service) invalidateAnalytics(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, cache.ReportKey); err != nil {
		log.Printf("analytics cache invalidation failed: %v", err)
	}
}
