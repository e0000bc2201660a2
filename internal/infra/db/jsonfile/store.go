package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

// Store is the local fallback Repository: the whole collection lives in one
// JSON blob shaped as an id-keyed object, same layout the dashboard used in
// browser local storage, so existing exports stay readable. Every write is a
// whole-collection read/replace guarded by a mutex; across processes it is
// last-writer-wins by design of the collaborator, not a guarantee we add to.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("jsonfile: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &Store{path: path}, nil
}

func (s *Store) load() (map[string]*domain.Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]*domain.Profile{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return map[string]*domain.Profile{}, nil
	}
	var m map[string]*domain.Profile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	if m == nil {
		m = map[string]*domain.Profile{}
	}
	return m, nil
}

func (s *Store) flush(m map[string]*domain.Profile) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Save insert/replace by id
func (s *Store) Save(_ context.Context, p *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	cp := *p
	m[string(p.ID)] = &cp
	return s.flush(m)
}

// Get by id
func (s *Store) Get(_ context.Context, id domain.ProfileID) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, err
	}
	p, ok := m[string(id)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// List newest first; limit <= 0 berarti semua
func (s *Store) List(_ context.Context, limit int) ([]*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, err
	}
	out := sortedProfiles(m)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete hard delete by id
func (s *Store) Delete(_ context.Context, id domain.ProfileID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[string(id)]; !ok {
		return domain.ErrNotFound
	}
	delete(m, string(id))
	return s.flush(m)
}

// UpdateStatus hanya field status
func (s *Store) UpdateStatus(_ context.Context, id domain.ProfileID, status domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	p, ok := m[string(id)]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return s.flush(m)
}

// Paginate in-memory; filters: status, q
func (s *Store) Paginate(_ context.Context, page, pageSize int, filters map[string]any) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return domain.PaginatedResult{}, err
	}

	all := sortedProfiles(m)
	filtered := all[:0:0]
	for _, p := range all {
		if !matches(p, filters) {
			continue
		}
		filtered = append(filtered, p)
	}

	total := int64(len(filtered))
	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return domain.PaginatedResult{
		Data:       filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func matches(p *domain.Profile, filters map[string]any) bool {
	if filters == nil {
		return true
	}
	if v, ok := filters["status"]; ok {
		if string(p.Status) != fmt.Sprint(v) {
			return false
		}
	}
	if v, ok := filters["q"]; ok {
		q := strings.ToLower(fmt.Sprint(v))
		if !strings.Contains(strings.ToLower(p.TargetName), q) &&
			!strings.Contains(strings.ToLower(p.CompanyName), q) {
			return false
		}
	}
	return true
}

func sortedProfiles(m map[string]*domain.Profile) []*domain.Profile {
	out := make([]*domain.Profile, 0, len(m))
	for _, p := range m {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GeneratedAt.Equal(out[j].GeneratedAt) {
			return out[i].GeneratedAt.After(out[j].GeneratedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Seed bootstraps the original dashboard's three mock records when the blob
// is still empty. Only runs for the file driver with database.seed enabled.
func (s *Store) Seed(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	m, err := s.load()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if len(m) > 0 {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	mocks := []*domain.Profile{
		{
			ID:          "1",
			TargetName:  "Lewis Cook",
			CompanyName: "Catapult Print",
			Status:      domain.StatusCompleted,
			GeneratedAt: now.Add(-2 * 24 * time.Hour),
			RawDocument: "Mock analysis for Lewis Cook at Catapult Print...",
		},
		{
			ID:          "2",
			TargetName:  "John Abbott",
			CompanyName: "Abbott Label",
			Status:      domain.StatusInProgress,
			GeneratedAt: now.Add(-24 * time.Hour),
			RawDocument: "Mock analysis for John Abbott at Abbott Label...",
		},
		{
			ID:          "3",
			TargetName:  "Sarah Mitchell",
			CompanyName: "PrintTech Solutions",
			Status:      domain.StatusPending,
			GeneratedAt: now,
		},
	}
	for _, p := range mocks {
		if err := s.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
