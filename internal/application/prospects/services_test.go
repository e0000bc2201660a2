package prospects

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

// ---- fakes ----

type memRepo struct {
	profiles map[domain.ProfileID]*domain.Profile
}

func newMemRepo() *memRepo {
	return &memRepo{profiles: map[domain.ProfileID]*domain.Profile{}}
}

func (m *memRepo) Save(_ context.Context, p *domain.Profile) error {
	cp := *p
	m.profiles[p.ID] = &cp
	return nil
}

func (m *memRepo) Get(_ context.Context, id domain.ProfileID) (*domain.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, limit int) ([]*domain.Profile, error) {
	out := make([]*domain.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GeneratedAt.After(out[j].GeneratedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, id domain.ProfileID) error {
	if _, ok := m.profiles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.profiles, id)
	return nil
}

func (m *memRepo) Paginate(_ context.Context, page, pageSize int, _ map[string]any) (domain.PaginatedResult, error) {
	all, _ := m.List(context.Background(), 0)
	return domain.PaginatedResult{Data: all, Page: page, PageSize: pageSize, Total: int64(len(all)), TotalPages: 1}, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id domain.ProfileID, status domain.Status) error {
	p, ok := m.profiles[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

type stubGenerator struct {
	doc string
	err error
}

func (g stubGenerator) Generate(_ context.Context, _ domain.GenerateRequest) (string, error) {
	return g.doc, g.err
}

type memDocs struct {
	keys []string
}

func (d *memDocs) PutDocument(_ context.Context, key string, _ []byte) (string, error) {
	d.keys = append(d.keys, key)
	return "https://cdn.example.com/" + key, nil
}

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

// ---- tests ----

const sampleDoc = "# PRIVATE EYE INTELLIGENCE ANALYSIS\n\n## 1. **Executive Summary**\n\nsummary body\n\n## 7. **Opportunity Assessment**\n\nopportunity body\n"

func newService(repo *memRepo, gen domain.Generator, docs domain.DocumentStore) *Service {
	return &Service{
		Repo:      repo,
		Generator: gen,
		Documents: docs,
		Clock:     fixedClock{t: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)},
	}
}

func TestBegin_SavesPendingPlaceholder(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo, stubGenerator{doc: sampleDoc}, nil)

	p, err := svc.Begin(context.Background(), GenerateCommand{
		TargetName:  "Lewis Cook",
		CompanyName: "Catapult Print",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.StatusPending, p.Status)
	assert.Equal(t, svc.Clock.Now(), p.GeneratedAt)
	assert.Empty(t, p.RawDocument)

	saved, err := repo.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, saved.Status)
}

func TestGenerate_FullLifecycle(t *testing.T) {
	repo := newMemRepo()
	docs := &memDocs{}
	svc := newService(repo, stubGenerator{doc: sampleDoc}, docs)

	p, err := svc.Generate(context.Background(), GenerateCommand{
		TargetName:  "Lewis Cook",
		CompanyName: "Catapult Print",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, p.Status)
	assert.Equal(t, sampleDoc, p.RawDocument)
	assert.Equal(t, "summary body", p.Sections["executive_summary"])
	assert.Equal(t, "opportunity body", p.Sections["opportunity_assessment"])
	assert.Equal(t, "https://cdn.example.com/profiles/"+string(p.ID)+".md", p.ArtifactURL)
	require.Len(t, docs.keys, 1)

	saved, err := repo.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, saved.Status)
	assert.Equal(t, sampleDoc, saved.RawDocument)
}

func TestGenerate_GeneratorFailure(t *testing.T) {
	repo := newMemRepo()
	genErr := errors.New("upstream exploded")
	svc := newService(repo, stubGenerator{err: genErr}, nil)

	p, err := svc.Generate(context.Background(), GenerateCommand{
		TargetName:  "Lewis Cook",
		CompanyName: "Catapult Print",
	})
	require.ErrorIs(t, err, genErr)

	assert.Equal(t, domain.StatusFailed, p.Status)
	assert.Empty(t, p.RawDocument)
	assert.Empty(t, p.Sections)

	// record stays in the collection, marked Failed, fields empty
	saved, rerr := repo.Get(context.Background(), p.ID)
	require.NoError(t, rerr)
	assert.Equal(t, domain.StatusFailed, saved.Status)
	assert.Empty(t, saved.RawDocument)
}

func TestRegenerate_KeepsIDAndTimestamp(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo, stubGenerator{doc: sampleDoc}, nil)

	first, err := svc.Generate(context.Background(), GenerateCommand{
		TargetName:  "John Abbott",
		CompanyName: "Abbott Label",
	})
	require.NoError(t, err)

	again, err := svc.Regenerate(context.Background(), first.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.GeneratedAt, again.GeneratedAt)
	assert.Equal(t, domain.StatusCompleted, again.Status)
}

func TestRegenerate_FailedRecordStaysRegenerable(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo, stubGenerator{err: errors.New("boom")}, nil)

	p, err := svc.Generate(context.Background(), GenerateCommand{
		TargetName:  "Sarah Mitchell",
		CompanyName: "PrintTech Solutions",
	})
	require.Error(t, err)
	require.Equal(t, domain.StatusFailed, p.Status)

	// generator recovers, same record retried
	svc.Generator = stubGenerator{doc: sampleDoc}
	again, err := svc.Regenerate(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, again.Status)
	assert.Equal(t, sampleDoc, again.RawDocument)
}

func TestRegenerate_NotFound(t *testing.T) {
	svc := newService(newMemRepo(), stubGenerator{doc: sampleDoc}, nil)

	_, err := svc.Regenerate(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RemovesRecord(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo, stubGenerator{doc: sampleDoc}, nil)

	p, err := svc.Generate(context.Background(), GenerateCommand{
		TargetName:  "Lewis Cook",
		CompanyName: "Catapult Print",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p.ID))

	_, err = svc.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.Latest(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newService(newMemRepo(), stubGenerator{doc: sampleDoc}, nil)
	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), domain.ErrNotFound)
}
