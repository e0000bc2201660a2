package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

type ProspectRepository struct{ db *sql.DB }

func NewProspectRepository(db *sql.DB) *ProspectRepository { return &ProspectRepository{db: db} }

const columns = `id, target_name, company_name, additional_context, status, generated_at, raw_document, sections_json, artifact_url`

// Save insert/update Profile record (upsert by id)
func (r *ProspectRepository) Save(ctx context.Context, p *domain.Profile) error {
	const q = `
INSERT INTO prospect_profiles
(id, target_name, company_name, additional_context, status, generated_at, raw_document, sections_json, artifact_url)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
 status = EXCLUDED.status,
 raw_document = EXCLUDED.raw_document,
 sections_json = EXCLUDED.sections_json,
 artifact_url = EXCLUDED.artifact_url;`

	status := string(p.Status)
	if strings.TrimSpace(status) == "" {
		status = string(domain.StatusPending)
	}
	generated := p.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	sections, err := marshalSections(p.Sections)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, q,
		p.ID, p.TargetName, p.CompanyName, p.AdditionalContext,
		status, generated, p.RawDocument, sections, p.ArtifactURL,
	)
	return err
}

// Get by ID
func (r *ProspectRepository) Get(ctx context.Context, id domain.ProfileID) (*domain.Profile, error) {
	const q = `SELECT ` + columns + ` FROM prospect_profiles WHERE id=$1 LIMIT 1;`
	p, err := scanProfile(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// List newest first; limit <= 0 berarti semua
func (r *ProspectRepository) List(ctx context.Context, limit int) ([]*domain.Profile, error) {
	q := `SELECT ` + columns + ` FROM prospect_profiles ORDER BY generated_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

// Delete hard delete by id
func (r *ProspectRepository) Delete(ctx context.Context, id domain.ProfileID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prospect_profiles WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus hanya update kolom status
func (r *ProspectRepository) UpdateStatus(ctx context.Context, id domain.ProfileID, status domain.Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE prospect_profiles SET status=$1 WHERE id=$2;`, status, id)
	return err
}

// Paginate offset + limit; filters: status, q
func (r *ProspectRepository) Paginate(ctx context.Context, page, pageSize int, filters map[string]any) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + columns + ` FROM prospect_profiles WHERE 1=1`
	args := []any{}
	query, args = applyFilters(query, args, filters)
	query += fmt.Sprintf(` ORDER BY generated_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	profiles, err := collectProfiles(rows)
	if err != nil {
		return domain.PaginatedResult{}, err
	}

	total, err := r.count(ctx, filters)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}

	return domain.PaginatedResult{
		Data:       profiles,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (r *ProspectRepository) count(ctx context.Context, filters map[string]any) (int64, error) {
	query := `SELECT COUNT(*) FROM prospect_profiles WHERE 1=1`
	args := []any{}
	query, args = applyFilters(query, args, filters)

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func applyFilters(query string, args []any, filters map[string]any) (string, []any) {
	if filters == nil {
		return query, args
	}
	if v, ok := filters["status"]; ok {
		query += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, v)
	}
	if v, ok := filters["q"]; ok {
		term := "%" + escapeLikePattern(fmt.Sprint(v)) + "%"
		query += fmt.Sprintf(" AND (target_name ILIKE $%d OR company_name ILIKE $%d)", len(args)+1, len(args)+2)
		args = append(args, term, term)
	}
	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	var sections sql.NullString
	if err := row.Scan(
		&p.ID, &p.TargetName, &p.CompanyName, &p.AdditionalContext,
		&p.Status, &p.GeneratedAt, &p.RawDocument, &sections, &p.ArtifactURL,
	); err != nil {
		return nil, err
	}
	m, err := unmarshalSections(sections.String)
	if err != nil {
		return nil, fmt.Errorf("decoding sections for %s: %w", p.ID, err)
	}
	p.Sections = m
	return &p, nil
}

func collectProfiles(rows *sql.Rows) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func marshalSections(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalSections(s string) (map[string]string, error) {
	if s == "" || s == "{}" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return m, nil
}

func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
