package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

type ProspectRepository struct {
	db *sql.DB
}

func NewProspectRepository(db *sql.DB) *ProspectRepository {
	return &ProspectRepository{db: db}
}

const columns = `id, target_name, company_name, additional_context, status, generated_at, raw_document, sections_json, artifact_url`

// Save insert/update Profile record (upsert by id)
func (r *ProspectRepository) Save(ctx context.Context, p *domain.Profile) error {
	const q = `
INSERT INTO prospect_profiles
(id, target_name, company_name, additional_context, status, generated_at, raw_document, sections_json, artifact_url)
VALUES (?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 status=VALUES(status),
 raw_document=VALUES(raw_document),
 sections_json=VALUES(sections_json),
 artifact_url=VALUES(artifact_url);
`
	status := stringOrDash(string(p.Status))
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
	const q = `SELECT ` + columns + ` FROM prospect_profiles WHERE id=? LIMIT 1;`
	p, err := scanProfile(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// List newest first; limit <= 0 berarti semua (dipakai aggregator)
func (r *ProspectRepository) List(ctx context.Context, limit int) ([]*domain.Profile, error) {
	q := `SELECT ` + columns + ` FROM prospect_profiles ORDER BY generated_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM prospect_profiles WHERE id=?;`, id)
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
		`UPDATE prospect_profiles SET status=? WHERE id=?;`, status, id)
	return err
}

// Paginate with offset + limit (classic pagination)
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
	query += ` ORDER BY generated_at DESC LIMIT ? OFFSET ?`
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
		query += " AND status = ?"
		args = append(args, v)
	}
	if v, ok := filters["q"]; ok {
		// search over target and company name; escape LIKE specials
		term := "%" + escapeLikePattern(fmt.Sprint(v)) + "%"
		query += " AND (target_name LIKE ? OR company_name LIKE ?)"
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
