package prospects

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id ProfileID) (*Profile, error)
	// List returns records newest-first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*Profile, error)
	Delete(ctx context.Context, id ProfileID) error
	Paginate(ctx context.Context, page, pageSize int, filters map[string]any) (PaginatedResult, error)
	UpdateStatus(ctx context.Context, id ProfileID, status Status) error
}

// GenerateRequest input untuk Generator
type GenerateRequest struct {
	TargetName        string
	CompanyName       string
	AdditionalContext string
}

// Generator port (interface untuk rendering dokumen intelligence)
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// DocumentStore port (interface untuk arsip dokumen markdown)
type DocumentStore interface {
	PutDocument(ctx context.Context, key string, body []byte) (string, error)
}
