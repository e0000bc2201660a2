package mongodb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

// collection name matches the original dashboard's document store
const collectionName = "prospects"

type ProspectRepository struct {
	col *mongo.Collection
}

func NewProspectRepository(db *mongo.Database) *ProspectRepository {
	return &ProspectRepository{col: db.Collection(collectionName)}
}

// Save upsert by _id
func (r *ProspectRepository) Save(ctx context.Context, p *domain.Profile) error {
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": p.ID},
		p,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Get by id
func (r *ProspectRepository) Get(ctx context.Context, id domain.ProfileID) (*domain.Profile, error) {
	var p domain.Profile
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List newest first; limit <= 0 berarti semua
func (r *ProspectRepository) List(ctx context.Context, limit int) ([]*domain.Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "generatedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete hard delete by id
func (r *ProspectRepository) Delete(ctx context.Context, id domain.ProfileID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus $set status saja
func (r *ProspectRepository) UpdateStatus(ctx context.Context, id domain.ProfileID, status domain.Status) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	return err
}

// Paginate skip/limit; filters: status, q
func (r *ProspectRepository) Paginate(ctx context.Context, page, pageSize int, filters map[string]any) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	filter := bson.M{}
	if filters != nil {
		if v, ok := filters["status"]; ok {
			filter["status"] = v
		}
		if v, ok := filters["q"]; ok {
			re := primitive.Regex{Pattern: regexp.QuoteMeta(fmt.Sprint(v)), Options: "i"}
			filter["$or"] = bson.A{
				bson.M{"targetName": re},
				bson.M{"companyName": re},
			}
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("counting profiles: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "generatedAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying profiles: %w", err)
	}
	defer cur.Close(ctx)

	var profiles []*domain.Profile
	if err := cur.All(ctx, &profiles); err != nil {
		return domain.PaginatedResult{}, err
	}

	return domain.PaginatedResult{
		Data:       profiles,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}
