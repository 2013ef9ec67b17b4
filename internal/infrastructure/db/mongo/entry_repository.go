package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

const collectionEntries = "time_entries"

type EntryRepository struct {
	col *mongo.Collection
}

var _ ports.EntryRepository = (*EntryRepository)(nil)

func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{col: db.Collection(collectionEntries)}
}

// Create inserts a new time entry document.
func (r *EntryRepository) Create(ctx context.Context, e *domain.TimeEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, e)
	return err
}

// FindByID retrieves a time entry by id.
func (r *EntryRepository) FindByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.TimeEntry
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Update replaces the stored entry. A nil StartedAt is dropped from the
// document, which is how a stop clears the running state.
func (r *EntryRepository) Update(ctx context.Context, e *domain.TimeEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// ListFinalized returns one page of finalized entries, newest first.
func (r *EntryRepository) ListFinalized(ctx context.Context, q ports.EntryQuery) ([]*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(q.Offset))
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := r.col.Find(ctx, finalizedFilter(q), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]*domain.TimeEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func finalizedFilter(q ports.EntryQuery) bson.M {
	filter := bson.M{"amount_seconds": bson.M{"$gt": 0}}
	if q.UserID != "" {
		filter["user_id"] = q.UserID
	}
	created := bson.M{}
	if !q.CreatedFrom.IsZero() {
		created["$gte"] = q.CreatedFrom.UTC()
	}
	if !q.CreatedTo.IsZero() {
		created["$lte"] = q.CreatedTo.UTC()
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}
	return filter
}

// EnsureIndexes creates the indexes the report query relies on.
func (r *EntryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "topic_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
