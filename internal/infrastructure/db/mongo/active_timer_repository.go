package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

const collectionActiveTimers = "active_timers"

// ActiveTimerRepository keys each pointer by user id (_id), so the primary
// key index is what guarantees one running timer per user.
type ActiveTimerRepository struct {
	col *mongo.Collection
}

var _ ports.ActiveTimerRepository = (*ActiveTimerRepository)(nil)

func NewActiveTimerRepository(db *mongo.Database) *ActiveTimerRepository {
	return &ActiveTimerRepository{col: db.Collection(collectionActiveTimers)}
}

func (r *ActiveTimerRepository) Create(ctx context.Context, t *domain.ActiveTimer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, t)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrTimerRunning
	}
	return err
}

func (r *ActiveTimerRepository) FindByUser(ctx context.Context, userID string) (*domain.ActiveTimer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.ActiveTimer
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// DeleteByUser removes the pointer; deleting a missing pointer is not an error.
func (r *ActiveTimerRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": userID})
	return err
}
