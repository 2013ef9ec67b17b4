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

// usernameCollation compares usernames case-insensitively, like the platform.
var usernameCollation = &options.Collation{Locale: "en", Strength: 2}

const (
	collectionUsers      = "users"
	collectionTopics     = "topics"
	collectionCategories = "categories"
)

// PlatformDirectory reads the users, topics and categories the discussion
// platform replicates into the shared database.
type PlatformDirectory struct {
	users      *mongo.Collection
	topics     *mongo.Collection
	categories *mongo.Collection
}

var _ ports.PlatformDirectory = (*PlatformDirectory)(nil)

func NewPlatformDirectory(db *mongo.Database) *PlatformDirectory {
	return &PlatformDirectory{
		users:      db.Collection(collectionUsers),
		topics:     db.Collection(collectionTopics),
		categories: db.Collection(collectionCategories),
	}
}

func (d *PlatformDirectory) FindUser(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, d.users, bson.M{"_id": id}, domain.ErrUserNotFound)
}

func (d *PlatformDirectory) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return findOne[domain.User](ctx, d.users, bson.M{"username": username}, domain.ErrUserNotFound,
		options.FindOne().SetCollation(usernameCollation))
}

func (d *PlatformDirectory) FindUsers(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	users, err := findMany[domain.User](ctx, d.users, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (d *PlatformDirectory) FindTopic(ctx context.Context, id string) (*domain.Topic, error) {
	return findOne[domain.Topic](ctx, d.topics, bson.M{"_id": id}, domain.ErrTopicNotFound)
}

func (d *PlatformDirectory) FindTopics(ctx context.Context, ids []string) (map[string]*domain.Topic, error) {
	topics, err := findMany[domain.Topic](ctx, d.topics, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Topic, len(topics))
	for _, t := range topics {
		out[t.ID] = t
	}
	return out, nil
}

func (d *PlatformDirectory) FindCategories(ctx context.Context, ids []string) (map[string]*domain.Category, error) {
	categories, err := findMany[domain.Category](ctx, d.categories, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		out[c.ID] = c
	}
	return out, nil
}

// EnsureIndexes creates the username lookup index.
func (d *PlatformDirectory) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := d.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetCollation(usernameCollation),
	})
	return err
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.M, notFound error, opts ...*options.FindOneOptions) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v T
	err := col.FindOne(ctx, filter, opts...).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, err
	}
	return &v, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, ids []string) ([]*T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
