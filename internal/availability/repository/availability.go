package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	availabilityerrors "insightery/internal/availability/errors"
	"insightery/pkg/config"
	mongotx "insightery/pkg/db/mongo"
	"insightery/pkg/model"
)

const (
	CollectionName = "Availability"
)

// availabilityDocument is the at-rest shape: one document per insighter,
// keyed by the insighter ID, always in canonical array form.
type availabilityDocument struct {
	ID           string                        `bson:"_id"`
	Availability model.Week                    `bson:"availability"`
	Exceptions   []model.AvailabilityException `bson:"availability_exceptions"`
	UpdatedAt    time.Time                     `bson:"updated_at"`
}

type mongoAvailabilityRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type AvailabilityRepository interface {
	Get(ctx context.Context, insighterID string) (*model.Schedule, error)
	Upsert(ctx context.Context, insighterID string, schedule *model.Schedule) error
	Delete(ctx context.Context, insighterID string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error

	// Load and Save satisfy the editor's Store contract for in-process use.
	Load(ctx context.Context, insighterID string) (*model.Schedule, error)
	Save(ctx context.Context, insighterID string, schedule *model.Schedule) error
}

func NewMongoAvailabilityRepository(cfg *config.Config) AvailabilityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAvailabilityRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.Log),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// SessionContext cannot be wrapped without breaking transaction semantics, so
// inside a transaction the original context comes back with a no-op cancel.
func (r *mongoAvailabilityRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}

func validInsighterID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func (r *mongoAvailabilityRepository) Get(ctx context.Context, insighterID string) (*model.Schedule, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if !validInsighterID(insighterID) {
		return nil, fmt.Errorf("%w: %q", availabilityerrors.ErrInvalidID, insighterID)
	}

	var doc availabilityDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": insighterID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", availabilityerrors.ErrNotFound, insighterID)
		}
		return nil, fmt.Errorf("failed to find availability: %w", err)
	}

	schedule := &model.Schedule{
		Availability: doc.Availability,
		Exceptions:   doc.Exceptions,
	}
	schedule.Normalize()
	return schedule, nil
}

func (r *mongoAvailabilityRepository) Upsert(ctx context.Context, insighterID string, schedule *model.Schedule) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if !validInsighterID(insighterID) {
		return fmt.Errorf("%w: %q", availabilityerrors.ErrInvalidID, insighterID)
	}

	schedule.Normalize()
	update := bson.M{
		"$set": bson.M{
			"availability":            schedule.Availability,
			"availability_exceptions": schedule.Exceptions,
			"updated_at":              time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": insighterID}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}
	return nil
}

func (r *mongoAvailabilityRepository) Delete(ctx context.Context, insighterID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if !validInsighterID(insighterID) {
		return fmt.Errorf("%w: %q", availabilityerrors.ErrInvalidID, insighterID)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": insighterID})
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", availabilityerrors.ErrNotFound, insighterID)
	}
	return nil
}

func (r *mongoAvailabilityRepository) Load(ctx context.Context, insighterID string) (*model.Schedule, error) {
	schedule, err := r.Get(ctx, insighterID)
	if errors.Is(err, availabilityerrors.ErrNotFound) {
		return model.DefaultSchedule(), nil
	}
	return schedule, err
}

func (r *mongoAvailabilityRepository) Save(ctx context.Context, insighterID string, schedule *model.Schedule) error {
	return r.Upsert(ctx, insighterID, schedule)
}

func (r *mongoAvailabilityRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
