package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	availabilityerrors "insightery/internal/availability/errors"
	"insightery/internal/availability/reconcile"
	"insightery/internal/availability/repository"
	"insightery/internal/availability/validator"
	"insightery/pkg/config"
	apperrors "insightery/pkg/errors"
	"insightery/pkg/kafka"
	"insightery/pkg/model"
)

const availabilityUpdatedEvent = "availability.updated"

// EventPublisher is the outbound event hook. Nil publisher means events are
// disabled; publish failures never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type AvailabilityService interface {
	// Get returns the stored schedule; found is false when the insighter has
	// never saved one, in which case the default empty schedule is returned.
	Get(ctx context.Context, insighterID string) (*model.Schedule, bool, error)

	// Put replaces the insighter's schedule wholesale. Returns the number of
	// duplicate exceptions removed during reconciliation.
	Put(ctx context.Context, insighterID string, schedule *model.Schedule) (int, error)

	// GetExceptions returns the reconciled exception view.
	GetExceptions(ctx context.Context, insighterID string) ([]model.AvailabilityException, error)

	Delete(ctx context.Context, insighterID string) error
}

type availabilityService struct {
	repo      repository.AvailabilityRepository
	validator *validator.AvailabilityValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewAvailabilityService(
	repo repository.AvailabilityRepository,
	v *validator.AvailabilityValidator,
	publisher EventPublisher,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *availabilityService) Get(ctx context.Context, insighterID string) (*model.Schedule, bool, error) {
	if insighterID == "" {
		return nil, false, apperrors.InvalidInput("Insighter ID cannot be empty")
	}

	schedule, err := s.repo.Get(ctx, insighterID)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return model.DefaultSchedule(), false, nil
		}
		if errors.Is(err, availabilityerrors.ErrInvalidID) {
			return nil, false, apperrors.InvalidInput("Invalid insighter ID")
		}
		s.cfg.Log.Error("Failed to get availability",
			"insighter_id", insighterID,
			"error", err,
		)
		return nil, false, apperrors.Internal("Failed to retrieve availability", err)
	}

	return schedule, true, nil
}

func (s *availabilityService) Put(ctx context.Context, insighterID string, schedule *model.Schedule) (int, error) {
	if insighterID == "" {
		return 0, apperrors.InvalidInput("Insighter ID cannot be empty")
	}
	if schedule == nil {
		return 0, apperrors.InvalidInput("Schedule payload is required")
	}

	schedule.Normalize()

	reconciled, removed := reconcile.Reconcile(schedule.Exceptions)
	if removed > 0 {
		s.cfg.Log.Info("Removed duplicate exceptions",
			"insighter_id", insighterID,
			"removed", removed,
		)
		schedule.Exceptions = reconciled
	}

	if err := s.validator.ValidateSchedule(schedule); err != nil {
		s.cfg.Log.Warn("Availability validation failed",
			"insighter_id", insighterID,
			"error", err,
		)
		return 0, apperrors.Validation("Availability validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		return s.repo.Upsert(sessCtx, insighterID, schedule)
	})
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrInvalidID) {
			return 0, apperrors.InvalidInput("Invalid insighter ID")
		}
		s.cfg.Log.Error("Failed to save availability",
			"insighter_id", insighterID,
			"error", err,
		)
		return 0, err
	}

	s.cfg.Log.Info("Availability saved successfully",
		"insighter_id", insighterID,
		"active_days", activeDays(schedule.Availability),
		"exceptions", len(schedule.Exceptions),
		"removed_duplicates", removed,
	)

	s.publishUpdated(ctx, insighterID, schedule, removed)
	return removed, nil
}

func (s *availabilityService) GetExceptions(ctx context.Context, insighterID string) ([]model.AvailabilityException, error) {
	schedule, _, err := s.Get(ctx, insighterID)
	if err != nil {
		return nil, err
	}

	reconciled, _ := reconcile.Reconcile(schedule.Exceptions)
	return reconciled, nil
}

func (s *availabilityService) Delete(ctx context.Context, insighterID string) error {
	if insighterID == "" {
		return apperrors.InvalidInput("Insighter ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, insighterID); err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Availability", insighterID)
		}
		if errors.Is(err, availabilityerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid insighter ID")
		}
		s.cfg.Log.Error("Failed to delete availability",
			"insighter_id", insighterID,
			"error", err,
		)
		return apperrors.Internal("Failed to delete availability", err)
	}

	s.cfg.Log.Info("Availability deleted", "insighter_id", insighterID)
	return nil
}

type availabilityUpdatedPayload struct {
	InsighterID       string    `json:"insighter_id"`
	ActiveDays        int       `json:"active_days"`
	SlotCount         int       `json:"slot_count"`
	ExceptionCount    int       `json:"exception_count"`
	RemovedDuplicates int       `json:"removed_duplicates"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (s *availabilityService) publishUpdated(ctx context.Context, insighterID string, schedule *model.Schedule, removed int) {
	if s.publisher == nil {
		return
	}

	slots := 0
	for _, day := range schedule.Availability {
		slots += len(day.Times)
	}

	msg := kafka.NewMessage().
		WithKey(insighterID).
		WithValue(availabilityUpdatedPayload{
			InsighterID:       insighterID,
			ActiveDays:        activeDays(schedule.Availability),
			SlotCount:         slots,
			ExceptionCount:    len(schedule.Exceptions),
			RemovedDuplicates: removed,
			UpdatedAt:         time.Now().UTC(),
		}).
		WithEventType(availabilityUpdatedEvent).
		WithSource("availability-service").
		WithSchemaVersion("1").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish availability.updated event",
			"insighter_id", insighterID,
			"error", err,
		)
	}
}

func activeDays(week model.Week) int {
	n := 0
	for _, day := range week {
		if day.Active {
			n++
		}
	}
	return n
}
