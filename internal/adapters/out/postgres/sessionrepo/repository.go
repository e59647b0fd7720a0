package sessionrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session with its membership and progress rows.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.PickingSession) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing session with its membership and packing rows.
//
// Pick counters are not written here: quantity_picked is owned by the
// stock-control layer, which commits increments outside the session lock.
// Saving the load-time values would revert any increment committed between
// this aggregate's read and its save. Packing rows carry no such hazard,
// they are only mutated under the session lock.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *session.PickingSession) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Omit("Picking").
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a session by ID, including membership and progress rows.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.PickingSession, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves a session by ID under an exclusive row lock on the
// session row. Concurrent phase transitions and packing allocations for the
// same session queue behind the lock; other sessions are unaffected.
func (r *GormSessionRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*session.PickingSession, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetAllActive retrieves every session still in the picking or packing phase,
// oldest first.
func (r *GormSessionRepository) GetAllActive(ctx context.Context) ([]*session.PickingSession, error) {
	var dtos []SessionDTO
	if err := r.db.WithContext(ctx).
		Preload("Orders").
		Preload("Picking").
		Preload("Packing").
		Where("status IN ?", []int{int(session.Picking), int(session.Packing)}).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	sessions := make([]*session.PickingSession, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, aggregate)
	}

	return sessions, nil
}

func (r *GormSessionRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*session.PickingSession, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := db.WithContext(ctx).
		Preload("Orders").
		Preload("Picking").
		Preload("Packing").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
