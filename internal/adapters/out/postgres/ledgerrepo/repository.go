package ledgerrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append persists a new movement row.
func (r *GormLedgerRepository) Append(ctx context.Context, movement *product.Movement) error {
	dto := fromDomain(movement)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByProduct retrieves every movement for a product, oldest first.
func (r *GormLedgerRepository) GetByProduct(ctx context.Context, productID kernel.UUID) ([]*product.Movement, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MovementDTO
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID.Bytes()).
		Order("recorded_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	movements := make([]*product.Movement, 0, len(dtos))
	for _, dto := range dtos {
		movement, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	return movements, nil
}

// SumDeltas returns the sum of all movement deltas for a product.
func (r *GormLedgerRepository) SumDeltas(ctx context.Context, productID kernel.UUID) (int, error) {
	if err := productID.Validate(); err != nil {
		return 0, err
	}

	var sum int
	if err := r.db.WithContext(ctx).
		Model(&MovementDTO{}).
		Select("COALESCE(SUM(delta), 0)").
		Where("product_id = ?", productID.Bytes()).
		Scan(&sum).Error; err != nil {
		return 0, err
	}

	return sum, nil
}
