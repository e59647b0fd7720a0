// Package ledgerrepo persists the append-only inventory ledger. Movements
// are written once and never updated; the table carries no GORM hooks or
// soft-delete columns on purpose.
package ledgerrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// MovementDTO represents one immutable row of the inventory ledger.
type MovementDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Delta          int       `gorm:"type:int;not null"`
	ResultingStock int       `gorm:"type:int;not null"`
	ReferenceType  string    `gorm:"type:varchar(32);not null"`
	ReferenceID    uuid.UUID `gorm:"type:uuid;not null"`
	RecordedAt     time.Time `gorm:"not null"`
}

// TableName specifies the database table name for ledger movements.
func (MovementDTO) TableName() string {
	return "inventory_movements"
}

// fromDomain converts a movement to its database representation.
func fromDomain(movement *product.Movement) MovementDTO {
	return MovementDTO{
		ID:             movement.ID().Bytes(),
		ProductID:      movement.ProductID().Bytes(),
		Delta:          movement.Delta(),
		ResultingStock: movement.ResultingStock(),
		ReferenceType:  string(movement.Reference().Type),
		ReferenceID:    movement.Reference().ID.Bytes(),
		RecordedAt:     movement.RecordedAt(),
	}
}

// toDomain converts a database DTO to a movement.
func toDomain(dto MovementDTO) (*product.Movement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	referenceID, err := kernel.UUIDFromBytes(dto.ReferenceID[:])
	if err != nil {
		return nil, err
	}

	reference, err := product.NewReference(product.ReferenceType(dto.ReferenceType), referenceID)
	if err != nil {
		return nil, err
	}

	return product.RestoreMovement(id, productID, dto.Delta, dto.ResultingStock, reference, dto.RecordedAt)
}
