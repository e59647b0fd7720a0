// Package sessionrepo provides data transfer objects and mapping functions for
// picking session persistence. This package implements the repository pattern
// for the session domain aggregate, handling the conversion between domain
// entities and database representations.
package sessionrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"

	"github.com/google/uuid"
)

// SessionDTO represents the database structure for persisting picking session
// aggregates. Member orders and progress counters live in their own tables
// and are loaded with the session.
type SessionDTO struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	Code      string               `gorm:"type:varchar(32);not null"`
	Status    int                  `gorm:"type:int;not null;index"`
	CreatedAt time.Time            `gorm:"not null"`
	Orders    []SessionOrderDTO    `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Picking   []PickingProgressDTO `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Packing   []PackingProgressDTO `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for session entities.
// Overrides GORM's default naming convention to use "picking_sessions".
func (SessionDTO) TableName() string {
	return "picking_sessions"
}

// SessionOrderDTO links a session to one of its member orders.
type SessionOrderDTO struct {
	SessionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for session membership rows.
func (SessionOrderDTO) TableName() string {
	return "picking_session_orders"
}

// PickingProgressDTO is one aggregated pick list row. The quantity_picked
// column is the shared counter mutated by the stock-control layer; its bound
// is quantity_needed.
type PickingProgressDTO struct {
	SessionID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuantityNeeded int       `gorm:"type:int;not null"`
	QuantityPicked int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for pick list rows.
func (PickingProgressDTO) TableName() string {
	return "picking_progress"
}

// PackingProgressDTO is one (order, product) allocation row.
type PackingProgressDTO struct {
	SessionID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuantityNeeded int       `gorm:"type:int;not null"`
	QuantityPacked int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for packing allocation rows.
func (PackingProgressDTO) TableName() string {
	return "packing_progress"
}

// fromDomain converts a session domain aggregate to its database representation.
func fromDomain(aggregate *session.PickingSession) SessionDTO {
	sessionID := aggregate.ID().Bytes()

	orders := make([]SessionOrderDTO, 0, len(aggregate.OrderIDs()))
	for _, orderID := range aggregate.OrderIDs() {
		orders = append(orders, SessionOrderDTO{
			SessionID: sessionID,
			OrderID:   orderID.Bytes(),
		})
	}

	picking := make([]PickingProgressDTO, 0, len(aggregate.PickingRows()))
	for _, row := range aggregate.PickingRows() {
		picking = append(picking, PickingProgressDTO{
			SessionID:      sessionID,
			ProductID:      row.ProductID().Bytes(),
			QuantityNeeded: row.QuantityNeeded(),
			QuantityPicked: row.QuantityPicked(),
		})
	}

	packing := make([]PackingProgressDTO, 0, len(aggregate.PackingRows()))
	for _, row := range aggregate.PackingRows() {
		packing = append(packing, PackingProgressDTO{
			SessionID:      sessionID,
			OrderID:        row.OrderID().Bytes(),
			ProductID:      row.ProductID().Bytes(),
			QuantityNeeded: row.QuantityNeeded(),
			QuantityPacked: row.QuantityPacked(),
		})
	}

	return SessionDTO{
		ID:        sessionID,
		TenantID:  aggregate.TenantID().Bytes(),
		Code:      aggregate.Code(),
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
		Orders:    orders,
		Picking:   picking,
		Packing:   packing,
	}
}

// toDomain converts a database DTO to a session domain aggregate.
// Reconstructs the complete aggregate including progress rows using RestorePickingSession.
func toDomain(dto SessionDTO) (*session.PickingSession, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(dto.Orders))
	for _, row := range dto.Orders {
		orderID, rowErr := kernel.UUIDFromBytes(row.OrderID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	picking := make([]*session.PickingProgress, 0, len(dto.Picking))
	for _, row := range dto.Picking {
		productID, rowErr := kernel.UUIDFromBytes(row.ProductID[:])
		if rowErr != nil {
			return nil, rowErr
		}

		progress, rowErr := session.RestorePickingProgress(productID, row.QuantityNeeded, row.QuantityPicked)
		if rowErr != nil {
			return nil, rowErr
		}
		picking = append(picking, progress)
	}

	packing := make([]*session.PackingProgress, 0, len(dto.Packing))
	for _, row := range dto.Packing {
		orderID, rowErr := kernel.UUIDFromBytes(row.OrderID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		productID, rowErr := kernel.UUIDFromBytes(row.ProductID[:])
		if rowErr != nil {
			return nil, rowErr
		}

		progress, rowErr := session.RestorePackingProgress(
			orderID, productID, row.QuantityNeeded, row.QuantityPacked)
		if rowErr != nil {
			return nil, rowErr
		}
		packing = append(packing, progress)
	}

	return session.RestorePickingSession(
		id, tenantID, dto.Code, session.Status(dto.Status),
		orderIDs, picking, packing, dto.CreatedAt,
	)
}
