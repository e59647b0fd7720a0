package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLedgerQueryHandler reads a product's movement history from the ledger
// table.
type GetLedgerQueryHandler struct {
	db *gorm.DB
}

// NewGetLedgerQueryHandler creates a handler for ledger queries.
// Requires a GORM database connection for query execution.
func NewGetLedgerQueryHandler(db *gorm.DB) GetLedgerQueryHandler {
	return GetLedgerQueryHandler{db: db}
}

// Handle executes the query and returns the movements oldest first.
func (h GetLedgerQueryHandler) Handle(
	ctx context.Context,
	query GetLedgerQuery,
) ([]GetLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	movements := make([]GetLedgerQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delta,
			resulting_stock,
			reference_type,
			reference_id,
			recorded_at
		FROM inventory_movements
		WHERE product_id = ?
		ORDER BY recorded_at, id
	`, query.ProductID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetLedgerQueryResponse
		var id, referenceID uuid.UUID

		err = rows.Scan(
			&id,
			&resp.Delta,
			&resp.ResultingStock,
			&resp.ReferenceType,
			&referenceID,
			&resp.RecordedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.MovementID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ReferenceID, err = kernel.UUIDFromBytes(referenceID[:]); err != nil {
			return nil, err
		}

		movements = append(movements, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movements, nil
}
