package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableStockQueryHandler reads current stock counters straight from
// the products table, without locks.
type GetAvailableStockQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableStockQueryHandler creates a handler for stock level queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableStockQueryHandler(db *gorm.DB) GetAvailableStockQueryHandler {
	return GetAvailableStockQueryHandler{db: db}
}

// Handle executes the query and returns one row per product of the tenant,
// sorted by name for consistent output.
func (h GetAvailableStockQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableStockQuery,
) ([]GetAvailableStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]GetAvailableStockQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			current_stock,
			unit_cost
		FROM products
		WHERE tenant_id = ?
		ORDER BY name, id
	`, query.TenantID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableStockQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.CurrentStock,
			&resp.UnitCost,
		)
		if err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ProductID = productID

		products = append(products, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
