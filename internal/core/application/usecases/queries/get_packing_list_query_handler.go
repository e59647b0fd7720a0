package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPackingListQueryHandler reads a session's packing state from the
// progress tables.
type GetPackingListQueryHandler struct {
	db *gorm.DB
}

// NewGetPackingListQueryHandler creates a handler for packing list queries.
// Requires a GORM database connection for query execution.
func NewGetPackingListQueryHandler(db *gorm.DB) GetPackingListQueryHandler {
	return GetPackingListQueryHandler{db: db}
}

// Handle executes the query. The basket remainder per product is computed as
// quantity_picked minus the sum of that product's packed quantities.
func (h GetPackingListQueryHandler) Handle(
	ctx context.Context,
	query GetPackingListQuery,
) (GetPackingListQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPackingListQueryResponse{}, err
	}

	var response GetPackingListQueryResponse

	var header struct {
		ID     uuid.UUID
		Code   string
		Status int
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT id, code, status
		FROM picking_sessions
		WHERE id = ?
	`, query.SessionID().Bytes()).Scan(&header)
	if result.Error != nil {
		return GetPackingListQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetPackingListQueryResponse{},
			errs.NewObjectNotFoundError("sessionId", query.SessionID().String())
	}

	response.SessionID = query.SessionID()
	response.Code = header.Code
	response.Status = session.Status(header.Status).String()

	if err := h.loadItems(ctx, &response); err != nil {
		return GetPackingListQueryResponse{}, err
	}

	if err := h.loadBasket(ctx, &response); err != nil {
		return GetPackingListQueryResponse{}, err
	}

	return response, nil
}

func (h GetPackingListQueryHandler) loadItems(ctx context.Context, response *GetPackingListQueryResponse) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			quantity_needed,
			quantity_packed
		FROM packing_progress
		WHERE session_id = ?
		ORDER BY order_id, product_id
	`, response.SessionID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item PackingListItem
		var orderID, productID uuid.UUID

		if err = rows.Scan(&orderID, &productID, &item.QuantityNeeded, &item.QuantityPacked); err != nil {
			return err
		}

		if item.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return err
		}

		response.Items = append(response.Items, item)
	}

	return rows.Err()
}

func (h GetPackingListQueryHandler) loadBasket(ctx context.Context, response *GetPackingListQueryResponse) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			pick.product_id,
			pick.quantity_picked - COALESCE(SUM(pack.quantity_packed), 0) AS remaining
		FROM picking_progress pick
		LEFT JOIN packing_progress pack
			ON pack.session_id = pick.session_id AND pack.product_id = pick.product_id
		WHERE pick.session_id = ?
		GROUP BY pick.product_id, pick.quantity_picked
		ORDER BY pick.product_id
	`, response.SessionID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var remainder BasketRemainder
		var productID uuid.UUID

		if err = rows.Scan(&productID, &remainder.Remaining); err != nil {
			return err
		}

		if remainder.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return err
		}

		response.Basket = append(response.Basket, remainder)
	}

	return rows.Err()
}
