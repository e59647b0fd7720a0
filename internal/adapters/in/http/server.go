// Package http exposes the fulfillment operations as a JSON API over echo.
// Handlers are thin: they parse and validate input into commands or queries,
// invoke the application handlers and translate errors into status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createProductHandler      commands.CreateProductCommandHandler
	adjustStockHandler        commands.AdjustStockCommandHandler
	createOrderHandler        commands.CreateOrderCommandHandler
	createSessionHandler      commands.CreatePickingSessionCommandHandler
	recordPickedHandler       commands.RecordPickedCommandHandler
	finishPickingHandler      commands.FinishPickingCommandHandler
	packUnitHandler           commands.PackUnitCommandHandler
	completeSessionHandler    commands.CompleteSessionCommandHandler
	cancelSessionHandler      commands.CancelSessionCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	deleteOrderHandler        commands.DeleteOrderCommandHandler
	shipOrderHandler          commands.ShipOrderCommandHandler

	// Query handlers
	getAvailableStockHandler queries.GetAvailableStockQueryHandler
	getPackingListHandler    queries.GetPackingListQueryHandler
	getLedgerHandler         queries.GetLedgerQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createProductHandler commands.CreateProductCommandHandler,
	adjustStockHandler commands.AdjustStockCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	createSessionHandler commands.CreatePickingSessionCommandHandler,
	recordPickedHandler commands.RecordPickedCommandHandler,
	finishPickingHandler commands.FinishPickingCommandHandler,
	packUnitHandler commands.PackUnitCommandHandler,
	completeSessionHandler commands.CompleteSessionCommandHandler,
	cancelSessionHandler commands.CancelSessionCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	shipOrderHandler commands.ShipOrderCommandHandler,
	getAvailableStockHandler queries.GetAvailableStockQueryHandler,
	getPackingListHandler queries.GetPackingListQueryHandler,
	getLedgerHandler queries.GetLedgerQueryHandler,
) *Server {
	return &Server{
		createProductHandler:     createProductHandler,
		adjustStockHandler:       adjustStockHandler,
		createOrderHandler:       createOrderHandler,
		createSessionHandler:     createSessionHandler,
		recordPickedHandler:      recordPickedHandler,
		finishPickingHandler:     finishPickingHandler,
		packUnitHandler:          packUnitHandler,
		completeSessionHandler:   completeSessionHandler,
		cancelSessionHandler:     cancelSessionHandler,
		cancelOrderHandler:       cancelOrderHandler,
		deleteOrderHandler:       deleteOrderHandler,
		shipOrderHandler:         shipOrderHandler,
		getAvailableStockHandler: getAvailableStockHandler,
		getPackingListHandler:    getPackingListHandler,
		getLedgerHandler:         getLedgerHandler,
	}
}

// RegisterRoutes binds every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/products", s.CreateProduct)
	api.POST("/products/:productID/adjustments", s.AdjustStock)
	api.GET("/products/:productID/ledger", s.GetLedger)
	api.GET("/tenants/:tenantID/stock", s.GetAvailableStock)

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/ship", s.ShipOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.DELETE("/orders/:orderID", s.DeleteOrder)

	api.POST("/sessions", s.CreateSession)
	api.POST("/sessions/:sessionID/picks", s.RecordPicked)
	api.POST("/sessions/:sessionID/finish-picking", s.FinishPicking)
	api.GET("/sessions/:sessionID/packing-list", s.GetPackingList)
	api.POST("/sessions/:sessionID/packs", s.PackUnit)
	api.POST("/sessions/:sessionID/complete", s.CompleteSession)
	api.POST("/sessions/:sessionID/cancel", s.CancelSession)
}

// Error is the JSON error payload returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorResponse maps application errors onto HTTP status codes by error kind.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrCapacityExceeded),
		errors.Is(err, errs.ErrConcurrencyConflict),
		errors.Is(err, errs.ErrPickingClosed),
		errors.Is(err, commands.ErrSessionIsNotPicking),
		errors.Is(err, commands.ErrPartialFulfillmentDisabled):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrIntegrityViolation),
		errors.Is(err, services.ErrNoEligibleOrders):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

func parsePathID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, err
	}
	return id, nil
}

// NewProduct is the request body for product registration.
type NewProduct struct {
	Name     string `json:"name"`
	UnitCost int    `json:"unit_cost"`
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var body NewProduct
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	tenantID, err := kernel.UUIDFromString(ctx.QueryParam("tenant_id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(productID, tenantID, body.Name, body.UnitCost)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": productID.String()})
}

// NewAdjustment is the request body for a manual stock adjustment.
type NewAdjustment struct {
	Delta int `json:"delta"`
}

// AdjustStock handles POST /api/v1/products/:productID/adjustments.
func (s *Server) AdjustStock(ctx echo.Context) error {
	productID, err := parsePathID(ctx, "productID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body NewAdjustment
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewAdjustStockCommand(productID, body.Delta)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.adjustStockHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Movement is one ledger row in the movement history response.
type Movement struct {
	MovementID     string    `json:"movement_id"`
	Delta          int       `json:"delta"`
	ResultingStock int       `json:"resulting_stock"`
	ReferenceType  string    `json:"reference_type"`
	ReferenceID    string    `json:"reference_id"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// GetLedger handles GET /api/v1/products/:productID/ledger.
func (s *Server) GetLedger(ctx echo.Context) error {
	productID, err := parsePathID(ctx, "productID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetLedgerQuery(productID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	movements, err := s.getLedgerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]Movement, len(movements))
	for i, movement := range movements {
		response[i] = Movement{
			MovementID:     movement.MovementID.String(),
			Delta:          movement.Delta,
			ResultingStock: movement.ResultingStock,
			ReferenceType:  movement.ReferenceType,
			ReferenceID:    movement.ReferenceID.String(),
			RecordedAt:     movement.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StockLevel is one product's advisory stock level.
type StockLevel struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	UnitCost     int    `json:"unit_cost"`
}

// GetAvailableStock handles GET /api/v1/tenants/:tenantID/stock.
func (s *Server) GetAvailableStock(ctx echo.Context) error {
	tenantID, err := parsePathID(ctx, "tenantID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetAvailableStockQuery(tenantID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	levels, err := s.getAvailableStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]StockLevel, len(levels))
	for i, level := range levels {
		response[i] = StockLevel{
			ProductID:    level.ProductID.String(),
			Name:         level.Name,
			CurrentStock: level.CurrentStock,
			UnitCost:     level.UnitCost,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// NewOrderLine is one line of an incoming order.
type NewOrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// NewOrder is the request body for order registration.
type NewOrder struct {
	TenantID string         `json:"tenant_id"`
	Lines    []NewOrderLine `json:"lines"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	tenantID, err := kernel.UUIDFromString(body.TenantID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	items := make([]commands.LineItemInput, 0, len(body.Lines))
	for _, line := range body.Lines {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return errorResponse(ctx, lineErr)
		}
		items = append(items, commands.LineItemInput{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, tenantID, items)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// ShipOrder handles POST /api/v1/orders/:orderID/ship.
func (s *Server) ShipOrder(ctx echo.Context) error {
	orderID, err := parsePathID(ctx, "orderID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewShipOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.shipOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := parsePathID(ctx, "orderID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:orderID.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := parsePathID(ctx, "orderID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// NewSession is the request body for opening a picking session.
type NewSession struct {
	TenantID string   `json:"tenant_id"`
	OrderIDs []string `json:"order_ids"`
}

// CreateSession handles POST /api/v1/sessions.
func (s *Server) CreateSession(ctx echo.Context) error {
	var body NewSession
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	tenantID, err := kernel.UUIDFromString(body.TenantID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orderIDs := make([]kernel.UUID, 0, len(body.OrderIDs))
	for _, raw := range body.OrderIDs {
		orderID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return errorResponse(ctx, idErr)
		}
		orderIDs = append(orderIDs, orderID)
	}

	sessionID := kernel.NewUUID()
	cmd, err := commands.NewCreatePickingSessionCommand(sessionID, tenantID, orderIDs)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": sessionID.String()})
}

// NewPick is the request body for recording picked units.
type NewPick struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PickResult reports the cumulative picked quantity after the increment.
type PickResult struct {
	ProductID      string `json:"product_id"`
	QuantityPicked int    `json:"quantity_picked"`
}

// RecordPicked handles POST /api/v1/sessions/:sessionID/picks.
func (s *Server) RecordPicked(ctx echo.Context) error {
	sessionID, err := parsePathID(ctx, "sessionID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body NewPick
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	productID, err := kernel.UUIDFromString(body.ProductID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewRecordPickedCommand(sessionID, productID, body.Quantity)
	if err != nil {
		return errorResponse(ctx, err)
	}

	picked, err := s.recordPickedHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PickResult{
		ProductID:      productID.String(),
		QuantityPicked: picked,
	})
}

// FinishPickingRequest is the request body for closing the picking phase.
type FinishPickingRequest struct {
	AcknowledgeShortfall bool `json:"acknowledge_shortfall"`
}

// FinishPicking handles POST /api/v1/sessions/:sessionID/finish-picking.
func (s *Server) FinishPicking(ctx echo.Context) error {
	sessionID, err := parsePathID(ctx, "sessionID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body FinishPickingRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewFinishPickingCommand(sessionID, body.AcknowledgeShortfall)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.finishPickingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PackingListItem is one order line with its packing progress.
type PackingListItem struct {
	OrderID        string `json:"order_id"`
	ProductID      string `json:"product_id"`
	QuantityNeeded int    `json:"quantity_needed"`
	QuantityPacked int    `json:"quantity_packed"`
}

// BasketRemainder is the undistributed picked quantity of one product.
type BasketRemainder struct {
	ProductID string `json:"product_id"`
	Remaining int    `json:"remaining"`
}

// PackingList is the full packing surface of a session.
type PackingList struct {
	SessionID string            `json:"session_id"`
	Code      string            `json:"code"`
	Status    string            `json:"status"`
	Items     []PackingListItem `json:"items"`
	Basket    []BasketRemainder `json:"basket"`
}

// GetPackingList handles GET /api/v1/sessions/:sessionID/packing-list.
func (s *Server) GetPackingList(ctx echo.Context) error {
	sessionID, err := parsePathID(ctx, "sessionID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetPackingListQuery(sessionID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	packingList, err := s.getPackingListHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := PackingList{
		SessionID: packingList.SessionID.String(),
		Code:      packingList.Code,
		Status:    packingList.Status,
		Items:     make([]PackingListItem, len(packingList.Items)),
		Basket:    make([]BasketRemainder, len(packingList.Basket)),
	}
	for i, item := range packingList.Items {
		response.Items[i] = PackingListItem{
			OrderID:        item.OrderID.String(),
			ProductID:      item.ProductID.String(),
			QuantityNeeded: item.QuantityNeeded,
			QuantityPacked: item.QuantityPacked,
		}
	}
	for i, remainder := range packingList.Basket {
		response.Basket[i] = BasketRemainder{
			ProductID: remainder.ProductID.String(),
			Remaining: remainder.Remaining,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// NewPack is the request body for allocating one picked unit to an order.
type NewPack struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
}

// PackResult reports the order line's packed quantity after the allocation.
type PackResult struct {
	OrderID        string `json:"order_id"`
	ProductID      string `json:"product_id"`
	QuantityPacked int    `json:"quantity_packed"`
}

// PackUnit handles POST /api/v1/sessions/:sessionID/packs.
func (s *Server) PackUnit(ctx echo.Context) error {
	sessionID, err := parsePathID(ctx, "sessionID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body NewPack
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(body.OrderID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	productID, err := kernel.UUIDFromString(body.ProductID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewPackUnitCommand(sessionID, orderID, productID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	packed, err := s.packUnitHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PackResult{
		OrderID:        orderID.String(),
		ProductID:      productID.String(),
		QuantityPacked: packed,
	})
}

// CompleteSession handles POST /api/v1/sessions/:sessionID/complete.
func (s *Server) CompleteSession(ctx echo.Context) error {
	sessionID, err := parsePathID(ctx, "sessionID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCompleteSessionCommand(sessionID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.completeSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelSession handles POST /api/v1/sessions/:sessionID/cancel.
func (s *Server) CancelSession(ctx echo.Context) error {
	sessionID, err := parsePathID(ctx, "sessionID")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCancelSessionCommand(sessionID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.cancelSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
