package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/notifier"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/stockcontrol"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.CompletionNotifier
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier.NewSlogNotifier(logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateAdjustStockCommandHandler() commands.AdjustStockCommandHandler {
	return commands.NewAdjustStockCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCreatePickingSessionCommandHandler() commands.CreatePickingSessionCommandHandler {
	return commands.NewCreatePickingSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateRecordPickedCommandHandler() (commands.RecordPickedCommandHandler, error) {
	stockControl, err := stockcontrol.NewGormStockControl(c.gormDB, c.config.StockControlStrategy)
	if err != nil {
		return commands.RecordPickedCommandHandler{}, err
	}

	return commands.NewRecordPickedCommandHandler(
		c.sessionUoWFactory(), stockControl, c.config.PickRetryMaxAttempts), nil
}

func (c *CompositionRoot) CreateFinishPickingCommandHandler() commands.FinishPickingCommandHandler {
	return commands.NewFinishPickingCommandHandler(c.sessionUoWFactory(), c.config.AllowPartialFulfillment)
}

func (c *CompositionRoot) CreatePackUnitCommandHandler() commands.PackUnitCommandHandler {
	return commands.NewPackUnitCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCompleteSessionCommandHandler() commands.CompleteSessionCommandHandler {
	return commands.NewCompleteSessionCommandHandler(c.sessionUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelSessionCommandHandler() commands.CancelSessionCommandHandler {
	return commands.NewCancelSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateCancelStaleSessionsCommandHandler() commands.CancelStaleSessionsCommandHandler {
	return commands.NewCancelStaleSessionsCommandHandler(
		c.sessionUoWFactory(), c.CreateCancelSessionCommandHandler())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetAvailableStockQueryHandler() queries.GetAvailableStockQueryHandler {
	return queries.NewGetAvailableStockQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPackingListQueryHandler() queries.GetPackingListQueryHandler {
	return queries.NewGetPackingListQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLedgerQueryHandler() queries.GetLedgerQueryHandler {
	return queries.NewGetLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateReconcileStockQueryHandler() queries.ReconcileStockQueryHandler {
	return queries.NewReconcileStockQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileStockQueryHandler(),
		c.CreateCancelStaleSessionsCommandHandler(),
		c.config.SessionMaxIdle,
		c.logger,
	)
}

func (c *CompositionRoot) stockUoWFactory() commands.StockUoWFactory {
	return FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
