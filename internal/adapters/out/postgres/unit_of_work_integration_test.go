package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/ledgerrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/sessionrepo"
	"fulfillment/internal/adapters/out/postgres/stockcontrol"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&sessionrepo.SessionDTO{},
		&sessionrepo.SessionOrderDTO{},
		&sessionrepo.PickingProgressDTO{},
		&sessionrepo.PackingProgressDTO{},
		&ledgerrepo.MovementDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE products, orders, order_lines, picking_sessions, " +
		"picking_session_orders, picking_progress, packing_progress, inventory_movements").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	// Create multiple unit of work instances
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	// Verify instances are different
	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	// Verify both instances provide access to repositories
	suite.NotNil(uow1.ProductRepository(), "First instance should provide product repository")
	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow2.SessionRepository(), "Second instance should provide session repository")
	suite.NotNil(uow2.LedgerRepository(), "Second instance should provide ledger repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Test multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	// Test commit
	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	// Test rollback on new transaction
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test commit without begin
	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	// Test rollback without begin
	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testProduct := createTestProduct(suite.T(), 10)

	// Begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Add product within transaction
	err = uow.ProductRepository().Add(ctx, testProduct)
	suite.Require().NoError(err)

	// Verify product exists within transaction
	retrieved, err := uow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(testProduct.ID(), retrieved.ID())

	// Commit transaction
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify product persists after commit using new unit of work
	newUow := suite.factory.Create()
	retrieved, err = newUow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(testProduct.ID(), retrieved.ID())
	suite.Equal(10, retrieved.CurrentStock())
}

// TestUnitOfWork_StockAdjustmentWritesCounterAndLedgerTogether verifies the
// denormalized counter and the ledger movement commit atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StockAdjustmentWritesCounterAndLedgerTogether() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testProduct := createTestProduct(suite.T(), 0)
	err := uow.ProductRepository().Add(ctx, testProduct)
	suite.Require().NoError(err)

	// Two adjustments in separate transactions, each pairing the counter
	// update with its ledger row
	for _, delta := range []int{10, 5} {
		txUow := suite.factory.Create()
		err = txUow.Begin(ctx)
		suite.Require().NoError(err)

		locked, err := txUow.ProductRepository().GetForUpdate(ctx, testProduct.ID())
		suite.Require().NoError(err)

		reference, err := product.NewReference(product.ReferenceAdjustment, kernel.NewUUID())
		suite.Require().NoError(err)

		movement, err := locked.Adjust(delta, reference)
		suite.Require().NoError(err)

		err = txUow.ProductRepository().Update(ctx, locked)
		suite.Require().NoError(err)
		err = txUow.LedgerRepository().Append(ctx, movement)
		suite.Require().NoError(err)

		err = txUow.Commit(ctx)
		suite.Require().NoError(err)
	}

	// Counter and ledger agree after commit
	newUow := suite.factory.Create()
	retrieved, err := newUow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(15, retrieved.CurrentStock())

	sum, err := newUow.LedgerRepository().SumDeltas(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(15, sum)

	movements, err := newUow.LedgerRepository().GetByProduct(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Len(movements, 2)
	suite.Equal(15, movements[1].ResultingStock())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testProduct := createTestProduct(suite.T(), 10)
	testOrder := createTestOrder(suite.T(), testProduct)

	// Begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.ProductRepository().Add(ctx, testProduct)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Verify entities exist within transaction
	_, err = uow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// Rollback transaction
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify entities do not exist after rollback using new unit of work
	newUow := suite.factory.Create()

	_, err = newUow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().Error(err, "Product should not exist after rollback")

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")
}

// TestUnitOfWork_SessionWorkflow runs a full picking and packing workflow
// through the unit of work and verifies every aggregate lands consistently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SessionWorkflow() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()

	testProduct := createTestProductForTenant(suite.T(), tenantID, 10)
	lineItem, err := order.NewLineItem(testProduct.ID(), 2)
	suite.Require().NoError(err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), tenantID, []order.LineItem{lineItem})
	suite.Require().NoError(err)

	setupUow := suite.factory.Create()
	err = setupUow.ProductRepository().Add(ctx, testProduct)
	suite.Require().NoError(err)
	err = setupUow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Step 1: build the session and move the order into preparation
	testSession, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{testOrder})
	suite.Require().NoError(err)
	err = testOrder.StartPreparation()
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.SessionRepository().Add(ctx, testSession)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Step 2: pick everything through stock control, then move the session
	// to packing
	control, err := stockcontrol.NewGormStockControl(suite.db, ports.StrategyRowLock)
	suite.Require().NoError(err)
	picked, err := control.IncrementPicked(ctx, testSession.ID(), testProduct.ID(), 2)
	suite.Require().NoError(err)
	suite.Equal(2, picked)

	workUow := suite.factory.Create()
	err = workUow.Begin(ctx)
	suite.Require().NoError(err)

	retrieved, err := workUow.SessionRepository().GetForUpdate(ctx, testSession.ID())
	suite.Require().NoError(err)

	err = retrieved.FinishPicking(false)
	suite.Require().NoError(err)

	err = workUow.SessionRepository().Update(ctx, retrieved)
	suite.Require().NoError(err)
	err = workUow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify the phase transition and the counters survived the round trip
	verifyUow := suite.factory.Create()
	reloaded, err := verifyUow.SessionRepository().Get(ctx, testSession.ID())
	suite.Require().NoError(err)
	suite.Equal(session.Packing, reloaded.Status())
	suite.Require().Len(reloaded.PickingRows(), 1)
	suite.Equal(2, reloaded.PickingRows()[0].QuantityPicked())
	suite.Equal(2, reloaded.BasketRemaining(testProduct.ID()))

	// The session appears in the active list
	active, err := verifyUow.SessionRepository().GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.Equal(testSession.ID(), active[0].ID())
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	// Create two unit of work instances
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	product1 := createTestProduct(suite.T(), 5)
	product2 := createTestProduct(suite.T(), 5)

	// Begin transactions on both
	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	// Add different products in each transaction
	err = uow1.ProductRepository().Add(ctx, product1)
	suite.Require().NoError(err)

	err = uow2.ProductRepository().Add(ctx, product2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes
	_, err = uow1.ProductRepository().Get(ctx, product1.ID())
	suite.Require().NoError(err, "UOW1 should see product1")

	_, err = uow1.ProductRepository().Get(ctx, product2.ID())
	suite.Require().Error(err, "UOW1 should not see product2")

	_, err = uow2.ProductRepository().Get(ctx, product2.ID())
	suite.Require().NoError(err, "UOW2 should see product2")

	_, err = uow2.ProductRepository().Get(ctx, product1.ID())
	suite.Require().Error(err, "UOW2 should not see product1")

	// Commit first transaction
	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	// Rollback second transaction
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify only product1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.ProductRepository().Get(ctx, product1.ID())
	suite.Require().NoError(err, "Product1 should persist after commit")

	_, err = newUow.ProductRepository().Get(ctx, product2.ID())
	suite.Require().Error(err, "Product2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testProduct := createTestProduct(suite.T(), 3)

	// Add product without beginning transaction (should auto-commit)
	err := uow.ProductRepository().Add(ctx, testProduct)
	suite.Require().NoError(err)

	// Verify product persists immediately
	retrieved, err := uow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(testProduct.ID(), retrieved.ID())

	// Verify with new unit of work instance
	newUow := suite.factory.Create()
	retrieved, err = newUow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(testProduct.ID(), retrieved.ID())
}

// TestUnitOfWork_OrderDispatchWorkflow tests the ready-to-ship transition with
// its stock decrement and ledger movements committed as one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderDispatchWorkflow() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()

	testProduct := createTestProductForTenant(suite.T(), tenantID, 10)
	lineItem, err := order.NewLineItem(testProduct.ID(), 3)
	suite.Require().NoError(err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), tenantID, []order.LineItem{lineItem})
	suite.Require().NoError(err)
	err = testOrder.StartPreparation()
	suite.Require().NoError(err)

	setupUow := suite.factory.Create()
	err = setupUow.ProductRepository().Add(ctx, testProduct)
	suite.Require().NoError(err)
	err = setupUow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Dispatch: decrement stock, append ledger rows, flip the order status
	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = testOrder.MarkReadyToShip()
	suite.Require().NoError(err)

	reference, err := product.NewReference(product.ReferenceOrder, testOrder.ID())
	suite.Require().NoError(err)

	locked, err := uow.ProductRepository().GetForUpdate(ctx, testProduct.ID())
	suite.Require().NoError(err)
	movement, err := locked.Adjust(-3, reference)
	suite.Require().NoError(err)

	err = uow.ProductRepository().Update(ctx, locked)
	suite.Require().NoError(err)
	err = uow.LedgerRepository().Append(ctx, movement)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify final state using a new unit of work
	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ReadyToShip, retrievedOrder.Status())
	suite.True(retrievedOrder.StockAffected())

	retrievedProduct, err := newUow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(7, retrievedProduct.CurrentStock())

	movements, err := newUow.LedgerRepository().GetByProduct(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Require().Len(movements, 1)
	suite.Equal(-3, movements[0].Delta())
	suite.Equal(product.ReferenceOrder, movements[0].Reference().Type)
	suite.Equal(testOrder.ID(), movements[0].Reference().ID)
}

// TestUnitOfWork_DuplicateAddFailsAndRollsBack tests behavior when some
// operations succeed and others fail within one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicateAddFailsAndRollsBack() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Create initial product outside transaction
	existing := createTestProduct(suite.T(), 5)
	err := uow.ProductRepository().Add(ctx, existing)
	suite.Require().NoError(err)

	// Begin new transaction
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	fresh := createTestProduct(suite.T(), 5)
	err = uow.ProductRepository().Add(ctx, fresh)
	suite.Require().NoError(err)

	// Try to add a product with the same ID as the existing one (should fail)
	duplicate, err := product.RestoreProduct(existing.ID(), existing.TenantID(), "duplicate", 100, 0)
	suite.Require().NoError(err)

	err = uow.ProductRepository().Add(ctx, duplicate)
	suite.Require().Error(err, "Adding duplicate product should fail")

	// Even though some operations succeeded, rollback should undo everything
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify rollback undid the successful operations
	newUow := suite.factory.Create()

	_, err = newUow.ProductRepository().Get(ctx, existing.ID())
	suite.Require().NoError(err, "Existing product should still exist")

	_, err = newUow.ProductRepository().Get(ctx, fresh.ID())
	suite.Require().Error(err, "New product should not exist after rollback")
}

// createTestProduct creates a valid product with the given stock for testing purposes.
func createTestProduct(t *testing.T, stock int) *product.Product {
	return createTestProductForTenant(t, kernel.NewUUID(), stock)
}

func createTestProductForTenant(t *testing.T, tenantID kernel.UUID, stock int) *product.Product {
	t.Helper()

	testProduct, err := product.NewProduct(kernel.NewUUID(), tenantID, "Test Product", 250)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if stock > 0 {
		reference, err := product.NewReference(product.ReferenceAdjustment, kernel.NewUUID())
		if err != nil {
			t.Fatalf("create reference: %v", err)
		}
		if _, err := testProduct.Adjust(stock, reference); err != nil {
			t.Fatalf("adjust stock: %v", err)
		}
	}

	return testProduct
}

// createTestOrder creates a valid order over the given product for testing purposes.
func createTestOrder(t *testing.T, testProduct *product.Product) *order.Order {
	t.Helper()

	lineItem, err := order.NewLineItem(testProduct.ID(), 1)
	if err != nil {
		t.Fatalf("create line item: %v", err)
	}

	testOrder, err := order.NewOrder(kernel.NewUUID(), testProduct.TenantID(), []order.LineItem{lineItem})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
