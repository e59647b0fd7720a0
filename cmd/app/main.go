package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		StockControlStrategy:    ports.StockControlStrategy(goDotEnvVariable("STOCK_CONTROL_STRATEGY")),
		AllowPartialFulfillment: goDotEnvVariable("ALLOW_PARTIAL_FULFILLMENT") == "true",
		PickRetryMaxAttempts:    envUint("PICK_RETRY_MAX_ATTEMPTS", 5),
		SessionMaxIdle:          envDuration("SESSION_MAX_IDLE", 4*time.Hour),
	}

	if err := config.StockControlStrategy.Validate(); err != nil {
		config.StockControlStrategy = ports.StrategyRowLock
	}

	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envUint(key string, fallback uint64) uint64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	recordPickedHandler, err := app.CreateRecordPickedCommandHandler()
	if err != nil {
		log.Fatalf("Failed to build pick handler: %v", err)
	}

	server := httpadapter.NewServer(
		app.CreateCreateProductCommandHandler(),
		app.CreateAdjustStockCommandHandler(),
		app.CreateCreateOrderCommandHandler(),
		app.CreateCreatePickingSessionCommandHandler(),
		recordPickedHandler,
		app.CreateFinishPickingCommandHandler(),
		app.CreatePackUnitCommandHandler(),
		app.CreateCompleteSessionCommandHandler(),
		app.CreateCancelSessionCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateDeleteOrderCommandHandler(),
		app.CreateShipOrderCommandHandler(),
		app.CreateGetAvailableStockQueryHandler(),
		app.CreateGetPackingListQueryHandler(),
		app.CreateGetLedgerQueryHandler(),
	)

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
