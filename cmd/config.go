package cmd

import (
	"time"

	"fulfillment/internal/core/ports"
)

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	StockControlStrategy    ports.StockControlStrategy
	AllowPartialFulfillment bool
	PickRetryMaxAttempts    uint64
	SessionMaxIdle          time.Duration
}
