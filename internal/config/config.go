package config

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	BackendDynamoDB = "dynamodb"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

var validate = validator.New()

type AppConfig struct {
	// TargetTable names the table (or collection) records are written to.
	TargetTable string `validate:"required"`

	// StoreBackend selects the record store; dynamodb in production.
	StoreBackend string `validate:"oneof=dynamodb sqlite memory"`
	SQLitePath   string `validate:"required_if=StoreBackend sqlite"`

	// ForecastURL is the forecast endpoint without query parameters.
	// Empty selects the public Open-Meteo endpoint.
	ForecastURL string `validate:"omitempty,url"`

	LogLevel string

	// Tracing. An empty endpoint keeps spans in-process.
	ServiceName  string `validate:"required"`
	OTLPEndpoint string `validate:"omitempty,url"`

	// LocalAddr, when set, serves the invoke route over HTTP instead of
	// registering with the Lambda runtime.
	LocalAddr string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		TargetTable:  os.Getenv("TARGET_TABLE"),
		StoreBackend: getenvDefault("STORE_BACKEND", BackendDynamoDB),
		SQLitePath:   getenvDefault("SQLITE_PATH", "weather.db"),
		ForecastURL:  os.Getenv("FORECAST_URL"),
		LogLevel:     getenvDefault("LOG_LEVEL", "info"),
		ServiceName:  getenvDefault("OTEL_SERVICE_NAME", "weather-forecast-recorder"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LocalAddr:    os.Getenv("LOCAL_ADDR"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
