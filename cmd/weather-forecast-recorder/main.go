package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-forecast-recorder/internal/api/http"
	"github.com/i474232898/weather-forecast-recorder/internal/config"
	"github.com/i474232898/weather-forecast-recorder/internal/handler"
	"github.com/i474232898/weather-forecast-recorder/internal/logging"
	"github.com/i474232898/weather-forecast-recorder/internal/store"
	"github.com/i474232898/weather-forecast-recorder/internal/tracing"
	"github.com/i474232898/weather-forecast-recorder/internal/weather"
	"github.com/i474232898/weather-forecast-recorder/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr := logging.New(cfg.LogLevel, os.Stdout)
	ctx := context.Background()

	tp, err := tracing.NewProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logr.Error("failed to create tracer provider", "error", err)
		os.Exit(1)
	}

	recordStore, closeStore, err := openStore(ctx, cfg, logr)
	if err != nil {
		logr.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Clients are built once per process and reused across warm invocations.
	httpClient := tracing.NewHTTPClient(tp)
	fetcher := tracing.WrapFetcher(providers.NewOpenMeteoFetcher(httpClient, cfg.ForecastURL), tp)
	writer := tracing.WrapWriter(weather.NewStoreWriter(recordStore), tp)

	service := weather.NewService(fetcher, writer, logr)
	h := handler.New(service, logr, handler.WithTracerProvider(tp))

	logr.Info("weather-forecast-recorder starting",
		"backend", cfg.StoreBackend,
		"table", cfg.TargetTable,
		"local", cfg.LocalAddr != "",
	)

	if cfg.LocalAddr == "" {
		lambda.Start(func(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
			resp, err := h.Handle(ctx, event)
			// The execution environment may freeze right after return.
			if ferr := tp.ForceFlush(ctx); ferr != nil {
				logr.WarnContext(ctx, "trace flush failed", "error", ferr)
			}
			return resp, err
		})
		return
	}

	serveLocal(cfg.LocalAddr, h, logr)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tp.Shutdown(shutdownCtx); err != nil {
		logr.Warn("tracer shutdown failed", "error", err)
	}
}

// openStore builds the configured record store and its cleanup function.
func openStore(ctx context.Context, cfg *config.AppConfig, logr *slog.Logger) (weather.RecordStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		s, err := store.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.TargetTable)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil

	case config.BackendSQLite:
		s, err := store.NewSQLite(cfg.SQLitePath, cfg.TargetTable, logr)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logr.Warn("error closing store", "error", err)
			}
		}, nil

	case config.BackendMemory:
		return store.NewMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// serveLocal runs the Fiber invoke surface until SIGINT or SIGTERM.
func serveLocal(addr string, h *handler.Handler, logr *slog.Logger) {
	app := fiber.New(fiber.Config{
		AppName:               "weather-forecast-recorder",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, h)

	go func() {
		logr.Info("local invoke server listening", "addr", addr)
		if err := app.Listen(addr); err != nil {
			logr.Error("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logr.Error("error during shutdown", "error", err)
	}
}
