package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"epharmacy/api"
	"epharmacy/cmd"
	httpadapter "epharmacy/internal/adapters/in/http"
	"epharmacy/internal/adapters/out/postgres"
	"epharmacy/internal/adapters/out/storage"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs()

	if err := postgres.EnsureDatabase(ctx, configs.AdminDSN(), configs.DBName); err != nil {
		log.Fatalf("Failed to prepare database: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	prescriptions, err := storage.NewLocalStorage(configs.StorageBasePath)
	if err != nil {
		log.Fatalf("Failed to prepare storage: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, prescriptions, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := newWebServer(ctx, &app, logger)
	if err != nil {
		log.Fatalf("Failed to build web server: %v", err)
	}
	startWebServer(ctx, e, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load(".env")

	gracePeriod, err := time.ParseDuration(envOrDefault("REJECTED_ORDER_GRACE_PERIOD", "24h"))
	if err != nil {
		log.Fatalf("Invalid REJECTED_ORDER_GRACE_PERIOD: %v", err)
	}

	return cmd.Config{
		HTTPPort:                 envOrDefault("HTTP_PORT", "8080"),
		DBHost:                   os.Getenv("DB_HOST"),
		DBPort:                   envOrDefault("DB_PORT", "5432"),
		DBUser:                   os.Getenv("DB_USER"),
		DBPassword:               os.Getenv("DB_PASSWORD"),
		DBName:                   os.Getenv("DB_NAME"),
		DBAdminName:              envOrDefault("DB_ADMIN_NAME", "postgres"),
		DBSslMode:                envOrDefault("DB_SSLMODE", "disable"),
		StorageBasePath:          envOrDefault("STORAGE_BASE_PATH", "storage"),
		RejectedOrderSchedule:    envOrDefault("REJECTED_ORDER_SCHEDULE", "@every 1m"),
		RejectedOrderGracePeriod: gracePeriod,
	}
}

func envOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func newWebServer(ctx context.Context, app *cmd.CompositionRoot, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err = api.Register(doc); err != nil {
		return nil, err
	}

	createOrder := app.CreateCreateOrderCommandHandler()
	updateStatus := app.CreateUpdateOrderStatusCommandHandler()
	review := app.CreateReviewPrescriptionCommandHandler()

	server := httpadapter.NewServer(
		&createOrder,
		&updateStatus,
		&review,
		app.CreateGetCustomerOrdersQueryHandler(),
		app.CreateGetPharmacyOrdersQueryHandler(),
		logger,
	)
	return httpadapter.NewEcho(server, doc)
}

func startWebServer(ctx context.Context, e *echo.Echo, port string) {
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
