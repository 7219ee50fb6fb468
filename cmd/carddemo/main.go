package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/services"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/validation"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/handlers"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/middleware"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/platform/config"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/repositories/database/pgsql"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	limiter "github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	validator, err := buildValidator(cfg)
	if err != nil {
		logger.Error("Invalid validation configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	billingCfg, err := buildBillingConfig(cfg)
	if err != nil {
		logger.Error("Invalid billing configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svcs := services.NewContainer(
		pgsql.NewAccountRepository(dbPool),
		pgsql.NewCustomerRepository(dbPool),
		pgsql.NewTransactionRepository(dbPool),
		validator,
		billingCfg,
	)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memorystore.NewStore(), rate)))

	handlers.RegisterRoutes(r, cfg, svcs, dbPool)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func buildValidator(cfg *config.Config) (*validation.Validator, error) {
	ceiling, err := domain.MoneyFromString(cfg.CreditLimitCeiling)
	if err != nil {
		return nil, err
	}
	return validation.New(validation.Options{
		CreditLimitCeiling: ceiling,
		EarliestBirthYear:  cfg.EarliestBirthYear,
		DevAreaCodes:       cfg.DevPhoneAreaCodes,
	}), nil
}

func buildBillingConfig(cfg *config.Config) (services.BillingConfig, error) {
	floor, err := domain.MoneyFromString(cfg.MinPaymentFloor)
	if err != nil {
		return services.BillingConfig{}, err
	}
	percent, err := decimal.NewFromString(cfg.MinPaymentPercent)
	if err != nil {
		return services.BillingConfig{}, err
	}
	rate, err := decimal.NewFromString(cfg.AnnualInterestRatePercent)
	if err != nil {
		return services.BillingConfig{}, err
	}
	return services.BillingConfig{
		MinPaymentFloor:   floor,
		MinPaymentPercent: percent,
		AnnualRatePercent: rate,
	}, nil
}
