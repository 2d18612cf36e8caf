package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	creditsUseCase "github.com/amirhossein-jamali/credits-ledger/internal/domain/usecase/credits"

	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() { _ = appLogger.Flush() }()

	// Connect to the database
	conn, err := database.NewConnection(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		LogLevel:        cfg.Logger.Level,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer conn.Close()

	// Run migrations
	if err := conn.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize time provider and unit of work
	tp := timeProvider.NewRealTimeProvider()
	uow := database.NewUnitOfWork(conn.DB, appLogger)

	// Initialize the credits ledger use case
	creditsService := creditsUseCase.NewService(uow, tp, appLogger, creditsUseCase.Config{
		RegistrationBonusAmount:       cfg.Credits.RegistrationBonusAmount,
		RegistrationBonusValidityDays: cfg.Credits.RegistrationBonusValidityDays,
	})

	// Initialize API handlers
	creditsHandler := handler.NewCreditsHandler(creditsService, appLogger)
	cronHandler := handler.NewCronHandler(creditsService, appLogger)
	healthHandler := handler.NewHealthHandler(conn)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, creditsHandler, cronHandler, healthHandler, cfg.Cron.BearerToken, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missing = append(missing, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missing = append(missing, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}

	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.Database == "" {
			missing = append(missing, "database.database")
		}
	default:
		if cfg.Database.Host == "" {
			missing = append(missing, "database.host (or CL_DB_HOST environment variable)")
		}
		if cfg.Database.Port == 0 {
			missing = append(missing, "database.port (or CL_DB_PORT environment variable)")
		}
		if cfg.Database.Username == "" {
			missing = append(missing, "database.username (or CL_DB_USERNAME environment variable)")
		}
		if cfg.Database.Database == "" {
			missing = append(missing, "database.database (or CL_DB_NAME environment variable)")
		}
	}

	if cfg.Credits.RegistrationBonusAmount < 0 {
		return fmt.Errorf("credits.registrationBonusAmount must not be negative: %d",
			cfg.Credits.RegistrationBonusAmount)
	}

	if cfg.Environment == "" {
		missing = append(missing, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missing = append(missing, "logger.level")
	}

	if cfg.Environment == config.Production && cfg.Cron.BearerToken == "" {
		log.Printf("Warning: cron.bearerToken is empty, sweep endpoint is unauthenticated")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}
	return nil
}
