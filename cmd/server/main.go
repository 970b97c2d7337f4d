// Package main is the entry point for the Volentia API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"volentia/internal/domain/accesscode"
	"volentia/internal/domain/accessrequest"
	"volentia/internal/domain/auth"
	"volentia/internal/domain/booking"
	"volentia/internal/domain/catalogs/association"
	"volentia/internal/domain/catalogs/category"
	"volentia/internal/domain/catalogs/city"
	"volentia/internal/domain/catalogs/company"
	"volentia/internal/domain/catalogs/experience"
	"volentia/internal/domain/reports"
	v1 "volentia/internal/infrastructure/http/v1"
	"volentia/internal/infrastructure/http/v1/handlers"
	"volentia/internal/infrastructure/numerator"
	"volentia/internal/infrastructure/storage/object"
	"volentia/internal/infrastructure/storage/postgres"
	"volentia/internal/infrastructure/storage/postgres/access_repo"
	"volentia/internal/infrastructure/storage/postgres/auth_repo"
	"volentia/internal/infrastructure/storage/postgres/booking_repo"
	"volentia/internal/infrastructure/storage/postgres/catalog_repo"
	"volentia/internal/infrastructure/storage/postgres/report_repo"
	"volentia/internal/infrastructure/storage/postgres/tablestore"
	"volentia/internal/ratelimit"
	"volentia/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting volentia server")

	// --- Database connection ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)

	// --- Repositories ---
	cityRepo := catalog_repo.NewCityRepo(txm)
	categoryRepo := catalog_repo.NewCategoryRepo(txm)
	companyRepo := catalog_repo.NewCompanyRepo(txm)
	associationRepo := catalog_repo.NewAssociationRepo(txm)
	experienceRepo := catalog_repo.NewExperienceRepo(txm)
	bookingRepo := booking_repo.NewBookingRepo(txm)
	codeRepo := access_repo.NewCodeRepo(txm)
	requestRepo := access_repo.NewRequestRepo(txm)
	userRepo := auth_repo.NewUserRepo(txm)
	tokenRepo := auth_repo.NewTokenRepo(txm)
	reportRepo := report_repo.NewReportRepo(txm)

	// --- JWT Service ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	// --- Domain services ---
	cityService := city.NewService(cityRepo, txm)
	categoryService := category.NewService(categoryRepo, txm)
	companyService := company.NewService(companyRepo, txm)
	associationService := association.NewService(associationRepo, txm)
	experienceService := experience.NewService(experienceRepo, txm)
	numeratorService := numerator.New(txm)
	bookingService := booking.NewService(bookingRepo, experienceService, numeratorService, txm)
	codeService := accesscode.NewService(codeRepo, txm)
	reportsService := reports.NewService(reportRepo)

	limiter := ratelimit.NewInMemory(ratelimit.AccessRequestConfig())
	requestService := accessrequest.NewService(requestRepo, txm, limiter)

	authService := auth.NewService(
		userRepo,
		tokenRepo,
		codeService,
		txm,
		jwtService,
		auth.DefaultServiceConfig(),
	)

	// --- Admin console table store ---
	consoleTables := handlers.DefaultConsoleTables()
	tableNames := make([]string, 0, len(consoleTables))
	for _, t := range consoleTables {
		tableNames = append(tableNames, t.Table)
	}
	tableStore := tablestore.New(txm, tableNames)

	// --- Object storage for uploads ---
	objectStorage := object.NewOnDisk(
		getEnv("UPLOAD_DIR", "./uploads"),
		getEnv("PUBLIC_BASE_URL", "/uploads"),
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:   pool,
		Logger: log,

		JWTValidator: jwtService,

		AuthService:          authService,
		CategoryService:      categoryService,
		CityService:          cityService,
		CompanyService:       companyService,
		AssociationService:   associationService,
		ExperienceService:    experienceService,
		BookingService:       bookingService,
		AccessCodeService:    codeService,
		AccessRequestService: requestService,
		ReportsService:       reportsService,

		TableStore:    tableStore,
		ObjectStorage: objectStorage,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
