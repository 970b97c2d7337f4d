// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"volentia/internal/core/id"
	"volentia/internal/infrastructure/storage/postgres"
	"volentia/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedSuperAdmin(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed super admin", "error", err)
	}

	if os.Getenv("SEED_REFERENCE_DATA") == "true" {
		if err := seedReferenceData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed reference data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedSuperAdmin(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@volentia.it"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = lower($1) AND deleted_at IS NULL`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("super admin already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, role,
			first_name, last_name,
			is_active, created_at, updated_at, version
		)
		VALUES ($1, lower($2), $3, 'super_admin', 'System', 'Admin', true, $4, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return fmt.Errorf("insert super admin: %w", err)
	}

	log.Infow("super admin created",
		"email", adminEmail,
		"user_id", userID,
	)

	return nil
}

func seedReferenceData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding reference data...")

	cities := []struct {
		name     string
		province string
	}{
		{"Milano", "MI"},
		{"Torino", "TO"},
		{"Roma", "RM"},
		{"Bologna", "BO"},
		{"Bergamo", "BG"},
		{"Firenze", "FI"},
	}

	for _, c := range cities {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_cities (id, name, province, version, deletion_mark, created_at, updated_at)
			VALUES ($1, $2, $3, 1, false, now(), now())
			ON CONFLICT (name) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), c.name, c.province)
		if err != nil {
			log.Warnw("failed to seed city", "name", c.name, "error", err)
		}
	}

	categories := []struct {
		name  string
		icon  string
		color string
	}{
		{"Ambiente", "park", "#2e7d32"},
		{"Sociale", "diversity_3", "#c62828"},
		{"Animali", "pets", "#6d4c41"},
		{"Educazione", "school", "#1565c0"},
		{"Cultura", "theater_comedy", "#6a1b9a"},
		{"Sport", "sports_soccer", "#ef6c00"},
	}

	for _, c := range categories {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_categories (id, name, icon, color, version, deletion_mark, created_at, updated_at)
			VALUES ($1, $2, $3, $4, 1, false, now(), now())
			ON CONFLICT (name) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), c.name, c.icon, c.color)
		if err != nil {
			log.Warnw("failed to seed category", "name", c.name, "error", err)
		}
	}

	log.Info("reference data seeded successfully")
	return nil
}
