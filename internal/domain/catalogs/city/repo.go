package city

import (
	"context"

	"volentia/internal/domain"
)

// Repository defines the interface for City persistence.
type Repository interface {
	domain.Repository[*City]

	// FindByName retrieves a city by exact name.
	FindByName(ctx context.Context, name string) (*City, error)
}
