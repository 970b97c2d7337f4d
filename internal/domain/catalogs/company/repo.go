package company

import (
	"context"

	"volentia/internal/domain"
)

// Repository defines the interface for Company persistence.
type Repository interface {
	domain.Repository[*Company]

	// FindByName retrieves a company by exact name.
	FindByName(ctx context.Context, name string) (*Company, error)
}
