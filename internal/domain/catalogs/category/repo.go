package category

import (
	"context"

	"volentia/internal/domain"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	domain.Repository[*Category]

	// FindByName retrieves a category by exact name.
	FindByName(ctx context.Context, name string) (*Category, error)
}
