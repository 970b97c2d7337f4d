package association

import (
	"context"

	"volentia/internal/domain"
)

// Repository defines the interface for Association persistence.
type Repository interface {
	domain.Repository[*Association]

	// FindByName retrieves an association by exact name.
	FindByName(ctx context.Context, name string) (*Association, error)
}
