package accesscode

import (
	"context"

	"volentia/internal/domain"
)

// Repository defines the interface for AccessCode persistence.
type Repository interface {
	domain.Repository[*AccessCode]

	// FindByCode retrieves a code by its shared secret value.
	FindByCode(ctx context.Context, code string) (*AccessCode, error)

	// IncrementUsage bumps used_count atomically, failing when the code
	// is already exhausted.
	IncrementUsage(ctx context.Context, code string) error
}
