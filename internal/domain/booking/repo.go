package booking

import (
	"context"

	"volentia/internal/core/id"
	"volentia/internal/domain"
)

// Repository defines the interface for Booking persistence.
type Repository interface {
	domain.Repository[*Booking]

	// ListByUser retrieves a user's bookings, newest first.
	ListByUser(ctx context.Context, userID id.ID, filter domain.ListFilter) (domain.ListResult[*Booking], error)

	// ListByExperience retrieves all bookings on an experience.
	ListByExperience(ctx context.Context, experienceID id.ID, filter domain.ListFilter) (domain.ListResult[*Booking], error)

	// CountConfirmed counts confirmed bookings on an experience. Runs
	// inside the caller's transaction so capacity checks see a
	// consistent snapshot.
	CountConfirmed(ctx context.Context, experienceID id.ID) (int64, error)

	// FindActive retrieves the user's confirmed booking on an
	// experience, if any.
	FindActive(ctx context.Context, userID, experienceID id.ID) (*Booking, error)
}
