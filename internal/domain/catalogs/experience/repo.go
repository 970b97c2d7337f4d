package experience

import (
	"context"
	"time"

	"volentia/internal/core/id"
	"volentia/internal/domain"
)

// PublicFilter narrows the public experience listing.
type PublicFilter struct {
	Search     string
	CategoryID *id.ID
	CityID     *id.ID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Repository defines the interface for Experience persistence.
type Repository interface {
	domain.Repository[*Experience]

	// ListByAssociation retrieves all experiences owned by an association.
	ListByAssociation(ctx context.Context, associationID id.ID, filter domain.ListFilter) (domain.ListResult[*Experience], error)

	// ListPublished retrieves published, non-deleted experiences for the
	// public catalog.
	ListPublished(ctx context.Context, filter PublicFilter) (domain.ListResult[*Experience], error)
}
