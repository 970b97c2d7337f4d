// Package experience provides the Experience catalog: the volunteering
// offerings that associations publish and end users book.
package experience

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"volentia/internal/core/apperror"
	"volentia/internal/core/entity"
	"volentia/internal/core/id"
)

// Experience is a bookable volunteering offering.
type Experience struct {
	entity.BaseEntity

	// AssociationID is the owning association
	AssociationID id.ID `db:"association_id" json:"associationId"`

	// Title is the public headline
	Title string `db:"title" json:"title"`

	// Description is the public presentation text
	Description string `db:"description" json:"description"`

	// CategoryID classifies the experience (nullable)
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// CityID locates the experience (nullable)
	CityID *id.ID `db:"city_id" json:"cityId,omitempty"`

	// Date is when the experience takes place
	Date time.Time `db:"date" json:"date"`

	// DurationHours is the expected commitment, credited to attendees
	DurationHours decimal.Decimal `db:"duration_hours" json:"durationHours"`

	// Capacity is the maximum number of confirmed bookings
	Capacity int `db:"capacity" json:"capacity"`

	// ImageURL points at the uploaded cover image
	ImageURL *string `db:"image_url" json:"imageUrl,omitempty"`

	// Published controls public visibility
	Published bool `db:"published" json:"published"`
}

// New creates an Experience owned by the given association.
func New(associationID id.ID, title string) *Experience {
	return &Experience{
		BaseEntity:    entity.NewBaseEntity(),
		AssociationID: associationID,
		Title:         title,
	}
}

// Validate implements entity.Validatable.
func (e *Experience) Validate(ctx context.Context) error {
	if e.Title == "" {
		return apperror.NewValidation("title is required").
			WithDetail("field", "title")
	}
	if id.IsNil(e.AssociationID) {
		return apperror.NewValidation("association is required").
			WithDetail("field", "associationId")
	}
	if e.Capacity < 0 {
		return apperror.NewValidation("capacity cannot be negative").
			WithDetail("field", "capacity")
	}
	if e.DurationHours.IsNegative() {
		return apperror.NewValidation("duration cannot be negative").
			WithDetail("field", "durationHours")
	}
	return nil
}

// IsOpenOn reports whether the experience can still be booked at the
// given instant (published and not yet past).
func (e *Experience) IsOpenOn(now time.Time) bool {
	return e.Published && !e.DeletionMark && e.Date.After(now)
}
