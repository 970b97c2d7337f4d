// Package booking covers end-user reservations on published
// experiences, including capacity enforcement and attendance tracking.
package booking

import (
	"context"
	"time"

	"volentia/internal/core/apperror"
	"volentia/internal/core/entity"
	"volentia/internal/core/id"
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusAttended  Status = "attended"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusAttended:
		return true
	}
	return false
}

// Booking is a user's reservation on an experience.
type Booking struct {
	entity.BaseEntity

	// UserID is the booking owner
	UserID id.ID `db:"user_id" json:"userId"`

	// ExperienceID references the booked experience
	ExperienceID id.ID `db:"experience_id" json:"experienceId"`

	// Reference is the sequential human-readable number shown to the
	// user (e.g. "PRE-2026-00042")
	Reference string `db:"reference" json:"reference"`

	// Status tracks the lifecycle (confirmed/cancelled/attended)
	Status Status `db:"status" json:"status"`

	// BookedAt is when the reservation was made
	BookedAt time.Time `db:"booked_at" json:"bookedAt"`
}

// New creates a confirmed Booking.
func New(userID, experienceID id.ID) *Booking {
	return &Booking{
		BaseEntity:   entity.NewBaseEntity(),
		UserID:       userID,
		ExperienceID: experienceID,
		Status:       StatusConfirmed,
		BookedAt:     time.Now().UTC(),
	}
}

// Validate implements entity.Validatable.
func (b *Booking) Validate(ctx context.Context) error {
	if id.IsNil(b.UserID) {
		return apperror.NewValidation("user is required").
			WithDetail("field", "userId")
	}
	if id.IsNil(b.ExperienceID) {
		return apperror.NewValidation("experience is required").
			WithDetail("field", "experienceId")
	}
	if !b.Status.Valid() {
		return apperror.NewValidation("status is not valid").
			WithDetail("field", "status")
	}
	return nil
}
