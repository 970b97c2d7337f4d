// Package category provides the experience Category catalog
// (environment, social care, education, ...).
package category

import (
	"context"

	"volentia/internal/core/apperror"
	"volentia/internal/core/entity"
)

// Category classifies experiences for browsing and filtering.
type Category struct {
	entity.BaseEntity

	// Name is the display name (unique)
	Name string `db:"name" json:"name"`

	// Icon is the icon identifier rendered by clients
	Icon string `db:"icon" json:"icon"`

	// Color is the accent color as a hex string (e.g. "#2e7d32")
	Color string `db:"color" json:"color"`
}

// New creates a Category with required fields.
func New(name string) *Category {
	return &Category{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
	}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
