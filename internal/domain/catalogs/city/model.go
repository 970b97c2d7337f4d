// Package city provides the City catalog: the towns where experiences
// take place, managed by the super-admin console.
package city

import (
	"context"

	"volentia/internal/core/apperror"
	"volentia/internal/core/entity"
)

// City represents a town selectable for profiles and experiences.
type City struct {
	entity.BaseEntity

	// Name is the display name (unique)
	Name string `db:"name" json:"name"`

	// Province is the two-letter province code (e.g. "MI", "TO")
	Province string `db:"province" json:"province"`
}

// New creates a City with required fields.
func New(name, province string) *City {
	return &City{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
		Province:   province,
	}
}

// Validate implements entity.Validatable.
func (c *City) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if len(c.Province) != 2 {
		return apperror.NewValidation("province must be a two-letter code").
			WithDetail("field", "province").
			WithDetail("value", c.Province)
	}
	return nil
}
