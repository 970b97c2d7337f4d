// Package company provides the Company catalog: the employers whose
// HR admins track employee participation.
package company

import (
	"context"
	"strings"

	"volentia/internal/core/apperror"
	"volentia/internal/core/entity"
)

// Company represents an employer tenant.
type Company struct {
	entity.BaseEntity

	// Name is the display name (unique)
	Name string `db:"name" json:"name"`

	// LogoURL points at the uploaded logo in object storage
	LogoURL *string `db:"logo_url" json:"logoUrl,omitempty"`

	// City is the company's main location
	City string `db:"city" json:"city"`

	// Sector is a free-form industry label
	Sector string `db:"sector" json:"sector"`

	// ContactEmail is the HR contact address
	ContactEmail string `db:"contact_email" json:"contactEmail"`
}

// New creates a Company with required fields.
func New(name, contactEmail string) *Company {
	return &Company{
		BaseEntity:   entity.NewBaseEntity(),
		Name:         name,
		ContactEmail: contactEmail,
	}
}

// Validate implements entity.Validatable.
func (c *Company) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if c.ContactEmail != "" && !strings.Contains(c.ContactEmail, "@") {
		return apperror.NewValidation("contact email is not valid").
			WithDetail("field", "contactEmail")
	}
	return nil
}

// SetLogo sets or clears the logo reference.
func (c *Company) SetLogo(url string) {
	if url == "" {
		c.LogoURL = nil
		return
	}
	c.LogoURL = &url
}
