// Package association provides the Association catalog: the non-profits
// that publish volunteering experiences.
package association

import (
	"context"
	"strings"

	"volentia/internal/core/apperror"
	"volentia/internal/core/entity"
)

// Association represents a non-profit tenant.
type Association struct {
	entity.BaseEntity

	// Name is the display name (unique)
	Name string `db:"name" json:"name"`

	// LogoURL points at the uploaded logo in object storage
	LogoURL *string `db:"logo_url" json:"logoUrl,omitempty"`

	// City is the association's main location
	City string `db:"city" json:"city"`

	// Description is the public presentation text
	Description string `db:"description" json:"description"`

	// Website is the public site, if any
	Website *string `db:"website" json:"website,omitempty"`

	// ContactEmail is the association contact address
	ContactEmail string `db:"contact_email" json:"contactEmail"`
}

// New creates an Association with required fields.
func New(name, contactEmail string) *Association {
	return &Association{
		BaseEntity:   entity.NewBaseEntity(),
		Name:         name,
		ContactEmail: contactEmail,
	}
}

// Validate implements entity.Validatable.
func (a *Association) Validate(ctx context.Context) error {
	if a.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if a.ContactEmail != "" && !strings.Contains(a.ContactEmail, "@") {
		return apperror.NewValidation("contact email is not valid").
			WithDetail("field", "contactEmail")
	}
	return nil
}

// SetLogo sets or clears the logo reference.
func (a *Association) SetLogo(url string) {
	if url == "" {
		a.LogoURL = nil
		return
	}
	a.LogoURL = &url
}
