package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"volentia/internal/core/apperror"
	"volentia/internal/core/id"
	"volentia/internal/domain/catalogs/experience"
)

// --- Request DTOs ---

// CreateExperienceRequest is the request body for creating an experience.
// The owning association is taken from the caller, never from the body.
type CreateExperienceRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	CategoryID    *string         `json:"categoryId"`
	CityID        *string         `json:"cityId"`
	Date          time.Time       `json:"date" binding:"required"`
	DurationHours decimal.Decimal `json:"durationHours"`
	Capacity      int             `json:"capacity" binding:"required,min=1"`
	Published     bool            `json:"published"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateExperienceRequest) ToEntity(associationID id.ID) (*experience.Experience, error) {
	e := experience.New(associationID, r.Title)
	e.Description = r.Description
	e.Date = r.Date
	e.DurationHours = r.DurationHours
	e.Capacity = r.Capacity
	e.Published = r.Published

	var err error
	if e.CategoryID, err = parseOptionalID(r.CategoryID, "categoryId"); err != nil {
		return nil, err
	}
	if e.CityID, err = parseOptionalID(r.CityID, "cityId"); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateExperienceRequest is the request body for updating an experience.
type UpdateExperienceRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	CategoryID    *string         `json:"categoryId"`
	CityID        *string         `json:"cityId"`
	Date          time.Time       `json:"date" binding:"required"`
	DurationHours decimal.Decimal `json:"durationHours"`
	Capacity      int             `json:"capacity" binding:"required,min=1"`
	Published     bool            `json:"published"`
	Version       int             `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateExperienceRequest) ApplyTo(e *experience.Experience) error {
	e.Title = r.Title
	e.Description = r.Description
	e.Date = r.Date
	e.DurationHours = r.DurationHours
	e.Capacity = r.Capacity
	e.Published = r.Published
	e.Version = r.Version

	var err error
	if e.CategoryID, err = parseOptionalID(r.CategoryID, "categoryId"); err != nil {
		return err
	}
	if e.CityID, err = parseOptionalID(r.CityID, "cityId"); err != nil {
		return err
	}
	return nil
}

// SetPublishedRequest toggles public visibility.
type SetPublishedRequest struct {
	Published bool `json:"published"`
}

// PublicExperienceQuery is the query string of the public listing.
type PublicExperienceQuery struct {
	Search     string     `form:"search"`
	CategoryID *string    `form:"categoryId"`
	CityID     *string    `form:"cityId"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
}

// ToFilter converts the query to a repository filter.
func (q *PublicExperienceQuery) ToFilter() (experience.PublicFilter, error) {
	f := experience.PublicFilter{
		Search: q.Search,
		From:   q.From,
		To:     q.To,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	var err error
	if f.CategoryID, err = parseOptionalID(q.CategoryID, "categoryId"); err != nil {
		return f, err
	}
	if f.CityID, err = parseOptionalID(q.CityID, "cityId"); err != nil {
		return f, err
	}
	return f, nil
}

func parseOptionalID(s *string, field string) (*id.ID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := id.Parse(*s)
	if err != nil {
		return nil, apperror.NewValidation("invalid id").WithDetail("field", field)
	}
	return &parsed, nil
}
