package dto

import (
	"volentia/internal/domain/catalogs/association"
	"volentia/internal/domain/catalogs/company"
)

// UpdateCompanyRequest is the request body for the HR company profile.
type UpdateCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	City         string `json:"city"`
	Sector       string `json:"sector"`
	ContactEmail string `json:"contactEmail"`
	Version      int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCompanyRequest) ApplyTo(co *company.Company) {
	co.Name = r.Name
	co.City = r.City
	co.Sector = r.Sector
	co.ContactEmail = r.ContactEmail
	co.Version = r.Version
}

// UpdateAssociationRequest is the request body for the association profile.
type UpdateAssociationRequest struct {
	Name         string  `json:"name" binding:"required"`
	City         string  `json:"city"`
	Description  string  `json:"description"`
	Website      *string `json:"website"`
	ContactEmail string  `json:"contactEmail"`
	Version      int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateAssociationRequest) ApplyTo(a *association.Association) {
	a.Name = r.Name
	a.City = r.City
	a.Description = r.Description
	a.Website = r.Website
	a.ContactEmail = r.ContactEmail
	a.Version = r.Version
}
