package dto

import (
	"volentia/internal/domain/accessrequest"
)

// AccessRequestPayload is the public access-request form body. Field
// names are snake_case because the public widget submits them that way.
type AccessRequestPayload struct {
	RequestType     string `json:"request_type"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
	CompanyName     string `json:"company_name"`
	AssociationName string `json:"association_name"`
	RoleInCompany   string `json:"role_in_company"`
	Message         string `json:"message"`
}

// ToEntity converts the payload to a domain entity. Validation happens
// in the domain, after rate limiting.
func (p *AccessRequestPayload) ToEntity() *accessrequest.AccessRequest {
	r := accessrequest.New()
	r.RequestType = accessrequest.RequestType(p.RequestType)
	r.Email = p.Email
	r.FirstName = p.FirstName
	r.LastName = p.LastName
	r.Phone = p.Phone
	r.City = p.City
	r.CompanyName = p.CompanyName
	r.AssociationName = p.AssociationName
	r.RoleInCompany = p.RoleInCompany
	r.Message = p.Message
	return r
}
