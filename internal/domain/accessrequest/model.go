// Package accessrequest handles the public onboarding endpoint: visitors
// without an account ask to join as a company, association, or
// individual. Submissions are rate limited per source IP.
package accessrequest

import (
	"context"
	"regexp"
	"time"

	"volentia/internal/core/apperror"
	"volentia/internal/core/entity"
)

// RequestType describes why the visitor is asking for access.
type RequestType string

const (
	TypeEmployeeNeedsCode  RequestType = "employee_needs_code"
	TypeCompanyLead        RequestType = "company_lead"
	TypeAssociationLead    RequestType = "association_lead"
	TypeIndividualWaitlist RequestType = "individual_waitlist"
)

// Valid reports whether the request type is a known value.
func (t RequestType) Valid() bool {
	switch t {
	case TypeEmployeeNeedsCode, TypeCompanyLead, TypeAssociationLead, TypeIndividualWaitlist:
		return true
	}
	return false
}

// User-facing validation messages. The public endpoint serves an
// Italian audience.
const (
	MsgInvalidType  = "Tipo di richiesta non valido"
	MsgInvalidEmail = "Email non valida"
	MsgFieldTooLong = "Campo troppo lungo"
	MsgRateLimited  = "Troppe richieste. Riprova più tardi."
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AccessRequest is one submission from the public form.
type AccessRequest struct {
	entity.BaseEntity

	RequestType     RequestType `db:"request_type" json:"request_type"`
	Email           string      `db:"email" json:"email"`
	FirstName       string      `db:"first_name" json:"first_name,omitempty"`
	LastName        string      `db:"last_name" json:"last_name,omitempty"`
	Phone           string      `db:"phone" json:"phone,omitempty"`
	City            string      `db:"city" json:"city,omitempty"`
	CompanyName     string      `db:"company_name" json:"company_name,omitempty"`
	AssociationName string      `db:"association_name" json:"association_name,omitempty"`
	RoleInCompany   string      `db:"role_in_company" json:"role_in_company,omitempty"`
	Message         string      `db:"message" json:"message,omitempty"`

	// SourceIP records where the submission came from
	SourceIP string `db:"source_ip" json:"-"`

	// SubmittedAt is when the form was received
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

// New creates an AccessRequest with the timestamp set.
func New() *AccessRequest {
	return &AccessRequest{
		BaseEntity:  entity.NewBaseEntity(),
		SubmittedAt: time.Now().UTC(),
	}
}

// Validate implements entity.Validatable. Messages are user-facing and
// localized; the endpoint returns them verbatim.
func (r *AccessRequest) Validate(ctx context.Context) error {
	if !r.RequestType.Valid() {
		return apperror.NewValidation(MsgInvalidType).
			WithDetail("field", "request_type")
	}
	if len(r.Email) > 255 || !emailRegex.MatchString(r.Email) {
		return apperror.NewValidation(MsgInvalidEmail).
			WithDetail("field", "email")
	}

	limits := []struct {
		field string
		value string
		max   int
	}{
		{"first_name", r.FirstName, 100},
		{"last_name", r.LastName, 100},
		{"phone", r.Phone, 30},
		{"city", r.City, 100},
		{"company_name", r.CompanyName, 200},
		{"association_name", r.AssociationName, 200},
		{"role_in_company", r.RoleInCompany, 100},
		{"message", r.Message, 1000},
	}
	for _, l := range limits {
		if len(l.value) > l.max {
			return apperror.NewValidation(MsgFieldTooLong).
				WithDetail("field", l.field).
				WithDetail("max", l.max)
		}
	}
	return nil
}
