package dto

import (
	"time"

	"volentia/internal/core/apperror"
	appctx "volentia/internal/core/context"
	"volentia/internal/domain/accesscode"
)

// IssueAccessCodeRequest is the request body for issuing a code.
type IssueAccessCodeRequest struct {
	Role          string     `json:"role" binding:"required"`
	CompanyID     *string    `json:"companyId"`
	AssociationID *string    `json:"associationId"`
	MaxUses       int        `json:"maxUses"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}

// ToIssueParams converts to domain parameters.
func (r *IssueAccessCodeRequest) ToIssueParams() (accesscode.IssueParams, error) {
	role, ok := appctx.ParseRole(r.Role)
	if !ok {
		return accesscode.IssueParams{}, apperror.NewValidation("unknown role").
			WithDetail("field", "role")
	}

	params := accesscode.IssueParams{
		Role:      role,
		MaxUses:   r.MaxUses,
		ExpiresAt: r.ExpiresAt,
	}
	var err error
	if params.CompanyID, err = parseOptionalID(r.CompanyID, "companyId"); err != nil {
		return params, err
	}
	if params.AssociationID, err = parseOptionalID(r.AssociationID, "associationId"); err != nil {
		return params, err
	}
	return params, nil
}

// CheckAccessCodeResponse describes a redeemable code to the signup form
// without exposing usage counters.
type CheckAccessCodeResponse struct {
	Code string `json:"code"`
	Role string `json:"role"`
}
