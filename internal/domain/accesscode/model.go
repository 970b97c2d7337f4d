// Package accesscode provides invitation codes that grant a role at
// registration time. HR admins issue codes for their company's
// employees; super admins issue codes for any role.
package accesscode

import (
	"context"
	"crypto/rand"
	"time"

	"volentia/internal/core/apperror"
	appcontext "volentia/internal/core/context"
	"volentia/internal/core/entity"
	"volentia/internal/core/id"
)

// codeAlphabet excludes ambiguous characters (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeLength = 8

// AccessCode grants a role to users who redeem it during registration.
type AccessCode struct {
	entity.BaseEntity

	// Code is the shared secret users type in (unique)
	Code string `db:"code" json:"code"`

	// Role granted upon redemption
	Role appcontext.Role `db:"role" json:"role"`

	// CompanyID binds redeemed users to a company (nullable)
	CompanyID *id.ID `db:"company_id" json:"companyId,omitempty"`

	// AssociationID binds redeemed users to an association (nullable)
	AssociationID *id.ID `db:"association_id" json:"associationId,omitempty"`

	// MaxUses caps redemptions; 0 means unlimited
	MaxUses int `db:"max_uses" json:"maxUses"`

	// UsedCount tracks redemptions so far
	UsedCount int `db:"used_count" json:"usedCount"`

	// ExpiresAt makes the code invalid after this instant (nullable)
	ExpiresAt *time.Time `db:"expires_at" json:"expiresAt,omitempty"`

	// Active allows revoking a code without deleting it
	Active bool `db:"active" json:"active"`
}

// New creates an AccessCode with a freshly generated code value.
func New(role appcontext.Role) *AccessCode {
	return &AccessCode{
		BaseEntity: entity.NewBaseEntity(),
		Code:       GenerateCode(),
		Role:       role,
		Active:     true,
	}
}

// GenerateCode returns a random human-typeable code.
func GenerateCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}

// Validate implements entity.Validatable.
func (c *AccessCode) Validate(ctx context.Context) error {
	if c.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	if _, ok := appcontext.ParseRole(string(c.Role)); !ok {
		return apperror.NewValidation("role is not valid").
			WithDetail("field", "role")
	}
	if c.MaxUses < 0 {
		return apperror.NewValidation("max uses cannot be negative").
			WithDetail("field", "maxUses")
	}
	return nil
}

// Redeemable reports whether the code can be redeemed at the given
// instant, returning a business-rule error describing why not.
func (c *AccessCode) Redeemable(now time.Time) error {
	if !c.Active || c.DeletionMark {
		return apperror.NewNotFound("access code", c.Code)
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return apperror.NewBusinessRule(apperror.CodeCodeExpired, "Codice di accesso scaduto")
	}
	if c.MaxUses > 0 && c.UsedCount >= c.MaxUses {
		return apperror.NewBusinessRule(apperror.CodeCodeExhausted, "Codice di accesso esaurito")
	}
	return nil
}
