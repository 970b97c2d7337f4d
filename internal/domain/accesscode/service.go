package accesscode

import (
	"context"
	"time"

	"volentia/internal/core/apperror"
	appcontext "volentia/internal/core/context"
	"volentia/internal/core/id"
	"volentia/internal/core/tx"
	"volentia/internal/domain"
)

// IssueParams describes a code to issue.
type IssueParams struct {
	Role          appcontext.Role
	CompanyID     *id.ID
	AssociationID *id.ID
	MaxUses       int
	ExpiresAt     *time.Time
}

// Service provides business logic for access codes.
type Service struct {
	*domain.EntityService[*AccessCode]
	repo Repository
	txm  tx.Manager
	now  func() time.Time
}

// NewService creates a new AccessCode service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*AccessCode]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "access code",
	})

	svc := &Service{EntityService: base, repo: repo, txm: txm, now: time.Now}

	base.Hooks().OnBeforeCreate(svc.checkIssuerScope)
	base.Hooks().OnBeforeUpdate(svc.checkIssuerScope)

	return svc
}

// Issue creates a new code. HR admins may only issue end-user codes for
// their own company; super admins may issue any code.
func (s *Service) Issue(ctx context.Context, params IssueParams) (*AccessCode, error) {
	code := New(params.Role)
	code.CompanyID = params.CompanyID
	code.AssociationID = params.AssociationID
	code.MaxUses = params.MaxUses
	code.ExpiresAt = params.ExpiresAt

	if err := s.Create(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

// checkIssuerScope restricts what each role may issue.
func (s *Service) checkIssuerScope(ctx context.Context, c *AccessCode) error {
	user := appcontext.GetUser(ctx)
	if user == nil || user.Role == appcontext.RoleSuperAdmin {
		return nil
	}
	if user.Role != appcontext.RoleHRAdmin {
		return apperror.NewForbidden("only administrators can issue access codes")
	}
	if c.Role != appcontext.RoleEndUser {
		return apperror.NewForbidden("HR admins can only issue end-user codes")
	}
	if c.CompanyID == nil || c.CompanyID.String() != user.CompanyID {
		return apperror.NewForbidden("access code belongs to another company")
	}
	return nil
}

// Check verifies a code without consuming a use. Returned codes are
// guaranteed redeemable at the time of the call.
func (s *Service) Check(ctx context.Context, code string) (*AccessCode, error) {
	found, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("access code", code)
		}
		return nil, err
	}
	if err := found.Redeemable(s.now()); err != nil {
		return nil, err
	}
	return found, nil
}

// Redeem consumes one use of the code inside a transaction and returns
// the code so callers can apply the granted role and tenant binding.
func (s *Service) Redeem(ctx context.Context, code string) (*AccessCode, error) {
	var redeemed *AccessCode
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		found, err := s.Check(ctx, code)
		if err != nil {
			return err
		}
		if err := s.repo.IncrementUsage(ctx, found.Code); err != nil {
			return err
		}
		found.UsedCount++
		redeemed = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return redeemed, nil
}

// Revoke deactivates a code without deleting it.
func (s *Service) Revoke(ctx context.Context, codeID id.ID) error {
	c, err := s.GetByID(ctx, codeID)
	if err != nil {
		return err
	}
	c.Active = false
	return s.Update(ctx, c)
}
