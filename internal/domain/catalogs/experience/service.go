package experience

import (
	"context"

	"volentia/internal/core/apperror"
	appcontext "volentia/internal/core/context"
	"volentia/internal/core/id"
	"volentia/internal/core/tx"
	"volentia/internal/domain"
)

// Service provides business logic for the Experience catalog.
//
// Association admins operate only on experiences owned by their own
// association; super admins bypass the ownership check.
type Service struct {
	*domain.EntityService[*Experience]
	repo Repository
}

// NewService creates a new Experience service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Experience]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "experience",
	})

	svc := &Service{EntityService: base, repo: repo}

	base.Hooks().OnBeforeCreate(svc.checkOwnership)
	base.Hooks().OnBeforeUpdate(svc.checkOwnership)
	base.Hooks().OnBeforeDelete(svc.checkOwnership)

	return svc
}

// checkOwnership rejects writes against experiences of another
// association. Super admins and hookless internal calls pass through.
func (s *Service) checkOwnership(ctx context.Context, e *Experience) error {
	user := appcontext.GetUser(ctx)
	if user == nil || user.Role == appcontext.RoleSuperAdmin {
		return nil
	}
	if user.AssociationID != e.AssociationID.String() {
		return apperror.NewForbidden("experience belongs to another association")
	}
	return nil
}

// ListOwn retrieves the experiences of the calling admin's association.
func (s *Service) ListOwn(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Experience], error) {
	assocID, err := id.Parse(appcontext.GetAssociationID(ctx))
	if err != nil {
		return domain.ListResult[*Experience]{}, apperror.NewForbidden("no association scope")
	}
	return s.repo.ListByAssociation(ctx, assocID, filter)
}

// ListPublished retrieves the public catalog.
func (s *Service) ListPublished(ctx context.Context, filter PublicFilter) (domain.ListResult[*Experience], error) {
	return s.repo.ListPublished(ctx, filter)
}

// SetPublished toggles public visibility of an experience.
func (s *Service) SetPublished(ctx context.Context, experienceID id.ID, published bool) (*Experience, error) {
	e, err := s.GetByID(ctx, experienceID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, e); err != nil {
		return nil, err
	}
	e.Published = published
	if err := s.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// SetImage sets or clears the cover image reference.
func (s *Service) SetImage(ctx context.Context, experienceID id.ID, url string) (*Experience, error) {
	e, err := s.GetByID(ctx, experienceID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, e); err != nil {
		return nil, err
	}
	if url == "" {
		e.ImageURL = nil
	} else {
		e.ImageURL = &url
	}
	if err := s.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
