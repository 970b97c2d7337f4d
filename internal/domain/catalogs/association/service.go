package association

import (
	"context"

	"volentia/internal/core/apperror"
	"volentia/internal/core/tx"
	"volentia/internal/domain"
)

// Service provides business logic for the Association catalog.
type Service struct {
	*domain.EntityService[*Association]
	repo Repository
}

// NewService creates a new Association service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Association]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "association",
	})

	svc := &Service{EntityService: base, repo: repo}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

func (s *Service) checkNameUnique(ctx context.Context, a *Association) error {
	existing, err := s.repo.FindByName(ctx, a.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != a.ID {
		return apperror.NewDuplicate("association", "name", a.Name)
	}
	return nil
}
