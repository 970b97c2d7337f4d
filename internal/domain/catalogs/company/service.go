package company

import (
	"context"

	"volentia/internal/core/apperror"
	"volentia/internal/core/tx"
	"volentia/internal/domain"
)

// Service provides business logic for the Company catalog.
type Service struct {
	*domain.EntityService[*Company]
	repo Repository
}

// NewService creates a new Company service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Company]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "company",
	})

	svc := &Service{EntityService: base, repo: repo}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

func (s *Service) checkNameUnique(ctx context.Context, c *Company) error {
	existing, err := s.repo.FindByName(ctx, c.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewDuplicate("company", "name", c.Name)
	}
	return nil
}
