package category

import (
	"context"

	"volentia/internal/core/apperror"
	"volentia/internal/core/tx"
	"volentia/internal/domain"
)

// Service provides business logic for the Category catalog.
type Service struct {
	*domain.EntityService[*Category]
	repo Repository
}

// NewService creates a new Category service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Category]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "category",
	})

	svc := &Service{EntityService: base, repo: repo}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

func (s *Service) checkNameUnique(ctx context.Context, c *Category) error {
	existing, err := s.repo.FindByName(ctx, c.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewDuplicate("category", "name", c.Name)
	}
	return nil
}
