package city

import (
	"context"

	"volentia/internal/core/apperror"
	"volentia/internal/core/tx"
	"volentia/internal/domain"
)

// Service provides business logic for the City catalog.
type Service struct {
	*domain.EntityService[*City]
	repo Repository
}

// NewService creates a new City service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*City]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "city",
	})

	svc := &Service{EntityService: base, repo: repo}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

func (s *Service) checkNameUnique(ctx context.Context, c *City) error {
	existing, err := s.repo.FindByName(ctx, c.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewDuplicate("city", "name", c.Name)
	}
	return nil
}

// FindByName retrieves a city by exact name.
func (s *Service) FindByName(ctx context.Context, name string) (*City, error) {
	return s.repo.FindByName(ctx, name)
}
