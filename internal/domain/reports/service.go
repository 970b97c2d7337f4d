package reports

import (
	"context"
	"fmt"

	"volentia/internal/core/apperror"
	appcontext "volentia/internal/core/context"
	"volentia/internal/core/id"
)

// Service provides report generation operations. The tenant scope is
// always taken from the authenticated caller, never from the filter,
// so admins cannot read another tenant's numbers.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetParticipation generates the employee participation report for the
// calling HR admin's company.
func (s *Service) GetParticipation(ctx context.Context, filter ParticipationFilter) (*ParticipationReport, error) {
	companyID, err := id.Parse(appcontext.GetCompanyID(ctx))
	if err != nil {
		return nil, apperror.NewForbidden("no company scope")
	}
	filter.CompanyID = companyID

	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}

	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetParticipationReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get participation report: %w", err)
	}
	return report, nil
}

// GetCategoryBreakdown aggregates attended hours per category for the
// calling HR admin's company.
func (s *Service) GetCategoryBreakdown(ctx context.Context, filter ParticipationFilter) ([]CategoryBreakdownItem, error) {
	companyID, err := id.Parse(appcontext.GetCompanyID(ctx))
	if err != nil {
		return nil, apperror.NewForbidden("no company scope")
	}
	filter.CompanyID = companyID

	items, err := s.repo.GetCategoryBreakdown(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get category breakdown: %w", err)
	}
	return items, nil
}

// GetActivity generates the per-experience activity report for the
// calling association admin's association.
func (s *Service) GetActivity(ctx context.Context, filter ActivityFilter) (*ActivityReport, error) {
	assocID, err := id.Parse(appcontext.GetAssociationID(ctx))
	if err != nil {
		return nil, apperror.NewForbidden("no association scope")
	}
	filter.AssociationID = assocID

	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetActivityReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get activity report: %w", err)
	}
	return report, nil
}
