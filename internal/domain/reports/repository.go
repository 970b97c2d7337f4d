package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	// HR reports
	GetParticipationReport(ctx context.Context, filter ParticipationFilter) (*ParticipationReport, error)
	GetCategoryBreakdown(ctx context.Context, filter ParticipationFilter) ([]CategoryBreakdownItem, error)

	// Association reports
	GetActivityReport(ctx context.Context, filter ActivityFilter) (*ActivityReport, error)
}
