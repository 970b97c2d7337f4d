// Package reports provides report generation services.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"volentia/internal/core/id"
)

// --- Company Participation Report ---

// ParticipationFilter defines the filter for the HR participation
// report. CompanyID is mandatory and injected from the caller's scope.
type ParticipationFilter struct {
	CompanyID id.ID

	// Period (optional, defaults to all time)
	FromDate *time.Time
	ToDate   *time.Time

	// Narrow to one category
	CategoryID *id.ID

	// Pagination
	Limit  int
	Offset int
}

// ParticipationItem is one employee row in the participation report.
type ParticipationItem struct {
	UserID         id.ID           `json:"userId"`
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	BookingCount   int             `json:"bookingCount"`
	AttendedCount  int             `json:"attendedCount"`
	CancelledCount int             `json:"cancelledCount"`
	HoursVolunteer decimal.Decimal `json:"hoursVolunteered"`
}

// ParticipationReport is the full report for one company.
type ParticipationReport struct {
	CompanyID  id.ID               `json:"companyId"`
	FromDate   *time.Time          `json:"fromDate,omitempty"`
	ToDate     *time.Time          `json:"toDate,omitempty"`
	Items      []ParticipationItem `json:"items"`
	TotalItems int                 `json:"totalItems"`

	// Summary
	TotalBookings int             `json:"totalBookings"`
	TotalAttended int             `json:"totalAttended"`
	TotalHours    decimal.Decimal `json:"totalHours"`
}

// --- Category Breakdown ---

// CategoryBreakdownItem aggregates attended hours per category.
type CategoryBreakdownItem struct {
	CategoryID   *id.ID          `json:"categoryId,omitempty"`
	CategoryName string          `json:"categoryName"`
	Attended     int             `json:"attended"`
	Hours        decimal.Decimal `json:"hours"`
}

// --- Association Activity Report ---

// ActivityFilter defines the filter for the association activity
// report. AssociationID is mandatory and injected from the caller's
// scope.
type ActivityFilter struct {
	AssociationID id.ID

	FromDate *time.Time
	ToDate   *time.Time

	Limit  int
	Offset int
}

// ActivityItem is one experience row in the activity report.
type ActivityItem struct {
	ExperienceID id.ID     `json:"experienceId"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Capacity     int       `json:"capacity"`
	Confirmed    int       `json:"confirmed"`
	Attended     int       `json:"attended"`
	Cancelled    int       `json:"cancelled"`
}

// ActivityReport is the full report for one association.
type ActivityReport struct {
	AssociationID id.ID          `json:"associationId"`
	Items         []ActivityItem `json:"items"`
	TotalItems    int            `json:"totalItems"`

	// Summary
	TotalConfirmed int `json:"totalConfirmed"`
	TotalAttended  int `json:"totalAttended"`
}
