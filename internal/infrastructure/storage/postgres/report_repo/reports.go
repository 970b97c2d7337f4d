// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"volentia/internal/domain/reports"
	"volentia/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository. Reports aggregate over the
// bookings, experiences and users tables; attended hours come from the
// experience's duration.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// participationBase builds the bookings-per-employee aggregate for one
// company, before grouping.
func (r *ReportRepo) participationBase(filter reports.ParticipationFilter) squirrel.SelectBuilder {
	q := r.builder.
		Select().
		From("bookings b").
		Join("users u ON u.id = b.user_id").
		Join("cat_experiences e ON e.id = b.experience_id").
		Where(squirrel.Eq{"u.company_id": filter.CompanyID}).
		Where(squirrel.Eq{"b.deletion_mark": false})

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"e.date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"e.date": *filter.ToDate})
	}
	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"e.category_id": *filter.CategoryID})
	}

	return q
}

// GetParticipationReport generates the per-employee participation rows.
func (r *ReportRepo) GetParticipationReport(ctx context.Context, filter reports.ParticipationFilter) (*reports.ParticipationReport, error) {
	report := &reports.ParticipationReport{
		CompanyID: filter.CompanyID,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
	}

	q := r.participationBase(filter).
		Columns(
			"u.id AS user_id",
			"trim(u.first_name || ' ' || u.last_name) AS full_name",
			"u.email",
			"COUNT(*) AS booking_count",
			"COUNT(*) FILTER (WHERE b.status = 'attended') AS attended_count",
			"COUNT(*) FILTER (WHERE b.status = 'cancelled') AS cancelled_count",
			"COALESCE(SUM(e.duration_hours) FILTER (WHERE b.status = 'attended'), 0) AS hours_volunteered",
		).
		GroupBy("u.id", "u.first_name", "u.last_name", "u.email").
		OrderBy("hours_volunteered DESC", "u.email ASC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build participation query: %w", err)
	}

	var rows []struct {
		UserID         string `db:"user_id"`
		FullName       string `db:"full_name"`
		Email          string `db:"email"`
		BookingCount   int    `db:"booking_count"`
		AttendedCount  int    `db:"attended_count"`
		CancelledCount int    `db:"cancelled_count"`
		Hours          string `db:"hours_volunteered"`
	}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("participation report: %w", err)
	}

	report.Items = make([]reports.ParticipationItem, 0, len(rows))
	for _, row := range rows {
		item, err := toParticipationItem(row.UserID, row.FullName, row.Email,
			row.BookingCount, row.AttendedCount, row.CancelledCount, row.Hours)
		if err != nil {
			return nil, err
		}
		report.Items = append(report.Items, item)

		report.TotalBookings += item.BookingCount
		report.TotalAttended += item.AttendedCount
		report.TotalHours = report.TotalHours.Add(item.HoursVolunteer)
	}
	report.TotalItems = len(report.Items)

	return report, nil
}

// GetCategoryBreakdown aggregates attended bookings per category.
func (r *ReportRepo) GetCategoryBreakdown(ctx context.Context, filter reports.ParticipationFilter) ([]reports.CategoryBreakdownItem, error) {
	q := r.participationBase(filter).
		Columns(
			"e.category_id",
			"COALESCE(c.name, 'Senza categoria') AS category_name",
			"COUNT(*) FILTER (WHERE b.status = 'attended') AS attended",
			"COALESCE(SUM(e.duration_hours) FILTER (WHERE b.status = 'attended'), 0) AS hours",
		).
		LeftJoin("cat_categories c ON c.id = e.category_id").
		GroupBy("e.category_id", "c.name").
		OrderBy("hours DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category breakdown: %w", err)
	}

	var rows []struct {
		CategoryID   *string `db:"category_id"`
		CategoryName string  `db:"category_name"`
		Attended     int     `db:"attended"`
		Hours        string  `db:"hours"`
	}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}

	items := make([]reports.CategoryBreakdownItem, 0, len(rows))
	for _, row := range rows {
		item, err := toCategoryItem(row.CategoryID, row.CategoryName, row.Attended, row.Hours)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// GetActivityReport generates the per-experience rows for an association.
func (r *ReportRepo) GetActivityReport(ctx context.Context, filter reports.ActivityFilter) (*reports.ActivityReport, error) {
	report := &reports.ActivityReport{AssociationID: filter.AssociationID}

	q := r.builder.
		Select(
			"e.id AS experience_id",
			"e.title",
			"e.date",
			"e.capacity",
			"COUNT(b.id) FILTER (WHERE b.status = 'confirmed') AS confirmed",
			"COUNT(b.id) FILTER (WHERE b.status = 'attended') AS attended",
			"COUNT(b.id) FILTER (WHERE b.status = 'cancelled') AS cancelled",
		).
		From("cat_experiences e").
		LeftJoin("bookings b ON b.experience_id = e.id AND b.deletion_mark = false").
		Where(squirrel.Eq{"e.association_id": filter.AssociationID}).
		Where(squirrel.Eq{"e.deletion_mark": false}).
		GroupBy("e.id", "e.title", "e.date", "e.capacity").
		OrderBy("e.date DESC")

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"e.date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"e.date": *filter.ToDate})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activity query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &report.Items, sql, args...); err != nil {
		return nil, fmt.Errorf("activity report: %w", err)
	}

	for _, item := range report.Items {
		report.TotalConfirmed += item.Confirmed
		report.TotalAttended += item.Attended
	}
	report.TotalItems = len(report.Items)

	return report, nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
