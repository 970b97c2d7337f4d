package report_repo

import (
	"fmt"

	"github.com/shopspring/decimal"

	"volentia/internal/core/id"
	"volentia/internal/domain/reports"
)

// Numeric aggregates are scanned as text and converted here so Postgres
// NUMERIC never loses precision on the way through.

func toParticipationItem(userID, fullName, email string, bookings, attended, cancelled int, hours string) (reports.ParticipationItem, error) {
	uid, err := id.Parse(userID)
	if err != nil {
		return reports.ParticipationItem{}, fmt.Errorf("parse user id: %w", err)
	}
	h, err := decimal.NewFromString(hours)
	if err != nil {
		return reports.ParticipationItem{}, fmt.Errorf("parse hours: %w", err)
	}
	if fullName == "" {
		fullName = email
	}
	return reports.ParticipationItem{
		UserID:         uid,
		FullName:       fullName,
		Email:          email,
		BookingCount:   bookings,
		AttendedCount:  attended,
		CancelledCount: cancelled,
		HoursVolunteer: h,
	}, nil
}

func toCategoryItem(categoryID *string, name string, attended int, hours string) (reports.CategoryBreakdownItem, error) {
	item := reports.CategoryBreakdownItem{
		CategoryName: name,
		Attended:     attended,
	}
	if categoryID != nil {
		cid, err := id.Parse(*categoryID)
		if err != nil {
			return item, fmt.Errorf("parse category id: %w", err)
		}
		item.CategoryID = &cid
	}
	h, err := decimal.NewFromString(hours)
	if err != nil {
		return item, fmt.Errorf("parse hours: %w", err)
	}
	item.Hours = h
	return item, nil
}
