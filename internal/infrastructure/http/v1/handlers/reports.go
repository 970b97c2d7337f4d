package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"volentia/internal/core/apperror"
	"volentia/internal/core/id"
	"volentia/internal/domain/reports"
)

// ReportsHandler serves the HR participation reports and the
// association activity report. Tenant scope comes from the caller's
// token, never from query parameters.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// GetParticipation handles GET /hr/reports/participation.
func (h *ReportsHandler) GetParticipation(c *gin.Context) {
	filter := reports.ParticipationFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}
	if !h.parsePeriod(c, &filter.FromDate, &filter.ToDate) {
		return
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		parsed, err := id.Parse(categoryID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid categoryId"))
			return
		}
		filter.CategoryID = &parsed
	}

	report, err := h.service.GetParticipation(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// GetCategoryBreakdown handles GET /hr/reports/categories.
func (h *ReportsHandler) GetCategoryBreakdown(c *gin.Context) {
	var filter reports.ParticipationFilter
	if !h.parsePeriod(c, &filter.FromDate, &filter.ToDate) {
		return
	}

	items, err := h.service.GetCategoryBreakdown(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": items})
}

// GetActivity handles GET /association/reports/activity.
func (h *ReportsHandler) GetActivity(c *gin.Context) {
	filter := reports.ActivityFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}
	if !h.parsePeriod(c, &filter.FromDate, &filter.ToDate) {
		return
	}

	report, err := h.service.GetActivity(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// parsePeriod reads optional from/to date bounds (YYYY-MM-DD).
func (h *ReportsHandler) parsePeriod(c *gin.Context, from, to **time.Time) bool {
	for _, bound := range []struct {
		key  string
		dest **time.Time
	}{
		{"from", from},
		{"to", to},
	} {
		raw := c.Query(bound.key)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid date").WithDetail("param", bound.key))
			return false
		}
		*bound.dest = &parsed
	}
	return true
}
