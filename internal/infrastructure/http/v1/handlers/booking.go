package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"volentia/internal/domain"
	"volentia/internal/domain/booking"
	"volentia/internal/infrastructure/http/v1/dto"
)

// BookingHandler serves end-user bookings and the association side of
// the booking lifecycle (per-experience lists, attendance).
type BookingHandler struct {
	*BaseHandler
	service *booking.Service
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(base *BaseHandler, service *booking.Service) *BookingHandler {
	return &BookingHandler{BaseHandler: base, service: service}
}

// RegisterUserRoutes wires the end-user booking endpoints.
func (h *BookingHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.POST("/experiences/:id/bookings", h.Book)
	rg.GET("/bookings", h.ListOwn)
	rg.DELETE("/bookings/:id", h.Cancel)
}

// RegisterConsoleRoutes wires the association console endpoints.
func (h *BookingHandler) RegisterConsoleRoutes(rg *gin.RouterGroup) {
	rg.GET("/experiences/:id/bookings", h.ListForExperience)
	rg.POST("/bookings/:id/attended", h.MarkAttended)
}

// Book handles POST /experiences/:id/bookings. Capacity and duplicate
// checks run inside one transaction.
func (h *BookingHandler) Book(c *gin.Context) {
	experienceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.service.Book(c.Request.Context(), experienceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListOwn handles GET /bookings - the caller's own bookings.
func (h *BookingHandler) ListOwn(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.ListOwn(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{
		Items:      result.Items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Cancel handles DELETE /bookings/:id - cancels the caller's booking.
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, b)
}

// ListForExperience handles GET /association/experiences/:id/bookings.
func (h *BookingHandler) ListForExperience(c *gin.Context) {
	experienceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 100)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.ListForExperience(c.Request.Context(), experienceID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{
		Items:      result.Items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// MarkAttended handles POST /association/bookings/:id/attended.
func (h *BookingHandler) MarkAttended(c *gin.Context) {
	bookingID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.service.MarkAttended(c.Request.Context(), bookingID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, b)
}
