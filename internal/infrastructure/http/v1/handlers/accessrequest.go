package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"volentia/internal/core/apperror"
	"volentia/internal/domain"
	"volentia/internal/domain/accessrequest"
	"volentia/internal/infrastructure/http/v1/dto"
	"volentia/pkg/logger"
)

// AccessRequestHandler serves the public access-request form and the
// super-admin inbox over it.
//
// The public endpoint keeps the wire contract of the original widget:
// 200 {"success":true} and failures as {"error":"<localized message>"},
// so it writes its responses directly instead of going through the
// error middleware.
type AccessRequestHandler struct {
	*BaseHandler
	service *accessrequest.Service
}

// NewAccessRequestHandler creates a new access request handler.
func NewAccessRequestHandler(base *BaseHandler, service *accessrequest.Service) *AccessRequestHandler {
	return &AccessRequestHandler{BaseHandler: base, service: service}
}

// Submit handles POST /access-requests.
func (h *AccessRequestHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	// A malformed body still goes through the service so it consumes
	// rate-limit quota and fails domain validation like any other bad
	// submission.
	var payload dto.AccessRequestPayload
	_ = c.ShouldBindJSON(&payload)

	err := h.service.Submit(ctx, payload.ToEntity(), c.ClientIP())
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if appErr, ok := apperror.AsAppError(err); ok {
		switch appErr.Code {
		case apperror.CodeRateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": appErr.Message})
			return
		case apperror.CodeValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
	}

	logger.Error(ctx, "access request submit failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore interno"})
}

// List handles GET /admin/access-requests - the review inbox.
func (h *AccessRequestHandler) List(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-submitted_at")

	result, err := h.service.List(c.Request.Context(), filter)
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
