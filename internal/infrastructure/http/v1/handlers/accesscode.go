package handlers

import (
	"github.com/gin-gonic/gin"

	"volentia/internal/domain"
	"volentia/internal/domain/accesscode"
	"volentia/internal/infrastructure/http/v1/dto"
)

// AccessCodeHandler serves access-code issuance and the public signup
// check. Redemption itself happens inside registration.
type AccessCodeHandler struct {
	*BaseHandler
	service *accesscode.Service
}

// NewAccessCodeHandler creates a new access code handler.
func NewAccessCodeHandler(base *BaseHandler, service *accesscode.Service) *AccessCodeHandler {
	return &AccessCodeHandler{BaseHandler: base, service: service}
}

// RegisterAdminRoutes wires the management endpoints. The scope hooks in
// the service decide what each role may issue.
func (h *AccessCodeHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Issue)
	rg.POST("/:id/revoke", h.Revoke)
}

// Check handles GET /access-codes/:code/check - the public signup form
// validates a code before submitting. No use is consumed.
func (h *AccessCodeHandler) Check(c *gin.Context) {
	code, err := h.service.Check(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.CheckAccessCodeResponse{
		Code: code.Code,
		Role: string(code.Role),
	})
}

// Issue handles POST /access-codes.
func (h *AccessCodeHandler) Issue(c *gin.Context) {
	var req dto.IssueAccessCodeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	params, err := req.ToIssueParams()
	if err != nil {
		h.Error(c, err)
		return
	}

	code, err := h.service.Issue(c.Request.Context(), params)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(201, code)
}

// List handles GET /access-codes.
func (h *AccessCodeHandler) List(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-created_at")

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

// Revoke handles POST /access-codes/:id/revoke.
func (h *AccessCodeHandler) Revoke(c *gin.Context) {
	codeID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Revoke(c.Request.Context(), codeID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "access code revoked")
}
