package handlers

import (
	"github.com/gin-gonic/gin"

	"volentia/internal/core/apperror"
	appctx "volentia/internal/core/context"
	"volentia/internal/core/id"
	"volentia/internal/domain/auth"
	"volentia/internal/domain/catalogs/company"
	"volentia/internal/infrastructure/http/v1/dto"
	"volentia/internal/infrastructure/storage/object"
)

// CompanyHandler serves the HR console's own-company profile and
// employee directory.
type CompanyHandler struct {
	*BaseHandler
	companies *company.Service
	users     *auth.Service
	objects   *object.Storage
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(base *BaseHandler, companies *company.Service, users *auth.Service, objects *object.Storage) *CompanyHandler {
	return &CompanyHandler{BaseHandler: base, companies: companies, users: users, objects: objects}
}

// RegisterRoutes wires the HR console endpoints.
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/company", h.Get)
	rg.PUT("/company", h.Update)
	rg.POST("/company/logo", h.UploadLogo)
	rg.GET("/employees", h.ListEmployees)
}

func (h *CompanyHandler) ownCompanyID(c *gin.Context) (id.ID, bool) {
	companyID, err := id.Parse(appctx.GetCompanyID(c.Request.Context()))
	if err != nil {
		h.Error(c, apperror.NewForbidden("no company scope"))
		return id.Nil(), false
	}
	return companyID, true
}

// Get handles GET /hr/company.
func (h *CompanyHandler) Get(c *gin.Context) {
	companyID, ok := h.ownCompanyID(c)
	if !ok {
		return
	}

	co, err := h.companies.GetByID(c.Request.Context(), companyID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, co)
}

// Update handles PUT /hr/company.
func (h *CompanyHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	companyID, ok := h.ownCompanyID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.companies.GetByID(ctx, companyID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(existing)

	if err := h.companies.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, existing)
}

// UploadLogo handles POST /hr/company/logo (multipart, field "file").
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	ctx := c.Request.Context()

	companyID, ok := h.ownCompanyID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("file is required").WithDetail("field", "file"))
		return
	}
	f, err := header.Open()
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	defer f.Close()

	url, err := h.objects.Upload(ctx, "logos", header.Header.Get("Content-Type"), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	existing, err := h.companies.GetByID(ctx, companyID)
	if err != nil {
		_ = h.objects.Remove(ctx, url)
		h.Error(c, err)
		return
	}
	existing.SetLogo(url)
	if err := h.companies.Update(ctx, existing); err != nil {
		_ = h.objects.Remove(ctx, url)
		h.Error(c, err)
		return
	}
	h.OK(c, existing)
}

// ListEmployees handles GET /hr/employees - users bound to the company.
func (h *CompanyHandler) ListEmployees(c *gin.Context) {
	companyID, ok := h.ownCompanyID(c)
	if !ok {
		return
	}

	filter := auth.UserFilter{
		Search:    c.Query("search"),
		CompanyID: &companyID,
		Limit:     h.ParseIntQuery(c, "limit", 50),
		Offset:    h.ParseIntQuery(c, "offset", 0),
	}

	users, total, err := h.users.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{
		Items:      users,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}
