package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"volentia/internal/core/apperror"
	appctx "volentia/internal/core/context"
	"volentia/internal/core/id"
	"volentia/internal/domain"
	"volentia/internal/domain/catalogs/experience"
	"volentia/internal/infrastructure/http/v1/dto"
	"volentia/internal/infrastructure/storage/object"
)

// ExperienceHandler serves the public experience catalog and the
// association console's own-experience management.
type ExperienceHandler struct {
	*BaseHandler
	service *experience.Service
	objects *object.Storage
}

// NewExperienceHandler creates a new experience handler.
func NewExperienceHandler(base *BaseHandler, service *experience.Service, objects *object.Storage) *ExperienceHandler {
	return &ExperienceHandler{BaseHandler: base, service: service, objects: objects}
}

// RegisterPublicRoutes wires the public, unauthenticated catalog.
func (h *ExperienceHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListPublished)
	rg.GET("/:id", h.GetPublished)
}

// RegisterConsoleRoutes wires the association console routes.
func (h *ExperienceHandler) RegisterConsoleRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListOwn)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/publish", h.SetPublished)
	rg.POST("/:id/image", h.UploadImage)
}

// ListPublished handles GET /experiences - the public catalog.
func (h *ExperienceHandler) ListPublished(c *gin.Context) {
	var query dto.PublicExperienceQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.ListPublished(c.Request.Context(), filter)
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

// GetPublished handles GET /experiences/:id. Unpublished experiences
// are visible only to their owning association.
func (h *ExperienceHandler) GetPublished(c *gin.Context) {
	experienceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), experienceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if !e.Published || e.DeletionMark {
		user := appctx.GetUser(c.Request.Context())
		owner := user != nil && (user.Role == appctx.RoleSuperAdmin ||
			user.AssociationID == e.AssociationID.String())
		if !owner {
			h.Error(c, apperror.NewNotFound("experience", experienceID.String()))
			return
		}
	}

	h.OK(c, e)
}

// ListOwn handles GET /association/experiences.
func (h *ExperienceHandler) ListOwn(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

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

// Create handles POST /association/experiences.
func (h *ExperienceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateExperienceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	assocID, err := id.Parse(appctx.GetAssociationID(ctx))
	if err != nil {
		h.Error(c, apperror.NewForbidden("no association scope"))
		return
	}

	e, err := req.ToEntity(assocID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if e.Date.Before(time.Now()) {
		h.Error(c, apperror.NewValidation("date must be in the future").WithDetail("field", "date"))
		return
	}

	if err := h.service.Create(ctx, e); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(201, e)
}

// Get handles GET /association/experiences/:id.
func (h *ExperienceHandler) Get(c *gin.Context) {
	experienceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), experienceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// Update handles PUT /association/experiences/:id.
func (h *ExperienceHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	experienceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateExperienceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, experienceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := req.ApplyTo(existing); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, existing)
}

// Delete handles DELETE /association/experiences/:id.
func (h *ExperienceHandler) Delete(c *gin.Context) {
	experienceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), experienceID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// SetPublished handles POST /association/experiences/:id/publish.
func (h *ExperienceHandler) SetPublished(c *gin.Context) {
	experienceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SetPublishedRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.service.SetPublished(c.Request.Context(), experienceID, req.Published)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// UploadImage handles POST /association/experiences/:id/image
// (multipart, field "file").
func (h *ExperienceHandler) UploadImage(c *gin.Context) {
	ctx := c.Request.Context()

	experienceID, ok := h.ParseIDParam(c, "id")
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

	url, err := h.objects.Upload(ctx, "experiences", header.Header.Get("Content-Type"), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	e, err := h.service.SetImage(ctx, experienceID, url)
	if err != nil {
		_ = h.objects.Remove(ctx, url)
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}
