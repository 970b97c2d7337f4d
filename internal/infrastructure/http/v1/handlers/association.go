package handlers

import (
	"github.com/gin-gonic/gin"

	"volentia/internal/core/apperror"
	appctx "volentia/internal/core/context"
	"volentia/internal/core/id"
	"volentia/internal/domain/catalogs/association"
	"volentia/internal/infrastructure/http/v1/dto"
	"volentia/internal/infrastructure/storage/object"
)

// AssociationHandler serves the association console's own profile.
type AssociationHandler struct {
	*BaseHandler
	associations *association.Service
	objects      *object.Storage
}

// NewAssociationHandler creates a new association handler.
func NewAssociationHandler(base *BaseHandler, associations *association.Service, objects *object.Storage) *AssociationHandler {
	return &AssociationHandler{BaseHandler: base, associations: associations, objects: objects}
}

// RegisterRoutes wires the association console profile endpoints.
func (h *AssociationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Get)
	rg.PUT("/profile", h.Update)
	rg.POST("/profile/logo", h.UploadLogo)
}

func (h *AssociationHandler) ownAssociationID(c *gin.Context) (id.ID, bool) {
	assocID, err := id.Parse(appctx.GetAssociationID(c.Request.Context()))
	if err != nil {
		h.Error(c, apperror.NewForbidden("no association scope"))
		return id.Nil(), false
	}
	return assocID, true
}

// Get handles GET /association/profile.
func (h *AssociationHandler) Get(c *gin.Context) {
	assocID, ok := h.ownAssociationID(c)
	if !ok {
		return
	}

	a, err := h.associations.GetByID(c.Request.Context(), assocID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, a)
}

// Update handles PUT /association/profile.
func (h *AssociationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	assocID, ok := h.ownAssociationID(c)
	if !ok {
		return
	}

	var req dto.UpdateAssociationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.associations.GetByID(ctx, assocID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(existing)

	if err := h.associations.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, existing)
}

// UploadLogo handles POST /association/profile/logo (multipart, field "file").
func (h *AssociationHandler) UploadLogo(c *gin.Context) {
	ctx := c.Request.Context()

	assocID, ok := h.ownAssociationID(c)
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

	existing, err := h.associations.GetByID(ctx, assocID)
	if err != nil {
		_ = h.objects.Remove(ctx, url)
		h.Error(c, err)
		return
	}
	existing.SetLogo(url)
	if err := h.associations.Update(ctx, existing); err != nil {
		_ = h.objects.Remove(ctx, url)
		h.Error(c, err)
		return
	}
	h.OK(c, existing)
}
