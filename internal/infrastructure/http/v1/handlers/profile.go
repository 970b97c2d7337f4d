package handlers

import (
	"github.com/gin-gonic/gin"

	"volentia/internal/core/apperror"
	"volentia/internal/domain/auth"
	"volentia/internal/infrastructure/http/v1/dto"
	"volentia/internal/infrastructure/storage/object"
)

// ProfileHandler serves the signed-in user's own profile.
type ProfileHandler struct {
	*BaseHandler
	service *auth.Service
	objects *object.Storage
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(base *BaseHandler, service *auth.Service, objects *object.Storage) *ProfileHandler {
	return &ProfileHandler{BaseHandler: base, service: service, objects: objects}
}

// RegisterRoutes wires profile endpoints into the protected group.
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
	rg.PUT("", h.Update)
	rg.POST("/avatar", h.UploadAvatar)
	rg.DELETE("/avatar", h.RemoveAvatar)
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, user)
}

// Update handles PUT /profile - partial update, absent fields untouched.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), req.ToProfileUpdate())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, user)
}

// UploadAvatar handles POST /profile/avatar (multipart, field "file").
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	ctx := c.Request.Context()

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

	url, err := h.objects.Upload(ctx, "avatars", header.Header.Get("Content-Type"), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	user, err := h.service.SetAvatar(ctx, url)
	if err != nil {
		// The profile update failed; don't leave the upload orphaned.
		_ = h.objects.Remove(ctx, url)
		h.Error(c, err)
		return
	}
	h.OK(c, user)
}

// RemoveAvatar handles DELETE /profile/avatar.
func (h *ProfileHandler) RemoveAvatar(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.service.Me(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	old := user.AvatarURL

	updated, err := h.service.SetAvatar(ctx, "")
	if err != nil {
		h.Error(c, err)
		return
	}
	if old != nil {
		_ = h.objects.Remove(ctx, *old)
	}
	h.OK(c, updated)
}
