package handlers

import (
	"github.com/gin-gonic/gin"

	"volentia/internal/domain"
	"volentia/internal/domain/catalogs/association"
	"volentia/internal/domain/catalogs/category"
	"volentia/internal/domain/catalogs/city"
	"volentia/internal/infrastructure/http/v1/dto"
)

// CatalogHandler serves the public reference catalogs the booking UI
// needs for browsing and filtering. Read-only: writes go through the
// super-admin console.
type CatalogHandler struct {
	*BaseHandler
	categories   *category.Service
	cities       *city.Service
	associations *association.Service
}

// NewCatalogHandler creates a new public catalog handler.
func NewCatalogHandler(
	base *BaseHandler,
	categories *category.Service,
	cities *city.Service,
	associations *association.Service,
) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:  base,
		categories:   categories,
		cities:       cities,
		associations: associations,
	}
}

// RegisterRoutes wires public catalog endpoints.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/cities", h.ListCities)
	rg.GET("/associations", h.ListAssociations)
	rg.GET("/associations/:id", h.GetAssociation)
}

func (h *CatalogHandler) listFilter(c *gin.Context) domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "name")
	return filter
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	result, err := h.categories.List(c.Request.Context(), h.listFilter(c))
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

// ListCities handles GET /cities.
func (h *CatalogHandler) ListCities(c *gin.Context) {
	result, err := h.cities.List(c.Request.Context(), h.listFilter(c))
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

// ListAssociations handles GET /associations.
func (h *CatalogHandler) ListAssociations(c *gin.Context) {
	result, err := h.associations.List(c.Request.Context(), h.listFilter(c))
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

// GetAssociation handles GET /associations/:id.
func (h *CatalogHandler) GetAssociation(c *gin.Context) {
	assocID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	assoc, err := h.associations.GetByID(c.Request.Context(), assocID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, assoc)
}
