package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"

	"volentia/internal/core/apperror"
	"volentia/internal/domain/crud"
	"volentia/internal/infrastructure/http/v1/dto"
	"volentia/internal/infrastructure/storage/postgres/tablestore"
)

// ConsoleHandler exposes the super-admin console: CRUD controllers over
// the dynamic table store, one managed table each. All responses carry
// the controller's Italian notifications for the client to toast.
//
// Controllers are single-consumer state machines, so each request gets
// its own instance; only the table configurations are shared.
type ConsoleHandler struct {
	*BaseHandler
	store  crud.Store[tablestore.Row]
	tables map[string]ConsoleTable
}

// ConsoleTable describes one managed table.
type ConsoleTable struct {
	Table        string
	OrderBy      *crud.Order
	SearchFields []string
}

// DefaultConsoleTables lists the tables the super-admin console manages.
func DefaultConsoleTables() []ConsoleTable {
	return []ConsoleTable{
		{Table: "cat_companies", OrderBy: &crud.Order{Column: "name", Ascending: true}, SearchFields: []string{"name", "city", "sector"}},
		{Table: "cat_associations", OrderBy: &crud.Order{Column: "name", Ascending: true}, SearchFields: []string{"name", "city"}},
		{Table: "cat_categories", OrderBy: &crud.Order{Column: "name", Ascending: true}, SearchFields: []string{"name"}},
		{Table: "cat_cities", OrderBy: &crud.Order{Column: "name", Ascending: true}, SearchFields: []string{"name", "province"}},
		{Table: "access_codes", OrderBy: &crud.Order{Column: "created_at", Ascending: false}, SearchFields: []string{"code", "role"}},
	}
}

// NewConsoleHandler creates a console handler for the given tables.
func NewConsoleHandler(base *BaseHandler, store crud.Store[tablestore.Row], tables []ConsoleTable) *ConsoleHandler {
	byName := make(map[string]ConsoleTable, len(tables))
	for _, t := range tables {
		byName[t.Table] = t
	}
	return &ConsoleHandler{BaseHandler: base, store: store, tables: byName}
}

// RegisterRoutes wires the console endpoints.
func (h *ConsoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tables", h.ListTables)
	rg.GET("/:table", h.List)
	rg.POST("/:table", h.Save)
	rg.DELETE("/:table/:id", h.Delete)
}

// controller builds a fresh controller and notifier for the requested
// table. Sharing an instance across requests would leak one request's
// selection and notifications into another.
func (h *ConsoleHandler) controller(c *gin.Context) (*crud.Controller[tablestore.Row], *crud.RecordingNotifier, bool) {
	table := c.Param("table")
	t, ok := h.tables[table]
	if !ok {
		h.Error(c, apperror.NewNotFound("table", table))
		return nil, nil, false
	}

	cfg := crud.NewConfig(t.Table)
	cfg.OrderBy = t.OrderBy
	cfg.SearchFields = t.SearchFields

	notifier := &crud.RecordingNotifier{}
	return crud.New[tablestore.Row](cfg, h.store, notifier), notifier, true
}

// ListTables handles GET /admin/console/tables.
func (h *ConsoleHandler) ListTables(c *gin.Context) {
	tables := make([]string, 0, len(h.tables))
	for t := range h.tables {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	h.OK(c, gin.H{"tables": tables})
}

// List handles GET /admin/console/:table - fetches the collection and
// returns the rows matching the optional search term.
func (h *ConsoleHandler) List(c *gin.Context) {
	ctrl, notifier, ok := h.controller(c)
	if !ok {
		return
	}

	ctrl.SetSearchTerm(c.Query("search"))
	ctrl.Fetch(c.Request.Context())

	h.OK(c, dto.ConsoleListResponse{
		Table:         ctrl.Table(),
		Items:         ctrl.FilteredItems(),
		SearchTerm:    ctrl.SearchTerm(),
		Notifications: notifier.Drain(),
	})
}

// Save handles POST /admin/console/:table - insert or update depending
// on the submitted selection, exactly as the console dialog does.
func (h *ConsoleHandler) Save(c *gin.Context) {
	ctrl, notifier, ok := h.controller(c)
	if !ok {
		return
	}

	var req dto.ConsoleSaveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if req.Selected != nil {
		sel := tablestore.Row(req.Selected)
		ctrl.Select(&sel)
	}
	ctrl.SetDialogOpen(true)

	success := ctrl.Save(c.Request.Context(), tablestore.Row(req.Record), nil)

	h.OK(c, dto.ConsoleMutationResponse{
		Success:       success,
		Notifications: notifier.Drain(),
	})
}

// Delete handles DELETE /admin/console/:table/:id.
func (h *ConsoleHandler) Delete(c *gin.Context) {
	ctrl, notifier, ok := h.controller(c)
	if !ok {
		return
	}

	sel := tablestore.Row{"id": c.Param("id")}
	ctrl.Select(&sel)
	ctrl.SetDeleteDialogOpen(true)

	success := ctrl.Delete(c.Request.Context(), nil)

	h.OK(c, dto.ConsoleMutationResponse{
		Success:       success,
		Notifications: notifier.Drain(),
	})
}
