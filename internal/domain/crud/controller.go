package crud

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"volentia/internal/core/id"
)

// Config configures a Controller instance.
type Config struct {
	// Table identifies which backing table to operate on. Required; target
	// of every subsequent operation.
	Table string

	// OrderBy is the server-side sort order of fetched results. Nil yields
	// the store's default order.
	OrderBy *Order

	// SearchFields are the field names eligible for client-side substring
	// search. Empty disables filtering (all items pass).
	SearchFields []string

	// FetchOnMount controls whether Mount runs the initial fetch.
	FetchOnMount bool

	// IDField is the unique-key field used for update/delete targeting.
	IDField string
}

// NewConfig returns a Config with the defaults: fetch on mount, "id" key.
func NewConfig(table string) Config {
	return Config{
		Table:        table,
		FetchOnMount: true,
		IDField:      "id",
	}
}

// Controller binds one list view to one backing table, decoupling it from
// direct store calls. It owns the loaded collection and the transient state
// (selection, dialog flags, loading/saving flags) the CRUD operations need.
//
// Each instance is owned exclusively by one consumer. Overlapping calls are
// not serialized: the last response to settle wins over the collection
// (accepted limitation, not a correctness guarantee).
type Controller[T Record] struct {
	cfg    Config
	store  Store[T]
	notify Notifier

	mu               sync.Mutex
	items            []T
	loading          bool
	saving           bool
	searchTerm       string
	selected         *T
	dialogOpen       bool
	deleteDialogOpen bool
	closed           bool
}

// New creates a controller for one table. IDField defaults to "id".
func New[T Record](cfg Config, store Store[T], notify Notifier) *Controller[T] {
	if cfg.IDField == "" {
		cfg.IDField = "id"
	}
	if notify == nil {
		notify = LogNotifier{}
	}
	return &Controller[T]{cfg: cfg, store: store, notify: notify}
}

// Mount runs the initial fetch when the configuration asks for it.
func (c *Controller[T]) Mount(ctx context.Context) {
	if c.cfg.FetchOnMount {
		c.Fetch(ctx)
	}
}

// Fetch loads all rows for the configured table. On success the collection
// is replaced; on failure the previous collection is left untouched and the
// failure is surfaced as a notification. Safe to call repeatedly.
func (c *Controller[T]) Fetch(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.mu.Unlock()

	rows, err := c.store.Select(ctx, c.cfg.Table, c.cfg.OrderBy)

	c.mu.Lock()
	if c.closed {
		// Consumer went away while the request was in flight; drop the result.
		c.mu.Unlock()
		return
	}
	c.loading = false
	if err != nil {
		c.mu.Unlock()
		c.notify.Notify(ctx, LevelError, MsgLoadFailed)
		return
	}
	c.items = rows
	c.mu.Unlock()
}

// FilteredItems returns the records whose configured search fields contain
// the current search term, case-insensitively. A blank term, or no
// configured search fields, yields the full collection.
func (c *Controller[T]) FilteredItems() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.searchTerm == "" || len(c.cfg.SearchFields) == 0 {
		return append([]T(nil), c.items...)
	}

	term := strings.ToLower(c.searchTerm)
	var out []T
	for _, item := range c.items {
		if c.matches(item, term) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Controller[T]) matches(item T, lowerTerm string) bool {
	for _, field := range c.cfg.SearchFields {
		v, ok := item.Field(field)
		if !ok || v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(fieldText(v)), lowerTerm) {
			return true
		}
	}
	return false
}

// Save persists payload: an update when the selected item carries a truthy
// value in the key field, an insert otherwise. On success the collection is
// re-fetched, the edit dialog closed, the selection cleared and onSuccess
// invoked. Returns false on failure, leaving state otherwise unchanged.
//
// A selected item whose key value is present but falsy (empty string,
// numeric zero) deliberately falls through to insert; callers that need a
// zero-valued key must not rely on update semantics for it.
func (c *Controller[T]) Save(ctx context.Context, payload T, onSuccess func()) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.saving = true
	sel := c.selected
	c.mu.Unlock()

	var err error
	if key, isUpdate := c.updateKey(sel); isUpdate {
		err = c.store.UpdateByKey(ctx, c.cfg.Table, payload, c.cfg.IDField, key)
	} else {
		err = c.store.Insert(ctx, c.cfg.Table, payload)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.saving = false
	c.mu.Unlock()

	if err != nil {
		c.notify.Notify(ctx, LevelError, MsgSaveFailed)
		return false
	}

	c.Fetch(ctx)

	c.mu.Lock()
	c.dialogOpen = false
	c.selected = nil
	c.mu.Unlock()

	if onSuccess != nil {
		onSuccess()
	}
	c.notify.Notify(ctx, LevelSuccess, MsgSaveSuccess)
	return true
}

// Delete removes the currently selected record. Without a selection, or
// with a selection that carries no value in the key field, it is a no-op
// returning false, and the store is never called. On success the
// collection is re-fetched, the confirmation dialog closed and the selection
// cleared; on failure the dialog stays open.
func (c *Controller[T]) Delete(ctx context.Context, onSuccess func()) bool {
	c.mu.Lock()
	if c.closed || c.selected == nil {
		c.mu.Unlock()
		return false
	}
	sel := *c.selected
	c.mu.Unlock()

	key, ok := sel.Field(c.cfg.IDField)
	if !ok || key == nil {
		return false
	}
	err := c.store.DeleteByKey(ctx, c.cfg.Table, c.cfg.IDField, key)
	if err != nil {
		c.notify.Notify(ctx, LevelError, MsgDeleteFailed)
		return false
	}

	c.Fetch(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.deleteDialogOpen = false
	c.selected = nil
	c.mu.Unlock()

	if onSuccess != nil {
		onSuccess()
	}
	c.notify.Notify(ctx, LevelSuccess, MsgDeleteSuccess)
	return true
}

// updateKey decides create-vs-update: update only when a selection exists
// and its key field holds a truthy value.
func (c *Controller[T]) updateKey(sel *T) (any, bool) {
	if sel == nil {
		return nil, false
	}
	v, ok := (*sel).Field(c.cfg.IDField)
	if !ok || !truthy(v) {
		return nil, false
	}
	return v, true
}

// --- plain state mutators and accessors ---

// SetSearchTerm updates the search term used by FilteredItems.
func (c *Controller[T]) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
}

// SearchTerm returns the current search term.
func (c *Controller[T]) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchTerm
}

// Select sets the current selection; nil clears it.
func (c *Controller[T]) Select(item *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = item
}

// Selected returns the current selection, or nil.
func (c *Controller[T]) Selected() *T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// SetDialogOpen toggles the edit dialog flag.
func (c *Controller[T]) SetDialogOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialogOpen = open
}

// DialogOpen reports the edit dialog flag.
func (c *Controller[T]) DialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialogOpen
}

// SetDeleteDialogOpen toggles the delete-confirmation dialog flag.
func (c *Controller[T]) SetDeleteDialogOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteDialogOpen = open
}

// DeleteDialogOpen reports the delete-confirmation dialog flag.
func (c *Controller[T]) DeleteDialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteDialogOpen
}

// Items returns a copy of the loaded collection.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Loading reports whether a fetch is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Saving reports whether a save is in flight.
func (c *Controller[T]) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// Close marks the controller defunct. In-flight completions observed after
// Close are discarded instead of mutating state.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Table returns the configured table name.
func (c *Controller[T]) Table() string {
	return c.cfg.Table
}

// fieldText converts a field value to searchable text.
func fieldText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truthy mirrors the loose key-presence check of the original UI:
// nil, empty string, false and numeric zero all read as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case id.ID:
		return !id.IsNil(t)
	default:
		return true
	}
}
