// Package crud implements the generic table-bound state controller that
// backs the admin consoles: one controller per table, providing uniform
// fetch/search/save/delete semantics regardless of record shape.
package crud

import (
	"context"
)

// Record is a row of a backing table exposed as named fields.
// Implementations decide how fields are stored; the controller only reads
// them through this capability.
type Record interface {
	// Field returns the value of a named field. The second return value is
	// false when the record has no such field.
	Field(name string) (any, bool)
}

// Order specifies server-side sorting of fetched results.
type Order struct {
	Column    string
	Ascending bool
}

// Asc returns an ascending order on the given column.
func Asc(column string) *Order {
	return &Order{Column: column, Ascending: true}
}

// Desc returns a descending order on the given column.
func Desc(column string) *Order {
	return &Order{Column: column}
}

// Store is the capability the controller needs from the backing data
// service. The controller has zero knowledge of the underlying query
// language; anything satisfying this contract (PostgreSQL, an in-memory
// fake) can serve it.
type Store[T Record] interface {
	// Select returns all rows of table, ordered when orderBy is non-nil.
	Select(ctx context.Context, table string, orderBy *Order) ([]T, error)

	// Insert adds rec as a new row of table.
	Insert(ctx context.Context, table string, rec T) error

	// UpdateByKey updates the row of table whose keyField equals key.
	UpdateByKey(ctx context.Context, table string, rec T, keyField string, key any) error

	// DeleteByKey removes the row of table whose keyField equals key.
	DeleteByKey(ctx context.Context, table string, keyField string, key any) error
}
