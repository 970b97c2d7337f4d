package tablestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volentia/internal/core/apperror"
	"volentia/internal/domain/crud"
)

// Guard checks run before any query is issued, so a nil transaction
// manager is enough to exercise them.

func TestRowField(t *testing.T) {
	row := Row{"name": "Croce Azzurra", "capacity": 12}

	v, ok := row.Field("name")
	assert.True(t, ok)
	assert.Equal(t, "Croce Azzurra", v)

	_, ok = row.Field("missing")
	assert.False(t, ok)
}

func TestStoreRejectsUnknownTable(t *testing.T) {
	store := New(nil, []string{"cat_cities", "cat_categories"})
	ctx := context.Background()

	_, err := store.Select(ctx, "users", nil)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	assert.Equal(t, "users", appErr.Details["table"])

	err = store.Insert(ctx, "refresh_tokens", Row{"id": "x"})
	require.Error(t, err)

	err = store.DeleteByKey(ctx, "bookings; DROP TABLE bookings", "id", "x")
	require.Error(t, err)
}

func TestStoreRejectsInvalidIdentifiers(t *testing.T) {
	store := New(nil, []string{"cat_cities"})
	ctx := context.Background()

	_, err := store.Select(ctx, "cat_cities", &crud.Order{Column: "name; --"})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	err = store.Insert(ctx, "cat_cities", Row{"name\"": "x"})
	require.Error(t, err)

	err = store.UpdateByKey(ctx, "cat_cities", Row{"name": "x"}, "id OR 1=1", "k")
	require.Error(t, err)
}

func TestStoreRejectsEmptyRecords(t *testing.T) {
	store := New(nil, []string{"cat_cities"})
	ctx := context.Background()

	err := store.Insert(ctx, "cat_cities", Row{})
	require.Error(t, err)

	// A record carrying only the key has nothing left to set.
	err = store.UpdateByKey(ctx, "cat_cities", Row{"id": "abc"}, "id", "abc")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestStoreTables(t *testing.T) {
	store := New(nil, []string{"cat_cities", "cat_categories"})
	assert.ElementsMatch(t, []string{"cat_cities", "cat_categories"}, store.Tables())
}
