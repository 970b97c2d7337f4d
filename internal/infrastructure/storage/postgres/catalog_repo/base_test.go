package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volentia/internal/core/apperror"
	"volentia/internal/core/id"
	"volentia/internal/domain"
)

// newTestRepo builds a repo without a live TxManager; only the query
// builders are exercised here.
func newTestRepo() *CityRepo {
	return NewCityRepo(nil)
}

func TestListQuery_DefaultExcludesDeleted(t *testing.T) {
	repo := newTestRepo()

	sql, args, err := repo.ListQuery(domain.DefaultListFilter()).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM cat_cities")
	assert.Contains(t, sql, "deletion_mark = $1")
	assert.Equal(t, []any{false}, args)
}

func TestListQuery_SearchBuildsILikePerColumn(t *testing.T) {
	repo := newTestRepo()

	filter := domain.DefaultListFilter()
	filter.Search = "mila"

	sql, args, err := repo.ListQuery(filter).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "name ILIKE $2")
	assert.Contains(t, sql, "province ILIKE $3")
	assert.Contains(t, sql, " OR ")
	assert.Equal(t, []any{false, "%mila%", "%mila%"}, args)
}

func TestListQuery_IncludeDeletedDropsMarkFilter(t *testing.T) {
	repo := newTestRepo()

	filter := domain.DefaultListFilter()
	filter.IncludeDeleted = true

	sql, _, err := repo.ListQuery(filter).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sql, "deletion_mark")
}

func TestListQuery_IDsFilter(t *testing.T) {
	repo := newTestRepo()

	ids := []id.ID{id.New(), id.New()}
	filter := domain.DefaultListFilter()
	filter.IDs = ids

	sql, args, err := repo.ListQuery(filter).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "id IN ($2,$3)")
	assert.Len(t, args, 3)
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to newest first", orderBy: "", want: "created_at DESC"},
		{name: "plain column ascends", orderBy: "name", want: "name ASC"},
		{name: "minus prefix descends", orderBy: "-name", want: "name DESC"},
		{name: "plus prefix ascends", orderBy: "+province", want: "province ASC"},
		{name: "unknown column rejected", orderBy: "password_hash", wantErr: true},
		{name: "injection rejected", orderBy: "name; DROP TABLE users", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
