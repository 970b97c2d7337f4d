package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"volentia/internal/domain/catalogs/category"
	"volentia/internal/infrastructure/storage/postgres"
)

const categoryTable = "cat_categories"

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseRepo: NewBaseRepo(
			txm,
			categoryTable,
			postgres.ExtractDBColumns[category.Category](),
			[]string{"name"},
			func() *category.Category { return &category.Category{} },
		),
	}
}

// FindByName retrieves a category by exact name.
func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*category.Category, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}
