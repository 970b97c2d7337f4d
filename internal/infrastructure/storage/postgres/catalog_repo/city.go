package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"volentia/internal/domain/catalogs/city"
	"volentia/internal/infrastructure/storage/postgres"
)

const cityTable = "cat_cities"

// CityRepo implements city.Repository.
type CityRepo struct {
	*BaseRepo[*city.City]
}

// NewCityRepo creates a new city repository.
func NewCityRepo(txm *postgres.TxManager) *CityRepo {
	return &CityRepo{
		BaseRepo: NewBaseRepo(
			txm,
			cityTable,
			postgres.ExtractDBColumns[city.City](),
			[]string{"name", "province"},
			func() *city.City { return &city.City{} },
		),
	}
}

// FindByName retrieves a city by exact name.
func (r *CityRepo) FindByName(ctx context.Context, name string) (*city.City, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}
