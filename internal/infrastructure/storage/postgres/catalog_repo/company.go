package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"volentia/internal/domain/catalogs/company"
	"volentia/internal/infrastructure/storage/postgres"
)

const companyTable = "cat_companies"

// CompanyRepo implements company.Repository.
type CompanyRepo struct {
	*BaseRepo[*company.Company]
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(txm *postgres.TxManager) *CompanyRepo {
	return &CompanyRepo{
		BaseRepo: NewBaseRepo(
			txm,
			companyTable,
			postgres.ExtractDBColumns[company.Company](),
			[]string{"name", "city", "sector"},
			func() *company.Company { return &company.Company{} },
		),
	}
}

// FindByName retrieves a company by exact name.
func (r *CompanyRepo) FindByName(ctx context.Context, name string) (*company.Company, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}
