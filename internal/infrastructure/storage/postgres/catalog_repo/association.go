package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"volentia/internal/domain/catalogs/association"
	"volentia/internal/infrastructure/storage/postgres"
)

const associationTable = "cat_associations"

// AssociationRepo implements association.Repository.
type AssociationRepo struct {
	*BaseRepo[*association.Association]
}

// NewAssociationRepo creates a new association repository.
func NewAssociationRepo(txm *postgres.TxManager) *AssociationRepo {
	return &AssociationRepo{
		BaseRepo: NewBaseRepo(
			txm,
			associationTable,
			postgres.ExtractDBColumns[association.Association](),
			[]string{"name", "city"},
			func() *association.Association { return &association.Association{} },
		),
	}
}

// FindByName retrieves an association by exact name.
func (r *AssociationRepo) FindByName(ctx context.Context, name string) (*association.Association, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}
