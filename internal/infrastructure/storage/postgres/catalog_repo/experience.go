package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"volentia/internal/core/id"
	"volentia/internal/domain"
	"volentia/internal/domain/catalogs/experience"
	"volentia/internal/infrastructure/storage/postgres"
)

const experienceTable = "cat_experiences"

// ExperienceRepo implements experience.Repository.
type ExperienceRepo struct {
	*BaseRepo[*experience.Experience]
}

// NewExperienceRepo creates a new experience repository.
func NewExperienceRepo(txm *postgres.TxManager) *ExperienceRepo {
	return &ExperienceRepo{
		BaseRepo: NewBaseRepo(
			txm,
			experienceTable,
			postgres.ExtractDBColumns[experience.Experience](),
			[]string{"title", "description"},
			func() *experience.Experience { return &experience.Experience{} },
		),
	}
}

// ListByAssociation retrieves all experiences owned by an association.
func (r *ExperienceRepo) ListByAssociation(ctx context.Context, associationID id.ID, filter domain.ListFilter) (domain.ListResult[*experience.Experience], error) {
	result := domain.ListResult[*experience.Experience]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.ListQuery(filter).
		Where(squirrel.Eq{"association_id": associationID}).
		OrderBy("date DESC")

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	items, err := r.FindMany(ctx, q)
	if err != nil {
		return result, err
	}
	result.Items = items
	return result, nil
}

// ListPublished retrieves published, non-deleted experiences for the
// public catalog, soonest first.
func (r *ExperienceRepo) ListPublished(ctx context.Context, filter experience.PublicFilter) (domain.ListResult[*experience.Experience], error) {
	result := domain.ListResult[*experience.Experience]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.BaseSelect().
		Where(squirrel.Eq{"published": true}).
		Where(squirrel.Eq{"deletion_mark": false})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	}
	if filter.CityID != nil {
		q = q.Where(squirrel.Eq{"city_id": *filter.CityID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.To})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("date ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	items, err := r.FindMany(ctx, q)
	if err != nil {
		return result, err
	}
	result.Items = items
	return result, nil
}
