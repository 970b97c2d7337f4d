// Package access_repo provides PostgreSQL repositories for access
// codes and access requests.
package access_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"volentia/internal/core/apperror"
	"volentia/internal/domain/accesscode"
	"volentia/internal/infrastructure/storage/postgres"
	"volentia/internal/infrastructure/storage/postgres/catalog_repo"
)

const codeTable = "access_codes"

// CodeRepo implements accesscode.Repository.
type CodeRepo struct {
	*catalog_repo.BaseRepo[*accesscode.AccessCode]
}

// NewCodeRepo creates a new access code repository.
func NewCodeRepo(txm *postgres.TxManager) *CodeRepo {
	return &CodeRepo{
		BaseRepo: catalog_repo.NewBaseRepo(
			txm,
			codeTable,
			postgres.ExtractDBColumns[accesscode.AccessCode](),
			[]string{"code"},
			func() *accesscode.AccessCode { return &accesscode.AccessCode{} },
		),
	}
}

// FindByCode retrieves a code by its shared secret value.
func (r *CodeRepo) FindByCode(ctx context.Context, code string) (*accesscode.AccessCode, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"code": code}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// IncrementUsage bumps used_count atomically. The guard repeats the
// exhaustion check so two concurrent redemptions cannot both take the
// last use.
func (r *CodeRepo) IncrementUsage(ctx context.Context, code string) error {
	q := r.Builder().
		Update(codeTable).
		Set("used_count", squirrel.Expr("used_count + 1")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.Expr("(max_uses = 0 OR used_count < max_uses)"))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build increment usage: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewBusinessRule(apperror.CodeCodeExhausted, "Codice di accesso esaurito")
	}
	return nil
}
