// Package tablestore implements the crud.Store capability over
// PostgreSQL for dynamically targeted tables. The super-admin console
// binds one controller per allowlisted table; rows travel as plain
// field maps so the controller stays ignorant of record shapes.
package tablestore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"volentia/internal/core/apperror"
	"volentia/internal/domain/crud"
	"volentia/internal/infrastructure/storage/postgres"
)

// Row is one table row as a field map. It satisfies crud.Record.
type Row map[string]any

// Field implements crud.Record.
func (r Row) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Store executes dynamic per-table queries. Only allowlisted tables are
// reachable; table and column names are validated because they cannot
// be bound as placeholders.
type Store struct {
	txm     *postgres.TxManager
	allowed map[string]bool
}

// New creates a Store limited to the given tables.
func New(txm *postgres.TxManager, tables []string) *Store {
	allowed := make(map[string]bool, len(tables))
	for _, t := range tables {
		allowed[t] = true
	}
	return &Store{txm: txm, allowed: allowed}
}

// Tables returns the allowlisted table names.
func (s *Store) Tables() []string {
	out := make([]string, 0, len(s.allowed))
	for t := range s.allowed {
		out = append(out, t)
	}
	return out
}

func (s *Store) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (s *Store) checkTable(table string) error {
	if !s.allowed[table] {
		return apperror.NewForbidden("table is not managed").WithDetail("table", table)
	}
	return nil
}

func checkIdent(name string) error {
	if !identRe.MatchString(name) {
		return apperror.NewValidation("invalid identifier").WithDetail("identifier", name)
	}
	return nil
}

func checkColumns(rec Row) error {
	for col := range rec {
		if err := checkIdent(col); err != nil {
			return err
		}
	}
	return nil
}

// Select returns all rows of table, ordered when orderBy is non-nil.
func (s *Store) Select(ctx context.Context, table string, orderBy *crud.Order) ([]Row, error) {
	if err := s.checkTable(table); err != nil {
		return nil, err
	}

	q := s.builder().Select("*").From(table)
	if orderBy != nil {
		if err := checkIdent(orderBy.Column); err != nil {
			return nil, err
		}
		dir := "DESC"
		if orderBy.Ascending {
			dir = "ASC"
		}
		q = q.OrderBy(orderBy.Column + " " + dir)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.txm.GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	var out []Row
	rs := pgxscan.NewRowScanner(rows)
	for rows.Next() {
		m := make(map[string]any)
		if err := rs.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, Row(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}

	return out, nil
}

// Insert adds rec as a new row of table.
func (s *Store) Insert(ctx context.Context, table string, rec Row) error {
	if err := s.checkTable(table); err != nil {
		return err
	}
	if len(rec) == 0 {
		return apperror.NewValidation("empty record")
	}
	if err := checkColumns(rec); err != nil {
		return err
	}

	q := s.builder().Insert(table).SetMap(map[string]any(rec))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// UpdateByKey updates the row of table whose keyField equals key.
func (s *Store) UpdateByKey(ctx context.Context, table string, rec Row, keyField string, key any) error {
	if err := s.checkTable(table); err != nil {
		return err
	}
	if err := checkIdent(keyField); err != nil {
		return err
	}
	if err := checkColumns(rec); err != nil {
		return err
	}

	// The key column never moves.
	data := make(map[string]any, len(rec))
	for col, v := range rec {
		if col == keyField {
			continue
		}
		data[col] = v
	}
	if len(data) == 0 {
		return apperror.NewValidation("empty record")
	}

	q := s.builder().
		Update(table).
		SetMap(data).
		Where(squirrel.Eq{keyField: key})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := s.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(table, key)
	}
	return nil
}

// DeleteByKey removes the row of table whose keyField equals key.
func (s *Store) DeleteByKey(ctx context.Context, table string, keyField string, key any) error {
	if err := s.checkTable(table); err != nil {
		return err
	}
	if err := checkIdent(keyField); err != nil {
		return err
	}

	q := s.builder().
		Delete(table).
		Where(squirrel.Eq{keyField: key})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := s.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(table, key)
	}
	return nil
}

// Ensure interface compliance
var _ crud.Store[Row] = (*Store)(nil)
