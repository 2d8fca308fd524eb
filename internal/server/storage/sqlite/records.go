package sqlite

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/server/storage"
	"github.com/iudanet/gophsync/internal/sqlrecord"
	"github.com/iudanet/gophsync/pkg/api"
)

var _ storage.RecordStorage = (*Storage)(nil)

func (s *Storage) columns(table string) (sqlrecord.Columns, error) {
	cols, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownTable, table)
	}
	return cols, nil
}

// Insert stores new rows in one transaction
func (s *Storage) Insert(ctx context.Context, table string, records []models.Record) error {
	return s.write(ctx, table, records, sqlrecord.Insert)
}

// Upsert stores rows in one transaction, replacing rows with the same id
func (s *Storage) Upsert(ctx context.Context, table string, records []models.Record) error {
	return s.write(ctx, table, records, sqlrecord.Upsert)
}

type writeFunc func(ctx context.Context, q sqlrecord.Querier, table string, cols sqlrecord.Columns, rec models.Record) error

func (s *Storage) write(ctx context.Context, table string, records []models.Record, fn writeFunc) error {
	cols, err := s.columns(table)
	if err != nil {
		return err
	}

	for i, rec := range records {
		if rec.ID() == "" {
			return fmt.Errorf("%w: record %d has no %s", storage.ErrInvalidRecord, i, models.FieldID)
		}
		for key := range rec {
			if !cols.Has(key) {
				return fmt.Errorf("%w: %q", storage.ErrUnknownColumn, key)
			}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, rec := range records {
		if err := fn(ctx, tx, table, cols, rec); err != nil {
			return classify(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// classify переводит ошибки ограничений SQLite в ошибки хранилища
func classify(err error) error {
	var sqlErr *sqlitedrv.Error
	if !errors.As(err, &sqlErr) {
		return err
	}

	code := sqlErr.Code()
	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, code == sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return fmt.Errorf("%w: %w", storage.ErrDuplicate, err)
	case code&0xff != sqlite3.SQLITE_CONSTRAINT:
		return err
	case strings.Contains(sqlErr.Error(), "UNIQUE constraint failed"):
		// драйвер без расширенных кодов
		return fmt.Errorf("%w: %w", storage.ErrDuplicate, err)
	default:
		return fmt.Errorf("%w: %w", storage.ErrInvalidRecord, err)
	}
}

// Delete removes rows matching every filter
func (s *Storage) Delete(ctx context.Context, table string, filters map[string]api.Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, storage.ErrMissingFilter
	}

	cols, err := s.columns(table)
	if err != nil {
		return 0, err
	}

	where, args, err := whereClause(cols, filters)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE %s", sqlrecord.Quote(table), where), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

// Select returns rows matching the query
func (s *Storage) Select(ctx context.Context, table string, q storage.Query) ([]models.Record, error) {
	cols, err := s.columns(table)
	if err != nil {
		return nil, err
	}

	query := "SELECT * FROM " + sqlrecord.Quote(table)

	var args []any
	if len(q.Filters) > 0 {
		where, whereArgs, err := whereClause(cols, q.Filters)
		if err != nil {
			return nil, err
		}
		query += " WHERE " + where
		args = whereArgs
	}

	if q.Order != "" {
		order, err := cols.OrderBy(q.Order)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrUnknownColumn, err)
		}
		query += " ORDER BY " + order
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", table, err)
	}
	defer rows.Close()

	return sqlrecord.ScanRecords(rows)
}

// whereClause собирает условия в порядке имён колонок
func whereClause(cols sqlrecord.Columns, filters map[string]api.Filter) (string, []any, error) {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	slices.Sort(names)

	conds := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for _, name := range names {
		ident, err := cols.Ident(name)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", storage.ErrUnknownColumn, err)
		}

		f := filters[name]
		switch f.Op {
		case api.OpEq:
			conds = append(conds, ident+" = ?")
		case api.OpGte:
			conds = append(conds, ident+" >= ?")
		default:
			return "", nil, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
		args = append(args, f.Value)
	}

	return strings.Join(conds, " AND "), args, nil
}
