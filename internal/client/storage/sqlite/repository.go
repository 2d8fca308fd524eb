package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/gophsync/internal/client/storage"
	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/sqlrecord"
)

// DefaultOrder is the ordering of FindAll and FindBy when none is given.
const DefaultOrder = models.FieldCreatedAt + " DESC"

// baseFields are maintained by the repository and cannot be set through Update.
var baseFields = []string{
	models.FieldID,
	models.FieldCreatedAt,
	models.FieldUpdatedAt,
	models.FieldDeletedAt,
	models.FieldSyncStatus,
}

// Clock stamps createdAt/updatedAt.
type Clock interface {
	Now() models.Timestamp
}

// QueryOptions controls FindAll and FindBy.
type QueryOptions struct {
	// OrderBy is "column [ASC|DESC]"; DefaultOrder when empty
	OrderBy string
	// Limit of 0 means no limit
	Limit  int
	Offset int
	// IncludeDeleted returns soft-deleted rows too
	IncludeDeleted bool
}

// Repository is typed CRUD over one table with soft delete and sync status
// bookkeeping. T must be JSON-compatible with the table's columns and embed
// models.Base. Every mutation is a single statement.
type Repository[T any] struct {
	db      *sql.DB
	clock   Clock
	newID   func() string
	table   string
	columns sqlrecord.Columns
}

// NewRepository creates a repository over table. The table must exist.
func NewRepository[T any](ctx context.Context, s *Storage, table string, clock Clock) (*Repository[T], error) {
	cols, err := sqlrecord.TableColumns(ctx, s.db, table)
	if err != nil {
		return nil, wrapErr("load columns", err)
	}

	for _, f := range baseFields {
		if !cols.Has(f) {
			return nil, wrapErr("load columns", fmt.Errorf("table %s has no %s column", table, f))
		}
	}

	return &Repository[T]{
		db:      s.db,
		clock:   clock,
		newID:   func() string { return uuid.New().String() },
		table:   table,
		columns: cols,
	}, nil
}

// Table returns the table name.
func (r *Repository[T]) Table() string {
	return r.table
}

// FindAll returns rows ordered by opts.OrderBy, soft-deleted rows excluded
// unless opts.IncludeDeleted.
func (r *Repository[T]) FindAll(ctx context.Context, opts QueryOptions) ([]T, error) {
	return r.find(ctx, "", nil, opts)
}

// FindBy returns rows where field = value, with FindAll semantics otherwise.
func (r *Repository[T]) FindBy(ctx context.Context, field string, value any, opts QueryOptions) ([]T, error) {
	ident, err := r.columns.Ident(field)
	if err != nil {
		return nil, wrapErr("find by", fmt.Errorf("%w: %w", storage.ErrUnknownField, err))
	}
	arg, err := sqlrecord.BindValue(value)
	if err != nil {
		return nil, wrapErr("find by", err)
	}

	return r.find(ctx, ident+" = ?", []any{arg}, opts)
}

func (r *Repository[T]) find(ctx context.Context, where string, args []any, opts QueryOptions) ([]T, error) {
	order := opts.OrderBy
	if order == "" {
		order = DefaultOrder
	}
	orderBy, err := r.columns.OrderBy(order)
	if err != nil {
		return nil, wrapErr("find", fmt.Errorf("%w: %w", storage.ErrUnknownField, err))
	}

	var conds []string
	if where != "" {
		conds = append(conds, where)
	}
	if !opts.IncludeDeleted {
		conds = append(conds, `"deletedAt" IS NULL`)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT * FROM %s", sqlrecord.Quote(r.table))
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY " + orderBy)

	switch {
	case opts.Limit > 0:
		b.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			b.WriteString(" OFFSET ?")
			args = append(args, opts.Offset)
		}
	case opts.Offset > 0:
		b.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, opts.Offset)
	}

	records, err := r.query(ctx, b.String(), args...)
	if err != nil {
		return nil, wrapErr("find", err)
	}

	return r.decodeAll(records)
}

// FindByID returns the row with id. Soft-deleted rows are reported as
// absent unless includeDeleted.
func (r *Repository[T]) FindByID(ctx context.Context, id string, includeDeleted bool) (T, bool, error) {
	var zero T

	rec, found, err := r.FindRecord(ctx, id, includeDeleted)
	if err != nil || !found {
		return zero, found, err
	}

	entity, err := decode[T](rec)
	if err != nil {
		return zero, false, wrapErr("find by id", err)
	}
	return entity, true, nil
}

// FindPending returns rows waiting to be pushed, oldest change first.
func (r *Repository[T]) FindPending(ctx context.Context) ([]T, error) {
	records, err := r.PendingRecords(ctx)
	if err != nil {
		return nil, err
	}
	return r.decodeAll(records)
}

// FindConflicts returns rows held for manual conflict resolution, newest first.
func (r *Repository[T]) FindConflicts(ctx context.Context) ([]T, error) {
	records, err := r.query(ctx,
		fmt.Sprintf(`SELECT * FROM %s WHERE "syncStatus" = ? ORDER BY "updatedAt" DESC`, sqlrecord.Quote(r.table)),
		string(models.SyncStatusConflict))
	if err != nil {
		return nil, wrapErr("find conflicts", err)
	}
	return r.decodeAll(records)
}

// Create stores data as a new pending row with a fresh id and timestamps.
// Base fields present in data are overwritten.
func (r *Repository[T]) Create(ctx context.Context, data T) (T, error) {
	var zero T

	rec, err := models.ToRecord(data)
	if err != nil {
		return zero, wrapErr("create", err)
	}

	now := r.clock.Now().String()
	rec[models.FieldID] = r.newID()
	rec[models.FieldCreatedAt] = now
	rec[models.FieldUpdatedAt] = now
	rec[models.FieldDeletedAt] = nil
	rec[models.FieldSyncStatus] = string(models.SyncStatusPending)

	if err := sqlrecord.Insert(ctx, r.db, r.table, r.columns, rec); err != nil {
		return zero, wrapErr("create", err)
	}

	entity, err := decode[T](rec)
	if err != nil {
		return zero, wrapErr("create", err)
	}
	return entity, nil
}

// Update merges changes into a live row, stamps updatedAt and marks it pending.
// Returns false when the row is absent or soft-deleted.
func (r *Repository[T]) Update(ctx context.Context, id string, changes map[string]any) (T, bool, error) {
	var zero T

	_, found, err := r.FindRecord(ctx, id, false)
	if err != nil || !found {
		return zero, false, err
	}

	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var (
		sets []string
		args []any
	)
	for _, k := range keys {
		if slices.Contains(baseFields, k) {
			return zero, false, wrapErr("update", fmt.Errorf("%w: %s", storage.ErrReadOnlyField, k))
		}
		ident, err := r.columns.Ident(k)
		if err != nil {
			return zero, false, wrapErr("update", fmt.Errorf("%w: %w", storage.ErrUnknownField, err))
		}
		arg, err := sqlrecord.BindValue(changes[k])
		if err != nil {
			return zero, false, wrapErr("update", err)
		}
		sets = append(sets, ident+" = ?")
		args = append(args, arg)
	}

	sets = append(sets, `"updatedAt" = ?`, `"syncStatus" = ?`)
	args = append(args, r.clock.Now().String(), string(models.SyncStatusPending), id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE "id" = ?`, sqlrecord.Quote(r.table), strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return zero, false, wrapErr("update", err)
	}

	return r.FindByID(ctx, id, false)
}

// Delete soft-deletes a live row. Returns false when the row is absent or
// already deleted.
func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	now := r.clock.Now().String()
	query := fmt.Sprintf(
		`UPDATE %s SET "deletedAt" = ?, "updatedAt" = ?, "syncStatus" = ? WHERE "id" = ? AND "deletedAt" IS NULL`,
		sqlrecord.Quote(r.table))

	return r.execAffected(ctx, "delete", query, now, now, string(models.SyncStatusPending), id)
}

// HardDelete removes the row. Used when a remote deletion is applied.
func (r *Repository[T]) HardDelete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE "id" = ?`, sqlrecord.Quote(r.table))
	return r.execAffected(ctx, "hard delete", query, id)
}

// Restore clears deletedAt and marks the row pending.
func (r *Repository[T]) Restore(ctx context.Context, id string) (T, bool, error) {
	var zero T

	query := fmt.Sprintf(
		`UPDATE %s SET "deletedAt" = NULL, "updatedAt" = ?, "syncStatus" = ? WHERE "id" = ?`,
		sqlrecord.Quote(r.table))
	restored, err := r.execAffected(ctx, "restore", query, r.clock.Now().String(), string(models.SyncStatusPending), id)
	if err != nil || !restored {
		return zero, false, err
	}

	return r.FindByID(ctx, id, false)
}

// MarkSynced sets syncStatus to synced without touching timestamps.
func (r *Repository[T]) MarkSynced(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, models.SyncStatusSynced)
}

// MarkConflict sets syncStatus to conflict without touching timestamps.
func (r *Repository[T]) MarkConflict(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, models.SyncStatusConflict)
}

// MarkSyncedIfUnchanged marks the row synced only if updatedAt still equals
// the pushed value, so an edit made while the push was in flight stays pending.
func (r *Repository[T]) MarkSyncedIfUnchanged(ctx context.Context, id, updatedAt string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET "syncStatus" = ? WHERE "id" = ? AND "updatedAt" = ?`, sqlrecord.Quote(r.table))
	return r.execAffected(ctx, "mark synced", query, string(models.SyncStatusSynced), id, updatedAt)
}

func (r *Repository[T]) setStatus(ctx context.Context, id string, status models.SyncStatus) error {
	query := fmt.Sprintf(`UPDATE %s SET "syncStatus" = ? WHERE "id" = ?`, sqlrecord.Quote(r.table))
	if _, err := r.db.ExecContext(ctx, query, string(status), id); err != nil {
		return wrapErr("mark "+string(status), err)
	}
	return nil
}

// Count returns the number of rows, soft-deleted ones only if includeDeleted.
func (r *Repository[T]) Count(ctx context.Context, includeDeleted bool) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", sqlrecord.Quote(r.table))
	if !includeDeleted {
		query += ` WHERE "deletedAt" IS NULL`
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, wrapErr("count", err)
	}
	return n, nil
}

// PendingRecords returns pending rows as records ordered by updatedAt ascending.
func (r *Repository[T]) PendingRecords(ctx context.Context) ([]models.Record, error) {
	records, err := r.query(ctx,
		fmt.Sprintf(`SELECT * FROM %s WHERE "syncStatus" = ? ORDER BY "updatedAt" ASC`, sqlrecord.Quote(r.table)),
		string(models.SyncStatusPending))
	if err != nil {
		return nil, wrapErr("find pending", err)
	}
	return records, nil
}

// FindRecord returns the row with id as a record.
func (r *Repository[T]) FindRecord(ctx context.Context, id string, includeDeleted bool) (models.Record, bool, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE "id" = ?`, sqlrecord.Quote(r.table))
	if !includeDeleted {
		query += ` AND "deletedAt" IS NULL`
	}

	records, err := r.query(ctx, query, id)
	if err != nil {
		return nil, false, wrapErr("find by id", err)
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	return records[0], true, nil
}

// UpsertRecord writes a full record idempotently. Keys that are not columns
// of the table are ignored.
func (r *Repository[T]) UpsertRecord(ctx context.Context, rec models.Record) error {
	if err := sqlrecord.Upsert(ctx, r.db, r.table, r.columns, rec); err != nil {
		return wrapErr("upsert", err)
	}
	return nil
}

func (r *Repository[T]) query(ctx context.Context, query string, args ...any) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return sqlrecord.ScanRecords(rows)
}

func (r *Repository[T]) execAffected(ctx context.Context, op, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapErr(op, err)
	}
	return n > 0, nil
}

func (r *Repository[T]) decodeAll(records []models.Record) ([]T, error) {
	result := make([]T, 0, len(records))
	for _, rec := range records {
		entity, err := decode[T](rec)
		if err != nil {
			return nil, wrapErr("decode", err)
		}
		result = append(result, entity)
	}
	return result, nil
}

func decode[T any](rec models.Record) (T, error) {
	var entity T
	if err := models.FromRecord(rec, &entity); err != nil {
		return entity, err
	}
	return entity, nil
}

// wrapErr marks err as a storage failure.
func wrapErr(op string, err error) error {
	if errors.Is(err, storage.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", storage.ErrStorage, op, err)
}
