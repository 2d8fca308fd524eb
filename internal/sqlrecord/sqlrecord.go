// Package sqlrecord maps models.Record values onto SQLite tables whose
// columns are only known at runtime.
package sqlrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/iudanet/gophsync/internal/models"
)

// ErrUnknownColumn indicates that an identifier is not a column of the table.
var ErrUnknownColumn = errors.New("unknown column")

// Querier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Columns is the column set of one table in declaration order.
type Columns []string

// TableColumns reads the column set of table via PRAGMA table_info.
func TableColumns(ctx context.Context, q Querier, table string) (Columns, error) {
	rows, err := q.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols Columns
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s does not exist", table)
	}
	if !slices.Contains(cols, models.FieldID) {
		return nil, fmt.Errorf("table %s has no %s column", table, models.FieldID)
	}

	return cols, nil
}

// Has reports whether name is a column of the table.
func (c Columns) Has(name string) bool {
	return slices.Contains(c, name)
}

// Ident returns name quoted as an SQL identifier, or ErrUnknownColumn.
// Only identifiers that passed this check are ever interpolated into SQL.
func (c Columns) Ident(name string) (string, error) {
	if !c.Has(name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return Quote(name), nil
}

// OrderBy parses "column [ASC|DESC]" into a safe ORDER BY term.
func (c Columns) OrderBy(order string) (string, error) {
	fields := strings.Fields(order)
	if len(fields) == 0 || len(fields) > 2 {
		return "", fmt.Errorf("invalid order %q", order)
	}

	ident, err := c.Ident(fields[0])
	if err != nil {
		return "", err
	}

	dir := "ASC"
	if len(fields) == 2 {
		switch strings.ToUpper(fields[1]) {
		case "ASC":
		case "DESC":
			dir = "DESC"
		default:
			return "", fmt.Errorf("invalid order direction %q", fields[1])
		}
	}

	return ident + " " + dir, nil
}

// Quote quotes an SQL identifier.
func Quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ScanRecords reads every row into a Record keyed by column name.
// TEXT comes back as string, INTEGER as int64, REAL as float64, NULL as nil.
func ScanRecords(rows *sql.Rows) ([]models.Record, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	records := []models.Record{}
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rec := make(models.Record, len(names))
		for i, name := range names {
			if b, ok := values[i].([]byte); ok {
				rec[name] = string(b)
				continue
			}
			rec[name] = values[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return records, nil
}

// Insert writes rec as a new row. Every key of rec must be a column.
func Insert(ctx context.Context, q Querier, table string, cols Columns, rec models.Record) error {
	names := make([]string, 0, len(rec))
	holders := make([]string, 0, len(rec))
	args := make([]any, 0, len(rec))

	for _, col := range cols {
		v, ok := rec[col]
		if !ok {
			continue
		}
		arg, err := BindValue(v)
		if err != nil {
			return fmt.Errorf("column %s: %w", col, err)
		}
		names = append(names, Quote(col))
		holders = append(holders, "?")
		args = append(args, arg)
	}
	for key := range rec {
		if !cols.Has(key) {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		Quote(table), strings.Join(names, ", "), strings.Join(holders, ", "))
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return nil
}

// Upsert writes rec into table with INSERT ... ON CONFLICT(id) DO UPDATE.
// Keys of rec that are not columns of the table are ignored, so a remote
// record carrying extra fields still applies. Applying the same record twice
// leaves one identical row.
func Upsert(ctx context.Context, q Querier, table string, cols Columns, rec models.Record) error {
	if rec.ID() == "" {
		return fmt.Errorf("record has no %s", models.FieldID)
	}

	var (
		names   []string
		holders []string
		updates []string
		args    []any
	)
	for _, col := range cols {
		v, ok := rec[col]
		if !ok {
			continue
		}
		arg, err := BindValue(v)
		if err != nil {
			return fmt.Errorf("column %s: %w", col, err)
		}

		quoted := Quote(col)
		names = append(names, quoted)
		holders = append(holders, "?")
		args = append(args, arg)
		if col != models.FieldID {
			updates = append(updates, quoted+" = excluded."+quoted)
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		Quote(table), strings.Join(names, ", "), strings.Join(holders, ", "))
	if len(updates) > 0 {
		query += fmt.Sprintf(" ON CONFLICT(%s) DO UPDATE SET %s",
			Quote(models.FieldID), strings.Join(updates, ", "))
	} else {
		query += fmt.Sprintf(" ON CONFLICT(%s) DO NOTHING", Quote(models.FieldID))
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", table, err)
	}

	return nil
}

// BindValue converts a decoded JSON value into something the SQLite driver binds.
// Booleans become 0/1, nested objects and arrays are stored as JSON text.
func BindValue(v any) (any, error) {
	switch val := v.(type) {
	case nil, string, int64, float64, []byte:
		return val, nil
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case float32:
		return float64(val), nil
	case bool:
		if val {
			return int64(1), nil
		}
		return int64(0), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		return val.Float64()
	case models.Timestamp:
		return val.String(), nil
	case *models.Timestamp:
		if val == nil {
			return nil, nil
		}
		return val.String(), nil
	case models.SyncStatus:
		return string(val), nil
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("failed to encode value: %w", err)
		}
		return string(data), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
