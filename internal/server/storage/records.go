package storage

import (
	"context"

	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/pkg/api"
)

// Query selects rows of one table. Filters are ANDed.
type Query struct {
	Filters map[string]api.Filter
	// Order is "column [asc|desc]"; empty keeps storage order
	Order string
}

//go:generate moq -out records_mock.go . RecordStorage

// RecordStorage defines persistence of rows served over the REST API.
// Rows are stored as sent, syncStatus included.
type RecordStorage interface {
	// Tables returns the served tables
	Tables() []string

	// Insert stores new rows; an existing id yields ErrDuplicate
	// and nothing is written
	Insert(ctx context.Context, table string, records []models.Record) error

	// Upsert stores rows, replacing those with the same id
	Upsert(ctx context.Context, table string, records []models.Record) error

	// Delete removes matching rows and returns how many were removed.
	// An empty filter set yields ErrMissingFilter
	Delete(ctx context.Context, table string, filters map[string]api.Filter) (int64, error)

	// Select returns matching rows
	Select(ctx context.Context, table string, q Query) ([]models.Record, error)

	// Ping checks the database
	Ping(ctx context.Context) error
}
