// Package store abstracts the tabular record service backing the catalog and
// order data. Records are schemaless field maps addressed by opaque string
// ids; filtering uses the store's formula language, of which the services
// only ever generate single-field equality.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrRecordNotFound = errors.New("record not found")

type Record struct {
	ID          string
	Fields      map[string]any
	CreatedTime time.Time
}

// Table is one named table in the store. Update replaces the given fields on
// the record; fields not present in the map are left untouched by hosted
// backends, so callers doing a full replace must send every mutable field.
type Table interface {
	Select(ctx context.Context, filterFormula string) ([]Record, error)
	Find(ctx context.Context, id string) (Record, error)
	Create(ctx context.Context, fields map[string]any) (Record, error)
	Update(ctx context.Context, id string, fields map[string]any) (Record, error)
	Destroy(ctx context.Context, id string) error
}

type Store interface {
	Table(name string) Table
}
