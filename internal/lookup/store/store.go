// Package store provides read-only access to the record table. Stores are
// interface-driven to keep the traversal engine testable and to allow
// swapping the memory, SQLite, and PostgreSQL implementations without
// rewiring business code.
package store

import (
	"context"

	"deeplink/internal/lookup/models"
)

// RecordStore is the accessor contract the traversal engine depends on.
// Both lookups run against indexed columns; a miss returns an empty slice,
// never an error. Implementations must tolerate concurrent invocation from
// many simultaneous queries.
type RecordStore interface {
	// FindByPhone returns all records whose primary identifier equals phone.
	FindByPhone(ctx context.Context, phone string) ([]models.Record, error)
	// FindByAltPhone returns all records whose alternate identifier
	// references phone (reverse-edge lookup).
	FindByAltPhone(ctx context.Context, phone string) ([]models.Record, error)
	// Count returns the (possibly approximate) number of records.
	Count(ctx context.Context) (int64, error)
	// Health reports whether the backing store is reachable.
	Health(ctx context.Context) error
}
