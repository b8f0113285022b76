package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"deeplink/internal/lookup/models"
)

// SQLiteStore serves record lookups from a pre-populated read-only SQLite
// dataset file. Tuned for a very large read-heavy table: WAL journal, large
// page cache, mmap, and query_only as a safety net against accidental
// writes.
type SQLiteStore struct {
	db    *sql.DB
	limit int
}

// OpenSQLite opens the dataset file and applies the read-only pragma
// profile. limit caps rows per indexed lookup.
func OpenSQLite(path string, limit int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=10000;",
		"PRAGMA cache_size=-64000;",
		"PRAGMA mmap_size=2147483648;",
		"PRAGMA temp_store=MEMORY;",
		"PRAGMA query_only=ON;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	return &SQLiteStore{db: db, limit: limit}, nil
}

func (s *SQLiteStore) FindByPhone(ctx context.Context, phone string) ([]models.Record, error) {
	query := "SELECT " + recordColumns + " FROM records WHERE phone = ? LIMIT ?"
	rows, err := s.db.QueryContext(ctx, query, phone, s.limit)
	if err != nil {
		return nil, fmt.Errorf("find by phone: %w", err)
	}
	return scanRecords(rows)
}

func (s *SQLiteStore) FindByAltPhone(ctx context.Context, phone string) ([]models.Record, error) {
	query := "SELECT " + recordColumns + " FROM records WHERE alt_phone = ? LIMIT ?"
	rows, err := s.db.QueryContext(ctx, query, phone, s.limit)
	if err != nil {
		return nil, fmt.Errorf("find by alt phone: %w", err)
	}
	return scanRecords(rows)
}

// Count uses MAX(rowid) as a constant-time approximation; an exact count
// would scan billions of rows.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(rowid) FROM records").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count.Int64, nil
}

func (s *SQLiteStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
