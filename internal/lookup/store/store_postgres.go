package store

import (
	"context"
	"database/sql"
	"fmt"

	"deeplink/internal/lookup/models"
)

const recordColumns = "phone, alt_phone, name, father_name, address, circle, email"

// PostgresStore serves record lookups from PostgreSQL. Both queries hit
// b-tree indexes on phone and alt_phone; the LIMIT bounds single-identifier
// fan-out so one hot identifier cannot blow past the traversal budget.
type PostgresStore struct {
	db    *sql.DB
	limit int
}

// NewPostgres constructs a PostgreSQL-backed record store. limit caps the
// rows returned per indexed lookup and normally matches the traversal's
// max-results setting.
func NewPostgres(db *sql.DB, limit int) *PostgresStore {
	return &PostgresStore{db: db, limit: limit}
}

func (s *PostgresStore) FindByPhone(ctx context.Context, phone string) ([]models.Record, error) {
	query := "SELECT " + recordColumns + " FROM records WHERE phone = $1 LIMIT $2"
	rows, err := s.db.QueryContext(ctx, query, phone, s.limit)
	if err != nil {
		return nil, fmt.Errorf("find by phone: %w", err)
	}
	return scanRecords(rows)
}

func (s *PostgresStore) FindByAltPhone(ctx context.Context, phone string) ([]models.Record, error) {
	query := "SELECT " + recordColumns + " FROM records WHERE alt_phone = $1 LIMIT $2"
	rows, err := s.db.QueryContext(ctx, query, phone, s.limit)
	if err != nil {
		return nil, fmt.Errorf("find by alt phone: %w", err)
	}
	return scanRecords(rows)
}

// Count returns the planner's row estimate. An exact COUNT(*) walks the
// whole table, which is off the table for a dataset this size.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(reltuples::bigint, 0) FROM pg_class WHERE relname = 'records'",
	).Scan(&count)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("count records: %w", err)
	}
	if count < 0 {
		count = 0
	}
	return count, nil
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func scanRecords(rows *sql.Rows) ([]models.Record, error) {
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		var altPhone, fatherName, address, circle, email sql.NullString
		if err := rows.Scan(&r.Phone, &altPhone, &r.Name, &fatherName, &address, &circle, &email); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.AltPhone = altPhone.String
		r.FatherName = fatherName.String
		r.Address = address.String
		r.Circle = circle.String
		r.Email = email.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
