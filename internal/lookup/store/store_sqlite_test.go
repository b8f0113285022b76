package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	_ "modernc.org/sqlite"

	"deeplink/internal/lookup/models"
	"deeplink/internal/lookup/store"
)

type SQLiteStoreSuite struct {
	suite.Suite
	store *store.SQLiteStore
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}

// SetupSuite seeds a dataset file the way the external ingestion process
// would, then reopens it through the read-only store.
func (s *SQLiteStoreSuite) SetupSuite() {
	path := filepath.Join(s.T().TempDir(), "records.db")
	seedDataset(s.T(), path)

	st, err := store.OpenSQLite(path, 25)
	s.Require().NoError(err)
	s.store = st
}

func (s *SQLiteStoreSuite) TearDownSuite() {
	s.NoError(s.store.Close())
}

func seedDataset(t *testing.T, path string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE records (
			phone       TEXT NOT NULL,
			alt_phone   TEXT,
			name        TEXT,
			father_name TEXT,
			address     TEXT,
			circle      TEXT,
			email       TEXT
		)`)
	require.NoError(t, err)
	for _, stmt := range []string{
		"CREATE INDEX idx_records_phone ON records (phone)",
		"CREATE INDEX idx_records_alt_phone ON records (alt_phone)",
	} {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}

	rows := [][]any{
		{"9876543210", "8817342793", "ARUN KUMAR", "RAMESH KUMAR", "W/O Arun!!Rewa, MP!486340", "MP", "arun@example.com"},
		{"9876543210", "8817342793", "ARUN KUMAR", "RAMESH KUMAR", "W/O Arun!!Rewa, MP!486340", "MP", "arun@example.com"},
		{"8817342793", "7000419892", "ARUN K", nil, nil, "MP", nil},
		{"7000419892", nil, "A KUMAR", nil, nil, "Madhya Pradesh", nil},
	}
	for _, row := range rows {
		_, err = db.Exec(
			"INSERT INTO records (phone, alt_phone, name, father_name, address, circle, email) VALUES (?, ?, ?, ?, ?, ?, ?)",
			row...,
		)
		require.NoError(t, err)
	}
}

func (s *SQLiteStoreSuite) TestFindByPhone() {
	records, err := s.store.FindByPhone(context.Background(), "9876543210")
	s.Require().NoError(err)

	s.Len(records, 2, "duplicate rows surface as-is; dedup belongs to the engine")
	s.Equal("ARUN KUMAR", records[0].Name)
	s.Equal("8817342793", records[0].AltPhone)
}

func (s *SQLiteStoreSuite) TestFindByPhoneScansNulls() {
	records, err := s.store.FindByPhone(context.Background(), "7000419892")
	s.Require().NoError(err)

	s.Require().Len(records, 1)
	s.Equal(models.Record{Phone: "7000419892", Name: "A KUMAR", Circle: "Madhya Pradesh"}, records[0])
}

func (s *SQLiteStoreSuite) TestFindByAltPhone() {
	records, err := s.store.FindByAltPhone(context.Background(), "7000419892")
	s.Require().NoError(err)

	s.Require().Len(records, 1)
	s.Equal("8817342793", records[0].Phone)
}

func (s *SQLiteStoreSuite) TestMissReturnsEmpty() {
	records, err := s.store.FindByPhone(context.Background(), "9999999999")
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *SQLiteStoreSuite) TestCount() {
	count, err := s.store.Count(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(4), count)
}

func (s *SQLiteStoreSuite) TestHealth() {
	s.NoError(s.store.Health(context.Background()))
}

func TestOpenSQLiteLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	seedDataset(t, path)

	st, err := store.OpenSQLite(path, 1)
	require.NoError(t, err)
	defer st.Close()

	records, err := st.FindByPhone(context.Background(), "9876543210")
	require.NoError(t, err)
	require.Len(t, records, 1)
}
