package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"deeplink/internal/lookup/models"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) TestFindByPhone() {
	s.store.Add(
		models.Record{Phone: "9876543210", Name: "ARUN KUMAR"},
		models.Record{Phone: "9876543210", Name: "ARUN K"},
		models.Record{Phone: "8817342793", Name: "OTHER"},
	)

	records, err := s.store.FindByPhone(s.ctx, "9876543210")
	s.Require().NoError(err)
	s.Len(records, 2, "duplicate primaries both returned")

	records, err = s.store.FindByPhone(s.ctx, "7000000000")
	s.Require().NoError(err)
	s.Empty(records, "miss returns empty, never an error")
}

func (s *MemoryStoreSuite) TestFindByAltPhone() {
	s.store.Add(
		models.Record{Phone: "9876543210", AltPhone: "8817342793"},
		models.Record{Phone: "7000419892"},
	)

	records, err := s.store.FindByAltPhone(s.ctx, "8817342793")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("9876543210", records[0].Phone)

	// Records without an alternate identifier are not reverse-indexed.
	records, err = s.store.FindByAltPhone(s.ctx, "")
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *MemoryStoreSuite) TestCount() {
	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)

	s.store.Add(
		models.Record{Phone: "9876543210"},
		models.Record{Phone: "8817342793"},
	)

	count, err = s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(2, count)
}

func (s *MemoryStoreSuite) TestResultsAreCopies() {
	s.store.Add(models.Record{Phone: "9876543210", Name: "ARUN"})

	records, err := s.store.FindByPhone(s.ctx, "9876543210")
	s.Require().NoError(err)
	records[0].Name = "MUTATED"

	again, err := s.store.FindByPhone(s.ctx, "9876543210")
	s.Require().NoError(err)
	s.Equal("ARUN", again[0].Name, "callers must not be able to mutate the store")
}

func (s *MemoryStoreSuite) TestConcurrentReads() {
	s.store.Add(models.Record{Phone: "9876543210", AltPhone: "8817342793"})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.FindByPhone(s.ctx, "9876543210")
			s.NoError(err)
			_, err = s.store.FindByAltPhone(s.ctx, "8817342793")
			s.NoError(err)
		}()
	}
	wg.Wait()
}
