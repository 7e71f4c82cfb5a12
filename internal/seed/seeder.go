// Package seed populates an empty employee collection from a static dataset.
//
// Seeding is idempotent: SeedIfEmpty counts the collection first and writes
// only when it is empty, inserting at most Limit records in one transaction.
// Running the application any number of times therefore never duplicates
// data, and a failed seed leaves the collection empty.
package seed

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/empdirectory/internal/common"
	"github.com/dmitrijs2005/empdirectory/internal/logging"
	"github.com/dmitrijs2005/empdirectory/internal/models"
	"github.com/dmitrijs2005/empdirectory/internal/queryir"
)

// DefaultLimit caps how many dataset records are seeded. It is also the
// largest limit a Seeder accepts.
const DefaultLimit = 200

// Collection is the part of the store the seeder needs.
type Collection interface {
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, docs []queryir.Document) error
}

// Seeder seeds collections. It counts its own invocations so callers can
// observe how many seed checks ran.
type Seeder struct {
	limit int
	log   logging.Logger
	runs  atomic.Int64
}

// NewSeeder returns a Seeder inserting at most limit records. limit <= 0
// means DefaultLimit, and larger values are clamped to it.
func NewSeeder(limit int, log logging.Logger) *Seeder {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	return &Seeder{limit: limit, log: logging.OrDiscard(log)}
}

// Limit returns the configured record cap.
func (s *Seeder) Limit() int { return s.limit }

// Runs returns how many times SeedIfEmpty has been called.
func (s *Seeder) Runs() int64 { return s.runs.Load() }

// SeedIfEmpty inserts the first Limit records of dataset when c is empty and
// returns how many were inserted. A non-empty collection is left untouched.
// Invalid or duplicate-id records abort the seed before anything is written.
func (s *Seeder) SeedIfEmpty(ctx context.Context, c Collection, dataset []models.Employee) (int, error) {
	s.runs.Add(1)

	count, err := c.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if count != 0 {
		s.log.Debug(ctx, "seed skipped, collection not empty", "records", count)
		return 0, nil
	}

	batch := dataset
	if len(batch) > s.limit {
		batch = batch[:s.limit]
	}

	docs, err := toDocuments(batch)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}

	if err := c.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}

	total, err := c.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	s.log.Info(ctx, "DB total records", "records", total, "seeded", len(docs))
	return len(docs), nil
}

func toDocuments(batch []models.Employee) ([]queryir.Document, error) {
	seen := make(map[int64]struct{}, len(batch))
	docs := make([]queryir.Document, 0, len(batch))
	for i, e := range batch {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", common.ErrInvalidRecord, e.ID)
		}
		seen[e.ID] = struct{}{}
		docs = append(docs, e.Document())
	}
	return docs, nil
}
