// Package directory is the single entry point the UI layer talks to.
//
// A Directory owns the store and a readiness token. The first public call
// starts the one-time open+seed sequence; every call, including concurrent
// first calls, waits for that same sequence to finish and then delegates to
// the query engine. Construction does no I/O.
//
// If initialization fails the failure is sticky: every later call returns the
// same error for the lifetime of the Directory.
package directory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/empdirectory/internal/common"
	"github.com/dmitrijs2005/empdirectory/internal/employees"
	"github.com/dmitrijs2005/empdirectory/internal/logging"
	"github.com/dmitrijs2005/empdirectory/internal/models"
	"github.com/dmitrijs2005/empdirectory/internal/seed"
)

// Store is what the directory needs from the storage handle.
type Store interface {
	seed.Collection
	employees.Collection
	Close() error
}

// Opener opens the storage handle. It is called at most once.
type Opener func(ctx context.Context) (Store, error)

type Directory struct {
	open    Opener
	seeder  *seed.Seeder
	dataset []models.Employee
	log     logging.Logger

	once   sync.Once
	ready  chan struct{}
	store  Store
	engine *employees.Engine
	err    error

	closeOnce sync.Once
	closeErr  error
}

// New returns a Directory that will open its store with open and seed it from
// dataset on first use.
func New(open Opener, seeder *seed.Seeder, dataset []models.Employee, log logging.Logger) *Directory {
	return &Directory{
		open:    open,
		seeder:  seeder,
		dataset: dataset,
		log:     logging.OrDiscard(log).With("component", "directory"),
		ready:   make(chan struct{}),
	}
}

// Ready is closed once initialization has finished, successfully or not.
// It does not start initialization.
func (d *Directory) Ready() <-chan struct{} {
	return d.ready
}

// Init starts initialization if needed and waits for it.
func (d *Directory) Init(ctx context.Context) error {
	_, err := d.await(ctx)
	return err
}

// ListAll returns every employee.
func (d *Directory) ListAll(ctx context.Context) ([]models.Employee, error) {
	eng, err := d.await(ctx)
	if err != nil {
		return nil, err
	}
	return eng.GetAll(ctx)
}

// Filter returns employees matching office, department and first-name
// substrings (models.AnyValue for no constraint), sorted by last name.
func (d *Directory) Filter(ctx context.Context, office, department, query string) ([]models.Employee, error) {
	eng, err := d.await(ctx)
	if err != nil {
		return nil, err
	}
	return eng.Filter(ctx, office, department, query)
}

// GetByID returns one employee or an error matching common.ErrNotFound.
func (d *Directory) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	eng, err := d.await(ctx)
	if err != nil {
		return nil, err
	}
	return eng.GetByID(ctx, id)
}

// ListDistinct returns "Any" followed by the sorted distinct values of field.
func (d *Directory) ListDistinct(ctx context.Context, field string) ([]string, error) {
	eng, err := d.await(ctx)
	if err != nil {
		return nil, err
	}
	return eng.DistinctValues(ctx, field)
}

// Close waits for any in-flight initialization and closes the store.
// A Directory that was never used will refuse to initialize afterwards.
func (d *Directory) Close() error {
	d.once.Do(func() {
		d.err = fmt.Errorf("%w: directory closed", common.ErrStorageUnavailable)
		close(d.ready)
	})
	<-d.ready

	d.closeOnce.Do(func() {
		if d.store != nil {
			d.closeErr = d.store.Close()
		}
	})
	return d.closeErr
}

func (d *Directory) await(ctx context.Context) (*employees.Engine, error) {
	d.once.Do(func() {
		// Initialization outlives the caller that happened to trigger it.
		go d.initialize(context.WithoutCancel(ctx))
	})

	select {
	case <-d.ready:
		if d.err != nil {
			return nil, d.err
		}
		return d.engine, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *Directory) initialize(ctx context.Context) {
	defer close(d.ready)
	start := time.Now()

	st, err := d.open(ctx)
	if err != nil {
		d.err = fmt.Errorf("open store: %w", err)
		d.log.Error(ctx, "directory initialization failed", "error", err)
		return
	}

	if _, err := d.seeder.SeedIfEmpty(ctx, st, d.dataset); err != nil {
		_ = st.Close()
		d.err = err
		d.log.Error(ctx, "directory initialization failed", "error", err)
		return
	}

	d.store = st
	d.engine = employees.NewEngine(st)
	d.log.Info(ctx, "directory ready", "elapsed", time.Since(start))
}
