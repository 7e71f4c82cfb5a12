package directory

import (
	"context"
	"sync/atomic"

	"github.com/dmitrijs2005/empdirectory/internal/queryir"
)

type failingStore struct {
	err    error
	closed *atomic.Bool
}

func (f *failingStore) Count(ctx context.Context) (int, error) { return 0, f.err }

func (f *failingStore) InsertMany(ctx context.Context, docs []queryir.Document) error { return f.err }

func (f *failingStore) Query(ctx context.Context, q queryir.Query) ([]queryir.Document, error) {
	return nil, f.err
}

func (f *failingStore) Close() error {
	f.closed.Store(true)
	return nil
}
