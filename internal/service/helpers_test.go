package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/spirulina/internal/blob"
	"github.com/alexanderramin/spirulina/internal/db"
	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/repository"
	"github.com/alexanderramin/spirulina/internal/testutil"
)

var t0 = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

// setupStore returns a Store on an in-memory SQLite database whose clock
// advances one minute per record.
func setupStore(t *testing.T, observers ...UseCaseObserver) *Store {
	t.Helper()
	database := testutil.NewTestDB(t)
	docs := repository.NewSQLDocumentStore(database, db.DialectSQLite)
	opts := []repository.CollectionOption{repository.WithClock(testutil.Clock(t0, time.Minute))}
	return NewDocumentStore(docs, opts, observers...)
}

// setupBlobStore returns a Store on an in-memory blob store.
func setupBlobStore(t *testing.T) *Store {
	t.Helper()
	docs := repository.NewBlobDocumentStore(blob.NewMemory())
	opts := []repository.CollectionOption{repository.WithClock(testutil.Clock(t0, time.Minute))}
	return NewDocumentStore(docs, opts)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name
	}
	return out
}

type fakeWatcher struct {
	changes []domain.Collection
}

func (f *fakeWatcher) Watch(_ context.Context, onChange func(domain.Collection)) error {
	for _, c := range f.changes {
		onChange(c)
	}
	return nil
}
