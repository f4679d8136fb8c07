package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/spirulina/internal/blob"
	"github.com/alexanderramin/spirulina/internal/db"
	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns one DocumentStore per storage flavour.
func backends(t *testing.T) map[string]DocumentStore {
	t.Helper()
	fsStore, err := blob.NewFilesystem(t.TempDir())
	require.NoError(t, err)
	return map[string]DocumentStore{
		"sqlite": NewSQLDocumentStore(testutil.NewTestDB(t), db.DialectSQLite),
		"memory": NewBlobDocumentStore(blob.NewMemory()),
		"fs":     NewBlobDocumentStore(fsStore),
	}
}

func TestCollection_AppendsListedOnceInOrder(t *testing.T) {
	for name, docs := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewPondRepo(docs)

			var ids []string
			for i := 0; i < 5; i++ {
				p, err := repo.Create(ctx, domain.PondDraft{Name: fmt.Sprintf("Pond %d", i), Volume: 10})
				require.NoError(t, err)
				ids = append(ids, p.ID)
			}

			listed := repo.List(ctx)
			require.Len(t, listed, 5)
			seen := map[string]bool{}
			for i, p := range listed {
				assert.Equal(t, ids[i], p.ID, "insertion order")
				assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
				seen[p.ID] = true
			}
		})
	}
}

func TestCollection_EmptyWhenNeverWritten(t *testing.T) {
	for name, docs := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, NewHarvestRepo(docs).List(context.Background()))
		})
	}
}

func TestCollection_RedrawsCollidingID(t *testing.T) {
	ctx := context.Background()
	ids := []string{"same", "same", "other"}
	next := 0
	gen := WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	})
	repo := NewLogRepo(NewBlobDocumentStore(blob.NewMemory()), gen)

	first, err := repo.Create(ctx, domain.LogDraft{PondID: "p1"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, domain.LogDraft{PondID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, "same", first.ID)
	assert.Equal(t, "other", second.ID)
}

func TestCollection_AssignsTimestamp(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	repo := NewHarvestRepo(NewBlobDocumentStore(blob.NewMemory()), WithClock(testutil.Clock(start, time.Hour)))

	h1, err := repo.Create(ctx, domain.HarvestDraft{PondID: "p1", WetWeight: 500})
	require.NoError(t, err)
	h2, err := repo.Create(ctx, domain.HarvestDraft{PondID: "p1", WetWeight: 300, DryWeight: domain.Some(0.0)})
	require.NoError(t, err)

	assert.Equal(t, start, h1.Timestamp)
	assert.Equal(t, start.Add(time.Hour), h2.Timestamp)

	listed := repo.List(ctx)
	require.Len(t, listed, 2)
	assert.False(t, listed[0].DryWeight.Present())
	dry, ok := listed[1].DryWeight.Get()
	assert.True(t, ok, "zero dry weight survives a round trip")
	assert.Zero(t, dry)
}

func TestCollection_ValidationRejectsBeforeWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewPondRepo(NewBlobDocumentStore(blob.NewMemory()))

	_, err := repo.Create(ctx, domain.PondDraft{Name: "", Volume: 10})
	require.Error(t, err)
	assert.Empty(t, repo.List(ctx))
}

func TestPondDelete_LeavesLogsAndHarvests(t *testing.T) {
	for name, docs := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			ponds := NewPondRepo(docs)
			logs := NewLogRepo(docs)
			harvests := NewHarvestRepo(docs)

			p, err := ponds.Create(ctx, domain.PondDraft{Name: "Doomed", Volume: 50})
			require.NoError(t, err)
			keep, err := ponds.Create(ctx, domain.PondDraft{Name: "Kept", Volume: 50})
			require.NoError(t, err)
			_, err = logs.Create(ctx, domain.LogDraft{PondID: p.ID, PH: 10})
			require.NoError(t, err)
			_, err = harvests.Create(ctx, domain.HarvestDraft{PondID: p.ID, WetWeight: 200})
			require.NoError(t, err)

			removed, err := ponds.Delete(ctx, p.ID)
			require.NoError(t, err)
			assert.True(t, removed)

			remaining := ponds.List(ctx)
			require.Len(t, remaining, 1)
			assert.Equal(t, keep.ID, remaining[0].ID)
			assert.Len(t, logs.List(ctx), 1)
			assert.Len(t, harvests.List(ctx), 1)

			_, err = ponds.GetByID(ctx, p.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestPondDelete_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	ponds := NewPondRepo(NewBlobDocumentStore(blob.NewMemory()))
	_, err := ponds.Create(ctx, domain.PondDraft{Name: "Only"})
	require.NoError(t, err)

	removed, err := ponds.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, ponds.List(ctx), 1)
}

func TestImport_SkipsExistingIDs(t *testing.T) {
	ctx := context.Background()
	ponds := NewPondRepo(NewBlobDocumentStore(blob.NewMemory()))
	existing, err := ponds.Create(ctx, domain.PondDraft{Name: "Existing"})
	require.NoError(t, err)

	created := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	incoming := []domain.Pond{
		{ID: existing.ID, Name: "Dup"},
		testutil.NewTestPond("Imported", testutil.WithPondCreatedAt(created)),
		{ID: "", Name: "No id"},
	}
	added, err := ponds.Import(ctx, incoming)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	list := ponds.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "Existing", list[0].Name)
	assert.Equal(t, created, list[1].CreatedAt)

	added, err = ponds.Import(ctx, incoming)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestConcurrentAppends_AllPersisted(t *testing.T) {
	for name, docs := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			logs := NewLogRepo(docs)

			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := logs.Create(ctx, domain.LogDraft{PondID: "p1", PH: 9 + float64(i)/10})
					assert.NoError(t, err)
				}(i)
			}
			wg.Wait()
			assert.Len(t, logs.List(ctx), 20)
		})
	}
}

func TestConcurrentAppends_AcrossCollectionsOnSQLiteFile(t *testing.T) {
	ctx := context.Background()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "culture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	docs := NewSQLDocumentStore(database, db.DialectSQLite)
	ponds := NewPondRepo(docs)
	logs := NewLogRepo(docs)
	harvests := NewHarvestRepo(docs)

	const rounds = 30
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			_, err := ponds.Create(ctx, domain.PondDraft{Name: fmt.Sprintf("Pond %d", i), Volume: 100})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_, err := logs.Create(ctx, domain.LogDraft{PondID: "p1", PH: 10})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := harvests.Create(ctx, domain.HarvestDraft{PondID: "p1", WetWeight: 250})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, ponds.List(ctx), rounds)
	assert.Len(t, logs.List(ctx), rounds)
	assert.Len(t, harvests.List(ctx), rounds)
}

// brokenStore fails every operation.
type brokenStore struct{ loadErr, saveErr error }

func (b brokenStore) Load(context.Context, domain.Collection) ([]byte, error) { return nil, b.loadErr }
func (b brokenStore) Save(context.Context, domain.Collection, []byte) error   { return b.saveErr }

func TestStorageFailures(t *testing.T) {
	ctx := context.Background()
	down := errors.New("disk gone")

	t.Run("read failure degrades to empty", func(t *testing.T) {
		repo := NewPondRepo(brokenStore{loadErr: down})
		assert.Empty(t, repo.List(ctx))
	})

	t.Run("write failure is storage unavailable", func(t *testing.T) {
		repo := NewPondRepo(brokenStore{saveErr: down})
		_, err := repo.Create(ctx, domain.PondDraft{Name: "X"})
		require.ErrorIs(t, err, ErrStorageUnavailable)
		assert.ErrorIs(t, err, down)
		assert.Contains(t, err.Error(), "ponds")
	})

	t.Run("sql write failure rolls back", func(t *testing.T) {
		database := testutil.NewTestDB(t)
		docs := NewSQLDocumentStore(database, db.DialectSQLite).
			WithUnitOfWork(&testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: down})
		repo := NewHarvestRepo(docs)

		_, err := repo.Create(ctx, domain.HarvestDraft{PondID: "p1", WetWeight: 10})
		require.NoError(t, err)
		_, err = repo.Create(ctx, domain.HarvestDraft{PondID: "p1", WetWeight: 20})
		require.ErrorIs(t, err, ErrStorageUnavailable)

		assert.Len(t, repo.List(ctx), 1)
	})

	t.Run("corrupt document reads as empty", func(t *testing.T) {
		mem := blob.NewMemory()
		require.NoError(t, mem.Put(ctx, DocumentKey(domain.CollectionLogs), []byte(`{not json`)))
		repo := NewLogRepo(NewBlobDocumentStore(mem))
		assert.Empty(t, repo.List(ctx))
	})

	t.Run("unreadable document is never overwritten", func(t *testing.T) {
		stored := []byte(`[{"id":"a","name":"A","volume":10,"status":"Active"},` +
			`{"id":"b","name":"B","volume":20,"status":"Harvesting"}]`)
		for name, docs := range backends(t) {
			t.Run(name, func(t *testing.T) {
				require.NoError(t, docs.Save(ctx, domain.CollectionPonds, stored))
				repo := NewPondRepo(docs)

				_, err := repo.Create(ctx, domain.PondDraft{Name: "C"})
				require.ErrorIs(t, err, ErrStorageUnavailable)

				_, err = repo.Delete(ctx, "a")
				require.ErrorIs(t, err, ErrStorageUnavailable)

				data, err := docs.Load(ctx, domain.CollectionPonds)
				require.NoError(t, err)
				assert.JSONEq(t, string(stored), string(data))
			})
		}
	})
}
