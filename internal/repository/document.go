package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/spirulina/internal/blob"
	"github.com/alexanderramin/spirulina/internal/db"
	"github.com/alexanderramin/spirulina/internal/domain"
)

// DocumentStore reads and overwrites one whole JSON document per collection.
// Load returns nil data and no error when the document has never been saved.
type DocumentStore interface {
	Load(ctx context.Context, name domain.Collection) ([]byte, error)
	Save(ctx context.Context, name domain.Collection, data []byte) error
}

// Mutator is implemented by document stores that can run a read-modify-write
// cycle atomically on their own.
type Mutator interface {
	Mutate(ctx context.Context, name domain.Collection, fn func(current []byte) ([]byte, error)) error
}

// SQLDocumentStore keeps documents in the collections table.
type SQLDocumentStore struct {
	db      *sql.DB
	dialect db.Dialect
	uow     db.UnitOfWork
}

func NewSQLDocumentStore(database *sql.DB, dialect db.Dialect) *SQLDocumentStore {
	return &SQLDocumentStore{db: database, dialect: dialect, uow: db.NewSQLUnitOfWork(database)}
}

// WithUnitOfWork replaces the transaction runner used by Mutate.
func (s *SQLDocumentStore) WithUnitOfWork(uow db.UnitOfWork) *SQLDocumentStore {
	s.uow = uow
	return s
}

func (s *SQLDocumentStore) Load(ctx context.Context, name domain.Collection) ([]byte, error) {
	return s.load(ctx, s.db, name, false)
}

func (s *SQLDocumentStore) Save(ctx context.Context, name domain.Collection, data []byte) error {
	return s.save(ctx, s.db, name, data)
}

func (s *SQLDocumentStore) Mutate(ctx context.Context, name domain.Collection, fn func(current []byte) ([]byte, error)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := s.load(ctx, tx, name, true)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return s.save(ctx, tx, name, next)
	})
}

func (s *SQLDocumentStore) load(ctx context.Context, q db.DBTX, name domain.Collection, forUpdate bool) ([]byte, error) {
	query := `SELECT body FROM collections WHERE name = ?`
	if forUpdate && s.dialect == db.DialectPostgres {
		query += ` FOR UPDATE`
	}
	var body string
	err := q.QueryRowContext(ctx, db.Rebind(s.dialect, query), string(name)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return []byte(body), nil
}

func (s *SQLDocumentStore) save(ctx context.Context, q db.DBTX, name domain.Collection, data []byte) error {
	query := `INSERT INTO collections (name, body, revision, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			revision = collections.revision + 1,
			updated_at = excluded.updated_at`
	_, err := q.ExecContext(ctx, db.Rebind(s.dialect, query),
		string(name), string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

// BlobDocumentStore keeps each collection as "<name>.json" in a blob store.
type BlobDocumentStore struct {
	store blob.Store
}

func NewBlobDocumentStore(store blob.Store) *BlobDocumentStore {
	return &BlobDocumentStore{store: store}
}

// DocumentKey is the blob key that holds a collection.
func DocumentKey(name domain.Collection) string { return string(name) + ".json" }

func (s *BlobDocumentStore) Load(ctx context.Context, name domain.Collection) ([]byte, error) {
	data, err := s.store.Get(ctx, DocumentKey(name))
	if errors.Is(err, blob.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return data, nil
}

func (s *BlobDocumentStore) Save(ctx context.Context, name domain.Collection, data []byte) error {
	if err := s.store.Put(ctx, DocumentKey(name), data); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

// Watch forwards external changes to collection documents when the
// underlying blob store supports watching. It returns immediately otherwise.
func (s *BlobDocumentStore) Watch(ctx context.Context, onChange func(domain.Collection)) error {
	w, ok := s.store.(blob.Watcher)
	if !ok {
		return nil
	}
	return w.Watch(ctx, func(key string) {
		for _, name := range []domain.Collection{domain.CollectionPonds, domain.CollectionLogs, domain.CollectionHarvests} {
			if key == DocumentKey(name) {
				onChange(name)
				return
			}
		}
	})
}

var (
	_ DocumentStore = (*SQLDocumentStore)(nil)
	_ Mutator       = (*SQLDocumentStore)(nil)
	_ DocumentStore = (*BlobDocumentStore)(nil)
)
