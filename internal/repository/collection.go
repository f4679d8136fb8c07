package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/google/uuid"
)

// Record is anything stored in a Collection.
type Record interface {
	RecordID() string
}

// Collection is an ordered, durable sequence of records persisted as one
// document. Every mutation rewrites the whole document. Mutations on the same
// Collection are serialized.
type Collection[T Record] struct {
	mu     sync.Mutex
	name   domain.Collection
	docs   DocumentStore
	newID  func() string
	now    func() time.Time
	logger *slog.Logger
}

// CollectionOption configures a Collection.
type CollectionOption func(*collectionOptions)

type collectionOptions struct {
	newID  func() string
	now    func() time.Time
	logger *slog.Logger
}

// WithIDGenerator overrides UUIDv4 id generation.
func WithIDGenerator(fn func() string) CollectionOption {
	return func(o *collectionOptions) { o.newID = fn }
}

// WithClock overrides the creation timestamp source.
func WithClock(fn func() time.Time) CollectionOption {
	return func(o *collectionOptions) { o.now = fn }
}

func WithLogger(l *slog.Logger) CollectionOption {
	return func(o *collectionOptions) { o.logger = l }
}

func NewCollection[T Record](name domain.Collection, docs DocumentStore, opts ...CollectionOption) *Collection[T] {
	o := collectionOptions{
		newID:  func() string { return uuid.New().String() },
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection[T]{name: name, docs: docs, newID: o.newID, now: o.now, logger: o.logger}
}

func (c *Collection[T]) Name() domain.Collection { return c.name }

// List returns all records in insertion order. Read failures are logged and
// yield an empty list.
func (c *Collection[T]) List(ctx context.Context) []T {
	data, err := c.docs.Load(ctx, c.name)
	if err != nil {
		c.logger.Warn("collection read failed", "collection", c.name, "error", err)
		return []T{}
	}
	return c.decode(data)
}

// Append assigns a fresh id and creation time, builds the record and persists
// it at the end of the collection.
func (c *Collection[T]) Append(ctx context.Context, build func(id string, createdAt time.Time) T) (T, error) {
	var created T
	err := c.mutate(ctx, func(records []T) ([]T, error) {
		created = build(c.uniqueID(records), c.now())
		return append(records, created), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return created, nil
}

// Remove deletes the record with id. It reports whether a record was removed;
// removing an absent id is a no-op.
func (c *Collection[T]) Remove(ctx context.Context, id string) (bool, error) {
	removed := false
	err := c.mutate(ctx, func(records []T) ([]T, error) {
		kept := records[:0:0]
		for _, r := range records {
			if r.RecordID() == id {
				removed = true
				continue
			}
			kept = append(kept, r)
		}
		if !removed {
			return nil, errNoChange
		}
		return kept, nil
	})
	if errors.Is(err, errNoChange) {
		return false, nil
	}
	return removed, err
}

// Merge appends records whose ids are not yet present, keeping their ids and
// timestamps. It returns how many were added.
func (c *Collection[T]) Merge(ctx context.Context, incoming []T) (int, error) {
	added := 0
	err := c.mutate(ctx, func(records []T) ([]T, error) {
		seen := make(map[string]bool, len(records)+len(incoming))
		for _, r := range records {
			seen[r.RecordID()] = true
		}
		for _, r := range incoming {
			id := r.RecordID()
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			records = append(records, r)
			added++
		}
		if added == 0 {
			return nil, errNoChange
		}
		return records, nil
	})
	if errors.Is(err, errNoChange) {
		return 0, nil
	}
	return added, err
}

var errNoChange = errors.New("no change")

func (c *Collection[T]) uniqueID(records []T) string {
	for {
		id := c.newID()
		taken := false
		for _, r := range records {
			if r.RecordID() == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

func (c *Collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	apply := func(current []byte) ([]byte, error) {
		records, err := c.decodeStrict(current)
		if err != nil {
			return nil, err
		}
		next, err := fn(records)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", c.name, err)
		}
		return data, nil
	}

	if m, ok := c.docs.(Mutator); ok {
		err := m.Mutate(ctx, c.name, apply)
		if err != nil && !errors.Is(err, errNoChange) {
			return fmt.Errorf("%s: %w: %w", c.name, ErrStorageUnavailable, err)
		}
		return err
	}

	current, err := c.docs.Load(ctx, c.name)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", c.name, ErrStorageUnavailable, err)
	}
	data, err := apply(current)
	if errors.Is(err, errUnreadable) {
		return fmt.Errorf("%s: %w: %w", c.name, ErrStorageUnavailable, err)
	}
	if err != nil {
		return err
	}
	if err := c.docs.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("%s: %w: %w", c.name, ErrStorageUnavailable, err)
	}
	return nil
}

var errUnreadable = errors.New("document unreadable")

// decodeStrict parses a stored document for a mutation. A document that does
// not parse is an error so it is never overwritten.
func (c *Collection[T]) decodeStrict(data []byte) ([]T, error) {
	records := []T{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", errUnreadable, err)
	}
	return records, nil
}

// decode parses a stored document for reading. A corrupt document is logged
// and treated as empty.
func (c *Collection[T]) decode(data []byte) []T {
	records := []T{}
	if len(data) == 0 {
		return records
	}
	if err := json.Unmarshal(data, &records); err != nil {
		c.logger.Warn("collection document unreadable", "collection", c.name, "error", err)
		return []T{}
	}
	return records
}
