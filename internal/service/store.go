package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/importer"
	"github.com/alexanderramin/spirulina/internal/repository"
)

// Store is the single access point for ponds, parameter logs and harvests.
// Views and user surfaces read snapshots from it and subscribe to changes.
type Store struct {
	ponds    repository.PondRepo
	logs     repository.LogRepo
	harvests repository.HarvestRepo
	observer UseCaseObserver

	subMu  sync.RWMutex
	subs   map[int]func(Change)
	nextID int
}

func NewStore(
	ponds repository.PondRepo,
	logs repository.LogRepo,
	harvests repository.HarvestRepo,
	observers ...UseCaseObserver,
) *Store {
	return &Store{
		ponds:    ponds,
		logs:     logs,
		harvests: harvests,
		observer: useCaseObserverOrNoop(observers),
		subs:     make(map[int]func(Change)),
	}
}

// NewDocumentStore builds a Store with the three document-backed repos.
func NewDocumentStore(docs repository.DocumentStore, opts []repository.CollectionOption, observers ...UseCaseObserver) *Store {
	return NewStore(
		repository.NewPondRepo(docs, opts...),
		repository.NewLogRepo(docs, opts...),
		repository.NewHarvestRepo(docs, opts...),
		observers...,
	)
}

func (s *Store) Ponds(ctx context.Context) []domain.Pond {
	return s.ponds.List(ctx)
}

func (s *Store) Logs(ctx context.Context) []domain.ParameterLog {
	return s.logs.List(ctx)
}

func (s *Store) Harvests(ctx context.Context) []domain.Harvest {
	return s.harvests.List(ctx)
}

func (s *Store) Pond(ctx context.Context, id string) (*domain.Pond, error) {
	return s.ponds.GetByID(ctx, id)
}

func (s *Store) AddPond(ctx context.Context, draft domain.PondDraft) (p domain.Pond, err error) {
	start := time.Now().UTC()
	defer func() {
		s.observe(ctx, "store.add_pond", start, err, map[string]any{"pond_id": p.ID})
	}()
	p, err = s.ponds.Create(ctx, draft)
	if err != nil {
		return domain.Pond{}, fmt.Errorf("adding pond: %w", err)
	}
	s.notify(Change{Collection: domain.CollectionPonds, Source: ChangeLocal})
	return p, nil
}

func (s *Store) AddLog(ctx context.Context, draft domain.LogDraft) (l domain.ParameterLog, err error) {
	start := time.Now().UTC()
	defer func() {
		s.observe(ctx, "store.add_log", start, err, map[string]any{"pond_id": draft.PondID})
	}()
	l, err = s.logs.Create(ctx, draft)
	if err != nil {
		return domain.ParameterLog{}, fmt.Errorf("adding parameter log: %w", err)
	}
	s.notify(Change{Collection: domain.CollectionLogs, Source: ChangeLocal})
	return l, nil
}

func (s *Store) AddHarvest(ctx context.Context, draft domain.HarvestDraft) (h domain.Harvest, err error) {
	start := time.Now().UTC()
	defer func() {
		s.observe(ctx, "store.add_harvest", start, err, map[string]any{"pond_id": draft.PondID})
	}()
	h, err = s.harvests.Create(ctx, draft)
	if err != nil {
		return domain.Harvest{}, fmt.Errorf("adding harvest: %w", err)
	}
	s.notify(Change{Collection: domain.CollectionHarvests, Source: ChangeLocal})
	return h, nil
}

// DeletePond removes the pond only. Logs and harvests referencing it stay in
// their collections and show up as belonging to an unknown pond.
func (s *Store) DeletePond(ctx context.Context, id string) (removed bool, err error) {
	start := time.Now().UTC()
	defer func() {
		s.observe(ctx, "store.delete_pond", start, err, map[string]any{"pond_id": id, "removed": removed})
	}()
	removed, err = s.ponds.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting pond: %w", err)
	}
	if removed {
		s.notify(Change{Collection: domain.CollectionPonds, Source: ChangeLocal})
	}
	return removed, nil
}

// Orphans counts the logs and harvests that reference pondID.
func (s *Store) Orphans(ctx context.Context, pondID string) (logs, harvests int) {
	for _, l := range s.logs.List(ctx) {
		if l.PondID == pondID {
			logs++
		}
	}
	for _, h := range s.harvests.List(ctx) {
		if h.PondID == pondID {
			harvests++
		}
	}
	return logs, harvests
}

// Import validates a bundle and merges it into the three collections.
func (s *Store) Import(ctx context.Context, bundle *importer.Bundle) (res *ImportResult, err error) {
	start := time.Now().UTC()
	defer func() {
		fields := map[string]any{}
		if res != nil {
			fields["imported"] = res.Total()
		}
		s.observe(ctx, "store.import", start, err, fields)
	}()

	if errs := importer.ValidateBundle(bundle); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	converted, err := importer.Convert(bundle)
	if err != nil {
		return nil, fmt.Errorf("converting import bundle: %w", err)
	}

	res = &ImportResult{}
	if res.Ponds, err = s.ponds.Import(ctx, converted.Ponds); err != nil {
		return nil, fmt.Errorf("importing ponds: %w", err)
	}
	if res.Logs, err = s.logs.Import(ctx, converted.Logs); err != nil {
		return nil, fmt.Errorf("importing logs: %w", err)
	}
	if res.Harvests, err = s.harvests.Import(ctx, converted.Harvests); err != nil {
		return nil, fmt.Errorf("importing harvests: %w", err)
	}
	res.SkippedPonds = len(converted.Ponds) - res.Ponds
	res.SkippedLogs = len(converted.Logs) - res.Logs
	res.SkippedHarvests = len(converted.Harvests) - res.Harvests

	if res.Ponds > 0 {
		s.notify(Change{Collection: domain.CollectionPonds, Source: ChangeLocal})
	}
	if res.Logs > 0 {
		s.notify(Change{Collection: domain.CollectionLogs, Source: ChangeLocal})
	}
	if res.Harvests > 0 {
		s.notify(Change{Collection: domain.CollectionHarvests, Source: ChangeLocal})
	}
	return res, nil
}

// ImportFile loads a bundle from disk and imports it.
func (s *Store) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	bundle, err := importer.LoadBundle(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.Import(ctx, bundle)
}

// Export snapshots every collection into a bundle the importer accepts.
func (s *Store) Export(ctx context.Context) *importer.Bundle {
	return importer.Export(s.Ponds(ctx), s.Logs(ctx), s.Harvests(ctx))
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// WatchExternal forwards changes reported by w to subscribers until ctx is
// done.
func (s *Store) WatchExternal(ctx context.Context, w ExternalWatcher) error {
	return w.Watch(ctx, func(c domain.Collection) {
		slog.Debug("external collection change", "collection", c)
		s.notify(Change{Collection: c, Source: ChangeExternal})
	})
}

func (s *Store) notify(c Change) {
	s.subMu.RLock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.RUnlock()
	for _, fn := range fns {
		fn(c)
	}
}

func (s *Store) observe(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
