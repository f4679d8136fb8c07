package service

import (
	"context"

	"github.com/alexanderramin/spirulina/internal/domain"
)

// ChangeSource tells subscribers where a change came from.
type ChangeSource string

const (
	ChangeLocal    ChangeSource = "local"
	ChangeExternal ChangeSource = "external"
)

// Change is delivered to subscribers after a collection was modified.
type Change struct {
	Collection domain.Collection
	Source     ChangeSource
}

// ExternalWatcher reports collections modified outside this process.
type ExternalWatcher interface {
	Watch(ctx context.Context, onChange func(domain.Collection)) error
}

// ImportResult counts records merged by an import. Records whose ids were
// already present are counted as skipped.
type ImportResult struct {
	Ponds           int
	Logs            int
	Harvests        int
	SkippedPonds    int
	SkippedLogs     int
	SkippedHarvests int
}

func (r ImportResult) Total() int { return r.Ponds + r.Logs + r.Harvests }
