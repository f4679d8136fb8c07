package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
)

// DocumentPondRepo implements PondRepo on a ponds Collection.
type DocumentPondRepo struct {
	col *Collection[domain.Pond]
}

func NewPondRepo(docs DocumentStore, opts ...CollectionOption) *DocumentPondRepo {
	return &DocumentPondRepo{col: NewCollection[domain.Pond](domain.CollectionPonds, docs, opts...)}
}

func (r *DocumentPondRepo) List(ctx context.Context) []domain.Pond {
	return r.col.List(ctx)
}

func (r *DocumentPondRepo) GetByID(ctx context.Context, id string) (*domain.Pond, error) {
	for _, p := range r.col.List(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("pond %s: %w", id, ErrNotFound)
}

func (r *DocumentPondRepo) Create(ctx context.Context, draft domain.PondDraft) (domain.Pond, error) {
	if err := draft.Normalize(); err != nil {
		return domain.Pond{}, err
	}
	return r.col.Append(ctx, func(id string, at time.Time) domain.Pond {
		return domain.Pond{
			ID:        id,
			Name:      draft.Name,
			Volume:    draft.Volume,
			Status:    draft.Status,
			Strain:    draft.Strain,
			CreatedAt: at,
		}
	})
}

// Delete removes only the pond. Its logs and harvests are left in place.
func (r *DocumentPondRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.col.Remove(ctx, id)
}

func (r *DocumentPondRepo) Import(ctx context.Context, ponds []domain.Pond) (int, error) {
	return r.col.Merge(ctx, ponds)
}
