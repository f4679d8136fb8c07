package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
)

type DocumentHarvestRepo struct {
	col *Collection[domain.Harvest]
}

func NewHarvestRepo(docs DocumentStore, opts ...CollectionOption) *DocumentHarvestRepo {
	return &DocumentHarvestRepo{col: NewCollection[domain.Harvest](domain.CollectionHarvests, docs, opts...)}
}

func (r *DocumentHarvestRepo) List(ctx context.Context) []domain.Harvest {
	return r.col.List(ctx)
}

func (r *DocumentHarvestRepo) Create(ctx context.Context, draft domain.HarvestDraft) (domain.Harvest, error) {
	if err := draft.Normalize(); err != nil {
		return domain.Harvest{}, err
	}
	return r.col.Append(ctx, func(id string, at time.Time) domain.Harvest {
		return domain.Harvest{
			ID:        id,
			PondID:    draft.PondID,
			WetWeight: draft.WetWeight,
			DryWeight: draft.DryWeight,
			BatchID:   draft.BatchID,
			Notes:     draft.Notes,
			Timestamp: at,
		}
	})
}

func (r *DocumentHarvestRepo) Import(ctx context.Context, harvests []domain.Harvest) (int, error) {
	return r.col.Merge(ctx, harvests)
}

var (
	_ PondRepo    = (*DocumentPondRepo)(nil)
	_ LogRepo     = (*DocumentLogRepo)(nil)
	_ HarvestRepo = (*DocumentHarvestRepo)(nil)
)
