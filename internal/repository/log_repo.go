package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
)

type DocumentLogRepo struct {
	col *Collection[domain.ParameterLog]
}

func NewLogRepo(docs DocumentStore, opts ...CollectionOption) *DocumentLogRepo {
	return &DocumentLogRepo{col: NewCollection[domain.ParameterLog](domain.CollectionLogs, docs, opts...)}
}

func (r *DocumentLogRepo) List(ctx context.Context) []domain.ParameterLog {
	return r.col.List(ctx)
}

func (r *DocumentLogRepo) Create(ctx context.Context, draft domain.LogDraft) (domain.ParameterLog, error) {
	if err := draft.Normalize(); err != nil {
		return domain.ParameterLog{}, err
	}
	return r.col.Append(ctx, func(id string, at time.Time) domain.ParameterLog {
		return domain.ParameterLog{
			ID:             id,
			PondID:         draft.PondID,
			PH:             draft.PH,
			Temperature:    draft.Temperature,
			OpticalDensity: draft.OpticalDensity,
			Salinity:       draft.Salinity,
			AddedMedium:    draft.AddedMedium,
			Notes:          draft.Notes,
			Timestamp:      at,
		}
	})
}

func (r *DocumentLogRepo) Import(ctx context.Context, logs []domain.ParameterLog) (int, error) {
	return r.col.Merge(ctx, logs)
}
