package repository

import (
	"context"

	"github.com/alexanderramin/spirulina/internal/domain"
)

type PondRepo interface {
	List(ctx context.Context) []domain.Pond
	GetByID(ctx context.Context, id string) (*domain.Pond, error)
	Create(ctx context.Context, draft domain.PondDraft) (domain.Pond, error)
	Delete(ctx context.Context, id string) (bool, error)
	Import(ctx context.Context, ponds []domain.Pond) (int, error)
}

// LogRepo has no update or delete: parameter logs are append-only.
type LogRepo interface {
	List(ctx context.Context) []domain.ParameterLog
	Create(ctx context.Context, draft domain.LogDraft) (domain.ParameterLog, error)
	Import(ctx context.Context, logs []domain.ParameterLog) (int, error)
}

type HarvestRepo interface {
	List(ctx context.Context) []domain.Harvest
	Create(ctx context.Context, draft domain.HarvestDraft) (domain.Harvest, error)
	Import(ctx context.Context, harvests []domain.Harvest) (int, error)
}
