package testutil

import (
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/google/uuid"
)

// Pond options
type PondOption func(*domain.Pond)

func WithVolume(liters float64) PondOption {
	return func(p *domain.Pond) { p.Volume = liters }
}

func WithStatus(s domain.PondStatus) PondOption {
	return func(p *domain.Pond) { p.Status = s }
}

func WithStrain(s string) PondOption {
	return func(p *domain.Pond) { p.Strain = s }
}

func WithPondCreatedAt(at time.Time) PondOption {
	return func(p *domain.Pond) { p.CreatedAt = at }
}

func NewTestPond(name string, opts ...PondOption) domain.Pond {
	p := domain.Pond{
		ID:        uuid.New().String(),
		Name:      name,
		Volume:    100,
		Status:    domain.PondActive,
		Strain:    domain.DefaultStrain,
		CreatedAt: time.Now().UTC(),
	}
	for _, o := range opts {
		o(&p)
	}
	return p
}

// Log options
type LogOption func(*domain.ParameterLog)

func WithPH(ph float64) LogOption {
	return func(l *domain.ParameterLog) { l.PH = ph }
}

func WithTemperature(c float64) LogOption {
	return func(l *domain.ParameterLog) { l.Temperature = c }
}

func WithOpticalDensity(od float64) LogOption {
	return func(l *domain.ParameterLog) { l.OpticalDensity = od }
}

func WithSalinity(s float64) LogOption {
	return func(l *domain.ParameterLog) { l.Salinity = s }
}

func WithAddedMedium(liters float64) LogOption {
	return func(l *domain.ParameterLog) { l.AddedMedium = liters }
}

func WithLogTime(at time.Time) LogOption {
	return func(l *domain.ParameterLog) { l.Timestamp = at }
}

func NewTestLog(pondID string, opts ...LogOption) domain.ParameterLog {
	l := domain.ParameterLog{
		ID:             uuid.New().String(),
		PondID:         pondID,
		PH:             10,
		Temperature:    30,
		OpticalDensity: 0.5,
		Timestamp:      time.Now().UTC(),
	}
	for _, o := range opts {
		o(&l)
	}
	return l
}

// Harvest options
type HarvestOption func(*domain.Harvest)

func WithDryWeight(g float64) HarvestOption {
	return func(h *domain.Harvest) { h.DryWeight = domain.Some(g) }
}

func WithBatchID(id string) HarvestOption {
	return func(h *domain.Harvest) { h.BatchID = domain.Some(id) }
}

func WithHarvestTime(at time.Time) HarvestOption {
	return func(h *domain.Harvest) { h.Timestamp = at }
}

func NewTestHarvest(pondID string, wetWeight float64, opts ...HarvestOption) domain.Harvest {
	h := domain.Harvest{
		ID:        uuid.New().String(),
		PondID:    pondID,
		WetWeight: wetWeight,
		Timestamp: time.Now().UTC(),
	}
	for _, o := range opts {
		o(&h)
	}
	return h
}

// Clock returns a deterministic clock that advances by step on every call.
func Clock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(step)
		return t
	}
}
