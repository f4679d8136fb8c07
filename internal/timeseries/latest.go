package timeseries

import (
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
)

const (
	// PHHigh and PHLow bound the healthy culture range.
	PHHigh = 10.5
	PHLow  = 9.0

	// HistoryWindow is how many recent logs the pond history shows.
	HistoryWindow = 5
)

// Reading is the most recent measurement of a pond. Every field is absent
// when the pond has no logs.
type Reading struct {
	PH             domain.Optional[float64]   `json:"ph,omitzero"`
	Temperature    domain.Optional[float64]   `json:"temperature,omitzero"`
	OpticalDensity domain.Optional[float64]   `json:"opticalDensity,omitzero"`
	Salinity       domain.Optional[float64]   `json:"salinity,omitzero"`
	At             domain.Optional[time.Time] `json:"at,omitzero"`
}

// Latest returns the pond's most recent reading.
func Latest(logs []domain.ParameterLog, pondID string) Reading {
	recent := RecentLogs(logs, pondID)
	if len(recent) == 0 {
		return Reading{}
	}
	l := recent[0]
	return Reading{
		PH:             domain.Some(l.PH),
		Temperature:    domain.Some(l.Temperature),
		OpticalDensity: domain.Some(l.OpticalDensity),
		Salinity:       domain.Some(l.Salinity),
		At:             domain.Some(l.Timestamp),
	}
}

// PHOutOfRange reports whether the reading has a pH outside [PHLow, PHHigh].
// An absent pH is never out of range.
func (r Reading) PHOutOfRange() bool {
	ph, ok := r.PH.Get()
	return ok && (ph > PHHigh || ph < PHLow)
}
