// Package timeseries derives filtered, ordered and aggregated views over
// parameter logs and harvests. Nothing is cached: every view is recomputed
// from the slice it is given.
package timeseries

import (
	"slices"

	"github.com/alexanderramin/spirulina/internal/domain"
)

// LogsForPond returns the pond's logs oldest first. Logs with equal
// timestamps keep their stored order.
func LogsForPond(logs []domain.ParameterLog, pondID string) []domain.ParameterLog {
	out := make([]domain.ParameterLog, 0, len(logs))
	for _, l := range logs {
		if l.PondID == pondID {
			out = append(out, l)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.ParameterLog) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

// RecentLogs is the exact reverse of LogsForPond.
func RecentLogs(logs []domain.ParameterLog, pondID string) []domain.ParameterLog {
	out := LogsForPond(logs, pondID)
	slices.Reverse(out)
	return out
}

// RecentHistory returns at most n of the pond's logs, newest first.
func RecentHistory(logs []domain.ParameterLog, pondID string, n int) []domain.ParameterLog {
	out := RecentLogs(logs, pondID)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// HarvestsDescending returns all harvests newest first. Ties keep insertion
// order.
func HarvestsDescending(harvests []domain.Harvest) []domain.Harvest {
	out := slices.Clone(harvests)
	slices.SortStableFunc(out, func(a, b domain.Harvest) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// HarvestsForPond returns one pond's harvests newest first.
func HarvestsForPond(harvests []domain.Harvest, pondID string) []domain.Harvest {
	var mine []domain.Harvest
	for _, h := range harvests {
		if h.PondID == pondID {
			mine = append(mine, h)
		}
	}
	return HarvestsDescending(mine)
}

func TotalVolume(ponds []domain.Pond) float64 {
	var total float64
	for _, p := range ponds {
		total += p.Volume
	}
	return total
}

func ActiveCount(ponds []domain.Pond) int {
	n := 0
	for _, p := range ponds {
		if p.Status == domain.PondActive {
			n++
		}
	}
	return n
}

// TotalWetWeight sums wet weight in grams.
func TotalWetWeight(harvests []domain.Harvest) float64 {
	var total float64
	for _, h := range harvests {
		total += h.WetWeight
	}
	return total
}

// TotalDryWeight sums the dry weights that were recorded and reports how
// many harvests carried one.
func TotalDryWeight(harvests []domain.Harvest) (float64, int) {
	var total float64
	n := 0
	for _, h := range harvests {
		if dry, ok := h.DryWeight.Get(); ok {
			total += dry
			n++
		}
	}
	return total, n
}
