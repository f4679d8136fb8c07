package domain

import (
	"fmt"
	"strings"
	"time"
)

type Harvest struct {
	ID        string            `json:"id"`
	PondID    string            `json:"pondId"`
	WetWeight float64           `json:"wetWeight"` // grams
	DryWeight Optional[float64] `json:"dryWeight,omitzero"`
	BatchID   Optional[string]  `json:"batchId,omitzero"`
	Notes     string            `json:"notes"`
	Timestamp time.Time         `json:"timestamp"`
}

func (h Harvest) RecordID() string { return h.ID }

type HarvestDraft struct {
	PondID    string
	WetWeight float64
	DryWeight Optional[float64]
	BatchID   Optional[string]
	Notes     string
}

// Normalize validates the draft. Dry weight is not checked against wet weight.
func (d *HarvestDraft) Normalize() error {
	d.PondID = strings.TrimSpace(d.PondID)
	if d.PondID == "" {
		return fmt.Errorf("harvest pond id is required")
	}
	if d.WetWeight < 0 {
		return fmt.Errorf("wet weight must be >= 0, got %g", d.WetWeight)
	}
	if dry, ok := d.DryWeight.Get(); ok && dry < 0 {
		return fmt.Errorf("dry weight must be >= 0, got %g", dry)
	}
	if batch, ok := d.BatchID.Get(); ok {
		batch = strings.TrimSpace(batch)
		if batch == "" {
			d.BatchID = None[string]()
		} else {
			d.BatchID = Some(batch)
		}
	}
	d.Notes = strings.TrimSpace(d.Notes)
	return nil
}
