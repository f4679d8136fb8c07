package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultStrain is assigned to ponds created without a strain.
const DefaultStrain = "Platensis"

type Pond struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Volume    float64    `json:"volume"` // liters
	Status    PondStatus `json:"status"`
	Strain    string     `json:"strain"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (p Pond) RecordID() string { return p.ID }

// PondDraft is a pond before the store assigns its identity.
type PondDraft struct {
	Name   string
	Volume float64
	Status PondStatus
	Strain string
}

// Normalize applies defaults and validates the draft.
func (d *PondDraft) Normalize() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return fmt.Errorf("pond name is required")
	}
	if d.Volume < 0 {
		return fmt.Errorf("pond volume must be >= 0, got %g", d.Volume)
	}
	if d.Status == "" {
		d.Status = PondActive
	}
	if !ValidPondStatuses[d.Status] {
		return fmt.Errorf("invalid pond status %q", d.Status)
	}
	d.Strain = Coalesce(strings.TrimSpace(d.Strain), DefaultStrain)
	return nil
}

// DisplayID returns the first 8 characters of the pond ID.
func (p *Pond) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
