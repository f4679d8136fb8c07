package domain

import (
	"fmt"
	"strings"
	"time"
)

// ParameterLog is one water-quality reading for a pond. Logs are append-only.
type ParameterLog struct {
	ID             string    `json:"id"`
	PondID         string    `json:"pondId"`
	PH             float64   `json:"ph"`
	Temperature    float64   `json:"temperature"` // °C
	OpticalDensity float64   `json:"opticalDensity"`
	Salinity       float64   `json:"salinity"`
	AddedMedium    float64   `json:"addedMedium"` // liters
	Notes          string    `json:"notes"`
	Timestamp      time.Time `json:"timestamp"`
}

func (l ParameterLog) RecordID() string { return l.ID }

type LogDraft struct {
	PondID         string
	PH             float64
	Temperature    float64
	OpticalDensity float64
	Salinity       float64
	AddedMedium    float64
	Notes          string
}

func (d *LogDraft) Normalize() error {
	d.PondID = strings.TrimSpace(d.PondID)
	if d.PondID == "" {
		return fmt.Errorf("log pond id is required")
	}
	if d.OpticalDensity < 0 {
		return fmt.Errorf("optical density must be >= 0, got %g", d.OpticalDensity)
	}
	if d.Salinity < 0 {
		return fmt.Errorf("salinity must be >= 0, got %g", d.Salinity)
	}
	if d.AddedMedium < 0 {
		return fmt.Errorf("added medium must be >= 0, got %g", d.AddedMedium)
	}
	d.Notes = strings.TrimSpace(d.Notes)
	return nil
}
