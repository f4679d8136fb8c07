// Package importer reads backups exported from the browser version of the
// app and converts them into domain records.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Bundle is the top-level JSON structure of a backup.
type Bundle struct {
	Ponds    []PondImport    `json:"ponds"`
	Logs     []LogImport     `json:"logs"`
	Harvests []HarvestImport `json:"harvests"`
}

type PondImport struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Volume    float64 `json:"volume"`
	Status    string  `json:"status"`
	Strain    string  `json:"strain,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

type LogImport struct {
	ID             string   `json:"id"`
	PondID         string   `json:"pondId"`
	PH             float64  `json:"ph"`
	Temperature    float64  `json:"temperature"`
	OpticalDensity float64  `json:"opticalDensity"`
	Salinity       *float64 `json:"salinity,omitempty"`
	AddedMedium    *float64 `json:"addedMedium,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Timestamp      string   `json:"timestamp"`
}

type HarvestImport struct {
	ID        string   `json:"id"`
	PondID    string   `json:"pondId"`
	WetWeight float64  `json:"wetWeight"`
	DryWeight *float64 `json:"dryWeight,omitempty"`
	BatchID   *string  `json:"batchId,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// LoadBundle reads and parses a bundle file.
func LoadBundle(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	defer f.Close()
	return ParseBundle(f)
}

// ParseBundle decodes a bundle. Unknown fields are ignored.
func ParseBundle(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("parsing import JSON: %w", err)
	}
	return &b, nil
}
