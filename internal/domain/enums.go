package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type PondStatus string

const (
	PondActive      PondStatus = "Active"
	PondMaintenance PondStatus = "Maintenance"
	PondInactive    PondStatus = "Inactive"
)

// ValidPondStatuses is the canonical set of accepted pond status strings.
var ValidPondStatuses = map[PondStatus]bool{
	PondActive: true, PondMaintenance: true, PondInactive: true,
}

// legacyPondStatuses maps the status labels written by the browser app.
var legacyPondStatuses = map[string]PondStatus{
	"activo":        PondActive,
	"mantenimiento": PondMaintenance,
	"inactivo":      PondInactive,
}

// ParsePondStatus accepts canonical names case-insensitively as well as the
// legacy Spanish labels. An empty string yields PondActive.
func ParsePondStatus(s string) (PondStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PondActive, nil
	}
	for status := range ValidPondStatuses {
		if strings.EqualFold(string(status), s) {
			return status, nil
		}
	}
	if status, ok := legacyPondStatuses[strings.ToLower(s)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid pond status %q (want Active, Maintenance or Inactive)", s)
}

func (s *PondStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("pond status: %w", err)
	}
	parsed, err := ParsePondStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Collection names the three persisted record sets.
type Collection string

const (
	CollectionPonds    Collection = "ponds"
	CollectionLogs     Collection = "logs"
	CollectionHarvests Collection = "harvests"
)
