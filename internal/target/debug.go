package target

import (
	"context"
	"encoding/json"
	"time"
)

const debugTimeLayout = "1/2/2006, 3:04:05 PM"

// DebugInfo describes the raw persisted slot for the debug overlay.
type DebugInfo struct {
	TargetDate string `json:"targetDate" yaml:"targetDate"`
}

// Debug reads the raw slot. Unset and unreadable slots both report "Not Set".
func (s *Store) Debug(ctx context.Context, loc *time.Location) DebugInfo {
	raw, ok, err := s.Raw(ctx)
	if err != nil || !ok || raw == "" {
		return DebugInfo{TargetDate: "Not Set"}
	}
	return DebugInfo{TargetDate: raw + " (" + humanReadable(raw, loc) + ")"}
}

// String renders the overlay line, e.g. `LocalStorage: {"targetDate": "Not Set"}`.
func (d DebugInfo) String() string {
	body, _ := json.MarshalIndent(d, "", "  ")
	return "LocalStorage: " + string(body)
}

func humanReadable(raw string, loc *time.Location) string {
	ts, err := parseStored(raw)
	if err != nil {
		return "Invalid Date"
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.Time().In(loc).Format(debugTimeLayout)
}
