// Package countdown turns a target timestamp into a live, self-completing
// countdown.
package countdown

import "github.com/sandeepkv93/tminus/internal/target"

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Parts is the remaining time split into units. Days through Seconds never go
// below zero; DistanceMs keeps the signed difference.
type Parts struct {
	Days       int64 `json:"days" yaml:"days"`
	Hours      int64 `json:"hours" yaml:"hours"`
	Minutes    int64 `json:"minutes" yaml:"minutes"`
	Seconds    int64 `json:"seconds" yaml:"seconds"`
	DistanceMs int64 `json:"distanceMs" yaml:"distanceMs"`
}

// Passed reports whether the target lies in the past.
func (p Parts) Passed() bool {
	return p.DistanceMs < 0
}

// ComputeParts breaks target-now into days, hours, minutes and seconds by
// chained remainders, so 90,061,000 ms is 1d 1h 1m 1s regardless of calendar.
func ComputeParts(tgt, now target.Timestamp) Parts {
	distance := int64(tgt) - int64(now)
	return Parts{
		Days:       clamp(floorDiv(distance, msPerDay)),
		Hours:      clamp(floorDiv(distance%msPerDay, msPerHour)),
		Minutes:    clamp(floorDiv(distance%msPerHour, msPerMinute)),
		Seconds:    clamp(floorDiv(distance%msPerMinute, msPerSecond)),
		DistanceMs: distance,
	}
}

// floorDiv rounds toward negative infinity. The remainders above keep the sign
// of distance, so every unit of a negative distance floors below zero and is
// clamped.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
