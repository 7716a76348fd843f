// Package dateinput turns user-typed date strings into target timestamps.
package dateinput

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/sandeepkv93/tminus/internal/timeutil"
)

var ErrEmpty = errors.New("date is empty")

const layoutShort = "1/2"

// layouts dateparse does not cover, tried after a leading weekday is dropped
var fallbackLayouts = []string{
	"Jan 2 2006 15:04:05",
	"Jan 2 2006 15:04",
	"Jan 2 2006",
	"Jan 2, 2006 15:04:05",
	"January 2, 2006 15:04:05",
	"January 2, 2006 3:04 PM",
	"2006-01-02T15:04",
	"2006-1-2",
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Parse returns epoch milliseconds for raw, or ok=false when raw is empty or
// not understood.
func Parse(raw string, now time.Time) (float64, bool) {
	t, err := ParseTime(raw, now)
	if err != nil {
		return 0, false
	}
	return float64(t.UnixMilli()), true
}

// ParseTime accepts absolute dates, "M/D" (rolled into next year when already
// past), relative windows such as "+1w2d" or "in 3h", and raw epoch
// milliseconds.
func ParseTime(raw string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	loc := now.Location()

	if rel, ok := relative(s); ok {
		d, _, err := timeutil.ParseWindow(rel)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse relative date %q: %w", raw, err)
		}
		return now.Add(d), nil
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && len(s) > 8 {
		return time.UnixMilli(ms).In(loc), nil
	}

	if t, err := time.ParseInLocation(layoutShort, s, loc); err == nil {
		t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		if t.Before(now) {
			t = t.AddDate(1, 0, 0)
		}
		return t, nil
	}

	if t, err := dateparse.ParseIn(s, loc); err == nil {
		return t, nil
	}
	bare := stripWeekday(s)
	if bare != s {
		if t, err := dateparse.ParseIn(bare, loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, bare, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// stripWeekday drops a leading "Wed" or "Wednesday," so dates rendered with
// a weekday read back.
func stripWeekday(s string) string {
	head, rest, ok := strings.Cut(s, " ")
	if !ok {
		return s
	}
	head = strings.ToLower(strings.TrimSuffix(head, ","))
	for _, day := range weekdays {
		if head == day || (len(head) == 3 && strings.HasPrefix(day, head)) {
			return strings.TrimSpace(rest)
		}
	}
	return s
}

func relative(s string) (string, bool) {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "+"):
		return lower[1:], true
	case strings.HasPrefix(lower, "in "):
		return lower[3:], true
	default:
		return "", false
	}
}
