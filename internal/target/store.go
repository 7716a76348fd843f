// Package target persists the single countdown target timestamp.
package target

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sandeepkv93/tminus/internal/logging"
	"github.com/sandeepkv93/tminus/internal/storage"
	"github.com/sandeepkv93/tminus/internal/timeutil"
)

// Key is the slot name the target is stored under.
const Key = "targetDate"

// ErrInvalidInput is returned by Set for values that are not a finite instant.
var ErrInvalidInput = errors.New("target: invalid date provided")

// Timestamp is an instant in epoch milliseconds.
type Timestamp int64

func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t))
}

func FromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// DefaultTarget is three calendar days after now, at 23:59:59.999 in now's zone.
func DefaultTarget(now time.Time) Timestamp {
	y, m, d := now.Date()
	return FromTime(time.Date(y, m, d+3, 23, 59, 59, 999_000_000, now.Location()))
}

type Store struct {
	kv    storage.KV
	clock timeutil.Clock
}

func New(kv storage.KV, clock timeutil.Clock) *Store {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Store{kv: kv, clock: clock}
}

// Get returns the persisted target, or the computed default when nothing
// usable is stored. The default is never written back.
func (s *Store) Get(ctx context.Context) Timestamp {
	raw, ok, err := s.kv.Read(ctx, Key)
	if err != nil {
		logging.Warnf("read %s: %v", Key, err)
		return DefaultTarget(s.clock.Now())
	}
	if !ok {
		return DefaultTarget(s.clock.Now())
	}
	ts, err := parseStored(raw)
	if err != nil {
		logging.Debugf("corrupt persisted %s %q: %v", Key, raw, err)
		return DefaultTarget(s.clock.Now())
	}
	return ts
}

// Set validates and persists ms. Fractional milliseconds are truncated.
func (s *Store) Set(ctx context.Context, ms float64) error {
	ts, err := Validate(ms)
	if err != nil {
		return err
	}
	if err := s.kv.Write(ctx, Key, strconv.FormatInt(int64(ts), 10)); err != nil {
		return fmt.Errorf("persist %s: %w", Key, err)
	}
	return nil
}

// Stored reports whether the slot holds a value Get would use rather than
// the default.
func (s *Store) Stored(ctx context.Context) (bool, error) {
	raw, ok, err := s.kv.Read(ctx, Key)
	if err != nil || !ok {
		return false, err
	}
	_, err = parseStored(raw)
	return err == nil, nil
}

// Raw returns the persisted string as-is.
func (s *Store) Raw(ctx context.Context) (string, bool, error) {
	return s.kv.Read(ctx, Key)
}

// Validate converts ms into a Timestamp, rejecting NaN, infinities and
// values outside the int64 millisecond range.
func Validate(ms float64) (Timestamp, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0, ErrInvalidInput
	}
	if ms < math.MinInt64 || ms >= math.MaxInt64 {
		return 0, ErrInvalidInput
	}
	return Timestamp(int64(ms)), nil
}

func parseStored(raw string) (Timestamp, error) {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Timestamp(v), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return Validate(f)
}
