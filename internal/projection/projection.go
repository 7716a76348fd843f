// Package projection maps countdown frames onto display slots.
package projection

import (
	"fmt"
	"strconv"

	"github.com/sandeepkv93/tminus/internal/countdown"
)

// Instructions is what a view applies for one frame.
type Instructions struct {
	Days             string
	Hours            string
	Minutes          string
	Seconds          string
	ShowTime         bool
	ShowEventMessage bool
}

// Project formats parts for display. Days are plain; the smaller units are
// zero-padded to two digits.
func Project(parts countdown.Parts, completed bool) Instructions {
	return Instructions{
		Days:             strconv.FormatInt(parts.Days, 10),
		Hours:            pad2(parts.Hours),
		Minutes:          pad2(parts.Minutes),
		Seconds:          pad2(parts.Seconds),
		ShowTime:         !completed,
		ShowEventMessage: completed,
	}
}

func pad2(v int64) string {
	return fmt.Sprintf("%02d", v)
}

// Slots holds the resolved display handles. Any nil slot is skipped.
type Slots struct {
	Days    func(string)
	Hours   func(string)
	Minutes func(string)
	Seconds func(string)

	TimeVisible    func(bool)
	MessageVisible func(bool)
}

// Missing names the slots that were not bound.
func (s Slots) Missing() []string {
	var out []string
	check := func(name string, bound bool) {
		if !bound {
			out = append(out, name)
		}
	}
	check("days", s.Days != nil)
	check("hours", s.Hours != nil)
	check("minutes", s.Minutes != nil)
	check("seconds", s.Seconds != nil)
	check("time", s.TimeVisible != nil)
	check("message", s.MessageVisible != nil)
	return out
}

func (s Slots) Apply(in Instructions) {
	setText(s.Days, in.Days)
	setText(s.Hours, in.Hours)
	setText(s.Minutes, in.Minutes)
	setText(s.Seconds, in.Seconds)
	if s.TimeVisible != nil {
		s.TimeVisible(in.ShowTime)
	}
	if s.MessageVisible != nil {
		s.MessageVisible(in.ShowEventMessage)
	}
}

// Render lets Slots serve directly as a countdown.View.
func (s Slots) Render(parts countdown.Parts, completed bool) {
	s.Apply(Project(parts, completed))
}

func setText(fn func(string), v string) {
	if fn != nil {
		fn(v)
	}
}

var _ countdown.View = Slots{}
