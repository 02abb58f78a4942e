// Package keymap binds viewer shortcuts to viewport operations.
//
// Events are named after the keys that trigger them in an interactive
// viewer, so a sequence of key presses can be scripted and replayed:
//
//	right*10, pgdn, shift+left, wheel:-240
package keymap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownKey = errors.New("keymap: unknown key")

// Target receives the operations triggered by events. *rawview.Viewer
// implements it.
type Target interface {
	StepWidth(delta int)
	StepOffset(delta int)
	SetOffset(s string) error
	PageMove(dir int)
	StepBitAlign(delta int)
	CycleBPP(dir int)
	WheelMove(delta int)
}

// Op identifies a viewport operation.
type Op int

const (
	Width Op = iota
	Offset
	Page
	BitAlign
	Depth
	Wheel
	Home
)

// Event is a single decoded key press. Arg is the direction or wheel delta.
type Event struct {
	Op  Op
	Arg int
}

var bindings = map[string]Event{
	"left":        {Width, -1},
	"right":       {Width, 1},
	"up":          {Offset, -1},
	"down":        {Offset, 1},
	"pgup":        {Page, -1},
	"pgdn":        {Page, 1},
	"shift+left":  {BitAlign, -1},
	"shift+right": {BitAlign, 1},
	"shift+up":    {Depth, 1},
	"shift+down":  {Depth, -1},
	"home":        {Home, 0},
}

// Lookup decodes a single key name. Wheel events are written wheel:<delta>.
func Lookup(key string) (Event, error) {
	key = strings.ToLower(key)
	if d, ok := strings.CutPrefix(key, "wheel:"); ok {
		n, err := strconv.Atoi(d)
		if err != nil {
			return Event{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		return Event{Wheel, n}, nil
	}
	e, ok := bindings[key]
	if !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return e, nil
}

// Parse decodes a comma or whitespace separated list of keys. A key may be
// followed by *N to repeat it N times.
func Parse(script string) ([]Event, error) {
	var out []Event
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	for _, f := range fields {
		key, count := f, 1
		if k, n, ok := strings.Cut(f, "*"); ok {
			c, err := strconv.Atoi(n)
			if err != nil || c < 0 {
				return nil, fmt.Errorf("keymap: bad repeat count in %q", f)
			}
			key, count = k, c
		}
		e, err := Lookup(key)
		if err != nil {
			return nil, err
		}
		for n := 0; n < count; n++ {
			out = append(out, e)
		}
	}
	return out, nil
}

// Apply performs e on t.
func Apply(t Target, e Event) error {
	switch e.Op {
	case Width:
		t.StepWidth(e.Arg)
	case Offset:
		t.StepOffset(e.Arg)
	case Page:
		t.PageMove(e.Arg)
	case BitAlign:
		t.StepBitAlign(e.Arg)
	case Depth:
		t.CycleBPP(e.Arg)
	case Wheel:
		t.WheelMove(e.Arg)
	case Home:
		return t.SetOffset("0")
	default:
		return fmt.Errorf("keymap: unknown op %d", e.Op)
	}
	return nil
}

// Run applies every event in order, stopping at the first error.
func Run(t Target, events []Event) error {
	for _, e := range events {
		if err := Apply(t, e); err != nil {
			return err
		}
	}
	return nil
}
