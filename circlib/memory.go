// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circlib

import (
	"github.com/db47h/circsim"
	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
)

// Trigger is the clock condition under which a memory component loads new
// contents.
//
type Trigger int

// Trigger policies.
//
const (
	Rising Trigger = iota
	Falling
	High
	Low
)

var triggerNames = [...]string{"rising", "falling", "high", "low"}

func (t Trigger) String() string { return triggerNames[t] }

// Edge reports whether t is an edge trigger.
func (t Trigger) Edge() bool { return t == Rising || t == Falling }

// accepts reports whether a clock going from prev to clk fires t.
//
func (t Trigger) accepts(prev, clk circsim.Bit) bool {
	switch t {
	case Rising:
		return prev == circsim.Zero && clk == circsim.One
	case Falling:
		return prev == circsim.One && clk == circsim.Zero
	case High:
		return clk == circsim.One
	default:
		return clk == circsim.Zero
	}
}

func parseTrigger(d *schematic.Component, edgeOnly bool) (Trigger, error) {
	v := d.Attributes.String("trigger", "rising")
	for i, n := range triggerNames {
		if v == n {
			t := Trigger(i)
			if edgeOnly && !t.Edge() {
				break
			}
			return t, nil
		}
	}
	return 0, errors.Errorf("%v: unsupported trigger %q", d, v)
}

// memory holds the state shared by registers and flip-flops. Concrete types
// provide the hooks.
//
type memory struct {
	circsim.Base
	trigger  Trigger
	contents circsim.Signal
	prev     circsim.Bit
	clock    *circsim.Port
	enable   *circsim.Port

	override func() bool // asynchronous set or reset; true if applied
	load     func() bool // clocked load; true if contents changed
	output   func()
}

func (m *memory) init(d *schematic.Component, width int, edgeOnly bool) error {
	if err := m.Init(d); err != nil {
		return err
	}
	t, err := parseTrigger(d, edgeOnly)
	if err != nil {
		return err
	}
	m.trigger = t
	m.contents = circsim.MakeSignal(width, circsim.Zero)
	return nil
}

// Trigger returns the trigger policy.
func (m *memory) Trigger() Trigger { return m.trigger }

// State implements circsim.Stater.
//
func (m *memory) State() circsim.Signal { return m.contents.Clone() }

func (m *memory) enabled() bool {
	return !m.enable.Connected() || m.enable.ProbeBit(0) == circsim.One
}

// Update implements circsim.Component.
//
func (m *memory) Update() {
	clk := m.clock.ProbeBit(0)
	switch {
	case m.override():
		m.output()
	case m.enabled() && m.trigger.accepts(m.prev, clk):
		if m.load() {
			m.output()
		}
	}
	m.prev = clk
}

// Register is a multi-bit register with asynchronous clear. Attributes:
// width (8), trigger (rising, falling, high or low), label.
//
//	Ports: out, in, clock, load, clear
//
type Register struct {
	memory
	in, out, clear *circsim.Port
}

// NewRegister creates a register.
//
func NewRegister(d *schematic.Component) (circsim.Component, error) {
	w, err := d.Attributes.Int("width", 8)
	if err != nil {
		return nil, errors.Wrap(err, d.String())
	}
	if w < 1 {
		return nil, errors.Errorf("%v: invalid width %d", d, w)
	}
	r := new(Register)
	if err = r.init(d, w, false); err != nil {
		return nil, err
	}
	mute := r.trigger.Edge()
	r.out = r.AddPort("out", geom.Pt(0, 0), w, true)
	r.in = r.AddPort("in", geom.Pt(-30, 0), w, mute)
	r.clock = r.AddPort("clock", geom.Pt(-20, 20), 1, false)
	r.enable = r.AddPort("load", geom.Pt(-30, 10), 1, mute)
	r.clear = r.AddPort("clear", geom.Pt(-10, 20), 1, false)
	r.override = r.reset
	r.load = r.loadInput
	r.output = r.emit
	r.emit()
	return r, nil
}

// Width returns the register width.
func (r *Register) Width() int { return len(r.contents) }

func (r *Register) reset() bool {
	if r.clear.ProbeBit(0) != circsim.One {
		return false
	}
	for i := range r.contents {
		r.contents[i] = circsim.Zero
	}
	return true
}

func (r *Register) loadInput() bool {
	s := r.in.Probe()
	if len(s) != len(r.contents) {
		panic(errors.WithMessagef(circsim.ErrWidthMismatch, "%v: input has %d bits, expected %d", r, len(s), len(r.contents)))
	}
	if !s.Determined() {
		return false
	}
	r.contents = s
	return true
}

func (r *Register) emit() { r.out.Emit(r.contents) }

// FlipFlop is a single bit D or T flip-flop with asynchronous preset and
// clear. Attributes: trigger, label.
//
//	Ports: clock, in, q, nq, preset, clear, enable
//
type FlipFlop struct {
	memory
	in, q, nq     *circsim.Port
	preset, clear *circsim.Port
}

// NewDFlipFlop creates a D flip-flop. Any trigger is allowed.
//
func NewDFlipFlop(d *schematic.Component) (circsim.Component, error) {
	f, err := newFlipFlop(d, false)
	if err != nil {
		return nil, err
	}
	f.load = func() bool {
		b := f.in.ProbeBit(0)
		if !b.Determined() || b == f.contents[0] {
			return false
		}
		f.contents[0] = b
		return true
	}
	return f, nil
}

// NewTFlipFlop creates a T flip-flop. Only edge triggers are allowed.
//
func NewTFlipFlop(d *schematic.Component) (circsim.Component, error) {
	f, err := newFlipFlop(d, true)
	if err != nil {
		return nil, err
	}
	f.load = func() bool {
		if f.in.ProbeBit(0) != circsim.One {
			return false
		}
		f.contents = circsim.NotSignal(f.contents)
		return true
	}
	return f, nil
}

func newFlipFlop(d *schematic.Component, edgeOnly bool) (*FlipFlop, error) {
	f := new(FlipFlop)
	if err := f.init(d, 1, edgeOnly); err != nil {
		return nil, err
	}
	mute := f.trigger.Edge()
	f.clock = f.AddPort("clock", geom.Pt(-40, 0), 1, false)
	f.in = f.AddPort("in", geom.Pt(-40, 20), 1, mute)
	f.q = f.AddPort("q", geom.Pt(0, 0), 1, true)
	f.nq = f.AddPort("nq", geom.Pt(0, 20), 1, true)
	f.preset = f.AddPort("preset", geom.Pt(-30, 30), 1, false)
	f.clear = f.AddPort("clear", geom.Pt(-10, 30), 1, false)
	f.enable = f.AddPort("enable", geom.Pt(-20, 30), 1, mute)
	f.override = f.async
	f.output = f.emit
	f.emit()
	return f, nil
}

// Q returns the Q output port.
func (f *FlipFlop) Q() *circsim.Port { return f.q }

// NQ returns the inverted output port.
func (f *FlipFlop) NQ() *circsim.Port { return f.nq }

// clear has priority over preset.
func (f *FlipFlop) async() bool {
	switch {
	case f.clear.ProbeBit(0) == circsim.One:
		f.contents[0] = circsim.Zero
	case f.preset.ProbeBit(0) == circsim.One:
		f.contents[0] = circsim.One
	default:
		return false
	}
	return true
}

func (f *FlipFlop) emit() {
	f.q.Emit(f.contents)
	f.nq.Emit(circsim.NotSignal(f.contents))
}
