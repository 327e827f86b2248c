// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultMaxUpdates is the default limit on the number of updates a single
// call to Evaluate may run.
//
const DefaultMaxUpdates = 1 << 20

// An Option configures a Circuit.
//
type Option func(*Circuit)

// MaxUpdates sets the maximum number of updates run by a single Evaluate call
// before giving up with ErrOscillation. 0 means no limit.
//
func MaxUpdates(n int) Option {
	return func(c *Circuit) { c.maxUpdates = n }
}

// Permissive makes Compile skip, with a warning, components whose library or
// type cannot be found instead of failing.
//
func Permissive() Option {
	return func(c *Circuit) { c.permissive = true }
}

// Circuit is a runnable circuit simulation.
//
// A Circuit is built from a schematic with New, compiled once with Compile,
// then evaluated any number of times. After driving new values on input pins,
// Evaluate propagates changes until the circuit settles.
//
// Circuits are not safe for concurrent use.
//
type Circuit struct {
	schem      *schematic.Circuit
	maxUpdates int
	permissive bool

	started  bool
	compiled bool
	sched    scheduler
	arena    wireArena
	comps    []Component
	nets     []*Network
	tunnels  map[string]*Tunnel
}

// New returns a new, uncompiled circuit for schematic sc.
//
func New(sc *schematic.Circuit, opts ...Option) *Circuit {
	c := &Circuit{schem: sc, maxUpdates: DefaultMaxUpdates}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Name returns the circuit name.
func (c *Circuit) Name() string { return c.schem.Name }

// Label returns the circuit label.
func (c *Circuit) Label() string { return c.schem.Label }

// Schematic returns the schematic c was built from.
func (c *Circuit) Schematic() *schematic.Circuit { return c.schem }

// Compiled reports whether Compile has completed successfully.
func (c *Circuit) Compiled() bool { return c.compiled }

// Compile instantiates the components of the circuit using libs, builds its
// networks, dissolves splitters and tunnels and schedules every wire and
// component for a first update.
//
// Compile may only be called once, even if it fails.
//
func (c *Circuit) Compile(libs Libraries) error {
	if c.started {
		return errors.Wrap(ErrCompiled, c.Name())
	}
	c.started = true
	c.comps, c.nets, c.arena = nil, nil, wireArena{}
	if err := c.createComponents(libs); err != nil {
		return errors.Wrap(err, c.Name())
	}
	if err := c.wireUp(); err != nil {
		return errors.Wrap(err, c.Name())
	}
	dissolved, err := c.dissolve()
	if err != nil {
		return errors.Wrap(err, c.Name())
	}

	live := c.arena.live()
	for _, w := range live {
		w.bind(&c.sched, w)
		w.scheduleUpdate()
	}
	for _, comp := range c.comps {
		if _, ok := comp.(dissolver); ok {
			continue
		}
		b := comp.base()
		b.bind(&c.sched, updateFunc(comp.Update))
		b.scheduleUpdate()
	}
	c.compiled = true

	log.WithFields(log.Fields{
		"circuit":    c.Name(),
		"components": len(c.comps),
		"networks":   len(c.nets),
		"wires":      len(live),
		"dissolved":  dissolved,
	}).Debug("circuit compiled")
	return nil
}

func (c *Circuit) createComponents(libs Libraries) error {
	for i := range c.schem.Components {
		d := &c.schem.Components[i]
		lib, ok := libs[d.Lib]
		if !ok {
			if err := c.skip(d, errors.Wrapf(ErrMissingLibrary, "library %q for %v", d.Lib, d)); err != nil {
				return err
			}
			continue
		}
		f, ok := lib[d.Name]
		if !ok {
			if err := c.skip(d, errors.Wrapf(ErrMissingComponent, "%v in library %q", d, d.Lib)); err != nil {
				return err
			}
			continue
		}
		comp, err := f(d)
		if err != nil {
			return err
		}
		c.comps = append(c.comps, comp)
	}
	return nil
}

func (c *Circuit) skip(d *schematic.Component, err error) error {
	if !c.permissive {
		return err
	}
	log.WithFields(log.Fields{
		"circuit":   c.Name(),
		"lib":       d.Lib,
		"component": d.Name,
		"location":  d.Location.String(),
	}).Warn("skipping unresolved component")
	return nil
}

// dissolve merges the wires across splitters and tunnels, then detaches
// their ports.
//
func (c *Circuit) dissolve() (int, error) {
	c.tunnels = make(map[string]*Tunnel)
	defer func() { c.tunnels = nil }()
	n := 0
	for _, comp := range c.comps {
		if d, ok := comp.(dissolver); ok {
			if err := d.dissolve(c); err != nil {
				return n, err
			}
			n++
		}
	}
	for _, comp := range c.comps {
		if _, ok := comp.(dissolver); ok {
			for _, p := range comp.Ports() {
				p.detach()
			}
		}
	}
	return n, nil
}

// Evaluate runs pending updates until the circuit settles. If the circuit
// does not settle within the configured number of updates, Evaluate returns
// an error wrapping ErrOscillation and the remaining updates stay queued.
//
func (c *Circuit) Evaluate() error {
	if !c.compiled {
		return errors.Wrap(ErrNotCompiled, c.Name())
	}
	n := 0
	for c.sched.len() > 0 {
		if c.maxUpdates > 0 && n >= c.maxUpdates {
			return errors.Wrapf(ErrOscillation, "%s: %d updates", c.Name(), n)
		}
		c.sched.pop().update()
		n++
	}
	return nil
}

// Step runs a single pending update and reports whether more updates are
// pending.
//
func (c *Circuit) Step() bool {
	if u := c.sched.pop(); u != nil {
		u.update()
	}
	return c.sched.len() > 0
}

// Pending returns the number of queued updates.
func (c *Circuit) Pending() int { return c.sched.len() }

// ClearUpdates drops all queued updates.
func (c *Circuit) ClearUpdates() { c.sched.clear() }

// Components returns the components of the circuit, in schematic order.
// Dissolved splitters and tunnels are included.
//
func (c *Circuit) Components() []Component { return c.comps }

// Networks returns the networks built by Compile.
//
func (c *Circuit) Networks() []*Network { return c.nets }

// Pins returns the input and/or output pins of the circuit, in schematic order.
//
func (c *Circuit) Pins(inputs, outputs bool) []*Pin {
	var ps []*Pin
	for _, comp := range c.comps {
		if p, ok := comp.(*Pin); ok && (p.output && outputs || !p.output && inputs) {
			ps = append(ps, p)
		}
	}
	return ps
}

// InputPins returns the input pins of the circuit.
func (c *Circuit) InputPins() []*Pin { return c.Pins(true, false) }

// OutputPins returns the output pins of the circuit.
func (c *Circuit) OutputPins() []*Pin { return c.Pins(false, true) }

func groupByLabel(ps []*Pin) map[string][]*Pin {
	m := make(map[string][]*Pin)
	for _, p := range ps {
		if p.label == "" {
			continue
		}
		m[p.label] = append(m[p.label], p)
	}
	return m
}

// InputPinsLabeled returns the labeled input pins grouped by label.
//
func (c *Circuit) InputPinsLabeled() map[string][]*Pin { return groupByLabel(c.InputPins()) }

// OutputPinsLabeled returns the labeled output pins grouped by label.
//
func (c *Circuit) OutputPinsLabeled() map[string][]*Pin { return groupByLabel(c.OutputPins()) }

// Drive emits s on every input pin labeled label.
//
func (c *Circuit) Drive(label string, s Signal) error {
	ps := c.InputPinsLabeled()[label]
	if len(ps) == 0 {
		return errors.Errorf("%s: no input pin labeled %q", c.Name(), label)
	}
	for _, p := range ps {
		if p.Width() != len(s) {
			return errors.Wrapf(errWidth("pin "+label, p.Width(), len(s)), "%s", c.Name())
		}
	}
	for _, p := range ps {
		p.Emit(s)
	}
	return nil
}

// Read returns the signal on the first output pin or probe labeled label.
//
func (c *Circuit) Read(label string) (Signal, error) {
	if ps := c.OutputPinsLabeled()[label]; len(ps) > 0 {
		return ps[0].Probe(), nil
	}
	for _, comp := range c.comps {
		if p, ok := comp.(*Probe); ok && p.label == label {
			return p.Probe(), nil
		}
	}
	return nil, errors.Errorf("%s: no output labeled %q", c.Name(), label)
}

// StateHash returns a hash of every signal driven by the components and of
// their internal state. Two evaluations leaving the circuit in the same
// state give the same hash.
//
func (c *Circuit) StateHash() uint64 {
	h := fnv.New64a()
	var buf []byte
	for i, comp := range c.comps {
		buf = binary.LittleEndian.AppendUint32(buf[:0], uint32(i))
		for _, p := range comp.Ports() {
			for _, b := range p.signal {
				buf = append(buf, byte(b))
			}
			buf = append(buf, 0xff)
		}
		if s, ok := comp.(Stater); ok {
			for _, b := range s.State() {
				buf = append(buf, byte(b))
			}
		}
		h.Write(buf)
	}
	return h.Sum64()
}
