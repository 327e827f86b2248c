// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
)

// A Component is a part instance in a circuit.
//
// Custom components embed a Base, declare their ports with AddPort and
// implement Update:
//
//	type inverter struct {
//		circsim.Base
//		in, out *circsim.Port
//	}
//
//	func newInverter(d *schematic.Component) (circsim.Component, error) {
//		c := new(inverter)
//		if err := c.Init(d); err != nil {
//			return nil, err
//		}
//		c.out = c.AddPort("out", geom.Pt(0, 0), 1, true)
//		c.in = c.AddPort("in", geom.Pt(-30, 0), 1, false)
//		return c, nil
//	}
//
//	func (c *inverter) Update() {
//		c.out.Emit(circsim.NotSignal(c.in.Probe()))
//	}
//
// Update is called by the circuit whenever a non muted port sees a change on
// its wires. It must only emit on the component's own ports.
//
type Component interface {
	Name() string
	Label() string
	Location() geom.Point
	Facing() geom.Facing
	Ports() []*Port
	Update()
	base() *Base
}

// A PortLocator overrides the default rotation of port offsets by the
// component facing.
//
type PortLocator interface {
	LocatePort(p *Port) geom.Point
}

// A Stater exposes internal state that is not visible on its ports, like
// memory contents.
//
type Stater interface {
	State() Signal
}

type updateFunc func()

func (f updateFunc) onUpdate() { f() }

// Base implements the common parts of a Component.
//
type Base struct {
	updatable
	name   string
	label  string
	loc    geom.Point
	facing geom.Facing
	ports  []*Port
}

// Init initializes the base from a descriptor: name, location, label and
// facing (East by default).
//
func (b *Base) Init(d *schematic.Component) error {
	f, err := d.Attributes.Facing(geom.East)
	if err != nil {
		return errors.Wrap(err, d.String())
	}
	b.name = d.Name
	b.loc = d.Location
	b.facing = f
	b.label = d.Attributes.String("label", "")
	return nil
}

// AddPort declares a new port at offset from the component location, as laid
// out when facing East. Muted ports never trigger an update of their owner.
//
func (b *Base) AddPort(name string, offset geom.Point, width int, mute bool) *Port {
	p := newPort(b, name, offset, width, mute)
	b.ports = append(b.ports, p)
	return p
}

// Name returns the component type name.
func (b *Base) Name() string { return b.name }

// Label returns the component label.
func (b *Base) Label() string { return b.label }

// Location returns the component anchor.
func (b *Base) Location() geom.Point { return b.loc }

// Facing returns the component orientation.
func (b *Base) Facing() geom.Facing { return b.facing }

// Ports returns the component ports in declaration order.
func (b *Base) Ports() []*Port { return b.ports }

// Port returns the port with the given name, or nil.
//
func (b *Base) Port(name string) *Port {
	for _, p := range b.ports {
		if p.name == name {
			return p
		}
	}
	return nil
}

// PortLocation returns the absolute location of p: its offset rotated by the
// component facing, relative to the component location.
//
func (b *Base) PortLocation(p *Port) geom.Point {
	return b.loc.Add(p.offset.Rotate(b.facing))
}

// Schedule queues an update of the component. It has no effect until the
// component belongs to a compiled circuit.
//
func (b *Base) Schedule() { b.scheduleUpdate() }

func (b *Base) String() string {
	s := b.name + " at " + b.loc.String()
	if b.label != "" {
		s += " (" + b.label + ")"
	}
	return s
}

func (b *Base) base() *Base { return b }

// portLocation returns the absolute location of port p of c.
//
func portLocation(c Component, p *Port) geom.Point {
	if l, ok := c.(PortLocator); ok {
		return l.LocatePort(p)
	}
	return c.base().PortLocation(p)
}
