// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"github.com/db47h/circsim/geom"
)

// A Connector is one bit lane of a Port. It is attached to at most one Wire.
//
type Connector struct {
	port  *Port
	index int
	wire  *Wire
}

// Port returns the port c belongs to.
func (c *Connector) Port() *Port { return c.port }

// Index returns the bit index of c in its port.
func (c *Connector) Index() int { return c.index }

// Wire returns the wire c is attached to, or nil.
func (c *Connector) Wire() *Wire { return c.wire }

func (c *Connector) driven() Bit { return c.port.signal[c.index] }

// Probe returns the level present on c: the bit driven by its port merged with
// the level of its wire.
//
func (c *Connector) Probe() Bit {
	if c.wire == nil {
		return c.driven()
	}
	return MergeBit(c.driven(), c.wire.signal)
}

// update is called when the driven bit changes.
func (c *Connector) update() {
	if c.wire != nil {
		c.wire.scheduleUpdate()
	}
}

// A Port is a named, fixed width bundle of connectors owned by a component.
//
// The signal held by a port is the signal its owner drives. What is actually
// present on the wires is returned by Probe.
//
type Port struct {
	name   string
	owner  *Base
	offset geom.Point
	mute   bool
	signal Signal
	conns  []Connector
}

func newPort(owner *Base, name string, offset geom.Point, width int, mute bool) *Port {
	p := &Port{
		name:   name,
		owner:  owner,
		offset: offset,
		mute:   mute,
		signal: make(Signal, width),
		conns:  make([]Connector, width),
	}
	for i := range p.conns {
		p.conns[i] = Connector{port: p, index: i}
	}
	return p
}

// Name returns the port name.
func (p *Port) Name() string { return p.name }

// Width returns the port width in bits.
func (p *Port) Width() int { return len(p.signal) }

// Offset returns the port location relative to its owner, before rotation.
func (p *Port) Offset() geom.Point { return p.offset }

// Muted reports whether changes on the port's wires are ignored by its owner.
func (p *Port) Muted() bool { return p.mute }

// Connector returns the connector for bit i.
func (p *Port) Connector(i int) *Connector { return &p.conns[i] }

// Signal returns a copy of the signal driven by the port owner.
//
func (p *Port) Signal() Signal { return p.signal.Clone() }

// Connected reports whether any lane of p is attached to a wire.
//
func (p *Port) Connected() bool {
	for i := range p.conns {
		if p.conns[i].wire != nil {
			return true
		}
	}
	return false
}

// Emit drives s on p. Only the lanes that actually change notify their wire.
// Emit panics if s is not exactly as wide as p.
//
func (p *Port) Emit(s Signal) {
	if len(s) != len(p.signal) {
		panic(errWidth("port "+p.name, len(p.signal), len(s)))
	}
	for i, b := range s {
		if p.signal[i] != b {
			p.signal[i] = b
			p.conns[i].update()
		}
	}
}

// EmitError drives Error on every lane.
func (p *Port) EmitError() { p.Emit(MakeSignal(len(p.signal), Error)) }

// Clear stops driving p (all lanes Unknown).
func (p *Port) Clear() { p.Emit(MakeSignal(len(p.signal), Unknown)) }

// Probe returns the signal present on p, lane by lane.
//
func (p *Port) Probe() Signal {
	s := make(Signal, len(p.conns))
	for i := range p.conns {
		s[i] = p.conns[i].Probe()
	}
	return s
}

// ProbeBit returns the level present on lane i.
//
func (p *Port) ProbeBit(i int) Bit { return p.conns[i].Probe() }

// detach disconnects every lane of p from its wire.
//
func (p *Port) detach() {
	for i := range p.conns {
		if w := p.conns[i].wire; w != nil {
			w.detach(&p.conns[i])
		}
	}
}

// A Wire is a single bit electrical node shared by connectors.
//
type Wire struct {
	updatable
	id     int
	conns  []*Connector
	signal Bit
}

// Signal returns the last computed level of w.
func (w *Wire) Signal() Bit { return w.signal }

// Connectors returns the number of connectors attached to w.
func (w *Wire) Connectors() int { return len(w.conns) }

func (w *Wire) attach(c *Connector) {
	if c.wire == w {
		return
	}
	if c.wire != nil {
		c.wire.detach(c)
	}
	c.wire = w
	w.conns = append(w.conns, c)
}

func (w *Wire) detach(c *Connector) {
	for i, x := range w.conns {
		if x == c {
			copy(w.conns[i:], w.conns[i+1:])
			w.conns[len(w.conns)-1] = nil
			w.conns = w.conns[:len(w.conns)-1]
			break
		}
	}
	c.wire = nil
}

// onUpdate recomputes the wire level from its drivers. On change, the owners of
// every non muted port on the wire are scheduled.
//
func (w *Wire) onUpdate() {
	s := Unknown
	for _, c := range w.conns {
		s = MergeBit(s, c.driven())
	}
	if s == w.signal {
		return
	}
	w.signal = s
	for _, c := range w.conns {
		if !c.port.mute {
			c.port.owner.scheduleUpdate()
		}
	}
}

// wireArena allocates wires and keeps track of merged ones. Merged wires are
// resolved to the surviving wire with a union-find.
//
type wireArena struct {
	wires  []*Wire
	parent []int
}

func (a *wireArena) alloc() *Wire {
	w := &Wire{id: len(a.wires)}
	a.wires = append(a.wires, w)
	a.parent = append(a.parent, w.id)
	return w
}

func (a *wireArena) find(id int) int {
	for a.parent[id] != id {
		a.parent[id] = a.parent[a.parent[id]]
		id = a.parent[id]
	}
	return id
}

func (a *wireArena) resolve(id int) *Wire { return a.wires[a.find(id)] }

// merge moves all connectors of src onto dst. src is discarded.
//
func (a *wireArena) merge(dst, src *Wire) {
	d, s := a.find(dst.id), a.find(src.id)
	if d == s {
		return
	}
	dw, sw := a.wires[d], a.wires[s]
	for _, c := range sw.conns {
		c.wire = dw
	}
	dw.conns = append(dw.conns, sw.conns...)
	sw.conns = nil
	a.parent[s] = d
}

// live returns the wires that have not been merged into another one.
//
func (a *wireArena) live() []*Wire {
	var ws []*Wire
	for i, w := range a.wires {
		if a.parent[i] == i {
			ws = append(ws, w)
		}
	}
	return ws
}

// A Network is a bundle of wires joining same width ports.
//
type Network struct {
	arena *wireArena
	wires []int
	ports []*Port
	lines []geom.Line
}

// Width returns the network width. It is 0 until a port has been soldered.
//
func (n *Network) Width() int { return len(n.wires) }

// Wire returns the wire for lane i, following merges.
//
func (n *Network) Wire(i int) *Wire { return n.arena.resolve(n.wires[i]) }

// Ports returns the ports soldered to n at construction.
//
func (n *Network) Ports() []*Port { return n.ports }

// Lines returns the wire segments n was built from. Implicit networks, formed
// by ports sharing a location, have none.
//
func (n *Network) Lines() []geom.Line { return n.lines }

// Signal returns the current level of every lane of n.
//
func (n *Network) Signal() Signal {
	s := make(Signal, len(n.wires))
	for i := range s {
		s[i] = n.Wire(i).signal
	}
	return s
}

// solder attaches every lane of p to the corresponding wire of n. The first
// soldered port sets the network width. Zero width ports are ignored.
//
func (n *Network) solder(p *Port) error {
	if p.Width() == 0 {
		return nil
	}
	if len(n.wires) == 0 {
		for i := 0; i < p.Width(); i++ {
			n.wires = append(n.wires, n.arena.alloc().id)
		}
	}
	if p.Width() != len(n.wires) {
		return errWidth("solder port "+p.name+" of "+p.owner.String(), len(n.wires), p.Width())
	}
	for i := range p.conns {
		n.Wire(i).attach(&p.conns[i])
	}
	n.ports = append(n.ports, p)
	return nil
}
