// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"slices"
	"strconv"

	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type pinPort struct {
	pin  *Pin
	port *Port
}

// A Subcircuit is an instance of a circuit used as a component in another
// one. Each instance has its own compiled copy of the circuit.
//
// The instance has one port per pin of the inner circuit, named after the pin
// label, or "pinN" for unlabeled pins where N is the pin index.
//
type Subcircuit struct {
	Base
	inner *Circuit
	ins   []pinPort
	outs  []pinPort
}

// SubcircuitFactory returns a factory that instantiates circuit sc, compiled
// with libs and opts.
//
// libs is only used when an instance is created. It can therefore be the
// library set that the factory itself is registered in.
//
func SubcircuitFactory(sc *schematic.Circuit, libs Libraries, opts ...Option) Factory {
	return func(d *schematic.Component) (Component, error) {
		s := new(Subcircuit)
		if err := s.Init(d); err != nil {
			return nil, err
		}
		s.inner = New(sc, opts...)
		if err := s.inner.Compile(libs); err != nil {
			return nil, errors.Wrapf(err, "%v", d)
		}
		pins := s.inner.Pins(true, true)
		offs := subcircuitLayout(pins)
		for i, p := range pins {
			name := p.label
			if name == "" {
				name = "pin" + strconv.Itoa(i)
			}
			pp := pinPort{p, s.AddPort(name, offs[i], p.Width(), p.output)}
			if p.output {
				s.outs = append(s.outs, pp)
			} else {
				s.ins = append(s.ins, pp)
			}
		}
		return s, nil
	}
}

// Circuit returns the inner circuit.
func (s *Subcircuit) Circuit() *Circuit { return s.inner }

// Update drives the inner input pins, evaluates the inner circuit and emits
// the inner output pins. If the inner circuit does not settle, all outputs are
// set to Error.
//
func (s *Subcircuit) Update() {
	for _, in := range s.ins {
		in.pin.Emit(in.port.Probe())
	}
	if err := s.inner.Evaluate(); err != nil {
		log.WithError(err).WithField("instance", s.String()).Warn("sub-circuit evaluation failed")
		s.inner.ClearUpdates()
		for _, out := range s.outs {
			out.port.EmitError()
		}
		return
	}
	for _, out := range s.outs {
		out.port.Emit(out.pin.Probe())
	}
}

// State implements Stater.
//
func (s *Subcircuit) State() Signal {
	var st Signal
	for _, comp := range s.inner.comps {
		for _, p := range comp.Ports() {
			st = append(st, p.signal...)
		}
		if x, ok := comp.(Stater); ok {
			st = append(st, x.State()...)
		}
	}
	return st
}

// subcircuitLayout returns the port offset of each pin, relative to the
// instance anchor, for an instance facing East.
//
// Pins are placed on the edge of a box opposite to their facing, 10 units
// apart, sorted along the edge. The anchor is the middle of the East edge if
// it has pins, else North, West, then South.
//
func subcircuitLayout(pins []*Pin) []geom.Point {
	var edges [4][]int
	for i, p := range pins {
		e := p.facing.Reverse()
		edges[e] = append(edges[e], i)
	}
	for e, idx := range edges {
		vertical := geom.Facing(e) == geom.East || geom.Facing(e) == geom.West
		slices.SortStableFunc(idx, func(a, b int) int {
			pa, pb := pins[a].loc, pins[b].loc
			if vertical {
				if pa.Y != pb.Y {
					return pa.Y - pb.Y
				}
				return pa.X - pb.X
			}
			if pa.X != pb.X {
				return pa.X - pb.X
			}
			return pa.Y - pb.Y
		})
	}
	nN, nS := len(edges[geom.North]), len(edges[geom.South])
	nE, nW := len(edges[geom.East]), len(edges[geom.West])
	maxVert, maxHorz := max(nN, nS), max(nE, nW)
	offN := layoutOffset(nN, nS, maxHorz)
	offS := layoutOffset(nS, nN, maxHorz)
	offE := layoutOffset(nE, nW, maxVert)
	offW := layoutOffset(nW, nE, maxVert)
	width := layoutDimension(maxVert, maxHorz)
	height := layoutDimension(maxHorz, maxVert)

	var anchor geom.Point
	switch {
	case nE > 0:
		anchor = geom.Pt(width, offE)
	case nN > 0:
		anchor = geom.Pt(offN, 0)
	case nW > 0:
		anchor = geom.Pt(0, offW)
	case nS > 0:
		anchor = geom.Pt(offS, height)
	}

	offs := make([]geom.Point, len(pins))
	place := func(idx []int, start, step geom.Point) {
		for k, i := range idx {
			offs[i] = geom.Pt(start.X+k*step.X, start.Y+k*step.Y).Sub(anchor)
		}
	}
	place(edges[geom.North], geom.Pt(offN, 0), geom.Pt(10, 0))
	place(edges[geom.South], geom.Pt(offS, height), geom.Pt(10, 0))
	place(edges[geom.East], geom.Pt(width, offE), geom.Pt(0, 10))
	place(edges[geom.West], geom.Pt(0, offW), geom.Pt(0, 10))
	return offs
}

func layoutDimension(maxThis, maxOthers int) int {
	switch {
	case maxThis < 3:
		return 30
	case maxOthers == 0:
		return 10 * maxThis
	}
	return 10*maxThis + 10
}

func layoutOffset(numFacing, numOpposite, maxOthers int) int {
	maxThis := max(numFacing, numOpposite)
	var maxOffs int
	switch maxThis {
	case 0, 1:
		maxOffs = 10
		if maxOthers == 0 {
			maxOffs = 15
		}
	case 2:
		maxOffs = 10
	default:
		maxOffs = 10
		if maxOthers == 0 {
			maxOffs = 5
		}
	}
	return maxOffs + 10*((maxThis-numFacing)/2)
}
