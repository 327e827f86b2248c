// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circlib

import (
	"strconv"

	"github.com/db47h/circsim"
	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
)

// logisimLocate places ports the way Logisim does for gates: offsets are
// rotated, then mirrored for South and West facings so that input 0 stays on
// the top or left side.
//
func logisimLocate(b *circsim.Base, p *circsim.Port) geom.Point {
	off := p.Offset().Rotate(b.Facing())
	switch b.Facing() {
	case geom.South:
		off = off.Flip(geom.AxisX)
	case geom.West:
		off = off.Flip(geom.AxisY)
	}
	return b.Location().Add(off)
}

type gateOp struct {
	fn       func(...circsim.Bit) circsim.Bit
	identity circsim.Bit
	negate   bool // negated output
	bonus    int  // extra width of the gate body
}

var (
	andOp  = gateOp{fn: circsim.And, identity: circsim.One}
	orOp   = gateOp{fn: circsim.Or, identity: circsim.Zero}
	xorOp  = gateOp{fn: circsim.Xor, identity: circsim.Zero, bonus: 10}
	nandOp = gateOp{fn: circsim.Nand, identity: circsim.One, negate: true}
	norOp  = gateOp{fn: circsim.Nor, identity: circsim.Zero, negate: true}
	xnorOp = gateOp{fn: circsim.Xnor, identity: circsim.Zero, negate: true, bonus: 10}
)

// Gate is a multiple input logic gate. Inputs are evaluated lane by lane.
// Unconnected inputs are ignored.
//
type Gate struct {
	circsim.Base
	op      gateOp
	out     *circsim.Port
	in      []*circsim.Port
	negated []bool
}

func gateFactory(op gateOp) circsim.Factory {
	return func(d *schematic.Component) (circsim.Component, error) { return newGate(d, op) }
}

// newGate creates a gate. Attributes: width (1), size (50), inputs (5),
// negateN (false), facing.
//
func newGate(d *schematic.Component, op gateOp) (circsim.Component, error) {
	g := &Gate{op: op}
	if err := g.Init(d); err != nil {
		return nil, err
	}
	w, err := circsim.Width(d)
	if err != nil {
		return nil, err
	}
	size, err := d.Attributes.Int("size", 50)
	if err != nil {
		return nil, errors.Wrap(err, d.String())
	}
	n, err := d.Attributes.Int("inputs", 5)
	if err != nil {
		return nil, errors.Wrap(err, d.String())
	}
	if n < 2 {
		return nil, errors.Errorf("%v: a gate needs at least 2 inputs, got %d", d, n)
	}
	g.negated = make([]bool, n)
	for i := range g.negated {
		if g.negated[i], err = d.Attributes.Bool("negate"+strconv.Itoa(i), false); err != nil {
			return nil, errors.Wrap(err, d.String())
		}
	}
	g.out = g.AddPort("out", geom.Pt(0, 0), w, true)
	for i := 0; i < n; i++ {
		g.in = append(g.in, g.AddPort("in"+strconv.Itoa(i), inputOffset(size, n, i, op.bonus, op.negate, g.negated[i]), w, false))
	}
	return g, nil
}

// inputOffset returns the offset of input i of a gate facing East.
//
func inputOffset(size, n, i, bonus int, negateOut, negateIn bool) geom.Point {
	axis := size + bonus
	if negateOut {
		axis += 10
	}
	var skipStart, skipDist, skipLowerEven int
	switch {
	case n <= 3:
		switch {
		case size < 40:
			skipStart, skipDist, skipLowerEven = -5, 10, 10
		case size < 60 || n <= 2:
			skipStart, skipDist, skipLowerEven = -10, 20, 20
		default:
			skipStart, skipDist, skipLowerEven = -15, 30, 30
		}
	case n == 4 && size >= 60:
		skipStart, skipDist, skipLowerEven = -5, 20, 0
	default:
		skipStart, skipDist, skipLowerEven = -5, 10, 10
	}
	var dy int
	if n&1 == 1 {
		dy = skipStart*(n-1) + skipDist*i
	} else {
		dy = skipStart*n + skipDist*i
		if i >= n/2 {
			dy += skipLowerEven
		}
	}
	dx := axis
	if negateIn {
		dx += 10
	}
	return geom.Pt(-dx, dy)
}

// LocatePort implements circsim.PortLocator.
//
func (g *Gate) LocatePort(p *circsim.Port) geom.Point { return logisimLocate(&g.Base, p) }

// Inputs returns the input ports.
func (g *Gate) Inputs() []*circsim.Port { return g.in }

// Output returns the output port.
func (g *Gate) Output() *circsim.Port { return g.out }

// Update implements circsim.Component.
//
func (g *Gate) Update() {
	var ins []circsim.Signal
	for i, p := range g.in {
		if !p.Connected() {
			continue
		}
		s := p.Probe()
		if g.negated[i] {
			s = circsim.NotSignal(s)
		}
		ins = append(ins, s)
	}
	switch len(ins) {
	case 0:
		g.out.Clear()
		return
	case 1:
		ins = append(ins, circsim.MakeSignal(g.out.Width(), g.op.identity))
	}
	r := make(circsim.Signal, g.out.Width())
	col := make([]circsim.Bit, len(ins))
	for lane := range r {
		for i, s := range ins {
			col[i] = s[lane]
		}
		r[lane] = g.op.fn(col...)
	}
	g.out.Emit(r)
}
