// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circlib

import (
	"github.com/db47h/circsim"
	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
)

// Buffer is a single input gate: Buffer, NOT Gate, Controlled Buffer or
// Controlled Inverter.
//
// Controlled buffers and inverters only drive their output when the control
// input is One. When it is Zero, the output floats (Unknown). Any other control
// level drives Error.
//
type Buffer struct {
	circsim.Base
	invert  bool
	in, out *circsim.Port
	control *circsim.Port
}

// NewBuffer creates a buffer. Attributes: width (1), facing.
//
func NewBuffer(d *schematic.Component) (circsim.Component, error) {
	return newBuffer(d, false, false, 20)
}

// NewNot creates an inverter. Attributes: width (1), size ("wide" or
// "narrow", default wide), facing.
//
func NewNot(d *schematic.Component) (circsim.Component, error) {
	l := 30
	switch sz := d.Attributes.String("size", "wide"); sz {
	case "wide", "30":
	case "narrow", "20":
		l = 20
	default:
		return nil, errors.Errorf("%v: invalid size %q", d, sz)
	}
	return newBuffer(d, true, false, l)
}

// NewControlledBuffer creates a tri-state buffer. Attributes: width (1),
// control ("right" or "left", default right), facing.
//
func NewControlledBuffer(d *schematic.Component) (circsim.Component, error) {
	return newBuffer(d, false, true, 20)
}

// NewControlledInverter creates a tri-state inverter. Same attributes as
// NewControlledBuffer.
//
func NewControlledInverter(d *schematic.Component) (circsim.Component, error) {
	return newBuffer(d, true, true, 30)
}

func newBuffer(d *schematic.Component, invert, controlled bool, length int) (circsim.Component, error) {
	b := &Buffer{invert: invert}
	if err := b.Init(d); err != nil {
		return nil, err
	}
	w, err := circsim.Width(d)
	if err != nil {
		return nil, err
	}
	b.out = b.AddPort("out", geom.Pt(0, 0), w, true)
	b.in = b.AddPort("in", geom.Pt(-length, 0), w, false)
	if !controlled {
		return b, nil
	}
	dy := 10
	switch c := d.Attributes.String("control", "right"); c {
	case "right":
	case "left":
		dy = -10
	default:
		return nil, errors.Errorf("%v: invalid control side %q", d, c)
	}
	b.control = b.AddPort("control", geom.Pt(-(length - 10), dy), 1, false)
	return b, nil
}

// LocatePort implements circsim.PortLocator. The control input of
// controlled buffers stays on the same side for West and South facings.
//
func (b *Buffer) LocatePort(p *circsim.Port) geom.Point { return logisimLocate(&b.Base, p) }

// Update implements circsim.Component.
//
func (b *Buffer) Update() {
	if b.control != nil {
		switch b.control.ProbeBit(0) {
		case circsim.One:
		case circsim.Zero:
			b.out.Clear()
			return
		default:
			b.out.EmitError()
			return
		}
	}
	s := b.in.Probe()
	if b.invert {
		s = circsim.NotSignal(s)
	}
	b.out.Emit(s)
}
