// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
)

// A Constant drives a fixed value. It emits once at construction and is never
// updated.
//
type Constant struct {
	Base
	port *Port
}

func newConstant(d *schematic.Component, value func(w int) (Signal, error)) (Component, error) {
	c := new(Constant)
	if err := c.Init(d); err != nil {
		return nil, err
	}
	w, err := Width(d)
	if err != nil {
		return nil, err
	}
	s, err := value(w)
	if err != nil {
		return nil, errors.Wrap(err, d.String())
	}
	c.port = c.AddPort("out", geom.Pt(0, 0), w, true)
	c.port.Emit(s)
	return c, nil
}

// NewConstant creates a constant. Attributes: value (hexadecimal with an
// optional 0x prefix, 0x1), width (1), facing.
//
func NewConstant(d *schematic.Component) (Component, error) {
	return newConstant(d, func(w int) (Signal, error) {
		v, err := d.Attributes.Hex("value", 1)
		if err != nil {
			return nil, err
		}
		return FromUint64(v, w), nil
	})
}

// NewPower creates a constant driving all ones.
//
func NewPower(d *schematic.Component) (Component, error) {
	return newConstant(d, func(w int) (Signal, error) { return MakeSignal(w, One), nil })
}

// NewGround creates a constant driving all zeros.
//
func NewGround(d *schematic.Component) (Component, error) {
	return newConstant(d, func(w int) (Signal, error) { return MakeSignal(w, Zero), nil })
}

// Value returns the driven value.
func (c *Constant) Value() Signal { return c.port.Signal() }

// Update implements Component.
func (c *Constant) Update() {}
