// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
)

// Width returns the "width" attribute of d, 1 by default. Widths must be
// strictly positive.
//
func Width(d *schematic.Component) (int, error) {
	w, err := d.Attributes.Int("width", 1)
	if err != nil {
		return 0, errors.Wrap(err, d.String())
	}
	if w < 1 {
		return 0, errors.Errorf("%v: invalid width %d", d, w)
	}
	return w, nil
}

// A Pin is a circuit input or output. Input pins are driven by the host or,
// for sub-circuits, by the enclosing circuit.
//
type Pin struct {
	Base
	port   *Port
	output bool
}

// NewPin creates a pin. Attributes: output ("false"), width (1), label,
// facing. Input pins drive all zeros until driven otherwise.
//
func NewPin(d *schematic.Component) (Component, error) {
	p := new(Pin)
	if err := p.Init(d); err != nil {
		return nil, err
	}
	out, err := d.Attributes.Bool("output", false)
	if err != nil {
		return nil, errors.Wrap(err, d.String())
	}
	w, err := Width(d)
	if err != nil {
		return nil, err
	}
	p.output = out
	p.port = p.AddPort("pin", geom.Pt(0, 0), w, true)
	if !out {
		p.port.Emit(MakeSignal(w, Zero))
	}
	return p, nil
}

// Output reports whether p is an output pin.
func (p *Pin) Output() bool { return p.output }

// Width returns the pin width.
func (p *Pin) Width() int { return p.port.Width() }

// Port returns the pin port.
func (p *Pin) Port() *Port { return p.port }

// Emit drives s on an input pin. It panics if p is an output pin or if s has
// the wrong width.
//
func (p *Pin) Emit(s Signal) {
	if p.output {
		panic(errors.Errorf("%v: cannot drive an output pin", &p.Base))
	}
	p.port.Emit(s)
}

// Probe returns the signal on an output pin. It panics if p is an input pin.
//
func (p *Pin) Probe() Signal {
	if !p.output {
		panic(errors.Errorf("%v: cannot probe an input pin", &p.Base))
	}
	return p.port.Probe()
}

// Update implements Component. Pins are passive.
func (p *Pin) Update() {}

// A Probe displays the value of the network it is attached to.
//
type Probe struct {
	Base
	port *Port
}

// NewProbe creates a probe. Attributes: width (1), label, facing.
//
func NewProbe(d *schematic.Component) (Component, error) {
	p := new(Probe)
	if err := p.Init(d); err != nil {
		return nil, err
	}
	w, err := Width(d)
	if err != nil {
		return nil, err
	}
	p.port = p.AddPort("in", geom.Pt(0, 0), w, true)
	return p, nil
}

// Probe returns the signal seen by p.
func (p *Probe) Probe() Signal { return p.port.Probe() }

// Update implements Component.
func (p *Probe) Update() {}
