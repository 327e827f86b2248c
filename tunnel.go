// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
)

// A dissolver is a component that only routes bits. It is removed from the
// circuit once networks are built, after merging the wires on its ports.
//
type dissolver interface {
	Component
	dissolve(c *Circuit) error
}

// A Tunnel connects every network touching a tunnel with the same label.
//
type Tunnel struct {
	Base
	port *Port
}

// NewTunnel creates a tunnel. Attributes: label, width (1), facing.
//
func NewTunnel(d *schematic.Component) (Component, error) {
	t := new(Tunnel)
	if err := t.Init(d); err != nil {
		return nil, err
	}
	w, err := Width(d)
	if err != nil {
		return nil, err
	}
	t.port = t.AddPort("io", geom.Pt(0, 0), w, true)
	return t, nil
}

// Update implements Component.
func (t *Tunnel) Update() {}

// dissolve merges the wires of t into those of the first connected tunnel with
// the same label.
//
func (t *Tunnel) dissolve(c *Circuit) error {
	if t.label == "" || !t.port.Connected() {
		return nil
	}
	h := c.tunnels[t.label]
	if h == nil {
		c.tunnels[t.label] = t
		return nil
	}
	if h.port.Width() != t.port.Width() {
		return errors.Wrapf(errWidth("tunnel", h.port.Width(), t.port.Width()), "%v", &t.Base)
	}
	for i := range t.port.conns {
		c.arena.merge(h.port.conns[i].wire, t.port.conns[i].wire)
	}
	return nil
}
