// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"maps"
	"slices"

	"github.com/db47h/circsim/schematic"
)

// A Factory creates a component from its descriptor. Invalid attributes are
// reported as errors.
//
type Factory func(d *schematic.Component) (Component, error)

// A Library maps component type names to their factory.
//
type Library map[string]Factory

// Names returns the sorted component names in l.
//
func (l Library) Names() []string {
	return slices.Sorted(maps.Keys(l))
}

// Libraries maps library ids, as referenced by schematic components, to
// libraries. Circuits of the same project use the id "".
//
type Libraries map[string]Library

// Wiring returns the built-in wiring library.
//
func Wiring() Library {
	return Library{
		"Pin":      NewPin,
		"Probe":    NewProbe,
		"Constant": NewConstant,
		"Power":    NewPower,
		"Ground":   NewGround,
		"Tunnel":   NewTunnel,
		"Splitter": NewSplitter,
	}
}
