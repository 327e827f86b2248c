// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circtest

import (
	"strconv"

	"github.com/db47h/circsim"
	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/internal/assign"
	"github.com/db47h/circsim/schematic"
)

// Library ids used by Builder helpers. They follow the default numbering of
// Logisim projects.
const (
	LibWiring = "0"
	LibGates  = "1"
	LibMemory = "4"
)

// A Builder assembles a circuit schematic in code.
//
//	sc := circtest.NewBuilder("and").
//		In("a", 10, 10, 1).
//		In("b", 10, 30, 1).
//		Add(circtest.LibGates, "AND Gate", 70, 20, "inputs=2").
//		Wire(10, 10, 20, 10).
//		...
//		Schematic()
//
// Builder methods panic on malformed arguments.
//
type Builder struct {
	sc schematic.Circuit
}

// NewBuilder returns a builder for a circuit with the given name.
//
func NewBuilder(name string) *Builder {
	return &Builder{sc: schematic.Circuit{Name: name}}
}

// Wire adds a wire segment from (x0,y0) to (x1,y1).
//
func (b *Builder) Wire(x0, y0, x1, y1 int) *Builder {
	b.sc.Wires = append(b.sc.Wires, geom.MustLine(geom.Pt(x0, y0), geom.Pt(x1, y1)))
	return b
}

// Add adds a component from library lib at (x,y). attrs is a list of
// name=value attribute assignments, like "width=8, facing=north".
//
func (b *Builder) Add(lib, name string, x, y int, attrs string) *Builder {
	m, err := assign.Map(attrs)
	if err != nil {
		panic(err)
	}
	b.sc.Components = append(b.sc.Components, schematic.Component{
		Lib:        lib,
		Name:       name,
		Location:   geom.Pt(x, y),
		Attributes: schematic.Attributes(m),
	})
	return b
}

func pinAttrs(label string, width int, output bool, extra string) string {
	s := "label=" + strconv.Quote(label) + ", width=" + strconv.Itoa(width) + ", output=" + strconv.FormatBool(output)
	if extra != "" {
		s += ", " + extra
	}
	return s
}

// In adds a labeled input pin.
//
func (b *Builder) In(label string, x, y, width int) *Builder {
	return b.Add(LibWiring, "Pin", x, y, pinAttrs(label, width, false, ""))
}

// Out adds a labeled output pin.
//
func (b *Builder) Out(label string, x, y, width int) *Builder {
	return b.Add(LibWiring, "Pin", x, y, pinAttrs(label, width, true, ""))
}

// Pin adds a pin with extra attributes, like "facing=west".
//
func (b *Builder) Pin(label string, x, y, width int, output bool, attrs string) *Builder {
	return b.Add(LibWiring, "Pin", x, y, pinAttrs(label, width, output, attrs))
}

// Schematic returns the built schematic.
//
func (b *Builder) Schematic() *schematic.Circuit {
	sc := b.sc
	return &sc
}

// Compile creates and compiles a circuit from the built schematic.
//
func (b *Builder) Compile(libs circsim.Libraries, opts ...circsim.Option) (*circsim.Circuit, error) {
	c := circsim.New(b.Schematic(), opts...)
	if err := c.Compile(libs); err != nil {
		return nil, err
	}
	return c, nil
}
