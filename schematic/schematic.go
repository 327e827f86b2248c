// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package schematic holds the parsed form of a Logisim project: libraries,
// circuits, wire segments and component descriptors.
//
// Descriptors are plain data. They are consumed once by the simulator when a
// circuit is compiled and are never modified afterwards.
//
package schematic

import (
	"strconv"
	"strings"

	"github.com/db47h/circsim/geom"
	"github.com/pkg/errors"
)

// Attributes maps attribute names to their raw string value.
//
type Attributes map[string]string

// String returns the value of attribute key, or def if not set.
//
func (a Attributes) String(key, def string) string {
	if v, ok := a[key]; ok {
		return v
	}
	return def
}

// Int returns the decimal integer value of attribute key, or def if not set.
//
func (a Attributes) Int(key string, def int) (int, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def, errors.Wrapf(err, "attribute %s", key)
	}
	return n, nil
}

// Uint returns the value of attribute key parsed as an unsigned integer, or
// def if not set. Values prefixed with 0x are hexadecimal.
//
func (a Attributes) Uint(key string, def uint64) (uint64, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	v = strings.TrimSpace(v)
	base := 10
	if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
		v, base = v[2:], 16
	}
	n, err := strconv.ParseUint(v, base, 64)
	if err != nil {
		return def, errors.Wrapf(err, "attribute %s", key)
	}
	return n, nil
}

// Hex returns the value of attribute key parsed as a hexadecimal unsigned
// integer, with or without a 0x prefix, or def if not set.
//
func (a Attributes) Hex(key string, def uint64) (uint64, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
		v = v[2:]
	}
	n, err := strconv.ParseUint(v, 16, 64)
	if err != nil {
		return def, errors.Wrapf(err, "attribute %s", key)
	}
	return n, nil
}

// Bool returns the value of attribute key ("true" or "false"), or def if not set.
//
func (a Attributes) Bool(key string, def bool) (bool, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return def, errors.Errorf("attribute %s: invalid boolean %q", key, v)
}

// Facing returns the value of the "facing" attribute, or def if not set.
//
func (a Attributes) Facing(def geom.Facing) (geom.Facing, error) {
	v, ok := a["facing"]
	if !ok {
		return def, nil
	}
	return geom.ParseFacing(v)
}

// Component describes one component instance in a circuit.
//
type Component struct {
	Lib        string // library id, empty for circuits of the same project.
	Name       string // component type name within the library.
	Location   geom.Point
	Attributes Attributes
}

// String returns a short description like `"AND Gate" at (100,50)`.
//
func (c *Component) String() string {
	return strconv.Quote(c.Name) + " at " + c.Location.String()
}

// Circuit is a circuit schematic.
//
type Circuit struct {
	Name       string
	Label      string
	Wires      []geom.Line
	Components []Component
}

// Library is a library reference in a project.
//
type Library struct {
	ID       string // id used by components to reference the library.
	Desc     string // raw description, "#Wiring" or "file#path/to/lib.circ".
	Path     string // built-in library name or external project path.
	External bool
}

// Project is a parsed project file.
//
type Project struct {
	Source    string
	Version   string
	Main      string
	Libraries []Library
	Circuits  []Circuit
}

// Circuit returns the circuit with the given name or nil if not found.
//
func (p *Project) Circuit(name string) *Circuit {
	for i := range p.Circuits {
		if p.Circuits[i].Name == name {
			return &p.Circuits[i]
		}
	}
	return nil
}

// ParseLibraryDesc splits a library description into its path and whether it
// references an external file.
//
//	ParseLibraryDesc("#Gates")           // "Gates", false
//	ParseLibraryDesc("file#adder.circ")  // "adder.circ", true
//
func ParseLibraryDesc(desc string) (path string, external bool) {
	kind, path, ok := strings.Cut(desc, "#")
	if !ok {
		return desc, false
	}
	return path, kind != ""
}
