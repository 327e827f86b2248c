// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package geom

import (
	"strconv"

	"github.com/pkg/errors"
)

// Transform is a 2x2 integer matrix.
//
type Transform [2][2]int

// Axis identifies a mirroring axis.
//
type Axis int

// Mirroring axes.
const (
	AxisX Axis = iota
	AxisY
)

// Facing is the direction a part points to. Parts are designed facing East.
//
type Facing int

// Facings.
const (
	East Facing = iota
	North
	West
	South
)

var facingNames = [...]string{East: "east", North: "north", West: "west", South: "south"}

func (f Facing) String() string {
	if f < East || f > South {
		return "Facing(" + strconv.Itoa(int(f)) + ")"
	}
	return facingNames[f]
}

// ParseFacing parses a facing attribute value ("east", "north", "west" or "south").
//
func ParseFacing(s string) (Facing, error) {
	for i, n := range facingNames {
		if s == n {
			return Facing(i), nil
		}
	}
	return East, errors.Errorf("invalid facing %q", s)
}

// Reverse returns the opposite direction.
//
func (f Facing) Reverse() Facing {
	return (f + 2) & 3
}

// Vertical reports whether f is North or South.
func (f Facing) Vertical() bool { return f == North || f == South }

var rotations = [...]Transform{
	East:  {{1, 0}, {0, 1}},
	North: {{0, 1}, {-1, 0}},
	West:  {{-1, 0}, {0, -1}},
	South: {{0, -1}, {1, 0}},
}

var mirrors = [...]Transform{
	AxisX: {{-1, 0}, {0, 1}},
	AxisY: {{1, 0}, {0, -1}},
}

// Rotation returns the transform that turns an east facing layout into one
// facing f.
//
func Rotation(f Facing) Transform { return rotations[f&3] }

// Mirror returns the transform that mirrors across axis a.
//
func Mirror(a Axis) Transform { return mirrors[a&1] }
