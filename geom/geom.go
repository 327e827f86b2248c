// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package geom provides the integer grid geometry used to lay out schematics:
// points, axis-aligned wire segments, facings and the 90° transforms between
// them.
//
package geom

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Point is a location on the schematic grid.
//
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
//
func Pt(x, y int) Point { return Point{x, y} }

// Add returns p+q.
//
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
//
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Transform applies the 2x2 matrix t to p.
//
func (p Point) Transform(t Transform) Point {
	return Point{
		t[0][0]*p.X + t[0][1]*p.Y,
		t[1][0]*p.X + t[1][1]*p.Y,
	}
}

// Rotate rotates p around the origin so that a part facing east ends up facing f.
//
func (p Point) Rotate(f Facing) Point {
	return p.Transform(Rotation(f))
}

// Flip mirrors p across the given axis.
//
func (p Point) Flip(a Axis) Point {
	return p.Transform(Mirror(a))
}

// String returns p in the "(x,y)" form used by schematic files.
//
func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// ParsePoint parses a point in the "(x,y)" form. Spaces around the
// coordinates are allowed.
//
func ParsePoint(s string) (Point, error) {
	t := strings.TrimSpace(s)
	if len(t) < 5 || t[0] != '(' || t[len(t)-1] != ')' {
		return Point{}, errors.Errorf("invalid point %q", s)
	}
	xs, ys, ok := strings.Cut(t[1:len(t)-1], ",")
	if !ok {
		return Point{}, errors.Errorf("invalid point %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, errors.Wrapf(err, "invalid point %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, errors.Wrapf(err, "invalid point %q", s)
	}
	return Point{x, y}, nil
}

// Line is an horizontal or vertical wire segment. A is always the smaller end.
//
type Line struct {
	A, B Point
}

// NewLine returns the segment between a and b with its ends ordered.
// Diagonal segments are rejected.
//
func NewLine(a, b Point) (Line, error) {
	if a.X != b.X && a.Y != b.Y {
		return Line{}, errors.Errorf("line %v-%v is neither horizontal nor vertical", a, b)
	}
	if b.X < a.X || b.Y < a.Y {
		a, b = b, a
	}
	return Line{a, b}, nil
}

// MustLine is like NewLine but panics on diagonal segments.
//
func MustLine(a, b Point) Line {
	l, err := NewLine(a, b)
	if err != nil {
		panic(err)
	}
	return l
}

// Horizontal reports whether l is horizontal.
func (l Line) Horizontal() bool { return l.A.Y == l.B.Y }

// Vertical reports whether l is vertical.
func (l Line) Vertical() bool { return l.A.X == l.B.X }

// Contains reports whether p lies on l, ends included.
//
func (l Line) Contains(p Point) bool {
	return p.X >= l.A.X && p.X <= l.B.X && p.Y >= l.A.Y && p.Y <= l.B.Y
}

// Touches reports whether l and m are electrically connected, that is if an
// end of one lies on the other. Crossing segments do not touch.
//
func (l Line) Touches(m Line) bool {
	return l.Contains(m.A) || l.Contains(m.B) || m.Contains(l.A) || m.Contains(l.B)
}

func (l Line) String() string {
	return l.A.String() + "-" + l.B.String()
}
