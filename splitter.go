// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"strconv"

	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
)

// Splitter appearances.
const (
	AppearLeft   = "left"
	AppearRight  = "right"
	AppearCenter = "center"
	AppearLegacy = "legacy"
)

type fanBit struct {
	fan int // -1 if the bit is not mapped
	bit int
}

// A Splitter splits a bus into smaller ones, or combines smaller buses into a
// wider one.
//
// Once networks are built, the wires on either side are merged and the
// splitter disappears from the circuit.
//
type Splitter struct {
	Base
	appear  string
	root    *Port
	fans    []*Port
	mapping []fanBit
}

// NewSplitter creates a splitter. Attributes: incoming (2), fanout (2), appear
// (left), facing and bitN, the fan index of bit N or "none". Bits without a
// bitN attribute are spread over the fans in contiguous groups, earlier fans
// getting the extra bits.
//
func NewSplitter(d *schematic.Component) (Component, error) {
	s := new(Splitter)
	if err := s.Init(d); err != nil {
		return nil, err
	}
	a := d.Attributes
	bits, err := a.Int("incoming", 2)
	if err != nil {
		return nil, errors.Wrap(err, d.String())
	}
	fanout, err := a.Int("fanout", 2)
	if err != nil {
		return nil, errors.Wrap(err, d.String())
	}
	if bits < 1 || fanout < 1 {
		return nil, errors.Errorf("%v: invalid splitter size %d/%d", d, bits, fanout)
	}
	s.appear = a.String("appear", AppearLeft)
	justify := 0
	switch s.appear {
	case AppearLeft:
		justify = -1
	case AppearRight:
		justify = 1
	case AppearCenter, AppearLegacy:
	default:
		return nil, errors.Errorf("%v: invalid appearance %q", d, s.appear)
	}

	dist := Distribution(fanout, bits)
	widths := make([]int, fanout)
	s.mapping = make([]fanBit, bits)
	for i := range s.mapping {
		fan := dist[i]
		if v, ok := a["bit"+strconv.Itoa(i)]; ok {
			if v == "none" {
				fan = -1
			} else if fan, err = strconv.Atoi(v); err != nil || fan < 0 || fan >= fanout {
				return nil, errors.Errorf("%v: invalid fan %q for bit %d", d, v, i)
			}
		}
		if fan < 0 {
			s.mapping[i] = fanBit{fan: -1}
			continue
		}
		s.mapping[i] = fanBit{fan, widths[fan]}
		widths[fan]++
	}

	s.root = s.AddPort("combined", geom.Pt(0, 0), bits, true)
	d0, dd := fanLayout(s.facing, justify, fanout)
	for i := 0; i < fanout; i++ {
		off := geom.Pt(d0.X+i*dd.X, d0.Y+i*dd.Y)
		s.fans = append(s.fans, s.AddPort(strconv.Itoa(i), off, widths[i], true))
	}
	return s, nil
}

// Distribution returns the default fan index of each of the bits of a
// splitter with the given fanout.
//
func Distribution(fanout, bits int) []int {
	d := make([]int, bits)
	if fanout >= bits {
		for i := range d {
			d[i] = i
		}
		return d
	}
	per, extra := bits/fanout, bits%fanout
	fan, left := -1, 0
	for i := range d {
		if left == 0 {
			fan++
			left = per
			if extra > 0 {
				left++
				extra--
			}
		}
		d[i] = fan
		left--
	}
	return d
}

// fanLayout returns the offset of the first fan and the step between fans.
// Offsets are computed for the actual facing, not rotated afterwards.
//
func fanLayout(f geom.Facing, justify, fanout int) (d0, dd geom.Point) {
	const width = 20
	if f.Vertical() {
		m := 1
		if f == geom.South {
			m = -1
		}
		switch {
		case justify == 0:
			d0.X = 10 * ((fanout+1)/2 - 1)
		case m*justify < 0:
			d0.X = -10
		default:
			d0.X = 10 * fanout
		}
		d0.Y = -m * width
		return d0, geom.Pt(-10, 0)
	}
	m := 1
	if f == geom.West {
		m = -1
	}
	d0.X = m * width
	switch {
	case justify == 0:
		d0.Y = -10 * (fanout / 2)
	case m*justify > 0:
		d0.Y = 10
	default:
		d0.Y = -10 * fanout
	}
	return d0, geom.Pt(0, 10)
}

// LocatePort implements PortLocator. Fan offsets already account for the
// splitter facing.
//
func (s *Splitter) LocatePort(p *Port) geom.Point {
	return s.loc.Add(p.offset)
}

// Appearance returns the splitter appearance.
func (s *Splitter) Appearance() string { return s.appear }

// Root returns the combined port.
func (s *Splitter) Root() *Port { return s.root }

// Fans returns the split ports.
func (s *Splitter) Fans() []*Port { return s.fans }

// Map returns the fan and fan bit index of root bit i. fan is -1 for
// unmapped bits.
//
func (s *Splitter) Map(i int) (fan, bit int) {
	m := s.mapping[i]
	return m.fan, m.bit
}

// Update implements Component.
func (s *Splitter) Update() {}

func (s *Splitter) dissolve(c *Circuit) error {
	for i, m := range s.mapping {
		if m.fan < 0 {
			continue
		}
		rw, fw := s.root.conns[i].wire, s.fans[m.fan].conns[m.bit].wire
		if rw != nil && fw != nil {
			c.arena.merge(rw, fw)
		}
	}
	return nil
}
