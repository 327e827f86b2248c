package geom_test

import (
	"testing"

	"github.com/db47h/circsim/geom"
)

func TestParsePoint(t *testing.T) {
	td := []struct {
		in  string
		p   geom.Point
		err bool
	}{
		{"(10,20)", geom.Pt(10, 20), false},
		{"(-10, 20)", geom.Pt(-10, 20), false},
		{" ( 0 , -5 ) ", geom.Pt(0, -5), false},
		{"10,20", geom.Point{}, true},
		{"(10;20)", geom.Point{}, true},
		{"(a,2)", geom.Point{}, true},
	}
	for _, d := range td {
		p, err := geom.ParsePoint(d.in)
		if (err != nil) != d.err {
			t.Errorf("ParsePoint(%q): unexpected error state: %v", d.in, err)
			continue
		}
		if p != d.p {
			t.Errorf("ParsePoint(%q) = %v, expected %v", d.in, p, d.p)
		}
	}
	if s := geom.Pt(-3, 4).String(); s != "(-3,4)" {
		t.Errorf("String() = %q", s)
	}
}

func TestLine(t *testing.T) {
	l, err := geom.NewLine(geom.Pt(50, 10), geom.Pt(10, 10))
	if err != nil {
		t.Fatal(err)
	}
	if l.A != geom.Pt(10, 10) || l.B != geom.Pt(50, 10) {
		t.Fatalf("line ends not sorted: %v", l)
	}
	if !l.Horizontal() || l.Vertical() {
		t.Fatal("expected horizontal line")
	}
	for _, p := range []geom.Point{{10, 10}, {30, 10}, {50, 10}} {
		if !l.Contains(p) {
			t.Errorf("%v should contain %v", l, p)
		}
	}
	for _, p := range []geom.Point{{0, 10}, {30, 20}, {60, 10}} {
		if l.Contains(p) {
			t.Errorf("%v should not contain %v", l, p)
		}
	}
	if _, err = geom.NewLine(geom.Pt(0, 0), geom.Pt(10, 10)); err == nil {
		t.Fatal("diagonal line accepted")
	}

	v := geom.MustLine(geom.Pt(30, 0), geom.Pt(30, 10))
	if !l.Touches(v) || !v.Touches(l) {
		t.Error("T junction not detected")
	}
	cross := geom.MustLine(geom.Pt(20, 0), geom.Pt(20, 30))
	if l.Touches(cross) {
		t.Error("crossing lines must not touch")
	}
}

func TestRotate(t *testing.T) {
	p := geom.Pt(-50, -20)
	td := []struct {
		f   geom.Facing
		exp geom.Point
	}{
		{geom.East, geom.Pt(-50, -20)},
		{geom.North, geom.Pt(-20, 50)},
		{geom.West, geom.Pt(50, 20)},
		{geom.South, geom.Pt(20, -50)},
	}
	for _, d := range td {
		if r := p.Rotate(d.f); r != d.exp {
			t.Errorf("%v.Rotate(%v) = %v, expected %v", p, d.f, r, d.exp)
		}
	}
	if r := p.Flip(geom.AxisX); r != geom.Pt(50, -20) {
		t.Errorf("Flip(X) = %v", r)
	}
	if r := p.Flip(geom.AxisY); r != geom.Pt(-50, 20) {
		t.Errorf("Flip(Y) = %v", r)
	}
}

func TestFacing(t *testing.T) {
	for _, s := range []string{"east", "north", "west", "south"} {
		f, err := geom.ParseFacing(s)
		if err != nil {
			t.Fatal(err)
		}
		if f.String() != s {
			t.Errorf("round trip %q -> %q", s, f)
		}
		if f.Reverse().Reverse() != f {
			t.Errorf("double reverse of %v", f)
		}
	}
	if geom.East.Reverse() != geom.West || geom.North.Reverse() != geom.South {
		t.Error("bad reverse")
	}
	if _, err := geom.ParseFacing("up"); err == nil {
		t.Error("invalid facing accepted")
	}
}
