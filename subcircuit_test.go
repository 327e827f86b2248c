package circsim_test

import (
	"testing"

	cs "github.com/db47h/circsim"
	"github.com/db47h/circsim/circlib"
	"github.com/db47h/circsim/circtest"
	"github.com/db47h/circsim/geom"
	"github.com/db47h/circsim/schematic"
)

// inverter is a circuit with an input pin on the left and an output pin on the
// right. As a sub-circuit its ports are at (-30,0) and (0,0).
func inverter() *schematic.Circuit {
	return circtest.NewBuilder("inv").
		In("a", 10, 10, 1).
		Wire(10, 10, 30, 10).
		Add(circtest.LibGates, "NOT Gate", 60, 10, "").
		Pin("y", 60, 10, 1, true, "facing=west").
		Schematic()
}

func withCircuits(scs ...*schematic.Circuit) cs.Libraries {
	libs := circlib.Default()
	own := make(cs.Library)
	for _, sc := range scs {
		own[sc.Name] = cs.SubcircuitFactory(sc, libs)
	}
	libs[""] = own
	return libs
}

func TestSubcircuit(t *testing.T) {
	libs := withCircuits(inverter())
	c, err := circtest.NewBuilder("double").
		In("x", 170, 100, 1).
		Add("", "inv", 200, 100, "").
		Wire(200, 100, 240, 100).
		Add("", "inv", 270, 100, "").
		Out("z", 270, 100, 1).
		Out("nx", 200, 100, 1).
		Compile(libs)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	if err = c.Evaluate(); err != nil {
		t.Fatal(err)
	}
	circtest.Sweep(t, c, []string{"x"}, []string{"z", "nx"}, func(in []cs.Signal) []cs.Signal {
		return []cs.Signal{cs.NotSignal(cs.NotSignal(in[0])), cs.NotSignal(in[0])}
	}, cs.AllLevels...)

	s1, s2 := c.Components()[1].(*cs.Subcircuit), c.Components()[2].(*cs.Subcircuit)
	if s1.Circuit() == s2.Circuit() {
		t.Error("instances share their inner circuit")
	}
	if p := s1.Port("a"); p == nil || s1.PortLocation(p) != geom.Pt(170, 100) {
		t.Error("bad input port")
	}
	if p := s1.Port("y"); p == nil || !p.Muted() || s1.PortLocation(p) != geom.Pt(200, 100) {
		t.Error("bad output port")
	}
}

func TestSubcircuit_compare(t *testing.T) {
	libs := withCircuits(inverter())
	c1, err := circtest.NewBuilder("sub").
		In("a", 170, 100, 1).
		Add("", "inv", 200, 100, "").
		Out("y", 200, 100, 1).
		Compile(libs)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := circtest.NewBuilder("flat").
		In("a", 170, 100, 1).
		Add(circtest.LibGates, "NOT Gate", 200, 100, "").
		Out("y", 200, 100, 1).
		Compile(libs)
	if err != nil {
		t.Fatal(err)
	}
	circtest.Compare(t, c1, c2, cs.AllLevels...)
}

func TestSubcircuit_state(t *testing.T) {
	latch := circtest.NewBuilder("latch").
		In("d", 60, 30, 1).
		In("clk", 60, 10, 1).
		Add(circtest.LibMemory, "D Flip-Flop", 100, 10, "").
		Pin("q", 100, 10, 1, true, "facing=west").
		Schematic()
	libs := withCircuits(latch)
	c, err := circtest.NewBuilder("top").
		Add("", "latch", 100, 100, "").
		Add("", "latch", 100, 200, "").
		Compile(libs)
	if err != nil {
		t.Fatal(err)
	}
	if err = c.Evaluate(); err != nil {
		t.Fatal(err)
	}
	s1, s2 := c.Components()[0].(*cs.Subcircuit), c.Components()[1].(*cs.Subcircuit)
	in := s1.Circuit()
	for _, d := range []struct {
		l string
		b cs.Bit
	}{{"d", I}, {"clk", O}, {"clk", I}} {
		if err = in.Drive(d.l, cs.Signal{d.b}); err != nil {
			t.Fatal(err)
		}
		if err = in.Evaluate(); err != nil {
			t.Fatal(err)
		}
	}
	if q, _ := in.Read("q"); !q.Equal(cs.Signal{I}) {
		t.Fatalf("inner q = %v", q)
	}
	if s1.State().Equal(s2.State()) {
		t.Error("instances share state")
	}
}

func TestSubcircuit_missing(t *testing.T) {
	_, err := circtest.NewBuilder("top").
		Add("", "nope", 100, 100, "").
		Compile(withCircuits(inverter()))
	if err == nil {
		t.Fatal("missing sub-circuit accepted")
	}
}
