package circsim_test

import (
	"testing"

	cs "github.com/db47h/circsim"
	"github.com/db47h/circsim/circlib"
	"github.com/db47h/circsim/circtest"
	"github.com/pkg/errors"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func mustCompile(t *testing.T, b *circtest.Builder, opts ...cs.Option) *cs.Circuit {
	t.Helper()
	c, err := b.Compile(circlib.Default(), opts...)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	if err = c.Evaluate(); err != nil {
		t.Fatal(err)
	}
	return c
}

func same(in []cs.Signal) []cs.Signal { return in }

func TestCircuit_pins(t *testing.T) {
	for _, w := range []int{1, 2} {
		c := mustCompile(t, circtest.NewBuilder("pins").
			In("a", 10, 10, w).
			Wire(10, 10, 50, 10).
			Out("y", 50, 10, w))
		circtest.Sweep(t, c, []string{"a"}, []string{"y"}, same, cs.AllLevels...)

		nets := c.Networks()
		if len(nets) != 1 || nets[0].Width() != w || len(nets[0].Ports()) != 2 || len(nets[0].Lines()) != 1 {
			t.Fatalf("width %d: bad networks", w)
		}
	}
}

func TestCircuit_implicitNetwork(t *testing.T) {
	c := mustCompile(t, circtest.NewBuilder("implicit").
		In("a", 10, 10, 1).
		Out("y", 10, 10, 1).
		Out("z", 20, 10, 1))
	circtest.Sweep(t, c, []string{"a"}, []string{"y"}, same)
	if len(c.Networks()) != 1 || c.Networks()[0].Lines() != nil {
		t.Fatalf("expected a single implicit network, got %d", len(c.Networks()))
	}
	// a lone port floats
	if s, _ := c.Read("z"); !s.Equal(cs.Signal{x}) {
		t.Errorf("unconnected output pin reads %v", s)
	}
}

func TestCircuit_merge(t *testing.T) {
	c := mustCompile(t, circtest.NewBuilder("merge").
		In("a", 10, 10, 1).
		In("b", 10, 30, 1).
		Wire(10, 10, 10, 30).
		Wire(10, 20, 50, 20).
		Out("y", 50, 20, 1))
	circtest.Sweep(t, c, []string{"a", "b"}, []string{"y"}, func(in []cs.Signal) []cs.Signal {
		return []cs.Signal{{cs.MergeBit(in[0][0], in[1][0])}}
	}, cs.AllLevels...)
}

func TestCircuit_constants(t *testing.T) {
	c := mustCompile(t, circtest.NewBuilder("constants").
		Add(circtest.LibWiring, "Constant", 10, 10, "width=4, value=0xa").
		Out("k", 10, 10, 4).
		Add(circtest.LibWiring, "Power", 10, 20, "width=2").
		Out("vcc", 10, 20, 2).
		Add(circtest.LibWiring, "Constant", 10, 40, "width=8, value=10").
		Out("k16", 10, 40, 8).
		Add(circtest.LibWiring, "Ground", 10, 30, "").
		Wire(10, 30, 30, 30).
		Add(circtest.LibWiring, "Probe", 30, 30, "label=gnd"))
	for _, d := range []struct {
		label string
		exp   string
	}{{"k", "1010"}, {"vcc", "11"}, {"gnd", "0"}, {"k16", "00010000"}} {
		s, err := c.Read(d.label)
		if err != nil {
			t.Fatal(err)
		}
		if s.String() != d.exp {
			t.Errorf("%s = %v, expected %s", d.label, s, d.exp)
		}
	}
	if _, err := c.Read("nope"); err == nil {
		t.Error("reading a missing label succeeded")
	}
}

func TestCircuit_drive(t *testing.T) {
	c := mustCompile(t, circtest.NewBuilder("drive").
		In("a", 10, 10, 2).
		In("a", 10, 30, 2).
		Out("y", 10, 10, 2).
		Out("z", 10, 30, 2))
	if err := c.Drive("a", cs.Signal{I, O}); err != nil {
		t.Fatal(err)
	}
	if err := c.Evaluate(); err != nil {
		t.Fatal(err)
	}
	for _, l := range []string{"y", "z"} {
		if s, _ := c.Read(l); !s.Equal(cs.Signal{I, O}) {
			t.Errorf("%s = %v", l, s)
		}
	}
	if err := c.Drive("a", cs.Signal{I}); !errors.Is(err, cs.ErrWidthMismatch) {
		t.Errorf("width mismatch: got %v", err)
	}
	if err := c.Drive("b", cs.Signal{I}); err == nil {
		t.Error("driving a missing pin succeeded")
	}
}

func TestCircuit_solderWidth(t *testing.T) {
	_, err := circtest.NewBuilder("solder").
		In("a", 10, 10, 2).
		Out("y", 10, 10, 1).
		Compile(circlib.Default())
	if !errors.Is(err, cs.ErrWidthMismatch) {
		t.Fatalf("expected a width mismatch, got %v", err)
	}
	_, err = circtest.NewBuilder("solder").
		In("a", 10, 10, 2).
		Wire(10, 10, 30, 10).
		Out("y", 30, 10, 3).
		Compile(circlib.Default())
	if !errors.Is(err, cs.ErrWidthMismatch) {
		t.Fatalf("expected a width mismatch, got %v", err)
	}
}

func TestCircuit_compileErrors(t *testing.T) {
	b := circtest.NewBuilder("errors").In("a", 10, 10, 1)
	c := cs.New(b.Schematic())
	if err := c.Evaluate(); !errors.Is(err, cs.ErrNotCompiled) {
		t.Errorf("evaluate before compile: %v", err)
	}
	if err := c.Compile(circlib.Default()); err != nil {
		t.Fatal(err)
	}
	if !c.Compiled() {
		t.Error("not compiled")
	}
	if err := c.Compile(circlib.Default()); !errors.Is(err, cs.ErrCompiled) {
		t.Errorf("double compile: %v", err)
	}

	b = circtest.NewBuilder("missing").
		In("a", 10, 10, 1).
		Add("42", "Thing", 20, 20, "")
	if _, err := b.Compile(circlib.Default()); !errors.Is(err, cs.ErrMissingLibrary) {
		t.Errorf("missing library: %v", err)
	}
	failed := cs.New(b.Schematic())
	if err := failed.Compile(circlib.Default()); err == nil {
		t.Fatal("missing library accepted")
	}
	if err := failed.Compile(circlib.Default()); !errors.Is(err, cs.ErrCompiled) {
		t.Errorf("compile after failure: %v", err)
	}
	if failed.Compiled() {
		t.Error("failed circuit reports compiled")
	}
	c, err := b.Compile(circlib.Default(), cs.Permissive())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Components()) != 1 {
		t.Errorf("permissive compile: %d components", len(c.Components()))
	}

	b = circtest.NewBuilder("missing").Add(circtest.LibGates, "Majority Gate", 20, 20, "")
	if _, err := b.Compile(circlib.Default()); !errors.Is(err, cs.ErrMissingComponent) {
		t.Errorf("missing component: %v", err)
	}

	b = circtest.NewBuilder("facing").Add(circtest.LibGates, "AND Gate", 20, 20, "facing=up")
	if _, err := b.Compile(circlib.Default()); err == nil {
		t.Error("invalid facing accepted")
	}
}

// oscillator returns an AND gate feeding an inverter looped back to the gate.
// The loop oscillates while en is One.
func oscillator() *circtest.Builder {
	return circtest.NewBuilder("oscillator").
		In("en", 50, 80, 1).
		Add(circtest.LibGates, "AND Gate", 100, 100, "inputs=2").
		Wire(100, 100, 120, 100).
		Add(circtest.LibGates, "NOT Gate", 150, 100, "").
		Wire(150, 100, 150, 140).
		Wire(150, 140, 50, 140).
		Wire(50, 140, 50, 120).
		Out("y", 150, 100, 1)
}

func TestCircuit_oscillation(t *testing.T) {
	c := mustCompile(t, oscillator(), cs.MaxUpdates(1000))
	if s, _ := c.Read("y"); !s.Equal(cs.Signal{I}) {
		t.Fatalf("stable output = %v", s)
	}
	if err := c.Drive("en", cs.Signal{I}); err != nil {
		t.Fatal(err)
	}
	if err := c.Evaluate(); !errors.Is(err, cs.ErrOscillation) {
		t.Fatalf("expected oscillation, got %v", err)
	}
	if c.Pending() == 0 {
		t.Fatal("no pending updates after oscillation")
	}
	c.ClearUpdates()
	if c.Pending() != 0 {
		t.Fatal("updates not cleared")
	}

	// back to a stable state
	if err := c.Drive("en", cs.Signal{O}); err != nil {
		t.Fatal(err)
	}
	if err := c.Evaluate(); err != nil {
		t.Fatal(err)
	}
}

func TestCircuit_step(t *testing.T) {
	c := mustCompile(t, circtest.NewBuilder("step").
		In("a", 70, 100, 1).
		Add(circtest.LibGates, "NOT Gate", 100, 100, "").
		Out("y", 100, 100, 1))
	if c.Pending() != 0 {
		t.Fatalf("%d pending updates", c.Pending())
	}
	if err := c.Drive("a", cs.Signal{I}); err != nil {
		t.Fatal(err)
	}
	n := 1
	for c.Step() {
		n++
	}
	// input wire, gate, output wire
	if n != 3 {
		t.Errorf("%d steps", n)
	}
	if s, _ := c.Read("y"); !s.Equal(cs.Signal{O}) {
		t.Errorf("y = %v", s)
	}
	if c.Step() {
		t.Error("pending updates on a settled circuit")
	}
}

func TestCircuit_StateHash(t *testing.T) {
	c := mustCompile(t, circtest.NewBuilder("hash").
		In("d", 160, 120, 1).
		In("clk", 160, 100, 1).
		Add(circtest.LibMemory, "D Flip-Flop", 200, 100, "").
		Out("q", 200, 100, 1))
	h0 := c.StateHash()
	if c.StateHash() != h0 {
		t.Fatal("unstable hash")
	}
	drive := func(l string, b cs.Bit) {
		t.Helper()
		if err := c.Drive(l, cs.Signal{b}); err != nil {
			t.Fatal(err)
		}
		if err := c.Evaluate(); err != nil {
			t.Fatal(err)
		}
	}
	drive("d", I)
	h1 := c.StateHash()
	if h1 == h0 {
		t.Error("input change not hashed")
	}
	drive("clk", I)
	drive("clk", O)
	drive("d", O)
	// same inputs as h0, different memory contents
	if h := c.StateHash(); h == h0 {
		t.Error("memory contents not hashed")
	}
}
