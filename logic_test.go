package circsim_test

import (
	"testing"
	"testing/quick"

	cs "github.com/db47h/circsim"
)

const (
	x = cs.Unknown
	E = cs.Error
	O = cs.Zero
	I = cs.One
)

// binary truth tables, indexed by [a][b] in encoding order x, E, 0, 1.
var tables = []struct {
	name string
	fn   func(...cs.Bit) cs.Bit
	res  [4][4]cs.Bit
}{
	{"AND", cs.And, [4][4]cs.Bit{
		{E, E, O, E},
		{E, E, O, E},
		{O, O, O, O},
		{E, E, O, I}}},
	{"OR", cs.Or, [4][4]cs.Bit{
		{E, E, E, I},
		{E, E, E, I},
		{E, E, O, I},
		{I, I, I, I}}},
	{"XOR", cs.Xor, [4][4]cs.Bit{
		{E, E, E, E},
		{E, E, E, E},
		{E, E, O, I},
		{E, E, I, O}}},
	{"NAND", cs.Nand, [4][4]cs.Bit{
		{E, E, I, E},
		{E, E, I, E},
		{I, I, I, I},
		{E, E, I, O}}},
	{"NOR", cs.Nor, [4][4]cs.Bit{
		{E, E, E, O},
		{E, E, E, O},
		{E, E, I, O},
		{O, O, O, O}}},
	{"XNOR", cs.Xnor, [4][4]cs.Bit{
		{E, E, E, E},
		{E, E, E, E},
		{E, E, I, O},
		{E, E, O, I}}},
	{"MERGE", func(b ...cs.Bit) cs.Bit { return cs.MergeBit(b[0], b[1]) }, [4][4]cs.Bit{
		{x, E, O, I},
		{E, E, E, E},
		{O, E, O, E},
		{I, E, E, I}}},
}

func Test_truthTables(t *testing.T) {
	for _, tt := range tables {
		for a := x; a <= I; a++ {
			for b := x; b <= I; b++ {
				if r := tt.fn(a, b); r != tt.res[a][b] {
					t.Errorf("%s(%v, %v) = %v, expected %v", tt.name, a, b, r, tt.res[a][b])
				}
			}
		}
	}
}

func TestNot(t *testing.T) {
	exp := [4]cs.Bit{E, E, I, O}
	for b := x; b <= I; b++ {
		if r := cs.Not(b); r != exp[b] {
			t.Errorf("NOT(%v) = %v, expected %v", b, r, exp[b])
		}
	}
	if s := cs.NotSignal(cs.Signal{x, E, O, I}); !s.Equal(cs.Signal{E, E, I, O}) {
		t.Errorf("NotSignal = %v", s)
	}
}

func Test_nAry(t *testing.T) {
	td := []struct {
		name string
		fn   func(...cs.Bit) cs.Bit
		in   []cs.Bit
		exp  cs.Bit
	}{
		{"AND", cs.And, []cs.Bit{I, I, I}, I},
		{"AND", cs.And, []cs.Bit{I, x, O}, O},
		{"AND", cs.And, []cs.Bit{I, x, I}, E},
		{"OR", cs.Or, []cs.Bit{O, O, O, O}, O},
		{"OR", cs.Or, []cs.Bit{E, O, I}, I},
		{"XOR", cs.Xor, []cs.Bit{I, I, I}, I},
		{"XOR", cs.Xor, []cs.Bit{I, I, O}, O},
		{"XOR", cs.Xor, []cs.Bit{I, I, I, I, O}, O},
		{"XOR", cs.Xor, []cs.Bit{I, O, O, O, O}, I},
		{"XOR", cs.Xor, []cs.Bit{I, I, x}, E},
	}
	for _, d := range td {
		if r := d.fn(d.in...); r != d.exp {
			t.Errorf("%s%v = %v, expected %v", d.name, d.in, r, d.exp)
		}
	}
}

func toSignal(bs []byte) cs.Signal {
	s := make(cs.Signal, len(bs))
	for i, b := range bs {
		s[i] = cs.Bit(b & 3)
	}
	return s
}

func TestMerge(t *testing.T) {
	commutative := func(a, b []byte) bool {
		if len(a) > len(b) {
			a = a[:len(b)]
		} else {
			b = b[:len(a)]
		}
		sa, sb := toSignal(a), toSignal(b)
		return cs.Merge(sa, sb).Equal(cs.Merge(sb, sa))
	}
	if err := quick.Check(commutative, nil); err != nil {
		t.Error(err)
	}
	identity := func(a []byte) bool {
		s := toSignal(a)
		return cs.Merge(s, nil).Equal(s) && cs.Merge(nil, s).Equal(s) && cs.Merge(s, s).Equal(s)
	}
	if err := quick.Check(identity, nil); err != nil {
		t.Error(err)
	}
	unknown := func(a []byte) bool {
		s := toSignal(a)
		return cs.Merge(s, cs.MakeSignal(len(s), x)).Equal(s)
	}
	if err := quick.Check(unknown, nil); err != nil {
		t.Error(err)
	}
	if r := cs.Merge(cs.Signal{O, I}, cs.Signal{I, I}); !r.Equal(cs.Signal{E, I}) {
		t.Errorf("conflict not detected: %v", r)
	}
	defer func() {
		if recover() == nil {
			t.Error("width mismatch did not panic")
		}
	}()
	cs.Merge(cs.Signal{O}, cs.Signal{O, I})
}

func TestIncrement(t *testing.T) {
	td := []struct {
		in, exp cs.Signal
	}{
		{cs.Signal{O, O}, cs.Signal{O, I}},
		{cs.Signal{O, I}, cs.Signal{I, O}},
		{cs.Signal{I, I}, cs.Signal{O, O}},
		{cs.Signal{O, I, I}, cs.Signal{I, O, O}},
		{cs.Signal{O, x}, cs.Signal{E, E}},
		{cs.Signal{x, I}, cs.Signal{E, O}},
		{cs.Signal{I, E, I}, cs.Signal{E, E, O}},
		{cs.Signal{x, O}, cs.Signal{x, I}},
	}
	for _, d := range td {
		if r := cs.Increment(d.in); !r.Equal(d.exp) {
			t.Errorf("Increment(%v) = %v, expected %v", d.in, r, d.exp)
		}
	}
}

func TestCombinations(t *testing.T) {
	var got []string
	for s := range cs.Combinations(2) {
		got = append(got, s.String())
	}
	// String prints the last element first.
	exp := []string{"00", "10", "01", "11"}
	if len(got) != len(exp) {
		t.Fatalf("got %v", got)
	}
	for i := range exp {
		if got[i] != exp[i] {
			t.Fatalf("got %v, expected %v", got, exp)
		}
	}

	n := 0
	cs.EachCombination(3, func(cs.Signal) bool { n++; return true }, cs.AllLevels...)
	if n != 64 || cs.CountCombinations(3, cs.AllLevels...) != 64 {
		t.Errorf("got %d combinations over 4 levels", n)
	}

	n = 0
	cs.EachCombination(4, func(cs.Signal) bool { n++; return n < 5 })
	if n != 5 {
		t.Errorf("early stop: %d calls", n)
	}

	n = 0
	for range cs.Combinations(0) {
		n++
	}
	if n != 1 {
		t.Errorf("width 0: %d combinations", n)
	}
}
