package circsim_test

import (
	"testing"

	cs "github.com/db47h/circsim"
)

func TestParseSignal(t *testing.T) {
	td := []struct {
		in  string
		exp cs.Signal
		err bool
	}{
		{"0", cs.Signal{O}, false},
		{"10", cs.Signal{O, I}, false},
		{"1x0E", cs.Signal{E, O, x, I}, false},
		{"1111_0000", cs.Signal{O, O, O, O, I, I, I, I}, false},
		{"0x5", cs.Signal{I, O, I, O}, false},
		{"0xA_1", cs.Signal{I, O, O, O, O, I, O, I}, false},
		{"", nil, true},
		{"012", nil, true},
		{"0x", nil, true},
		{"0xg", nil, true},
	}
	for _, d := range td {
		s, err := cs.ParseSignal(d.in)
		if (err != nil) != d.err {
			t.Errorf("ParseSignal(%q): unexpected error state: %v", d.in, err)
			continue
		}
		if !s.Equal(d.exp) {
			t.Errorf("ParseSignal(%q) = %v, expected %v", d.in, s, d.exp)
		}
	}
}

func TestSignal_String(t *testing.T) {
	for _, str := range []string{"0", "1", "x", "E", "10xE", "0110"} {
		s, err := cs.ParseSignal(str)
		if err != nil {
			t.Fatal(err)
		}
		if s.String() != str {
			t.Errorf("%q -> %q", str, s.String())
		}
	}
}

func TestSignal_Uint64(t *testing.T) {
	s := cs.FromUint64(0xa5, 8)
	if s.String() != "10100101" {
		t.Fatalf("FromUint64(0xa5) = %v", s)
	}
	if v, ok := s.Uint64(); !ok || v != 0xa5 {
		t.Fatalf("Uint64() = %x, %v", v, ok)
	}
	if _, ok := (cs.Signal{O, x}).Uint64(); ok {
		t.Fatal("undetermined signal converted")
	}
	if s := cs.FromUint64(0xff, 4); s.String() != "1111" {
		t.Fatalf("truncation: %v", s)
	}
	if !cs.MakeSignal(3, I).Determined() || cs.MakeSignal(3, E).Determined() {
		t.Fatal("Determined")
	}
}
