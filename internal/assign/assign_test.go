package assign_test

import (
	"reflect"
	"testing"

	"github.com/db47h/circsim/internal/assign"
)

func TestParse(t *testing.T) {
	td := []struct {
		in  string
		out []assign.Assignment
		err bool
	}{
		{"", nil, false},
		{"  ", nil, false},
		{"a=1", []assign.Assignment{{"a", "1", 0}}, false},
		{"a=1, b = 0x0f,c=10xE", []assign.Assignment{{"a", "1", 0}, {"b", "0x0f", 5}, {"c", "10xE", 14}}, false},
		{`label="carry in", 6_A=north`, []assign.Assignment{{"label", "carry in", 0}, {"6_A", "north", 18}}, false},
		{`x="a\"b"`, []assign.Assignment{{"x", `a"b`, 0}}, false},
		{"a", nil, true},
		{"a=", nil, true},
		{"=1", nil, true},
		{"a=1 b=2", nil, true},
		{`a="open`, nil, true},
	}
	for _, d := range td {
		out, err := assign.Parse(d.in)
		if (err != nil) != d.err {
			t.Errorf("Parse(%q): unexpected error state: %v", d.in, err)
			continue
		}
		if !d.err && !reflect.DeepEqual(out, d.out) {
			t.Errorf("Parse(%q) = %v, expected %v", d.in, out, d.out)
		}
	}
}

func TestMap(t *testing.T) {
	m, err := assign.Map("width=8, facing=north")
	if err != nil {
		t.Fatal(err)
	}
	if m["width"] != "8" || m["facing"] != "north" || len(m) != 2 {
		t.Fatalf("bad map %v", m)
	}
	if _, err = assign.Map("a=1, a=2"); err == nil {
		t.Fatal("duplicate name accepted")
	}
}
