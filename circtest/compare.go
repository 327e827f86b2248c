// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package circtest provides utility functions for testing circuits.
//
package circtest

import (
	"sort"
	"strings"
	"testing"

	"github.com/db47h/circsim"
)

// Labels returns the sorted labels of the input and output pins of c.
//
func Labels(c *circsim.Circuit) (inputs, outputs []string) {
	for l := range c.InputPinsLabeled() {
		inputs = append(inputs, l)
	}
	for l := range c.OutputPinsLabeled() {
		outputs = append(outputs, l)
	}
	sort.Strings(inputs)
	sort.Strings(outputs)
	return inputs, outputs
}

func describe(labels []string, ss []circsim.Signal) string {
	var b strings.Builder
	for i, l := range labels {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l)
		b.WriteByte('=')
		b.WriteString(ss[i].String())
	}
	return b.String()
}

// Sweep drives every combination of values from alphabet (Levels if empty) on
// the labeled inputs of c and calls check with the inputs and the value read
// on each of the outputs. check returns the expected output values; a mismatch
// fails the test.
//
func Sweep(t testing.TB, c *circsim.Circuit, inputs, outputs []string, check func(in []circsim.Signal) []circsim.Signal, alphabet ...circsim.Bit) {
	t.Helper()
	rows, err := c.TruthTable(inputs, outputs, alphabet...)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		exp := check(r.In)
		for i, o := range outputs {
			if !exp[i].Equal(r.Out[i]) {
				t.Errorf("%s: %s => %s=%v, got %v", c.Name(), describe(inputs, r.In), o, exp[i], r.Out[i])
			}
		}
	}
}

// Compare checks that two circuits with the same pin labels produce the same
// outputs for every input combination.
//
func Compare(t testing.TB, c1, c2 *circsim.Circuit, alphabet ...circsim.Bit) {
	t.Helper()
	in1, out1 := Labels(c1)
	in2, out2 := Labels(c2)
	if strings.Join(in1, ",") != strings.Join(in2, ",") {
		t.Fatalf("input mismatch: %v != %v", in1, in2)
	}
	if strings.Join(out1, ",") != strings.Join(out2, ",") {
		t.Fatalf("output mismatch: %v != %v", out1, out2)
	}
	rows1, err := c1.TruthTable(in1, out1, alphabet...)
	if err != nil {
		t.Fatal(err)
	}
	rows2, err := c2.TruthTable(in1, out1, alphabet...)
	if err != nil {
		t.Fatal(err)
	}
	for i := range rows1 {
		for o, l := range out1 {
			if !rows1[i].Out[o].Equal(rows2[i].Out[o]) {
				t.Errorf("%s => %s: %s=%v, %s=%v", describe(in1, rows1[i].In), l, c1.Name(), rows1[i].Out[o], c2.Name(), rows2[i].Out[o])
			}
		}
	}
	t.Logf("%d combinations, %d vs %d components", len(rows1), len(c1.Components()), len(c2.Components()))
}
