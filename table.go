// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"github.com/pkg/errors"
)

// A Row is one line of a truth table.
//
type Row struct {
	In  []Signal
	Out []Signal
}

// Sweep drives every combination of values drawn from alphabet (Levels if
// empty) on the input pins with the given labels, evaluates the circuit and
// calls fn with the driven inputs. Inputs are counted as one big number, the
// last bit of the last input changing fastest. Sweep stops at the first
// error returned by Evaluate or fn.
//
func (c *Circuit) Sweep(inputs []string, fn func(in []Signal) error, alphabet ...Bit) error {
	labeled := c.InputPinsLabeled()
	widths := make([]int, len(inputs))
	total := 0
	for i, l := range inputs {
		ps := labeled[l]
		if len(ps) == 0 {
			return errors.Errorf("%s: no input pin labeled %q", c.Name(), l)
		}
		widths[i] = ps[0].Width()
		total += widths[i]
	}
	var err error
	EachCombination(total, func(comb Signal) bool {
		in := make([]Signal, len(inputs))
		pos := 0
		for i, w := range widths {
			// comb is a counter, most significant first. Signals are LSB first.
			s := make(Signal, w)
			for j := 0; j < w; j++ {
				s[w-1-j] = comb[pos+j]
			}
			pos += w
			in[i] = s
			if err = c.Drive(inputs[i], s); err != nil {
				return false
			}
		}
		if err = c.Evaluate(); err != nil {
			return false
		}
		err = fn(in)
		return err == nil
	}, alphabet...)
	return err
}

// TruthTable sweeps the inputs and records the value of outputs for each
// combination.
//
func (c *Circuit) TruthTable(inputs, outputs []string, alphabet ...Bit) ([]Row, error) {
	var rows []Row
	err := c.Sweep(inputs, func(in []Signal) error {
		r := Row{In: in, Out: make([]Signal, len(outputs))}
		for i, l := range outputs {
			s, err := c.Read(l)
			if err != nil {
				return err
			}
			r.Out[i] = s
		}
		rows = append(rows, r)
		return nil
	}, alphabet...)
	return rows, err
}
