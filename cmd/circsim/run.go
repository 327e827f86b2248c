// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"
	"sort"

	"github.com/db47h/circsim"
	"github.com/db47h/circsim/internal/assign"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Drive input pins, evaluate a circuit and print its outputs.",
	Long: `Drive input pins, evaluate a circuit and print its outputs.

Input values are given as label=value assignments with --set. Values are
binary (MSB first, x for unknown, E for error) or hexadecimal with a 0x
prefix. Undriven inputs are 0.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, c, err := load(cmd, args[0])
		if err != nil {
			return err
		}
		sets, err := cmd.Flags().GetStringArray("set")
		if err != nil {
			return err
		}
		for _, s := range sets {
			as, err := assign.Parse(s)
			if err != nil {
				return err
			}
			for _, a := range as {
				if err = drive(c, a.Name, a.Value); err != nil {
					return err
				}
			}
		}
		if err = c.Evaluate(); err != nil {
			return err
		}
		log.WithField("state", c.StateHash()).Debug("circuit settled")

		_, outputs := labels(c)
		t := newTable(os.Stdout)
		for _, l := range outputs {
			v, err := c.Read(l)
			if err != nil {
				return err
			}
			t.row(l, v.String())
		}
		return t.flush()
	},
}

func init() {
	runCmd.Flags().StringP("circuit", "c", "", "circuit to run (default: main circuit)")
	runCmd.Flags().StringArray("set", nil, "input assignment `label=value` (repeatable)")
	rootCmd.AddCommand(runCmd)
}

// drive parses value and drives it on the input pins labeled label. Values
// narrower than the pins are zero extended.
//
func drive(c *circsim.Circuit, label, value string) error {
	ps := c.InputPinsLabeled()[label]
	if len(ps) == 0 {
		return errors.Errorf("%s: no input pin labeled %q", c.Name(), label)
	}
	s, err := circsim.ParseSignal(value)
	if err != nil {
		return errors.Wrapf(err, "value for %s", label)
	}
	if w := ps[0].Width(); len(s) != w {
		v, ok := s.Uint64()
		if !ok || len(s) > w && v>>uint(w) != 0 {
			return errors.Errorf("value %s does not fit in %d bits for %s", value, w, label)
		}
		s = circsim.FromUint64(v, w)
	}
	return c.Drive(label, s)
}

func labels(c *circsim.Circuit) (inputs, outputs []string) {
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
