// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/db47h/circsim"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list FILE",
	Short: "List the circuits of a project and their pins.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := load(cmd, args[0])
		if err != nil {
			return err
		}
		t := newTable(os.Stdout)
		t.row("CIRCUIT", "LABEL", "INPUTS", "OUTPUTS", "COMPONENTS")
		for _, c := range p.Circuits() {
			name := c.Name()
			if name == p.Schematic.Main {
				name += "*"
			}
			t.row(name, c.Label(), pinList(c.InputPins()), pinList(c.OutputPins()), strconv.Itoa(len(c.Components())))
		}
		return t.flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func pinList(ps []*circsim.Pin) string {
	var s []string
	for _, p := range ps {
		l := p.Label()
		if l == "" {
			l = "?"
		}
		if p.Width() > 1 {
			l += "[" + strconv.Itoa(p.Width()) + "]"
		}
		s = append(s, l)
	}
	return strings.Join(s, ",")
}
