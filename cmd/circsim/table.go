// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"

	"github.com/db47h/circsim"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table FILE",
	Short: "Print the truth table of a circuit.",
	Long: `Print the truth table of a circuit.

Every combination of 0 and 1 is driven on the labeled input pins, or of
x, E, 0 and 1 with --all. Input pins are sorted by label.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, c, err := load(cmd, args[0])
		if err != nil {
			return err
		}
		alphabet := circsim.Levels
		if getFlag(cmd, "all") {
			alphabet = circsim.AllLevels
		}
		if err = c.Evaluate(); err != nil {
			return err
		}
		inputs, outputs := labels(c)
		rows, err := c.TruthTable(inputs, outputs, alphabet...)
		if err != nil {
			return err
		}
		t := newTable(os.Stdout)
		t.row(append(append([]string(nil), inputs...), outputs...)...)
		for _, r := range rows {
			var cells []string
			for _, s := range r.In {
				cells = append(cells, s.String())
			}
			for _, s := range r.Out {
				cells = append(cells, s.String())
			}
			t.row(cells...)
		}
		return t.flush()
	},
}

func init() {
	tableCmd.Flags().StringP("circuit", "c", "", "circuit to tabulate (default: main circuit)")
	tableCmd.Flags().Bool("all", false, "include unknown and error levels")
	rootCmd.AddCommand(tableCmd)
}
