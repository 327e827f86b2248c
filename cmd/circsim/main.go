// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command circsim loads Logisim projects and simulates their circuits.
//
//	circsim list adder.circ
//	circsim run adder.circ -c add4 --set a=0x3 --set b=0x5
//	circsim table adder.circ -c half
//
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/db47h/circsim"
	"github.com/db47h/circsim/project"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:           "circsim",
	Short:         "A logic circuit simulator for Logisim projects.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("permissive", false, "skip unknown components instead of failing")
	rootCmd.PersistentFlags().Int("max-updates", circsim.DefaultMaxUpdates, "maximum number of updates per evaluation (0 for no limit)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "circsim:", err)
		os.Exit(1)
	}
}

func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// load loads the project file and returns the circuit selected with the
// --circuit flag, or the main circuit.
//
func load(cmd *cobra.Command, file string) (*project.Project, *circsim.Circuit, error) {
	n, err := cmd.Flags().GetInt("max-updates")
	if err != nil {
		return nil, nil, err
	}
	opts := []circsim.Option{circsim.MaxUpdates(n)}
	if getFlag(cmd, "permissive") {
		opts = append(opts, circsim.Permissive())
	}
	p, err := project.Load(file, project.CircuitOptions(opts...))
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Lookup("circuit") == nil {
		return p, nil, nil
	}
	name, err := cmd.Flags().GetString("circuit")
	if err != nil {
		return nil, nil, err
	}
	if name == "" {
		name = p.Schematic.Main
	}
	c := p.Circuit(name)
	if c == nil {
		return nil, nil, errors.Errorf("%s: no circuit named %q", file, name)
	}
	return p, c, nil
}

// table writes rows of tab separated cells, aligned if w is a terminal.
//
type table struct {
	w     io.Writer
	flush func() error
}

func newTable(f *os.File) *table {
	if !term.IsTerminal(int(f.Fd())) {
		return &table{w: f, flush: func() error { return nil }}
	}
	tw := tabwriter.NewWriter(f, 0, 4, 2, ' ', 0)
	return &table{w: tw, flush: tw.Flush}
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}
