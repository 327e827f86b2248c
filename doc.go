/*
Package circsim is an event driven digital logic simulator for Logisim
schematics.

Signals use four valued logic: Unknown (floating), Error (conflict or
invalid value), Zero and One. Several drivers may share a wire. Their levels
are merged with MergeBit: Unknown lets the other driver through and
different levels yield Error.

A circuit is built from a parsed schematic (see package schematic) and a set
of component libraries:

	c := circsim.New(sc)
	err := c.Compile(circsim.Libraries{
		"0": circsim.Wiring(),
		"1": circlib.Gates(),
	})

Compile turns wire segments and port locations into networks of single bit
wires, merges the networks on both sides of splitters and same-label
tunnels, then schedules every wire and component once.

Simulation is zero delay: Evaluate runs queued updates in FIFO order until
no wire or component changes anymore. A wire update recomputes the merged
level of its drivers and, on change, schedules the components with a non muted
port on it. A component update reads its ports with Probe and drives new
values with Emit, which in turn schedules the affected wires:

	c.Drive("a", circsim.Signal{circsim.One})
	if err := c.Evaluate(); err != nil {
		// the circuit oscillates
	}
	out, _ := c.Read("out")

Circuits that never settle are stopped after a configurable number of
updates (see MaxUpdates).

Project files with several circuits and external libraries are loaded with
package project. Built-in gates and memory components live in package
circlib.
*/
package circsim
