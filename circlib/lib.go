// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package circlib provides the built-in Logisim component libraries: gates and
// memory. Port layouts match Logisim so that circuits drawn with it can be
// simulated as is.
//
package circlib

import "github.com/db47h/circsim"

// Gates returns the gates library.
//
func Gates() circsim.Library {
	return circsim.Library{
		"AND Gate":            gateFactory(andOp),
		"OR Gate":             gateFactory(orOp),
		"XOR Gate":            gateFactory(xorOp),
		"NAND Gate":           gateFactory(nandOp),
		"NOR Gate":            gateFactory(norOp),
		"XNOR Gate":           gateFactory(xnorOp),
		"NOT Gate":            NewNot,
		"Buffer":              NewBuffer,
		"Controlled Buffer":   NewControlledBuffer,
		"Controlled Inverter": NewControlledInverter,
	}
}

// Memory returns the memory library.
//
func Memory() circsim.Library {
	return circsim.Library{
		"Register":    NewRegister,
		"D Flip-Flop": NewDFlipFlop,
		"T Flip-Flop": NewTFlipFlop,
	}
}

// Built-in library names, in Logisim's default order.
//
var Names = []string{"Wiring", "Gates", "Plexers", "Arithmetic", "Memory", "I/O", "Base"}

// Builtin returns the built-in library with the given name, as found in
// "#Name" library descriptors. Known categories without any component return
// an empty library. ok is false for unknown names.
//
func Builtin(name string) (lib circsim.Library, ok bool) {
	switch name {
	case "Wiring":
		return circsim.Wiring(), true
	case "Gates":
		return Gates(), true
	case "Memory":
		return Memory(), true
	case "Plexers", "Arithmetic", "I/O", "Base":
		return circsim.Library{}, true
	}
	return nil, false
}

// Default returns the built-in libraries under the ids Logisim assigns them in
// a new project ("0" for Wiring to "6" for Base).
//
func Default() circsim.Libraries {
	libs := make(circsim.Libraries, len(Names))
	for i, n := range Names {
		libs[string(rune('0'+i))], _ = Builtin(n)
	}
	return libs
}
