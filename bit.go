// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"strings"

	"github.com/pkg/errors"
)

// Bit is a signal level.
//
// Bits are ordered so that b >= Zero holds only for driven levels.
//
type Bit uint8

// Signal levels.
const (
	Unknown Bit = iota // nothing drives the wire
	Error              // conflicting or invalid value
	Zero
	One
)

var bitChars = [...]byte{Unknown: 'x', Error: 'E', Zero: '0', One: '1'}

// Determined reports whether b is Zero or One.
//
func (b Bit) Determined() bool { return b >= Zero }

func (b Bit) String() string {
	if b > One {
		return "?"
	}
	return string(bitChars[b])
}

// ParseBit converts one of the characters '0', '1', 'x', 'E' to a Bit.
// 'X', 'e' and 'u' are accepted as well.
//
func ParseBit(c byte) (Bit, error) {
	switch c {
	case '0':
		return Zero, nil
	case '1':
		return One, nil
	case 'x', 'X', 'u':
		return Unknown, nil
	case 'E', 'e':
		return Error, nil
	}
	return Unknown, errors.Errorf("invalid bit %q", c)
}

// Bool returns One for true and Zero for false.
//
func Bool(v bool) Bit {
	if v {
		return One
	}
	return Zero
}

// Signal is an ordered bit vector. Index i holds bit i (least significant
// first).
//
type Signal []Bit

// MakeSignal returns a signal of the given width with every bit set to b.
//
func MakeSignal(width int, b Bit) Signal {
	s := make(Signal, width)
	if b != Unknown {
		for i := range s {
			s[i] = b
		}
	}
	return s
}

// FromUint64 returns the width lowest bits of v as a Signal.
//
func FromUint64(v uint64, width int) Signal {
	s := make(Signal, width)
	for i := range s {
		s[i] = Bool(i < 64 && v&(1<<uint(i)) != 0)
	}
	return s
}

// Uint64 returns the integer value of s. ok is false if s has more than 64
// bits or any bit is not determined.
//
func (s Signal) Uint64() (v uint64, ok bool) {
	if len(s) > 64 {
		return 0, false
	}
	for i, b := range s {
		switch b {
		case One:
			v |= 1 << uint(i)
		case Zero:
		default:
			return 0, false
		}
	}
	return v, true
}

// Determined reports whether every bit in s is determined.
//
func (s Signal) Determined() bool {
	for _, b := range s {
		if !b.Determined() {
			return false
		}
	}
	return true
}

// Equal reports whether s and t have the same width and bits.
//
func (s Signal) Equal(t Signal) bool {
	if len(s) != len(t) {
		return false
	}
	for i := range s {
		if s[i] != t[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of s.
//
func (s Signal) Clone() Signal {
	if s == nil {
		return nil
	}
	t := make(Signal, len(s))
	copy(t, s)
	return t
}

// String returns s most significant bit first, like "10xE".
//
func (s Signal) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for i := len(s) - 1; i >= 0; i-- {
		b.WriteString(s[i].String())
	}
	return b.String()
}

// ParseSignal parses a signal written most significant bit first, as
// returned by Signal.String. Underscores are ignored. If the string starts with
// 0x, the remaining hexadecimal digits are parsed as an unsigned value and the
// signal width is 4 bits per digit.
//
func ParseSignal(str string) (Signal, error) {
	if strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X") {
		return parseHexSignal(str)
	}
	s := make(Signal, 0, len(str))
	for i := len(str) - 1; i >= 0; i-- {
		if str[i] == '_' {
			continue
		}
		b, err := ParseBit(str[i])
		if err != nil {
			return nil, errors.Wrapf(err, "signal %q", str)
		}
		s = append(s, b)
	}
	if len(s) == 0 {
		return nil, errors.Errorf("empty signal %q", str)
	}
	return s, nil
}

func parseHexSignal(str string) (Signal, error) {
	var s Signal
	for i := len(str) - 1; i >= 2; i-- {
		c := str[i]
		var d byte
		switch {
		case c == '_':
			continue
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'f':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			d = c - 'A' + 10
		default:
			return nil, errors.Errorf("signal %q: invalid hex digit %q", str, c)
		}
		for j := uint(0); j < 4; j++ {
			s = append(s, Bool(d&(1<<j) != 0))
		}
	}
	if len(s) == 0 {
		return nil, errors.Errorf("empty signal %q", str)
	}
	return s, nil
}
