// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

// And returns the three-valued AND of bits. Any Zero wins, then any
// undetermined input yields Error.
//
func And(bits ...Bit) Bit {
	r := One
	for _, b := range bits {
		switch {
		case b == Zero:
			return Zero
		case !b.Determined():
			r = Error
		}
	}
	return r
}

// Or returns the three-valued OR of bits. Any One wins, then any undetermined
// input yields Error.
//
func Or(bits ...Bit) Bit {
	r := Zero
	for _, b := range bits {
		switch {
		case b == One:
			return One
		case !b.Determined():
			r = Error
		}
	}
	return r
}

// Xor returns One if an odd number of bits are One. Any undetermined input
// yields Error.
//
func Xor(bits ...Bit) Bit {
	odd := false
	for _, b := range bits {
		if !b.Determined() {
			return Error
		}
		if b == One {
			odd = !odd
		}
	}
	return Bool(odd)
}

// Not returns the complement of b. The complement of an undetermined bit is
// Error.
//
func Not(b Bit) Bit {
	switch b {
	case Zero:
		return One
	case One:
		return Zero
	}
	return Error
}

// Nand returns Not(And(bits...)).
func Nand(bits ...Bit) Bit { return Not(And(bits...)) }

// Nor returns Not(Or(bits...)).
func Nor(bits ...Bit) Bit { return Not(Or(bits...)) }

// Xnor returns Not(Xor(bits...)).
func Xnor(bits ...Bit) Bit { return Not(Xor(bits...)) }

// MergeBit resolves two drivers on the same wire. Unknown lets the other side
// through, two different levels conflict.
//
func MergeBit(a, b Bit) Bit {
	if a == Unknown || b == Unknown {
		return a | b
	}
	if a != b {
		return Error
	}
	return a
}

// Merge resolves two signals lane by lane with MergeBit. An empty side is the
// identity. Merge panics if both sides are non-empty with different widths.
//
func Merge(a, b Signal) Signal {
	if len(a) == 0 {
		return b.Clone()
	}
	if len(b) == 0 {
		return a.Clone()
	}
	if len(a) != len(b) {
		panic(errWidth("merge", len(a), len(b)))
	}
	r := make(Signal, len(a))
	for i := range a {
		r[i] = MergeBit(a[i], b[i])
	}
	return r
}

// NotSignal returns the lane-wise complement of s.
//
func NotSignal(s Signal) Signal {
	r := make(Signal, len(s))
	for i, b := range s {
		r[i] = Not(b)
	}
	return r
}

// Increment adds one to s, read as a counter whose last element is the least
// significant. Carry stops at the first Zero. If the carry reaches an
// undetermined bit, it and every more significant bit become Error. An all
// ones input wraps around to all zeros.
//
func Increment(s Signal) Signal {
	r := s.Clone()
	carry := One
	i := len(r) - 1
	for ; i >= 0 && carry == One; i-- {
		r[i] = Xor(s[i], carry)
		if s[i].Determined() {
			carry = s[i]
		} else {
			carry = Error
		}
	}
	if carry == Error {
		for ; i >= 0; i-- {
			r[i] = Error
		}
	}
	return r
}
