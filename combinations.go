// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import "iter"

// Levels are the levels a host can drive on an input: Zero and One.
var Levels = []Bit{Zero, One}

// AllLevels are all four bit values.
var AllLevels = []Bit{Unknown, Error, Zero, One}

// EachCombination calls fn with every width bit signal drawn from alphabet
// (Levels if empty), counting in alphabet order with the last element
// changing fastest. It stops early if fn returns false.
//
// The signal passed to fn is reused between calls.
//
func EachCombination(width int, fn func(Signal) bool, alphabet ...Bit) {
	if len(alphabet) == 0 {
		alphabet = Levels
	}
	digits := make([]int, width)
	s := MakeSignal(width, alphabet[0])
	for {
		if !fn(s) {
			return
		}
		i := width - 1
		for ; i >= 0; i-- {
			digits[i]++
			if digits[i] < len(alphabet) {
				s[i] = alphabet[digits[i]]
				break
			}
			digits[i] = 0
			s[i] = alphabet[0]
		}
		if i < 0 {
			return
		}
	}
}

// Combinations returns an iterator over the combinations produced by
// EachCombination. Every yielded signal is a fresh copy.
//
func Combinations(width int, alphabet ...Bit) iter.Seq[Signal] {
	return func(yield func(Signal) bool) {
		EachCombination(width, func(s Signal) bool {
			return yield(s.Clone())
		}, alphabet...)
	}
}

// CountCombinations returns the number of signals EachCombination will produce.
//
func CountCombinations(width int, alphabet ...Bit) int {
	n := len(alphabet)
	if n == 0 {
		n = len(Levels)
	}
	r := 1
	for i := 0; i < width; i++ {
		r *= n
	}
	return r
}
