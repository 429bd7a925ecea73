// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/prefix"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// MaxCountLen is the maximum length of a count list accepted by NewDecoder,
// which limits decodable codewords to 30 bits. Canonical has no such limit.
const MaxCountLen = 31

// Canonical returns the canonical prefix code for freqs together with its
// description: count[L] is the number of codewords of length L and symbol
// lists the symbols ordered by codeword length.
//
// Symbols of equal length are ordered by less. If less is nil, they keep
// the order in which they appear in freqs.
// The codewords always use the big-endian packing convention.
func Canonical[S comparable, W Weight](freqs []Freq[S, W], less func(a, b S) bool) (code prefix.Code[S], count []int, symbol []S, err error) {
	lens, err := Lengths(freqs)
	if err != nil {
		return nil, nil, nil, err
	}

	order := make([]int, len(freqs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) bool {
		if lens[i] != lens[j] {
			return lens[i] < lens[j]
		}
		return less != nil && less(freqs[i].Sym, freqs[j].Sym)
	})

	var maxLen int
	for _, n := range lens {
		if n > maxLen {
			maxLen = n
		}
	}
	count = make([]int, maxLen+1)
	symbol = make([]S, len(order))
	for k, i := range order {
		count[lens[i]]++
		symbol[k] = freqs[i].Sym
	}

	// Assign consecutive values within a length, and shift left when moving
	// to the next length. The value is kept as a bit vector since codewords
	// may be longer than 64 bits.
	code = make(prefix.Code[S], len(symbol))
	val := bitvec.New(0, bitvec.BigEndian)
	var k int
	for n := 1; n <= maxLen; n++ {
		val.Append(false)
		for j := 0; j < count[n]; j++ {
			code[symbol[k]] = val.Clone()
			increment(val)
			k++
		}
	}
	return code, count, symbol, nil
}

// increment adds one to v, read most-significant bit first.
// A carry out of the first bit is dropped.
func increment(v *bitvec.Vector) {
	for i := v.Len() - 1; i >= 0; i-- {
		if !v.Get(i) {
			v.Set(i, true)
			return
		}
		v.Set(i, false)
	}
}

// CanonicalOrdered is Canonical with symbols of equal length in ascending
// order.
func CanonicalOrdered[S constraints.Ordered, W Weight](freqs []Freq[S, W]) (prefix.Code[S], []int, []S, error) {
	return Canonical(freqs, func(a, b S) bool { return a < b })
}

// IsComplete reports whether count describes a code that uses the entire
// code space. count[0] is ignored.
func IsComplete(count []int) bool {
	if len(count) < 2 {
		return false
	}
	// Pair up the codewords of each length from the longest upwards. Every
	// level must pair off exactly, leaving two codewords of length one.
	c := count[len(count)-1]
	for n := len(count) - 1; n > 1; n-- {
		if c%2 != 0 {
			return false
		}
		c = c/2 + count[n-1]
	}
	return c == 2
}
