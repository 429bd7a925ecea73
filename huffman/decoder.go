// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"io"

	"github.com/kloczek/bitarray"
	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/internal/errors"
)

var errRanOut error = errors.Error{Code: errors.Exhausted, Pkg: pkg, Msg: "ran out of codes"}

// Decoder decodes a canonical prefix code from a bit source, one symbol per
// call to Next.
//
// The Decoder borrows the count and symbol slices it was created with.
// Both are dereferenced again whenever they are needed, so changes made by
// the caller between calls to Next are observed.
type Decoder[S comparable] struct {
	rd     bitarray.BitReader
	count  *[]int
	symbol *[]S

	nbits int64 // Number of bits read
}

// NewDecoder returns a Decoder reading codewords from r.
//
// It fails if count has more than MaxCountLen entries, if any count[L]
// for L >= 1 is negative or larger than 1<<L, or if the sum of count[1:]
// differs from len(*symbol). The value of count[0] is ignored.
func NewDecoder[S comparable](r bitarray.BitReader, count *[]int, symbol *[]S) (*Decoder[S], error) {
	if err := checkCount(*count, len(*symbol)); err != nil {
		return nil, err
	}
	return &Decoder[S]{rd: r, count: count, symbol: symbol}, nil
}

func checkCount(count []int, nsym int) error {
	if len(count) > MaxCountLen {
		return errors.Errorf(errors.Invalid, pkg, "count list too long, got %d entries", len(count))
	}
	var sum int
	for n := 1; n < len(count); n++ {
		if c := count[n]; c < 0 || c > 1<<uint(n) {
			return errors.Errorf(errors.Invalid, pkg, "count[%d] cannot be negative or larger than %d, got %d", n, 1<<uint(n), c)
		}
		sum += count[n]
	}
	if sum != nsym {
		return errors.Errorf(errors.Invalid, pkg, "sum(count) = %d, but len(symbol) = %d", sum, nsym)
	}
	return nil
}

// Next decodes the next symbol.
//
// It returns io.EOF if the source ends exactly on a codeword boundary,
// a truncated error if it ends inside a codeword, and an exhausted error if
// a codeword grows to MaxCountLen bits without matching.
// If the symbol list was shortened after NewDecoder so that a matched
// codeword has no symbol, Next returns an invalid error.
func (d *Decoder[S]) Next() (sym S, err error) {
	defer errors.Recover(&err)

	var value, first, index int
	for n := 1; ; n++ {
		b, ok := d.readBit()
		if !ok {
			if n == 1 {
				return sym, io.EOF
			}
			errors.Panic(errors.Error{Code: errors.Truncated, Pkg: pkg, Msg: "reached end of input"})
		}
		if b {
			value |= 1
		}

		var c int
		if count := *d.count; n < len(count) {
			c = count[n]
		}
		if value-first < c {
			symbol := *d.symbol
			i := index + value - first
			if i >= len(symbol) {
				errors.Panic(errors.Errorf(errors.Invalid, pkg, "symbol index out of range: %d >= %d", i, len(symbol)))
			}
			return symbol[i], nil
		}
		if n >= MaxCountLen {
			errors.Panic(errRanOut)
		}
		index += c
		first = (first + c) << 1
		value <<= 1
	}
}

// readBit reads one bit, reporting false for ok at the end of the source.
// Any other read error is raised as a panic.
func (d *Decoder[S]) readBit() (b, ok bool) {
	b, err := d.rd.ReadBit()
	if err == io.EOF {
		return false, false
	}
	if err != nil {
		errors.Panic(err)
	}
	d.nbits++
	return b, true
}

// BitsRead reports the number of bits consumed from the source.
func (d *Decoder[S]) BitsRead() int64 { return d.nbits }

// Decode decodes every codeword in v using the canonical code described by
// count and symbol.
func Decode[S comparable](v *bitvec.Vector, count []int, symbol []S) ([]S, error) {
	d, err := NewDecoder(v.Cursor(), &count, &symbol)
	if err != nil {
		return nil, err
	}
	var msg []S
	for {
		sym, err := d.Next()
		if err == io.EOF {
			return msg, nil
		}
		if err != nil {
			return msg, err
		}
		msg = append(msg, sym)
	}
}
