// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitvec implements a growable vector of bits with a byte-packing
// convention.
//
// The convention only matters when a Vector is converted to or from bytes:
// with BigEndian the first bit of the vector is the most-significant bit of
// the first byte, with LittleEndian it is the least-significant bit.
// Bit values, equality, and slicing are independent of the convention.
package bitvec

import (
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/kloczek/bitarray"
	"github.com/kloczek/bitarray/internal"
	"github.com/kloczek/bitarray/internal/errors"
)

// Endian is the byte-packing convention of a Vector.
type Endian uint8

const (
	LittleEndian Endian = iota // First bit is the least-significant bit of a byte
	BigEndian                  // First bit is the most-significant bit of a byte
)

func (e Endian) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return "invalid"
	}
}

// ParseEndian parses "little" or "big".
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(s) {
	case "little":
		return LittleEndian, nil
	case "big":
		return BigEndian, nil
	}
	return 0, errors.Errorf(errors.Invalid, "bitvec", "bit-endianness must be either 'little' or 'big', not '%s'", s)
}

// Vector is an ordered sequence of bits.
// The zero value is an empty little-endian vector ready for use.
type Vector struct {
	set    bitset.BitSet // Bits at positions >= n are always clear
	n      int
	endian Endian
}

// New returns a vector of n zero bits.
func New(n int, e Endian) *Vector {
	v := &Vector{n: n, endian: e}
	if n > 0 {
		v.set = *bitset.New(uint(n))
	}
	return v
}

// Parse returns the vector described by a string of '0' and '1' characters.
// White space and underscores are ignored.
func Parse(s string, e Endian) (*Vector, error) {
	v := New(0, e)
	for _, c := range s {
		switch c {
		case '0':
			v.Append(false)
		case '1':
			v.Append(true)
		case ' ', '\t', '\n', '\r', '\v', '_':
			// Skip separators.
		default:
			return nil, errors.Errorf(errors.Invalid, "bitvec", "expected '0' or '1' (or whitespace, or underscore), got '%c'", c)
		}
	}
	return v, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string, e Endian) *Vector {
	v, err := Parse(s, e)
	if err != nil {
		panic(err)
	}
	return v
}

// FromBytes unpacks the first n bits of b according to e.
// It panics if b holds fewer than n bits.
func FromBytes(b []byte, n int, e Endian) *Vector {
	if n > 8*len(b) {
		panic("bitvec: not enough bytes")
	}
	v := New(n, e)
	masks := &internal.BitMaskLUT[e&1]
	for i := 0; i < n; i++ {
		if b[i>>3]&masks[i&7] != 0 {
			v.set.Set(uint(i))
		}
	}
	return v
}

// FromUint returns the n-bit representation of x, most-significant bit first.
func FromUint(x uint64, n int, e Endian) *Vector {
	v := New(0, e)
	v.AppendUint(x, n)
	return v
}

// Len reports the number of bits in the vector.
func (v *Vector) Len() int { return v.n }

// Endian reports the byte-packing convention.
func (v *Vector) Endian() Endian { return v.endian }

// Get reports the bit at index i. It panics if i is out of range.
func (v *Vector) Get(i int) bool {
	v.check(i)
	return v.set.Test(uint(i))
}

// Set assigns the bit at index i. It panics if i is out of range.
func (v *Vector) Set(i int, b bool) {
	v.check(i)
	v.set.SetTo(uint(i), b)
}

// Append adds one bit to the end of the vector.
func (v *Vector) Append(b bool) {
	if b {
		v.set.Set(uint(v.n))
	}
	v.n++
}

// AppendUint appends the lower n bits of x, most-significant bit first.
func (v *Vector) AppendUint(x uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		v.Append(x>>uint(i)&1 != 0)
	}
}

// Extend appends all bits of w.
func (v *Vector) Extend(w *Vector) {
	for i := 0; i < w.n; i++ {
		v.Append(w.set.Test(uint(i)))
	}
}

// Slice returns a copy of the bits in [i, j) with the same convention.
func (v *Vector) Slice(i, j int) *Vector {
	if i < 0 || j > v.n || i > j {
		panic("bitvec: slice bounds out of range")
	}
	w := New(j-i, v.endian)
	for k := i; k < j; k++ {
		if v.set.Test(uint(k)) {
			w.set.Set(uint(k - i))
		}
	}
	return w
}

// Count reports the number of one bits.
func (v *Vector) Count() int { return int(v.set.Count()) }

// NumBytes reports the number of bytes needed to pack the vector.
func (v *Vector) NumBytes() int { return internal.DivCeil(v.n, 8) }

// Bytes packs the vector according to its convention.
// Unused bits of the final byte are zero.
func (v *Vector) Bytes() []byte {
	b := make([]byte, v.NumBytes())
	masks := &internal.BitMaskLUT[v.endian&1]
	for i, ok := v.set.NextSet(0); ok && int(i) < v.n; i, ok = v.set.NextSet(i + 1) {
		b[i>>3] |= masks[i&7]
	}
	return b
}

// Uint64 interprets the vector as an unsigned integer, most-significant bit
// first. It panics if the vector is longer than 64 bits.
func (v *Vector) Uint64() (x uint64) {
	if v.n > 64 {
		panic("bitvec: vector too long for uint64")
	}
	for i := 0; i < v.n; i++ {
		x <<= 1
		if v.set.Test(uint(i)) {
			x |= 1
		}
	}
	return x
}

// Equal reports whether v and w hold the same bits.
// The byte-packing convention is not compared.
func (v *Vector) Equal(w *Vector) bool {
	if v.n != w.n {
		return false
	}
	for i := 0; i < v.n; i++ {
		if v.set.Test(uint(i)) != w.set.Test(uint(i)) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of v.
func (v *Vector) Clone() *Vector {
	return v.Slice(0, v.n)
}

// String returns the bits as '0' and '1' characters.
func (v *Vector) String() string {
	var sb strings.Builder
	sb.Grow(v.n)
	for i := 0; i < v.n; i++ {
		if v.set.Test(uint(i)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Cursor returns a reader positioned at the first bit of v.
func (v *Vector) Cursor() *Cursor {
	return &Cursor{v: v}
}

func (v *Vector) check(i int) {
	if i < 0 || i >= v.n {
		panic("bitvec: index out of range")
	}
}

// Cursor reads the bits of a Vector in order.
// It observes bits appended to the vector after the cursor was created.
type Cursor struct {
	v   *Vector
	pos int
}

var _ bitarray.BitReader = (*Cursor)(nil)

// ReadBit returns the next bit, or io.EOF once all bits are consumed.
func (c *Cursor) ReadBit() (bool, error) {
	if c.pos >= c.v.n {
		return false, io.EOF
	}
	b := c.v.set.Test(uint(c.pos))
	c.pos++
	return b, nil
}

// Pos reports the index of the next bit to be read.
func (c *Cursor) Pos() int { return c.pos }

// Remaining reports the number of unread bits.
func (c *Cursor) Remaining() int { return c.v.n - c.pos }
