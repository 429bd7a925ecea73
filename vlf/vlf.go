// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package vlf implements a self-delimiting byte encoding of bit sequences of
// any length.
//
// Each frame begins with a header byte laid out (MSB first) as:
//
//	+---+---+---+---+---+---+---+---+
//	| C |     P     |   D0 .. D3    |
//	+---+---+---+---+---+---+---+---+
//
// followed by zero or more bytes of the form:
//
//	+---+---+---+---+---+---+---+---+
//	| C |         D .. D+6          |
//	+---+---+---+---+---+---+---+---+
//
// where C is set on every byte except the last, P is the number of unused
// bits at the end of the last byte, and D are the bits of the sequence in
// order. A sequence of n bits occupies ceil((n+3)/7) bytes.
package vlf

import (
	"io"

	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/internal"
	"github.com/kloczek/bitarray/internal/errors"
)

const pkg = "vlf"

const (
	headBits = 4 // Number of data bits in the header byte
	tailBits = 7 // Number of data bits in every other byte

	// A header-only frame has room for four bits, so a larger padding count
	// can only be valid when more bytes follow.
	maxHeadPads = 4
	maxPads     = 6
)

// Encode returns the frame holding the bits of v.
// The packing convention of v is irrelevant.
func Encode(v *bitvec.Vector) []byte {
	n := v.Len()
	m := internal.DivCeil(n+3, 7)
	pads := 7*m - 3 - n

	b := make([]byte, m)
	b[0] = byte(pads) << 4
	for i := 0; i < m-1; i++ {
		b[i] |= 0x80
	}
	for k := 0; k < n; k++ {
		if !v.Get(k) {
			continue
		}
		if k < headBits {
			b[0] |= 0x08 >> uint(k)
		} else {
			i, r := 1+(k-headBits)/tailBits, (k-headBits)%tailBits
			b[i] |= 0x40 >> uint(r)
		}
	}
	return b
}

// Decode reads exactly one frame from r and returns its bits using the
// packing convention e. Bytes following the frame are not read.
//
// It returns a truncated error, which records the number of bytes read, if
// r ends before the frame does, and an invalid error if the padding count
// is out of range.
func Decode(r io.ByteReader, e bitvec.Endian) (*bitvec.Vector, error) {
	v, _, err := decodeFrame(r, e)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// decodeFrame decodes one frame and reports the number of bytes consumed.
func decodeFrame(r io.ByteReader, e bitvec.Endian) (v *bitvec.Vector, cnt int64, err error) {
	defer errors.Recover(&err)

	readByte := func() byte {
		b, err := r.ReadByte()
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			errors.Panic(errors.Truncatedf(pkg, cnt, "unexpected end of stream, bytes read: %d", cnt))
		}
		if err != nil {
			errors.Panic(err)
		}
		cnt++
		return b
	}

	b := readByte()
	pads := int(b>>4) & 7
	if pads > maxPads || (b&0x80 == 0 && pads > maxHeadPads) {
		errors.Panic(errors.Errorf(errors.Invalid, pkg, "invalid number of padding bits: %d", pads))
	}
	v = bitvec.New(0, e)
	v.AppendUint(uint64(b&0x0f), headBits)
	for b&0x80 != 0 {
		b = readByte()
		v.AppendUint(uint64(b&0x7f), tailBits)
	}
	return v.Slice(0, v.Len()-pads), cnt, nil
}
