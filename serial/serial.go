// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package serial converts bit vectors to and from a compact byte form that
// preserves both the bits and the packing convention.
//
// The first byte is a header of the form 000E0PPP, where E is set for the
// big-endian convention and PPP is the number of padding bits at the end of
// the final byte. The packed bits follow.
package serial

import (
	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/internal"
	"github.com/kloczek/bitarray/internal/errors"
)

const pkg = "serial"

const (
	hdrBig  = 0x10 // Set for big-endian vectors
	hdrPads = 0x07 // Mask of the padding count
	hdrZero = 0xe8 // Bits that must be clear
)

// Marshal returns the serialized form of v. Padding bits are zero.
func Marshal(v *bitvec.Vector) []byte {
	hdr := byte(internal.NumPads(v.Len()))
	if v.Endian() == bitvec.BigEndian {
		hdr |= hdrBig
	}
	return append([]byte{hdr}, v.Bytes()...)
}

// Unmarshal parses the serialized form of a vector.
// The values of the padding bits are ignored.
func Unmarshal(b []byte) (*bitvec.Vector, error) {
	if len(b) == 0 {
		return nil, errors.Truncatedf(pkg, 0, "missing header byte")
	}
	hdr := b[0]
	pads := int(hdr & hdrPads)
	if hdr&hdrZero != 0 || (len(b) == 1 && pads != 0) {
		return nil, errors.Errorf(errors.Invalid, pkg, "invalid header byte: 0x%02x", hdr)
	}
	e := bitvec.LittleEndian
	if hdr&hdrBig != 0 {
		e = bitvec.BigEndian
	}
	data := b[1:]
	return bitvec.FromBytes(data, 8*len(data)-pads, e), nil
}
