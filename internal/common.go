// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of common bit manipulation helpers.
//
// For performance reasons, these helpers lack strong error checking and
// require that the caller to ensure that strict invariants are kept.
package internal

// BitMaskLUT masks the bit at a position within a byte, indexed by
// [endian][position]. Index 0 is little-endian (LSB first) and index 1
// is big-endian (MSB first).
var BitMaskLUT [2][8]byte

func init() {
	for i := uint(0); i < 8; i++ {
		BitMaskLUT[0][i] = 1 << i
		BitMaskLUT[1][i] = 0x80 >> i
	}
}

// DivCeil divides n by m, rounding up.
func DivCeil(n, m int) int {
	return (n + m - 1) / m
}

// NumPads computes number of bits needed to pad n-bits to a byte alignment.
func NumPads(n int) int {
	return -n & 7
}
