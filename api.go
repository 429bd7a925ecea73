// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitarray is a collection of codecs for packed bit sequences.
//
// The sub-packages build optimal and canonical prefix (Huffman) codes,
// decode arbitrary prefix codes, frame bit sequences of any length into
// self-delimiting byte streams, and serialize whole bit vectors with a
// one-byte header.
//
// Every decoder in this module reports failures with errors that satisfy the
// Error interface declared here, so that callers can tell a truncated input
// (possibly more data needed) apart from corrupt input.
package bitarray

// BitReader is a pull-based source of bits.
//
// ReadBit returns io.EOF once the source is exhausted. It never returns
// io.EOF together with a valid bit.
type BitReader interface {
	ReadBit() (bool, error)
}

// The Error interface identifies all errors generated by this module.
type Error interface {
	error

	// BitarrayError is a marker method to identify bitarray errors.
	BitarrayError()

	// IsInvalid reports whether the input violated the domain of the
	// operation: empty weights, malformed count or symbol tables, ambiguous
	// prefix codes, or invalid header and padding fields.
	IsInvalid() bool

	// IsType reports whether the inputs could not be used together,
	// such as weights that are not mutually comparable.
	IsType() bool

	// IsTruncated reports whether the input ended before a complete
	// codeword, frame, or header could be read.
	IsTruncated() bool

	// IsExhausted reports whether a canonical decoder consumed more bits
	// than any defined code length without finding a codeword.
	IsExhausted() bool

	// InputOffset reports the number of bytes consumed before a truncated
	// input was detected.
	InputOffset() int64
}
