// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package testutil is a collection of testing helper methods.
package testutil

import (
	"encoding/hex"
	"io"
	"io/ioutil"
	"strings"
)

// ResizeData resizes the input. If n < 0, then the original input will be
// returned as is. If n <= len(input), then the input slice will be truncated.
// However, if n > len(input), then the input will be replicated to fill in
// the missing bytes, but each replicated string will be XORed by some byte
// mask to avoid favoring algorithms with large LZ77 windows.
//
// If n > len(input), then len(input) must be > 0.
func ResizeData(input []byte, n int) []byte {
	if n < 0 {
		return input
	}
	if len(input) >= n {
		return input[:n]
	}
	if len(input) == 0 {
		panic("unable to replicate an empty string")
	}

	var mask byte
	output := make([]byte, n)
	for i := range output {
		idx := i % len(input)
		output[i] = input[idx] ^ mask
		if idx == len(input)-1 {
			mask++
		}
	}
	return output
}

// LoadFile loads the first n bytes of the input file. If n < 0, then it will
// return the entire file as it is. If the file is shorter than n, then it
// will be replicated by ResizeData. An empty file is returned as is.
func LoadFile(file string, n int) ([]byte, error) {
	input, err := ioutil.ReadFile(file)
	if err != nil || len(input) == 0 {
		return input, err
	}
	return ResizeData(input, n), nil
}

// MustLoadFile must load a file or else panics.
func MustLoadFile(file string, n int) []byte {
	b, err := LoadFile(file, n)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecodeHex must decode a hexadecimal string or else panics.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecodeBits must decode a string of '0' and '1' characters or else
// panics. White space is ignored. The bits are packed into bytes starting
// with the most-significant bit and the final byte is zero padded.
func MustDecodeBits(s string) []byte {
	var b []byte
	var n uint
	for _, c := range s {
		switch c {
		case '0', '1':
			if n%8 == 0 {
				b = append(b, 0)
			}
			if c == '1' {
				b[len(b)-1] |= 0x80 >> (n % 8)
			}
			n++
		case ' ', '\t', '\n':
		default:
			panic("testutil: invalid bit character: " + string(c))
		}
	}
	return b
}

var words = strings.Fields(`
	the of and to in is was that for it with as his on be at by had are but
	from or have an they which one you were all her she there would their we
	him been has when who will no more if out so said what up its about than
	into them can only other time new some could these two may first then do
	any like my now over such our man me even most made after also did many
	compression huffman canonical prefix codeword symbol frame header bit
`)

// MakeText returns n bytes of space separated English-like words drawn from
// a fixed vocabulary. The output is deterministic for a given Rand.
func MakeText(r *Rand, n int) []byte {
	b := make([]byte, 0, n+16)
	for len(b) < n {
		// Bias towards the front of the vocabulary so that the symbol
		// distribution is skewed like real text.
		i := r.Intn(len(words))
		i = r.Intn(i + 1)
		b = append(b, words[i]...)
		if r.Intn(12) == 0 {
			b = append(b, ".\n"...)
		} else {
			b = append(b, ' ')
		}
	}
	return b[:n]
}

// BuggyReader returns Err after N bytes have been read from R.
type BuggyReader struct {
	R   io.Reader
	N   int64 // Number of valid bytes to read
	Err error // Return this error after N bytes
}

func (br *BuggyReader) Read(buf []byte) (int, error) {
	if int64(len(buf)) > br.N {
		buf = buf[:br.N]
	}
	n, err := br.R.Read(buf)
	br.N -= int64(n)
	if err == nil && br.N <= 0 {
		return n, br.Err
	}
	return n, err
}

// BuggyWriter returns Err after N bytes have been written to W.
type BuggyWriter struct {
	W   io.Writer
	N   int64 // Number of valid bytes to write
	Err error // Return this error after N bytes
}

func (bw *BuggyWriter) Write(buf []byte) (int, error) {
	if int64(len(buf)) > bw.N {
		buf = buf[:bw.N]
	}
	n, err := bw.W.Write(buf)
	bw.N -= int64(n)
	if err == nil && bw.N <= 0 {
		return n, bw.Err
	}
	return n, err
}
