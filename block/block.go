// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package block implements a self-contained static Huffman coding of a byte
// slice.
//
// A block has the following layout:
//
//	uvarint   number of encoded symbols
//	uvarint   length of the count list (zero for an empty block)
//	uvarint   count[1], count[2], ...
//	bytes     the canonical symbol list
//	bits      the codewords, MSB first, zero padded to a byte
//	[8]byte   xxh3 hash of the original data, little-endian
//
// The count list and symbol list describe a canonical Huffman code over the
// bytes of the original data.
package block

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/icza/bitio"
	"github.com/kloczek/bitarray/huffman"
	"github.com/kloczek/bitarray/internal/errors"
	"github.com/zeebo/xxh3"
)

const pkg = "block"

const sumSize = 8 // Size of the trailing checksum

var (
	errCorrupted error = errors.Error{Code: errors.Invalid, Pkg: pkg, Msg: "block is corrupted"}
	errChecksum  error = errors.Error{Code: errors.Invalid, Pkg: pkg, Msg: "checksum mismatch"}
)

// Encode returns data encoded as a block.
// It fails if the Huffman code for data needs codewords longer than a
// canonical count list can describe.
func Encode(data []byte) ([]byte, error) {
	var hdr []byte
	hdr = binary.AppendUvarint(hdr, uint64(len(data)))
	if len(data) == 0 {
		hdr = binary.AppendUvarint(hdr, 0)
		return appendSum(hdr, data), nil
	}

	code, count, symbol, err := huffman.CanonicalOrdered(huffman.Count(data))
	if err != nil {
		return nil, err
	}
	if len(count) > huffman.MaxCountLen {
		return nil, errors.Errorf(errors.Invalid, pkg, "codeword length %d exceeds the maximum of %d", len(count)-1, huffman.MaxCountLen-1)
	}
	hdr = binary.AppendUvarint(hdr, uint64(len(count)))
	for _, c := range count[1:] {
		hdr = binary.AppendUvarint(hdr, uint64(c))
	}
	hdr = append(hdr, symbol...)

	buf := bytes.NewBuffer(hdr)
	bw := bitio.NewWriter(buf)
	for _, b := range data {
		cw := code[b]
		if err := bw.WriteBits(cw.Uint64(), uint8(cw.Len())); err != nil {
			return nil, err
		}
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return appendSum(buf.Bytes(), data), nil
}

func appendSum(b, data []byte) []byte {
	var sum [sumSize]byte
	binary.LittleEndian.PutUint64(sum[:], xxh3.Hash(data))
	return append(b, sum[:]...)
}

// Decode returns the data held by the block b.
//
// It returns a truncated error if b ends early, and an invalid error if the
// header is malformed or the checksum does not match.
func Decode(b []byte) ([]byte, error) {
	data, err := decode(b)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func decode(b []byte) (data []byte, err error) {
	defer errors.Recover(&err)

	var pos int
	truncated := func() {
		errors.Panic(errors.Truncatedf(pkg, int64(pos), "unexpected end of block, bytes read: %d", pos))
	}
	readUvarint := func() int {
		v, n := binary.Uvarint(b[pos:])
		switch {
		case n == 0:
			truncated()
		case n < 0 || v > uint64(len(b))*8:
			errors.Panic(errCorrupted)
		}
		pos += n
		return int(v)
	}

	nsym := readUvarint()
	count := make([]int, readUvarint())
	if len(count) > huffman.MaxCountLen || (nsym > 0) != (len(count) > 1) {
		errors.Panic(errCorrupted)
	}
	var total int
	for i := 1; i < len(count); i++ {
		count[i] = readUvarint()
		total += count[i]
	}
	if total > 256 {
		errors.Panic(errCorrupted)
	}
	if len(b)-pos < total {
		pos = len(b)
		truncated()
	}
	symbol := b[pos : pos+total]
	pos += total

	if len(b)-pos < sumSize {
		pos = len(b)
		truncated()
	}
	body, sum := b[pos:len(b)-sumSize], b[len(b)-sumSize:]

	d, err := huffman.NewDecoder(bitReader{bitio.NewReader(bytes.NewReader(body))}, &count, &symbol)
	if err != nil {
		errors.Panic(errCorrupted)
	}
	data = make([]byte, 0, nsym)
	for len(data) < nsym {
		sym, err := d.Next()
		if err == io.EOF || errors.IsTruncated(err) {
			pos += int(d.BitsRead() / 8)
			truncated()
		}
		if err != nil {
			errors.Panic(errCorrupted)
		}
		data = append(data, sym)
	}
	if binary.LittleEndian.Uint64(sum) != xxh3.Hash(data) {
		errors.Panic(errChecksum)
	}
	return data, nil
}

// bitReader adapts a bitio reader to the bit source of a huffman.Decoder.
type bitReader struct {
	br interface{ ReadBool() (bool, error) }
}

func (r bitReader) ReadBit() (bool, error) {
	return r.br.ReadBool()
}
