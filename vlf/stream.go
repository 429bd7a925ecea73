// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package vlf

import (
	"io"

	"github.com/dsnet/golib/ioutil"
	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/internal/errors"
)

// Writer writes a sequence of frames to an underlying io.Writer.
type Writer struct {
	wr     io.Writer // Underlying writer
	inCnt  int64     // Total number of bits encoded
	outCnt int64     // Total number of bytes written
	frmCnt int64     // Total number of frames written
	err    error     // Persistent error
}

// NewWriter creates a new Writer.
func NewWriter(wr io.Writer) *Writer {
	fw := new(Writer)
	fw.Reset(wr)
	return fw
}

// InputOffset reports the number of bits encoded.
func (fw *Writer) InputOffset() int64 { return fw.inCnt }

// OutputOffset reports the number of bytes written to the underlying writer.
func (fw *Writer) OutputOffset() int64 { return fw.outCnt }

// NumFrames reports the number of frames successfully written.
func (fw *Writer) NumFrames() int64 { return fw.frmCnt }

// WriteFrame encodes v as a single frame.
func (fw *Writer) WriteFrame(v *bitvec.Vector) error {
	if fw.err != nil {
		return fw.err
	}
	n, err := fw.wr.Write(Encode(v))
	fw.outCnt += int64(n)
	if err != nil {
		fw.err = err
		return err
	}
	fw.inCnt += int64(v.Len())
	fw.frmCnt++
	return nil
}

// Close closes the Writer. Any further writes fail.
func (fw *Writer) Close() error {
	if fw.err == nil {
		fw.err = io.ErrClosedPipe
	}
	return nil
}

// Reset discards the Writer's state and makes it write to wr.
func (fw *Writer) Reset(wr io.Writer) {
	*fw = Writer{wr: wr}
}

// Reader reads a sequence of frames from an underlying io.Reader.
type Reader struct {
	rd     io.ByteReader // Underlying reader
	endian bitvec.Endian // Packing convention of decoded vectors
	inCnt  int64         // Total number of bytes read
	outCnt int64         // Total number of bits decoded
	frmCnt int64         // Total number of frames read
	err    error         // Persistent error

	brd ioutil.ByteReader
}

// NewReader creates a new Reader. Decoded vectors use the convention e.
func NewReader(rd io.Reader, e bitvec.Endian) *Reader {
	fr := new(Reader)
	fr.Reset(rd, e)
	return fr
}

// InputOffset reports the number of bytes read from the underlying reader.
func (fr *Reader) InputOffset() int64 { return fr.inCnt }

// OutputOffset reports the number of bits decoded.
func (fr *Reader) OutputOffset() int64 { return fr.outCnt }

// NumFrames reports the number of frames successfully read.
func (fr *Reader) NumFrames() int64 { return fr.frmCnt }

// ReadFrame decodes the next frame. It returns io.EOF if the underlying
// reader ends exactly at a frame boundary.
func (fr *Reader) ReadFrame() (*bitvec.Vector, error) {
	if fr.err != nil {
		return nil, fr.err
	}
	v, cnt, err := decodeFrame(fr.rd, fr.endian)
	fr.inCnt += cnt
	if err != nil {
		if errors.IsTruncated(err) && cnt == 0 {
			err = io.EOF
		}
		fr.err = err
		return nil, err
	}
	fr.outCnt += int64(v.Len())
	fr.frmCnt++
	return v, nil
}

// Reset discards the Reader's state and makes it read from rd.
func (fr *Reader) Reset(rd io.Reader, e bitvec.Endian) {
	*fr = Reader{endian: e}

	// For efficiency, rd should satisfy the io.ByteReader interface as well.
	// Otherwise, it will wrap the input with a single byte buffer reader.
	brd, ok := rd.(io.ByteReader)
	if !ok {
		fr.brd.Reader = rd
		brd = &fr.brd
	}
	fr.rd = brd
}
