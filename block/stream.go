// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package block

import (
	"bytes"
	"io"
	"io/ioutil"
)

// Writer collects everything written to it and emits a single block to the
// underlying writer on Close.
type Writer struct {
	wr     io.Writer    // Underlying writer
	buf    bytes.Buffer // Data yet to be encoded
	outCnt int64        // Total number of bytes written
	err    error        // Persistent error
}

// NewWriter creates a new Writer.
func NewWriter(wr io.Writer) *Writer {
	bw := new(Writer)
	bw.Reset(wr)
	return bw
}

// InputOffset reports the number of bytes accepted by Write.
func (bw *Writer) InputOffset() int64 { return int64(bw.buf.Len()) }

// OutputOffset reports the number of bytes written to the underlying writer.
func (bw *Writer) OutputOffset() int64 { return bw.outCnt }

func (bw *Writer) Write(buf []byte) (int, error) {
	if bw.err != nil {
		return 0, bw.err
	}
	return bw.buf.Write(buf)
}

// Close encodes the buffered data and writes the block.
// It does not close the underlying writer.
func (bw *Writer) Close() error {
	if bw.err == io.ErrClosedPipe {
		return nil
	}
	if bw.err != nil {
		return bw.err
	}
	b, err := Encode(bw.buf.Bytes())
	if err != nil {
		bw.err = err
		return err
	}
	n, err := bw.wr.Write(b)
	bw.outCnt += int64(n)
	if err != nil {
		bw.err = err
		return err
	}
	bw.err = io.ErrClosedPipe
	return nil
}

// Reset discards the Writer's state and makes it write to wr.
func (bw *Writer) Reset(wr io.Writer) {
	bw.wr, bw.outCnt, bw.err = wr, 0, nil
	bw.buf.Reset()
}

// Reader decodes a single block read from the underlying reader.
// The whole block is read and verified on the first call to Read.
type Reader struct {
	rd     io.Reader // Underlying reader
	buf    []byte    // Decoded data yet to be consumed
	inCnt  int64     // Total number of bytes read
	outCnt int64     // Total number of bytes returned by Read
	done   bool      // The block has been decoded
	err    error     // Persistent error
}

// NewReader creates a new Reader.
func NewReader(rd io.Reader) *Reader {
	br := new(Reader)
	br.Reset(rd)
	return br
}

// InputOffset reports the number of bytes read from the underlying reader.
func (br *Reader) InputOffset() int64 { return br.inCnt }

// OutputOffset reports the number of decoded bytes returned by Read.
func (br *Reader) OutputOffset() int64 { return br.outCnt }

func (br *Reader) Read(buf []byte) (int, error) {
	if !br.done && br.err == nil {
		br.done = true
		b, err := ioutil.ReadAll(br.rd)
		br.inCnt += int64(len(b))
		if err == nil {
			br.buf, err = Decode(b)
		}
		br.err = err
	}
	if len(br.buf) == 0 {
		if br.err != nil {
			return 0, br.err
		}
		return 0, io.EOF
	}
	n := copy(buf, br.buf)
	br.buf = br.buf[n:]
	br.outCnt += int64(n)
	return n, nil
}

// Close closes the Reader. It does not close the underlying reader.
func (br *Reader) Close() error {
	br.buf, br.done = nil, true
	if br.err == nil {
		br.err = io.ErrClosedPipe
	}
	return nil
}

// Reset discards the Reader's state and makes it read from rd.
func (br *Reader) Reset(rd io.Reader) {
	*br = Reader{rd: rd}
}
