// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package vlf

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/internal/errors"
	"github.com/kloczek/bitarray/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	input := testutil.MustDecodeHex("40303840" + "2ce040d320")
	// A plain io.Reader forces the Reader to buffer bytes itself.
	fr := NewReader(io.MultiReader(strings.NewReader(string(input))), bitvec.BigEndian)
	for i, want := range []string{"", "0", "1", "", "11", "00001", "001101"} {
		v, err := fr.ReadFrame()
		require.NoError(t, err, "frame %d", i)
		assert.Equal(t, want, v.String(), "frame %d", i)
	}
	_, err := fr.ReadFrame()
	assert.Equal(t, io.EOF, err)
	assert.EqualValues(t, len(input), fr.InputOffset())
	assert.EqualValues(t, 15, fr.OutputOffset())
	assert.EqualValues(t, 7, fr.NumFrames())
}

func TestReaderTruncated(t *testing.T) {
	fr := NewReader(bytes.NewReader(testutil.MustDecodeHex("38e0")), bitvec.LittleEndian)
	_, err := fr.ReadFrame()
	require.NoError(t, err)
	_, err = fr.ReadFrame()
	assert.True(t, errors.IsTruncated(err), "got %v, want truncated error", err)

	// Errors are persistent.
	_, err2 := fr.ReadFrame()
	assert.Equal(t, err, err2)
	assert.EqualValues(t, 2, fr.InputOffset())
	assert.EqualValues(t, 1, fr.NumFrames())
}

func TestWriterReader(t *testing.T) {
	r := testutil.NewRand(2)
	var vs []*bitvec.Vector
	for i := 0; i < 1000; i++ {
		n := r.Intn(31)
		vs = append(vs, bitvec.FromBytes(r.Bytes((n+7)/8), n, bitvec.LittleEndian))
	}

	var buf bytes.Buffer
	fw := NewWriter(&buf)
	var nbits int64
	for _, v := range vs {
		require.NoError(t, fw.WriteFrame(v))
		nbits += int64(v.Len())
	}
	require.NoError(t, fw.Close())
	assert.Equal(t, io.ErrClosedPipe, fw.WriteFrame(vs[0]))
	assert.EqualValues(t, buf.Len(), fw.OutputOffset())
	assert.Equal(t, nbits, fw.InputOffset())
	assert.EqualValues(t, len(vs), fw.NumFrames())

	fr := NewReader(&buf, bitvec.LittleEndian)
	for i, want := range vs {
		got, err := fr.ReadFrame()
		require.NoError(t, err, "frame %d", i)
		assert.True(t, got.Equal(want), "frame %d: got %v, want %v", i, got, want)
	}
	_, err := fr.ReadFrame()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, nbits, fr.OutputOffset())
}

func TestWriterError(t *testing.T) {
	var buf bytes.Buffer
	fw := NewWriter(&testutil.BuggyWriter{W: &buf, N: 3, Err: io.ErrShortWrite})
	require.NoError(t, fw.WriteFrame(bitvec.MustParse("001101", bitvec.BigEndian)))
	err := fw.WriteFrame(bitvec.MustParse("0101 0100111 0011", bitvec.BigEndian))
	assert.Equal(t, io.ErrShortWrite, err)
	assert.Equal(t, io.ErrShortWrite, fw.WriteFrame(bitvec.New(0, bitvec.BigEndian)))
	assert.EqualValues(t, 3, fw.OutputOffset())
	assert.EqualValues(t, 1, fw.NumFrames())

	fw.Reset(&buf)
	assert.NoError(t, fw.WriteFrame(bitvec.New(0, bitvec.BigEndian)))
	assert.EqualValues(t, 1, fw.OutputOffset())
}
