// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package vlf

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/internal/errors"
	"github.com/kloczek/bitarray/internal/testutil"
)

func TestExplicit(t *testing.T) {
	vectors := []struct {
		input  string // Hex string
		output string // Bit string
	}{
		{"40", ""},
		{"30", "0"},
		{"38", "1"},
		{"00", "0000"},
		{"01", "0001"},
		{"e040", "0000 1"},
		{"9002", "0000 000001"},
		{"b5a718", "0101 0100111 0011"},
	}

	for i, v := range vectors {
		input := testutil.MustDecodeHex(v.input)
		want := bitvec.MustParse(v.output, bitvec.BigEndian)

		if got := Encode(want); !bytes.Equal(got, input) {
			t.Errorf("test %d, Encode mismatch: got %x, want %x", i, got, input)
		}
		for _, e := range []bitvec.Endian{bitvec.LittleEndian, bitvec.BigEndian} {
			got, err := Decode(bytes.NewReader(input), e)
			if err != nil {
				t.Errorf("test %d, unexpected error: %v", i, err)
				continue
			}
			if !got.Equal(want) || got.Endian() != e {
				t.Errorf("test %d, Decode mismatch: got %v (%v), want %v (%v)", i, got, got.Endian(), want, e)
			}
		}
	}
}

func TestEncodeEndian(t *testing.T) {
	for _, e := range []bitvec.Endian{bitvec.LittleEndian, bitvec.BigEndian} {
		got := Encode(bitvec.MustParse("001101", e))
		if want := testutil.MustDecodeHex("d320"); !bytes.Equal(got, want) {
			t.Errorf("%v endian, Encode mismatch: got %x, want %x", e, got, want)
		}
	}
}

func TestDecodeTrailing(t *testing.T) {
	vectors := []struct {
		input  string
		output string
	}{
		{"40414243", ""},
		{"e04041", "00001"},
	}
	for i, v := range vectors {
		rd := bytes.NewReader(testutil.MustDecodeHex(v.input))
		got, err := Decode(rd, bitvec.BigEndian)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if got.String() != v.output {
			t.Errorf("test %d, output mismatch: got %s, want %s", i, got, v.output)
		}
		if b, err := rd.ReadByte(); err != nil || b != 'A' {
			t.Errorf("test %d, next byte: got (%q, %v), want ('A', nil)", i, b, err)
		}
	}
}

func TestDecodeAmbiguity(t *testing.T) {
	vectors := []struct {
		input  string
		output string
	}{
		{"40", ""},
		{"4f", ""},
		{"45", ""},
		{"1e", "111"},
		{"1f", "111"},
	}
	for i, v := range vectors {
		got, err := Decode(bytes.NewReader(testutil.MustDecodeHex(v.input)), bitvec.BigEndian)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if got.String() != v.output {
			t.Errorf("test %d, output mismatch: got %s, want %s", i, got, v.output)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	errFuncs := map[string]func(error) bool{
		"IsInvalid":   errors.IsInvalid,
		"IsTruncated": errors.IsTruncated,
	}
	vectors := []struct {
		desc   string
		input  string
		errf   string
		offset int64
	}{
		{"empty input", "", "IsTruncated", 0},
		{"too many pads in header only frame", "50", "IsInvalid", 0},
		{"too many pads in header only frame", "60", "IsInvalid", 0},
		{"seven pads", "70", "IsInvalid", 0},
		{"seven pads with continuation", "f0", "IsInvalid", 0},
		{"missing terminating byte", "80", "IsTruncated", 1},
		{"missing terminating byte", "8080", "IsTruncated", 2},
	}

	for i, v := range vectors {
		_, err := Decode(bytes.NewReader(testutil.MustDecodeHex(v.input)), bitvec.BigEndian)
		if !errFuncs[v.errf](err) {
			t.Errorf("test %d (%s), mismatching error:\ngot %v\nwant %s(got) == true", i, v.desc, err, v.errf)
			continue
		}
		if cerr, ok := err.(errors.Error); ok && cerr.InputOffset() != v.offset {
			t.Errorf("test %d (%s), offset mismatch: got %d, want %d", i, v.desc, cerr.InputOffset(), v.offset)
		}
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	r := testutil.NewRand(0)
	for n := 0; n < 120; n++ {
		input := make([]byte, n)
		for i := range input {
			input[i] = byte(0x80 + r.Intn(0x70))
		}
		v, err := Decode(bytes.NewReader(input), bitvec.LittleEndian)
		if v != nil {
			t.Errorf("n=%d, unexpected vector: %v", n, v)
		}
		if want := fmt.Sprintf("bytes read: %d", n); err == nil || !strings.HasSuffix(err.Error(), want) {
			t.Errorf("n=%d, error message mismatch: got %v, want suffix %q", n, err, want)
		}
	}
}

func TestExplicitZeros(t *testing.T) {
	for n := 0; n < 100; n++ {
		v := bitvec.New(4+7*n, bitvec.BigEndian)
		want := append(bytes.Repeat([]byte{0x80}, n), 0x00)
		if got := Encode(v); !bytes.Equal(got, want) {
			t.Errorf("n=%d, Encode mismatch: got %x, want %x", n, got, want)
		}
		got, err := Decode(bytes.NewReader(want), bitvec.BigEndian)
		if err != nil || !got.Equal(v) {
			t.Errorf("n=%d, Decode mismatch: got (%v, %v), want (%v, nil)", n, got, err, v)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(1)
	for i := 0; i < 1000; i++ {
		n := r.Intn(200)
		e := bitvec.Endian(r.Intn(2))
		v := bitvec.FromBytes(r.Bytes((n+7)/8), n, e)

		b := Encode(v)
		if got, want := len(b), (n+3+6)/7; got != want {
			t.Errorf("test %d, frame length mismatch: got %d, want %d", i, got, want)
		}
		got, err := Decode(bytes.NewReader(b), e)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if !got.Equal(v) {
			t.Errorf("test %d, round trip mismatch: got %v, want %v", i, got, v)
		}
	}
}

func FuzzDecode(f *testing.F) {
	for _, s := range []string{"40", "4f", "b5a718", "e04041", "8080"} {
		f.Add(testutil.MustDecodeHex(s))
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		fr := NewReader(bytes.NewReader(data), bitvec.BigEndian)
		for {
			v, err := fr.ReadFrame()
			if err != nil {
				if err != io.EOF && !errors.IsTruncated(err) && !errors.IsInvalid(err) {
					t.Fatalf("unclassified error: %v", err)
				}
				break
			}
			got, err := Decode(bytes.NewReader(Encode(v)), bitvec.LittleEndian)
			if err != nil || !got.Equal(v) {
				t.Fatalf("round trip mismatch: got (%v, %v), want %v", got, err, v)
			}
		}
		if fr.InputOffset() > int64(len(data)) {
			t.Fatalf("input offset %d beyond input size %d", fr.InputOffset(), len(data))
		}
	})
}
