// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/internal/errors"
	"github.com/kloczek/bitarray/internal/testutil"
	"github.com/kloczek/bitarray/prefix"
)

// checkCanonical verifies the structural properties of a canonical code.
func checkCanonical[S comparable](t *testing.T, code prefix.Code[S], count []int, symbol []S) {
	t.Helper()
	if len(code) != len(symbol) {
		t.Fatalf("size mismatch: len(code) = %d, len(symbol) = %d", len(code), len(symbol))
	}
	if count[0] != 0 {
		t.Errorf("count[0] = %d, want 0", count[0])
	}
	if diff := cmp.Diff(count, code.Lengths()); diff != "" {
		t.Errorf("count mismatch (-got +want):\n%s", diff)
	}

	for i, s := range symbol {
		cw := code[s]
		if cw.Endian() != bitvec.BigEndian {
			t.Errorf("codeword %d has endianness %v", i, cw.Endian())
		}
		if i == 0 {
			if cw.Count() != 0 {
				t.Errorf("first codeword %v is not all zeros", cw)
			}
			continue
		}
		prev := code[symbol[i-1]]
		switch {
		case prev.Len() > cw.Len():
			t.Errorf("codeword %d: length decreased from %d to %d", i, prev.Len(), cw.Len())
		case prev.Len() == cw.Len() && prev.Uint64()+1 != cw.Uint64():
			t.Errorf("codeword %d: %v does not follow %v", i, cw, prev)
		case prev.Uint64() >= cw.Uint64():
			t.Errorf("codeword %d: %v is not greater than %v", i, cw, prev)
		}
	}
	if len(symbol) > 1 {
		last := code[symbol[len(symbol)-1]]
		if last.Count() != last.Len() {
			t.Errorf("last codeword %v is not all ones", last)
		}
		if !IsComplete(count) {
			t.Errorf("count %v is not complete", count)
		}
	}
}

func TestCanonical(t *testing.T) {
	msg := []byte("the quick brown fox jumps over the lazy dog.")
	code, count, symbol, err := CanonicalOrdered(Count(msg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCanonical(t, code, count, symbol)

	bits := bitvec.New(0, bitvec.BigEndian)
	if err := code.Encode(bits, msg); err != nil {
		t.Fatalf("unexpected Encode error: %v", err)
	}
	got, err := Decode(bits, count, symbol)
	if err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	if diff := cmp.Diff(msg, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}

	tree, err := prefix.NewTree(code)
	if err != nil {
		t.Fatalf("unexpected NewTree error: %v", err)
	}
	got, err = tree.DecodeAll(bits)
	if err != nil {
		t.Fatalf("unexpected DecodeAll error: %v", err)
	}
	if diff := cmp.Diff(msg, got); diff != "" {
		t.Errorf("DecodeAll mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonicalOneSymbol(t *testing.T) {
	code, count, symbol, err := Canonical([]Freq[string, int]{{"a", 1}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"a": "0"}, codeStrings(code)); diff != "" {
		t.Errorf("code mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, count); diff != "" {
		t.Errorf("count mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, symbol); diff != "" {
		t.Errorf("symbol mismatch (-want +got):\n%s", diff)
	}

	for n := 0; n < 4; n++ {
		msg := make([]string, n)
		for i := range msg {
			msg[i] = "a"
		}
		bits := bitvec.New(0, bitvec.BigEndian)
		code.Encode(bits, msg)
		if got, want := bits.String(), strings.Repeat("0", n); got != want {
			t.Errorf("n=%d, encoded bits: got %s, want %s", n, got, want)
		}
		got, err := Decode(bits, count, symbol)
		if err != nil {
			t.Errorf("n=%d, unexpected Decode error: %v", n, err)
		}
		if len(got) != n {
			t.Errorf("n=%d, decoded %d symbols", n, len(got))
		}
		bits.Append(true)
		if _, err := Decode(bits, count, symbol); err == nil {
			t.Errorf("n=%d, Decode succeeded on a codeword outside the code", n)
		}
	}
}

func TestCanonicalTieBreak(t *testing.T) {
	freqs := []Freq[string, int]{{"d", 1}, {"b", 1}, {"c", 1}, {"a", 1}}

	_, count, symbol, err := Canonical(freqs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{0, 0, 4}, count); diff != "" {
		t.Errorf("count mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"d", "b", "c", "a"}, symbol); diff != "" {
		t.Errorf("insertion order mismatch (-want +got):\n%s", diff)
	}

	code, _, symbol, err := CanonicalOrdered(freqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, symbol); diff != "" {
		t.Errorf("sorted order mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{"a": "00", "b": "01", "c": "10", "d": "11"}
	if diff := cmp.Diff(want, codeStrings(code)); diff != "" {
		t.Errorf("code mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonicalRandom(t *testing.T) {
	r := testutil.NewRand(1)
	for i := 0; i < 20; i++ {
		n := 1 + r.Intn(300)
		var freqs []Freq[int, int]
		for j := 0; j < n; j++ {
			freqs = append(freqs, Freq[int, int]{j, r.Intn(1000)})
		}
		code, count, symbol, err := Canonical(freqs, func(a, b int) bool { return a > b })
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		checkCanonical(t, code, count, symbol)

		// The lengths must match those of the plain Huffman code.
		lens, err := Lengths(freqs)
		if err != nil {
			t.Fatalf("test %d, unexpected Lengths error: %v", i, err)
		}
		for j, f := range freqs {
			if code[f.Sym].Len() != lens[j] {
				t.Errorf("test %d, length of symbol %d: got %d, want %d", i, f.Sym, code[f.Sym].Len(), lens[j])
			}
		}
	}
}

func TestIsComplete(t *testing.T) {
	vectors := []struct {
		count []int
		want  bool
	}{
		{nil, false},
		{[]int{0}, false},
		{[]int{0, 1}, false},
		{[]int{0, 2}, true},
		{[]int{0, 0, 4}, true},
		{[]int{0, 1, 1, 2}, true},
		{[]int{0, 1, 1, 1}, false},
		{[]int{0, 0, 4, 0, 0}, true},
		{[]int{-7, 1, 2}, true},
	}
	for i, v := range vectors {
		if got := IsComplete(v.count); got != v.want {
			t.Errorf("test %d, IsComplete(%v): got %v, want %v", i, v.count, got, v.want)
		}
	}
}

func TestCanonicalLong(t *testing.T) {
	// Fibonacci weights give the most unbalanced tree, with codewords far
	// longer than 64 bits.
	const n = 90
	freqs := make([]Freq[int, uint64], n)
	a, b := uint64(1), uint64(1)
	for i := range freqs {
		freqs[i] = Freq[int, uint64]{i, a}
		a, b = b, a+b
	}
	code, count, symbol, err := CanonicalOrdered(freqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := len(count)-1, n-1; got != want {
		t.Errorf("maximum length mismatch: got %d, want %d", got, want)
	}
	if !IsComplete(count) {
		t.Errorf("count %v is not complete", count)
	}
	tree, err := prefix.NewTree(code)
	if err != nil {
		t.Fatalf("unexpected NewTree error: %v", err)
	}
	if !tree.IsComplete() {
		t.Errorf("tree is not complete")
	}

	// The last two codewords are all ones except for their final bit.
	last, prev := code[symbol[n-1]], code[symbol[n-2]]
	if last.Count() != n-1 || prev.Count() != n-2 || prev.Get(n-2) {
		t.Errorf("last codewords mismatch: got %v and %v", prev, last)
	}

	msg := []int{0, n - 1, 45, 1, 0, 89, 88}
	var v bitvec.Vector
	if err := code.Encode(&v, msg); err != nil {
		t.Fatalf("unexpected Encode error: %v", err)
	}
	if _, err := Decode(&v, count, symbol); !errors.IsInvalid(err) {
		t.Errorf("canonical decode beyond MaxCountLen: got %v, want invalid error", err)
	}
	dec, err := tree.DecodeAll(&v)
	if err != nil {
		t.Fatalf("unexpected DecodeAll error: %v", err)
	}
	if diff := cmp.Diff(msg, dec); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
}
