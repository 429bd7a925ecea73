// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements prefix codes over arbitrary symbols.
//
// A Code maps each symbol to a codeword. A Tree is the binary trie of a Code
// and is used to decode a concatenation of codewords one symbol at a time.
package prefix

import (
	"io"

	"github.com/kloczek/bitarray"
	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/internal/errors"
)

const pkg = "prefix"

var (
	errEmptyCode   error = errors.Error{Code: errors.Invalid, Pkg: pkg, Msg: "prefix code empty"}
	errEmptyWord   error = errors.Error{Code: errors.Invalid, Pkg: pkg, Msg: "non-empty codeword expected"}
	errAmbiguous   error = errors.Error{Code: errors.Invalid, Pkg: pkg, Msg: "prefix code ambiguous"}
	errUnrecognize error = errors.Error{Code: errors.Invalid, Pkg: pkg, Msg: "prefix code unrecognized"}
)

// Code maps symbols to codewords. No codeword may be a prefix of another.
// A Code is not modified by any function in this module once built.
type Code[S comparable] map[S]*bitvec.Vector

// Encode appends the codeword of every symbol in msg to dst.
// It fails if a symbol has no codeword.
func (c Code[S]) Encode(dst *bitvec.Vector, msg []S) error {
	for _, s := range msg {
		cw, ok := c[s]
		if !ok {
			return errors.Errorf(errors.Invalid, pkg, "symbol not defined in prefix code: %v", s)
		}
		dst.Extend(cw)
	}
	return nil
}

// Lengths reports the number of codewords of each bit length.
// The result has an entry for every length up to the longest codeword.
func (c Code[S]) Lengths() []int {
	var cnts []int
	for _, cw := range c {
		for len(cnts) <= cw.Len() {
			cnts = append(cnts, 0)
		}
		cnts[cw.Len()]++
	}
	return cnts
}

type node[S comparable] struct {
	child [2]*node[S]
	sym   S
	leaf  bool
}

// Tree is a binary trie over a Code. Left edges are 0 bits and right edges
// are 1 bits; leaves hold the symbols.
type Tree[S comparable] struct {
	root *node[S]
}

// NewTree builds the decode trie of code. It fails if code is empty, if any
// codeword is empty, or if the code is not prefix-free.
func NewTree[S comparable](code Code[S]) (*Tree[S], error) {
	if len(code) == 0 {
		return nil, errEmptyCode
	}
	t := &Tree[S]{root: new(node[S])}
	for sym, cw := range code {
		if err := t.insert(sym, cw); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree[S]) insert(sym S, cw *bitvec.Vector) error {
	if cw.Len() == 0 {
		return errEmptyWord
	}
	nd := t.root
	for i := 0; i < cw.Len(); i++ {
		if nd.leaf {
			return errAmbiguous // Existing codeword is a prefix of cw
		}
		k := btoi(cw.Get(i))
		if nd.child[k] == nil {
			nd.child[k] = new(node[S])
		}
		nd = nd.child[k]
	}
	if nd.leaf || nd.child[0] != nil || nd.child[1] != nil {
		return errAmbiguous // Duplicate codeword, or cw is a prefix of another
	}
	nd.sym, nd.leaf = sym, true
	return nil
}

// Decode reads one codeword from r and returns its symbol.
//
// It returns io.EOF if r is exhausted before the first bit, a truncated error
// if r is exhausted inside a codeword, and an invalid error if the bits read
// do not belong to any codeword.
func (t *Tree[S]) Decode(r bitarray.BitReader) (sym S, err error) {
	nd := t.root
	for depth := 0; !nd.leaf; depth++ {
		b, err := r.ReadBit()
		if err == io.EOF {
			if depth == 0 {
				return sym, io.EOF
			}
			return sym, errors.Error{Code: errors.Truncated, Pkg: pkg, Msg: "decoding not terminated"}
		}
		if err != nil {
			return sym, err
		}
		if nd = nd.child[btoi(b)]; nd == nil {
			return sym, errUnrecognize
		}
	}
	return nd.sym, nil
}

// DecodeAll decodes every codeword in v.
func (t *Tree[S]) DecodeAll(v *bitvec.Vector) ([]S, error) {
	var msg []S
	c := v.Cursor()
	for {
		sym, err := t.Decode(c)
		if err == io.EOF {
			return msg, nil
		}
		if err != nil {
			return msg, err
		}
		msg = append(msg, sym)
	}
}

// ToMap reconstructs the Code the tree was built from. Codewords use the
// big-endian packing convention.
func (t *Tree[S]) ToMap() Code[S] {
	code := make(Code[S])
	var walk func(nd *node[S], path *bitvec.Vector)
	walk = func(nd *node[S], path *bitvec.Vector) {
		if nd.leaf {
			code[nd.sym] = path.Clone()
			return
		}
		for k, ch := range nd.child {
			if ch != nil {
				p := path.Clone()
				p.Append(k == 1)
				walk(ch, p)
			}
		}
	}
	walk(t.root, bitvec.New(0, bitvec.BigEndian))
	return code
}

// NodeCount reports the total number of nodes in the trie, root included.
func (t *Tree[S]) NodeCount() int {
	var count func(nd *node[S]) int
	count = func(nd *node[S]) int {
		if nd == nil {
			return 0
		}
		return 1 + count(nd.child[0]) + count(nd.child[1])
	}
	return count(t.root)
}

// IsComplete reports whether every internal node of the trie has exactly two
// children, meaning the code leaves no part of the code space unused.
func (t *Tree[S]) IsComplete() bool {
	var complete func(nd *node[S]) bool
	complete = func(nd *node[S]) bool {
		if nd.leaf {
			return true
		}
		if nd.child[0] == nil || nd.child[1] == nil {
			return false
		}
		return complete(nd.child[0]) && complete(nd.child[1])
	}
	return complete(t.root)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
