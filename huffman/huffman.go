// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman builds optimal and canonical prefix codes from symbol
// weights, and decodes canonical codes from a bit source.
//
// Construction follows the classic procedure of repeatedly merging the two
// lightest nodes. Ties in weight are broken by creation order: leaves in the
// order they were supplied, then internal nodes in the order they were made.
// The node removed first becomes the "0" child of the merged node.
package huffman

import (
	"container/heap"
	"math"
	"math/bits"

	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/internal/errors"
	"github.com/kloczek/bitarray/prefix"
	"golang.org/x/exp/constraints"
)

const pkg = "huffman"

var errNoSymbols error = errors.Error{Code: errors.Invalid, Pkg: pkg, Msg: "cannot create Huffman code with no symbols"}

// Weight is the set of types usable as symbol weights.
type Weight interface {
	constraints.Integer | constraints.Float
}

// Freq is the weight of a single symbol.
type Freq[S comparable, W Weight] struct {
	Sym    S
	Weight W
}

// Count returns the frequency of every symbol in msg, in order of first
// occurrence.
func Count[S comparable](msg []S) []Freq[S, int] {
	var freqs []Freq[S, int]
	idx := make(map[S]int)
	for _, s := range msg {
		i, ok := idx[s]
		if !ok {
			i = len(freqs)
			idx[s] = i
			freqs = append(freqs, Freq[S, int]{Sym: s})
		}
		freqs[i].Weight++
	}
	return freqs
}

// sum is a node weight. Integer weights accumulate in 128 bits and
// floating-point weights in a float64, so merging never wraps.
type sum struct {
	hi, lo uint64
	f      float64
}

func weightOf[W Weight](w W) sum {
	if half := 0.5; W(half) != 0 {
		return sum{f: float64(w)}
	}
	return sum{lo: uint64(w)}
}

func (a sum) add(b sum) sum {
	lo, carry := bits.Add64(a.lo, b.lo, 0)
	hi, _ := bits.Add64(a.hi, b.hi, carry)
	return sum{hi: hi, lo: lo, f: a.f + b.f}
}

func (a sum) less(b sum) bool {
	switch {
	case a.f != b.f:
		return a.f < b.f
	case a.hi != b.hi:
		return a.hi < b.hi
	default:
		return a.lo < b.lo
	}
}

type node[S comparable] struct {
	weight sum
	seq    int
	sym    S
	leaf   bool
	child  [2]*node[S]
}

// nodeHeap is a min-heap ordered by weight, then by creation sequence.
type nodeHeap[S comparable] []*node[S]

func (h nodeHeap[S]) Len() int { return len(h) }
func (h nodeHeap[S]) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight.less(h[j].weight)
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap[S]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap[S]) Push(x any)  { *h = append(*h, x.(*node[S])) }
func (h *nodeHeap[S]) Pop() any {
	old := *h
	nd := old[len(old)-1]
	*h = old[:len(old)-1]
	return nd
}

// buildTree merges the nodes of freqs into a single Huffman tree.
func buildTree[S comparable, W Weight](freqs []Freq[S, W]) (*node[S], error) {
	if len(freqs) == 0 {
		return nil, errNoSymbols
	}
	seen := make(map[S]bool, len(freqs))
	h := make(nodeHeap[S], 0, len(freqs))
	for i, f := range freqs {
		switch {
		case math.IsNaN(float64(f.Weight)):
			return nil, errors.Errorf(errors.Type, pkg, "weight of symbol %v is not comparable", f.Sym)
		case f.Weight < 0:
			return nil, errors.Errorf(errors.Invalid, pkg, "weight of symbol %v cannot be negative, got %v", f.Sym, f.Weight)
		case seen[f.Sym]:
			return nil, errors.Errorf(errors.Invalid, pkg, "duplicate symbol: %v", f.Sym)
		}
		seen[f.Sym] = true
		h = append(h, &node[S]{weight: weightOf(f.Weight), seq: i, sym: f.Sym, leaf: true})
	}
	heap.Init(&h)

	// A lone symbol still needs one bit, so it hangs off a root of its own.
	if h.Len() == 1 {
		return &node[S]{child: [2]*node[S]{h[0], nil}}, nil
	}

	seq := len(freqs)
	for h.Len() > 1 {
		c0 := heap.Pop(&h).(*node[S])
		c1 := heap.Pop(&h).(*node[S])
		heap.Push(&h, &node[S]{
			weight: c0.weight.add(c1.weight),
			seq:    seq,
			child:  [2]*node[S]{c0, c1},
		})
		seq++
	}
	return h[0], nil
}

// walk calls fn for every leaf of the tree with its root-to-leaf path.
func (nd *node[S]) walk(path *bitvec.Vector, fn func(S, *bitvec.Vector)) {
	if nd == nil {
		return
	}
	if nd.leaf {
		fn(nd.sym, path)
		return
	}
	for k, ch := range nd.child {
		p := path.Clone()
		p.Append(k == 1)
		ch.walk(p, fn)
	}
}

// Build returns an optimal prefix code for freqs. The returned codewords
// carry the packing convention e.
//
// It fails if freqs is empty, if a symbol occurs twice, or if any weight is
// negative or NaN.
func Build[S comparable, W Weight](freqs []Freq[S, W], e bitvec.Endian) (prefix.Code[S], error) {
	root, err := buildTree(freqs)
	if err != nil {
		return nil, err
	}
	code := make(prefix.Code[S], len(freqs))
	root.walk(bitvec.New(0, e), func(s S, cw *bitvec.Vector) { code[s] = cw })
	return code, nil
}

// Lengths returns the codeword length of every symbol in freqs, in the same
// order as freqs, for the code that Build would produce.
func Lengths[S comparable, W Weight](freqs []Freq[S, W]) ([]int, error) {
	root, err := buildTree(freqs)
	if err != nil {
		return nil, err
	}
	depth := make(map[S]int, len(freqs))
	root.walk(bitvec.New(0, bitvec.BigEndian), func(s S, cw *bitvec.Vector) { depth[s] = cw.Len() })
	lens := make([]int, len(freqs))
	for i, f := range freqs {
		lens[i] = depth[f.Sym]
	}
	return lens, nil
}
