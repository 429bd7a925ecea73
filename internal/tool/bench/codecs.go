// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	stdflate "compress/flate"
	"io"
	"io/ioutil"

	kpflate "github.com/klauspost/compress/flate"
	"github.com/kloczek/bitarray/block"
	"github.com/ulikunitz/xz"
)

func init() {
	// The block format has no compression levels.
	RegisterEncoder("block",
		func(w io.Writer, _ int) io.WriteCloser {
			return block.NewWriter(w)
		})
	RegisterDecoder("block",
		func(r io.Reader) io.ReadCloser {
			return block.NewReader(r)
		})

	RegisterEncoder("std",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := stdflate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("std",
		func(r io.Reader) io.ReadCloser {
			return stdflate.NewReader(r)
		})

	RegisterEncoder("kp",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := kpflate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("kp",
		func(r io.Reader) io.ReadCloser {
			return kpflate.NewReader(r)
		})

	RegisterEncoder("xz",
		func(w io.Writer, _ int) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("xz",
		func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				return errReader{err}
			}
			return ioutil.NopCloser(zr)
		})
}

// errReader is a ReadCloser that always fails with err.
type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
func (r errReader) Close() error             { return nil }
