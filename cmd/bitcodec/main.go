// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command bitcodec exposes the codecs of this module on the command line.
//
// Example usage:
//	$ bitcodec huffman input.txt
//	$ bitcodec compress input.txt input.blk
//	$ bitcodec decompress input.blk output.txt
//	$ bitcodec --endian little vlf-encode 0101010011100011
//	$ bitcodec vlf-decode b5a718
//	$ bitcodec serialize 11110000
//	$ bitcodec deserialize 10f0
//	$ bitcodec bench --sizes 1e4,1e5 input.txt
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
