// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"regexp"
	"strings"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/dustin/go-humanize"
	"github.com/kloczek/bitarray/bitvec"
	"github.com/kloczek/bitarray/block"
	"github.com/kloczek/bitarray/huffman"
	"github.com/kloczek/bitarray/internal/tool/bench"
	"github.com/kloczek/bitarray/serial"
	"github.com/kloczek/bitarray/vlf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bitcodec"
	app.Usage = "Huffman, frame, and serialization codecs for bit sequences"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{endianFlag, verbosityFlag, logFormatFlag}
	app.Commands = []cli.Command{{
		Name:      "huffman",
		Usage:     "Print the canonical Huffman code for the bytes of a file",
		ArgsUsage: "FILE",
		Action:    withConfig(huffmanAction),
	}, {
		Name:      "compress",
		Usage:     "Encode a file as a static Huffman block",
		ArgsUsage: "IN OUT",
		Action:    withConfig(compressAction),
	}, {
		Name:      "decompress",
		Usage:     "Decode a static Huffman block",
		ArgsUsage: "IN OUT",
		Action:    withConfig(decompressAction),
	}, {
		Name:      "vlf-encode",
		Usage:     "Encode a bit string as a variable length frame",
		ArgsUsage: "BITS",
		Action:    withConfig(vlfEncodeAction),
	}, {
		Name:      "vlf-decode",
		Usage:     "Decode a sequence of variable length frames",
		ArgsUsage: "HEX",
		Action:    withConfig(vlfDecodeAction),
	}, {
		Name:      "serialize",
		Usage:     "Serialize a bit string with a header byte",
		ArgsUsage: "BITS",
		Action:    withConfig(serializeAction),
	}, {
		Name:      "deserialize",
		Usage:     "Deserialize a bit string",
		ArgsUsage: "HEX",
		Action:    withConfig(deserializeAction),
	}, {
		Name:      "bench",
		Usage:     "Compare the compression ratio of the block codec with other codecs",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "codecs", Usage: "List of codecs to compare", Value: strings.Join(bench.Codecs(), ",")},
			cli.StringFlag{Name: "levels", Usage: "List of compression levels", Value: "6"},
			cli.StringFlag{Name: "sizes", Usage: "List of input sizes", Value: "1e4,1e5,1e6"},
		},
		Action: withConfig(benchAction),
	}}
	return app
}

type action func(ctx *cli.Context, cfg *config) error

// withConfig builds the shared configuration and checks the argument count
// declared by the command's ArgsUsage before running fn.
func withConfig(fn action) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := newConfig(ctx)
		if err != nil {
			return err
		}
		want := strings.Fields(ctx.Command.ArgsUsage)
		variadic := len(want) > 0 && strings.HasSuffix(want[len(want)-1], "...")
		if n := len(ctx.Args()); n != len(want) && !(variadic && n >= len(want)) {
			return errors.Errorf("%s: expected arguments %s, got %d", ctx.Command.Name, ctx.Command.ArgsUsage, n)
		}
		return fn(ctx, cfg)
	}
}

func huffmanAction(ctx *cli.Context, cfg *config) error {
	file := ctx.Args().First()
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}
	if len(data) == 0 {
		return errors.Errorf("%s is empty", file)
	}

	freqs := huffman.Count(data)
	code, count, symbol, err := huffman.CanonicalOrdered(freqs)
	if err != nil {
		return err
	}
	weight := make(map[byte]int, len(freqs))
	for _, f := range freqs {
		weight[f.Sym] = f.Weight
	}

	var nbits int
	w := ctx.App.Writer
	fmt.Fprintf(w, "%-8s %10s %4s  %s\n", "symbol", "count", "len", "codeword")
	for _, s := range symbol {
		cw := code[s]
		nbits += weight[s] * cw.Len()
		fmt.Fprintf(w, "%-8q %10d %4d  %s\n", s, weight[s], cw.Len(), cw)
	}
	fmt.Fprintf(w, "count: %v\n", count[1:])
	fmt.Fprintf(w, "complete: %v\n", huffman.IsComplete(count))

	cfg.log.WithFields(logrus.Fields{
		"file":    file,
		"symbols": len(symbol),
		"bytes":   humanize.Bytes(uint64(len(data))),
		"encoded": humanize.Bytes(uint64((nbits + 7) / 8)),
	}).Info("built canonical Huffman code")
	return nil
}

func compressAction(ctx *cli.Context, cfg *config) error {
	in, out := ctx.Args().Get(0), ctx.Args().Get(1)
	data, err := ioutil.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer f.Close()

	bw := block.NewWriter(f)
	if _, err := bw.Write(data); err != nil {
		return errors.Wrap(err, "encoding")
	}
	if err := bw.Close(); err != nil {
		return errors.Wrap(err, "encoding")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing output")
	}

	cfg.log.WithFields(logrus.Fields{
		"file":  in,
		"bytes": humanize.Bytes(uint64(bw.InputOffset())),
		"out":   humanize.Bytes(uint64(bw.OutputOffset())),
		"ratio": fmt.Sprintf("%.3f", float64(bw.InputOffset())/float64(bw.OutputOffset())),
	}).Info("compressed")
	return nil
}

func decompressAction(ctx *cli.Context, cfg *config) error {
	in, out := ctx.Args().Get(0), ctx.Args().Get(1)
	f, err := os.Open(in)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()

	var buf bytes.Buffer
	br := block.NewReader(f)
	if _, err := io.Copy(&buf, br); err != nil {
		return errors.Wrapf(err, "decoding %s", in)
	}
	if err := ioutil.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(err, "writing output")
	}

	cfg.log.WithFields(logrus.Fields{
		"file":  in,
		"bytes": humanize.Bytes(uint64(br.OutputOffset())),
	}).Info("decompressed")
	return nil
}

func vlfEncodeAction(ctx *cli.Context, cfg *config) error {
	v, err := bitvec.Parse(ctx.Args().First(), cfg.endian)
	if err != nil {
		return err
	}
	b := vlf.Encode(v)
	cfg.log.WithFields(logrus.Fields{"bits": v.Len(), "bytes": len(b)}).Debug("encoded frame")
	fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(b))
	return nil
}

func vlfDecodeAction(ctx *cli.Context, cfg *config) error {
	b, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return errors.Wrap(err, "invalid hex input")
	}
	fr := vlf.NewReader(bytes.NewReader(b), cfg.endian)
	for {
		v, err := fr.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "frame %d at byte %d", fr.NumFrames(), fr.InputOffset())
		}
		fmt.Fprintln(ctx.App.Writer, v)
	}
	cfg.log.WithFields(logrus.Fields{
		"frames": fr.NumFrames(),
		"bytes":  fr.InputOffset(),
		"bits":   fr.OutputOffset(),
	}).Debug("decoded frames")
	return nil
}

func serializeAction(ctx *cli.Context, cfg *config) error {
	v, err := bitvec.Parse(ctx.Args().First(), cfg.endian)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(serial.Marshal(v)))
	return nil
}

func deserializeAction(ctx *cli.Context, cfg *config) error {
	b, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return errors.Wrap(err, "invalid hex input")
	}
	v, err := serial.Unmarshal(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%s %v\n", v, v.Endian())
	return nil
}

func benchAction(ctx *cli.Context, cfg *config) error {
	sep := regexp.MustCompile("[,:]")
	codecs := sep.Split(ctx.String("codecs"), -1)
	for _, c := range codecs {
		if bench.Encoders[c] == nil {
			return errors.Errorf("unknown codec %q", c)
		}
	}
	var levels, sizes []int
	for _, s := range sep.Split(ctx.String("levels"), -1) {
		lvl, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			return errors.Wrapf(err, "invalid level %q", s)
		}
		levels = append(levels, int(lvl))
	}
	for _, s := range sep.Split(ctx.String("sizes"), -1) {
		n, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			return errors.Wrapf(err, "invalid size %q", s)
		}
		sizes = append(sizes, int(n))
	}

	files := []string(ctx.Args())
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return errors.WithStack(err)
		}
	}
	cfg.log.WithFields(logrus.Fields{"codecs": codecs, "files": len(files)}).Info("running benchmark")
	results, names := bench.BenchmarkRatioSuite(codecs, files, levels, sizes, nil)
	bench.PrintResults(ctx.App.Writer, results, names, codecs, "ratio", "x")
	return nil
}
