// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program mjcheck validates and normalizes terminal payload fixtures.
//
// It reads one JSON document from a file or stdin through the codec and
// writes the normalized form to stdout, reporting any codec error with its
// input offset. Use --hujson to accept human-maintained fixtures containing
// comments or trailing commas, and --discard to validate arbitrarily large
// fixtures in bounded memory without materializing them.
//
// Usage:
//
//	mjcheck [--hujson] [--discard] [file]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cardpoint/microjson"
	"github.com/spf13/pflag"
	"github.com/tailscale/hujson"
)

var (
	useHujson = pflag.Bool("hujson", false, "Standardize comments and trailing commas before checking")
	doDiscard = pflag.Bool("discard", false, "Validate in bounded memory without materializing")
	bufSize   = pflag.Int("buf", 4096, "Stream buffer size in bytes")
)

func main() {
	pflag.Parse()

	in := io.Reader(os.Stdin)
	switch pflag.NArg() {
	case 0:
		// read stdin
	case 1:
		f, err := os.Open(pflag.Arg(0))
		if err != nil {
			fail(err)
		}
		defer f.Close()
		in = f
	default:
		fmt.Fprintln(os.Stderr, "usage: mjcheck [--hujson] [--discard] [file]")
		os.Exit(2)
	}

	var src microjson.Source
	if *useHujson {
		// Standardizing requires the whole input, so this path trades the
		// bounded-memory guarantee for fixture convenience.
		data, err := io.ReadAll(in)
		if err != nil {
			fail(err)
		}
		data, err = hujson.Standardize(data)
		if err != nil {
			fail(err)
		}
		src = microjson.NewSliceSource(data)
	} else {
		src = microjson.NewStreamSource(in, *bufSize)
	}

	r := microjson.NewReader(src)
	if *doDiscard {
		if err := r.Discard(); err != nil {
			fail(err)
		}
		fmt.Fprintln(os.Stderr, "OK")
		return
	}

	v, err := r.ReadAny()
	if err != nil {
		fail(err)
	}
	w := microjson.NewWriter(microjson.NewStreamSink(os.Stdout))
	if err := w.WriteValue(v); err != nil {
		fail(err)
	}
	fmt.Println()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "mjcheck: %v\n", err)
	os.Exit(1)
}
