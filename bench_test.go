// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package microjson_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/cardpoint/microjson"
)

func BenchmarkReader(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("StdlibTokens", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Discard", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			r := microjson.NewReader(microjson.NewSliceSource(input))
			if err := r.Discard(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("ReadAny", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			r := microjson.NewReader(microjson.NewSliceSource(input))
			if _, err := r.ReadAny(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
