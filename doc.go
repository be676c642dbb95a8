// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package microjson implements a streaming JSON codec for memory-constrained
// targets.
//
// The package decodes from and encodes to JSON text without ever requiring a
// complete document in memory: input is pulled one buffered window at a time
// from a Source, output is pushed incrementally to a Sink, and composite
// values can be traversed member-by-member so that memory use is bounded by
// one element regardless of document size.
//
// # Reading
//
// Construct a Reader from a Source and call its token parsers to pull values
// off the front of the input. ReadAny materializes one complete value of any
// shape as a Value tree, leaving trailing bytes unconsumed:
//
//	r := microjson.NewReader(microjson.NewStringSource(input))
//	v, err := r.ReadAny()
//
// When the document may be larger than available memory, walk it instead with
// ReadObject or ReadArray, which hand the Reader to a callback positioned at
// each member value in turn:
//
//	err := r.ReadObject(func(key string, r *microjson.Reader) error {
//	   ...
//	})
//
// A Reader that has reported a parse error is left positioned at the failing
// byte and must not be reused for the same document.
//
// # Typed decoding
//
// Types that know their own JSON shape implement StreamDecoder. The
// ContextDecoder variant additionally threads a caller-owned context value
// through the member loop, so nested decodes can write directly into
// fixed-capacity external storage instead of collecting results; see
// DecodeInto.
//
// # Writing
//
// Construct a Writer from a Sink and emit tokens with its Write methods, or
// hand it any StreamEncoder. BeginObject returns an incremental field
// builder; the caller must End it explicitly, or use WriteObject, which
// closes the object on every exit path:
//
//	w := microjson.NewWriter(sink)
//	err := w.WriteObject(func(o *microjson.ObjectWriter) error {
//	   return o.Int("articles", n)
//	})
//
// # Deviations from RFC 8259
//
// Two deviations are deliberate and load-bearing for the devices this package
// serves. On read, a backslash in a string keeps the literal byte that
// follows it; the standard escape table (\n, \uXXXX, ...) is not interpreted,
// so text produced by arbitrary JSON encoders may decode incorrectly. Number
// exponent notation is not recognized on read and never produced on write.
package microjson
