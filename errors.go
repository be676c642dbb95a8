// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package microjson

import "fmt"

// A Code identifies the failure class of an *Error.
type Code int

// Constants defining the valid Code values.
const (
	CodeIO         Code = 1 + iota // failure of the underlying source or sink
	CodeEOF                        // input ended before a token completed
	CodeUnexpected                 // a byte matched no expected token start
	CodeOverflow                   // a number overflowed the target width
	CodeType                       // a Value tag did not match the requested conversion
)

var codeStr = [...]string{
	CodeIO:         "transport error",
	CodeEOF:        "unexpected end of input",
	CodeUnexpected: "unexpected byte",
	CodeOverflow:   "number too large",
	CodeType:       "invalid type",
}

func (c Code) String() string {
	if c < CodeIO || int(c) >= len(codeStr) {
		return "invalid error code"
	}
	return codeStr[c]
}

// Error is the unified failure type reported by all codec operations.
// Transport failures from a Source or Sink are wrapped with CodeIO and can be
// recovered with errors.Unwrap.
type Error struct {
	Code Code
	Byte byte // the offending input byte, for CodeUnexpected
	Pos  int  // input offset of the failure, for Reader errors; -1 otherwise

	Want, Got Kind // the mismatched tags, for CodeType

	err error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case CodeIO:
		return fmt.Sprintf("transport: %v", e.err)
	case CodeUnexpected:
		return fmt.Sprintf("unexpected %q (offset %d)", e.Byte, e.Pos)
	case CodeType:
		return fmt.Sprintf("invalid type: got %v, want %v", e.Got, e.Want)
	}
	if e.Pos >= 0 {
		return fmt.Sprintf("%v (offset %d)", e.Code, e.Pos)
	}
	return e.Code.String()
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }

// CodeOf returns the Code of err if it is an *Error, otherwise 0.
func CodeOf(err error) Code {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return 0
}

func ioError(err error) error { return &Error{Code: CodeIO, Pos: -1, err: err} }

func typeError(want, got Kind) error {
	return &Error{Code: CodeType, Pos: -1, Want: want, Got: got}
}
