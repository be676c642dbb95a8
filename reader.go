// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package microjson

import (
	"io"
	"math"
)

// A Reader parses JSON documents from the front of a Source, one value at a
// time. The Reader holds no state beyond the wrapped source and a cursor, so
// abandoning it mid-parse leaks nothing.
//
// All parsing is fail-fast: the first error aborts the operation with the
// cursor left at the failing byte, and the Reader must not be reused for
// further parsing of the same document.
type Reader struct {
	src  Source
	pos  int // bytes of the current source window logically consumed
	base int // bytes already handed back to the source via Consume
}

// NewReader constructs a Reader that parses input from src.
func NewReader(src Source) *Reader { return &Reader{src: src} }

// offset reports the absolute input offset of the cursor, for errors.
func (r *Reader) offset() int { return r.base + r.pos }

// peek returns the byte at the cursor without consuming it. At end of input
// it returns io.EOF; whether that is an error depends on the token being
// parsed, so callers translate it (see atEOF). Any other source failure is
// wrapped as CodeIO.
func (r *Reader) peek() (byte, error) {
	buf, err := r.src.Fill()
	if err == nil {
		if r.pos < len(buf) {
			return buf[r.pos], nil
		}
		// The cursor walked past the filled window. Hand the consumed prefix
		// back to the source, then refill. Doing this lazily amortizes
		// physical consumes across many single-byte peeks.
		r.src.Consume(r.pos)
		r.base += r.pos
		r.pos = 0
		buf, err = r.src.Fill()
		if err == nil {
			return buf[0], nil
		}
	}
	if err == io.EOF {
		return 0, io.EOF
	}
	return 0, ioError(err)
}

// atEOF converts a raw end-of-input from peek into a CodeEOF error, for the
// tokens where end of input is not a valid terminator.
func (r *Reader) atEOF(err error) error {
	if err == io.EOF {
		return &Error{Code: CodeEOF, Pos: r.offset()}
	}
	return err
}

func (r *Reader) unexpected(b byte) error {
	return &Error{Code: CodeUnexpected, Byte: b, Pos: r.offset()}
}

// expect consumes the byte b from the input, or fails with CodeUnexpected.
// It is the universal primitive for literal tokens.
func (r *Reader) expect(b byte) error {
	got, err := r.peek()
	if err != nil {
		return r.atEOF(err)
	}
	if got != b {
		return r.unexpected(got)
	}
	r.pos++
	return nil
}

// expectWord consumes each byte of word in turn.
func (r *Reader) expectWord(word string) error {
	for i := 0; i < len(word); i++ {
		if err := r.expect(word[i]); err != nil {
			return err
		}
	}
	return nil
}

// peekSkipSpace discards leading whitespace and returns the first byte of
// the next token without consuming it. End of input where a token was
// expected reports CodeEOF.
func (r *Reader) peekSkipSpace() (byte, error) {
	for {
		b, err := r.peek()
		if err != nil {
			return 0, r.atEOF(err)
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			r.pos++
		default:
			return b, nil
		}
	}
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// ReadNull parses the null constant.
func (r *Reader) ReadNull() error {
	if _, err := r.peekSkipSpace(); err != nil {
		return err
	}
	return r.expectWord("null")
}

// ReadBool parses a true or false constant.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.peekSkipSpace()
	if err != nil {
		return false, err
	}
	switch b {
	case 't':
		return true, r.expectWord("true")
	case 'f':
		return false, r.expectWord("false")
	}
	return false, r.unexpected(b)
}

// ReadString parses a double-quoted string.
//
// Escape handling keeps only the literal byte following a backslash; the
// standard JSON escape table is deliberately not interpreted (see the
// package comment). A quote or backslash escaped on the write side therefore
// round-trips, but sequences such as \n or   do not.
func (r *Reader) ReadString() (string, error) {
	return r.readString(true)
}

func (r *Reader) readString(keep bool) (string, error) {
	if _, err := r.peekSkipSpace(); err != nil {
		return "", err
	}
	if err := r.expect('"'); err != nil {
		return "", err
	}
	var buf []byte
	for {
		b, err := r.peek()
		if err != nil {
			return "", r.atEOF(err)
		}
		r.pos++
		switch b {
		case '"':
			return string(buf), nil
		case '\\':
			b, err = r.peek()
			if err != nil {
				return "", r.atEOF(err)
			}
			r.pos++
		}
		if keep {
			buf = append(buf, b)
		}
	}
}

// scanSign consumes an optional leading minus sign.
func (r *Reader) scanSign() (bool, error) {
	b, err := r.peek()
	if err != nil {
		return false, r.atEOF(err)
	}
	if b == '-' {
		r.pos++
		return true, nil
	}
	return false, nil
}

// scanDigits consumes a run of decimal digits, accumulating their value into
// *mag in the negative domain so that the most negative 64-bit integer
// survives accumulation. It reports the number of digits consumed and
// whether the run was terminated by end of input, which is a valid
// terminator for a numeric token.
func (r *Reader) scanDigits(mag *int64) (nd int, eof bool, err error) {
	for {
		b, err := r.peek()
		if err == io.EOF {
			return nd, true, nil
		} else if err != nil {
			return nd, false, err
		} else if !isDigit(b) {
			return nd, false, nil
		}
		r.pos++
		d := int64(b - '0')
		if *mag < (math.MinInt64+d)/10 {
			return nd, false, &Error{Code: CodeOverflow, Pos: r.offset()}
		}
		*mag = *mag*10 - d
		nd++
	}
}

// ReadInt parses an integer. A fractional part is rejected with
// CodeUnexpected at the radix point; use ReadFloat or ReadNumber for input
// that may carry one. Overflow of 64 bits reports CodeOverflow rather than
// wrapping.
func (r *Reader) ReadInt() (int64, error) {
	if _, err := r.peekSkipSpace(); err != nil {
		return 0, err
	}
	neg, err := r.scanSign()
	if err != nil {
		return 0, err
	}
	var mag int64
	nd, eof, err := r.scanDigits(&mag)
	if err != nil {
		return 0, err
	}
	if nd == 0 {
		if eof {
			return 0, r.atEOF(io.EOF)
		}
		b, _ := r.peek()
		return 0, r.unexpected(b)
	}
	if !eof {
		if b, err := r.peek(); err == nil && b == '.' {
			return 0, r.unexpected(b)
		}
	}
	if neg {
		return mag, nil
	}
	if mag == math.MinInt64 {
		return 0, &Error{Code: CodeOverflow, Pos: r.offset()}
	}
	return -mag, nil
}

// ReadNumber parses a number, producing an Int when no radix point appears
// and a Float otherwise. Exponent notation is not recognized: a trailing
// 'e' is simply not part of the token.
func (r *Reader) ReadNumber() (Value, error) {
	if _, err := r.peekSkipSpace(); err != nil {
		return nil, err
	}
	return r.readNumber()
}

// readNumber parses a numeric token at the cursor, with leading whitespace
// already skipped.
func (r *Reader) readNumber() (Value, error) {
	neg, err := r.scanSign()
	if err != nil {
		return nil, err
	}
	var mag int64
	nd, eof, err := r.scanDigits(&mag)
	if err != nil {
		return nil, err
	}
	if nd == 0 {
		if eof {
			return nil, r.atEOF(io.EOF)
		}
		b, _ := r.peek()
		return nil, r.unexpected(b)
	}
	if !eof {
		if b, err := r.peek(); err == nil && b == '.' {
			r.pos++
			return Float(applySign(neg, r.scanFraction(float64(mag)))), nil
		}
	}
	if neg {
		return Int(mag), nil
	}
	if mag == math.MinInt64 {
		return nil, &Error{Code: CodeOverflow, Pos: r.offset()}
	}
	return Int(-mag), nil
}

// scanFraction accumulates fractional digits onto the (negative) integer
// part f, one digit at a time with a positional one-tenth multiplier. This
// accepts bounded imprecision for many-digit fractions in exchange for not
// needing a general text-to-float conversion.
func (r *Reader) scanFraction(f float64) float64 {
	mult := 0.1
	for {
		b, err := r.peek()
		if err != nil || !isDigit(b) {
			return f
		}
		r.pos++
		f -= float64(b-'0') * mult
		mult /= 10
	}
}

func applySign(neg bool, f float64) float64 {
	if neg {
		return f
	}
	return -f
}

// ReadFloat parses a number and returns it as a float64, widening an
// integral token.
func (r *Reader) ReadFloat() (float64, error) {
	v, err := r.ReadNumber()
	if err != nil {
		return 0, err
	}
	return AsFloat(v)
}

// ReadAny skips leading whitespace and materializes exactly one value of any
// shape as a Value tree, leaving trailing bytes unconsumed. Use the
// streaming traversal methods instead when the input may exceed available
// memory.
func (r *Reader) ReadAny() (Value, error) {
	b, err := r.peekSkipSpace()
	if err != nil {
		return nil, err
	}
	switch {
	case b == '{':
		obj := Object{}
		err := r.ReadObject(func(key string, r *Reader) error {
			v, err := r.ReadAny()
			if err != nil {
				return err
			}
			obj = append(obj, Member{Key: key, Value: v})
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil
	case b == '[':
		arr := Array{}
		err := r.ReadArray(func(r *Reader) error {
			v, err := r.ReadAny()
			if err != nil {
				return err
			}
			arr = append(arr, v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return arr, nil
	case b == '"':
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case b == 't' || b == 'f':
		v, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		return Bool(v), nil
	case b == 'n':
		if err := r.ReadNull(); err != nil {
			return nil, err
		}
		return Null{}, nil
	case b == '-' || isDigit(b):
		return r.readNumber()
	}
	return nil, r.unexpected(b)
}
