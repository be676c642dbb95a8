// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package microjson

import (
	"strconv"

	"github.com/cardpoint/microjson/internal/escape"

	"go4.org/mem"
)

// A StreamEncoder is a value that can encode itself as JSON to a Writer.
// Every Value satisfies StreamEncoder.
type StreamEncoder interface {
	EncodeStream(w *Writer) error
}

// A Writer emits JSON text to a Sink. It carries no parsing state, so a
// single Writer can serialize any number of documents in sequence.
type Writer struct {
	sink Sink
}

// NewWriter constructs a Writer that emits output to sink.
func NewWriter(sink Sink) *Writer { return &Writer{sink: sink} }

var (
	litTrue  = []byte("true")
	litFalse = []byte("false")
	litNull  = []byte("null")

	openBrace  = []byte("{")
	closeBrace = []byte("}")
	openBrack  = []byte("[")
	closeBrack = []byte("]")
	sepComma   = []byte(", ")
	sepColon   = []byte(": ")
)

func (w *Writer) write(p []byte) error {
	if err := w.sink.WriteAll(p); err != nil {
		return ioError(err)
	}
	return nil
}

// WriteNull emits the null constant.
func (w *Writer) WriteNull() error { return w.write(litNull) }

// WriteBool emits a true or false constant.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.write(litTrue)
	}
	return w.write(litFalse)
}

// WriteInt emits an integer in decimal notation.
func (w *Writer) WriteInt(v int64) error {
	var buf [20]byte
	return w.write(strconv.AppendInt(buf[:0], v, 10))
}

// WriteFloat emits a number in plain decimal notation, with as many digits
// as the value requires and no truncation. Exponent notation is never used.
func (w *Writer) WriteFloat(v float64) error {
	var buf [32]byte
	return w.write(strconv.AppendFloat(buf[:0], v, 'f', -1, 64))
}

// WriteString emits s as a quoted string token. Quotation marks, backslashes
// and control characters are escaped, which is sufficient to embed arbitrary
// text.
func (w *Writer) WriteString(s string) error {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	buf = escape.Append(buf, mem.S(s))
	buf = append(buf, '"')
	return w.write(buf)
}

// WriteValue emits v, dispatching on its tag. A nil Value is emitted as
// null.
func (w *Writer) WriteValue(v Value) error {
	if v == nil {
		return w.WriteNull()
	}
	return v.EncodeStream(w)
}

// EncodeSlice emits vs as a JSON array, eagerly and in order, invoking elem
// once per element.
func EncodeSlice[T any](w *Writer, vs []T, elem func(*Writer, T) error) error {
	if err := w.write(openBrack); err != nil {
		return err
	}
	for i, v := range vs {
		if i > 0 {
			if err := w.write(sepComma); err != nil {
				return err
			}
		}
		if err := elem(w, v); err != nil {
			return err
		}
	}
	return w.write(closeBrack)
}

// An ObjectWriter is an incremental builder for one JSON object, created by
// BeginObject. It is a transient borrow of its Writer: the caller chains
// field writes and must finish with End to emit the closing brace. An
// abandoned ObjectWriter emits nothing further, leaving the output
// syntactically incomplete; use WriteObject when the closing brace must be
// guaranteed.
type ObjectWriter struct {
	w    *Writer
	some bool // a field separator is owed before the next field
}

// BeginObject emits the opening brace of an object and returns a builder for
// its fields. The Writer must not be used directly again until End is
// called.
func (w *Writer) BeginObject() (*ObjectWriter, error) {
	if err := w.write(openBrace); err != nil {
		return nil, err
	}
	return &ObjectWriter{w: w}, nil
}

// WriteObject emits one complete object, invoking build with the field
// builder. Unlike a bare BeginObject, the closing brace is emitted on every
// exit path including an error return from build; the first error
// encountered is reported.
func (w *Writer) WriteObject(build func(o *ObjectWriter) error) error {
	o, err := w.BeginObject()
	if err != nil {
		return err
	}
	berr := build(o)
	if err := o.End(); berr == nil {
		berr = err
	}
	return berr
}

// key emits the separator owed before all but the first field, then the
// quoted key and its colon.
func (o *ObjectWriter) key(name string) error {
	if o.some {
		if err := o.w.write(sepComma); err != nil {
			return err
		}
	}
	o.some = true
	if err := o.w.WriteString(name); err != nil {
		return err
	}
	return o.w.write(sepColon)
}

// Field emits one member whose value is encoded by v. A nil v is emitted as
// null.
func (o *ObjectWriter) Field(key string, v StreamEncoder) error {
	if err := o.key(key); err != nil {
		return err
	}
	if v == nil {
		return o.w.WriteNull()
	}
	return v.EncodeStream(o.w)
}

// String emits one member with a string value.
func (o *ObjectWriter) String(key, v string) error {
	if err := o.key(key); err != nil {
		return err
	}
	return o.w.WriteString(v)
}

// Int emits one member with an integer value.
func (o *ObjectWriter) Int(key string, v int64) error {
	if err := o.key(key); err != nil {
		return err
	}
	return o.w.WriteInt(v)
}

// Float emits one member with a number value.
func (o *ObjectWriter) Float(key string, v float64) error {
	if err := o.key(key); err != nil {
		return err
	}
	return o.w.WriteFloat(v)
}

// Bool emits one member with a true or false value.
func (o *ObjectWriter) Bool(key string, v bool) error {
	if err := o.key(key); err != nil {
		return err
	}
	return o.w.WriteBool(v)
}

// Null emits one member with a null value.
func (o *ObjectWriter) Null(key string) error {
	if err := o.key(key); err != nil {
		return err
	}
	return o.w.WriteNull()
}

// End emits the closing brace. The builder must not be used after End.
func (o *ObjectWriter) End() error { return o.w.write(closeBrace) }

// EncodeStream satisfies the StreamEncoder interface.
func (Null) EncodeStream(w *Writer) error { return w.WriteNull() }

// EncodeStream satisfies the StreamEncoder interface.
func (b Bool) EncodeStream(w *Writer) error { return w.WriteBool(bool(b)) }

// EncodeStream satisfies the StreamEncoder interface.
func (z Int) EncodeStream(w *Writer) error { return w.WriteInt(int64(z)) }

// EncodeStream satisfies the StreamEncoder interface.
func (f Float) EncodeStream(w *Writer) error { return w.WriteFloat(float64(f)) }

// EncodeStream satisfies the StreamEncoder interface.
func (s String) EncodeStream(w *Writer) error { return w.WriteString(string(s)) }

// EncodeStream satisfies the StreamEncoder interface.
func (a Array) EncodeStream(w *Writer) error {
	return EncodeSlice(w, a, (*Writer).WriteValue)
}

// EncodeStream satisfies the StreamEncoder interface, emitting the members
// of o in order through the incremental builder.
func (o Object) EncodeStream(w *Writer) error {
	ow, err := w.BeginObject()
	if err != nil {
		return err
	}
	for _, m := range o {
		if err := ow.Field(m.Key, m.Value); err != nil {
			return err
		}
	}
	return ow.End()
}
