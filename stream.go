// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package microjson

// ReadObject parses one JSON object, invoking fn once per member in source
// order with the parsed key and the Reader positioned at the member value.
// fn must fully consume the value, either by decoding it or by calling
// Discard. Memory use is bounded by one member at a time, so objects of any
// size can be processed.
//
// An error from fn aborts the traversal immediately and is returned
// unchanged; there is no way for fn to stop the traversal without making the
// whole call fail.
func (r *Reader) ReadObject(fn func(key string, r *Reader) error) error {
	b, err := r.peekSkipSpace()
	if err != nil {
		return err
	}
	if b != '{' {
		return r.unexpected(b)
	}
	r.pos++

	if b, err = r.peekSkipSpace(); err != nil {
		return err
	} else if b == '}' {
		r.pos++
		return nil
	}
	for {
		key, err := r.ReadString()
		if err != nil {
			return err
		}
		if b, err = r.peekSkipSpace(); err != nil {
			return err
		} else if b != ':' {
			return r.unexpected(b)
		}
		r.pos++

		if err := fn(key, r); err != nil {
			return err
		}

		if b, err = r.peekSkipSpace(); err != nil {
			return err
		} else if b == '}' {
			r.pos++
			return nil
		} else if b != ',' {
			return r.unexpected(b)
		}
		r.pos++
	}
}

// ReadArray parses one JSON array, invoking fn once per element in source
// order with the Reader positioned at the element. fn must fully consume the
// element. Memory use is bounded by one element at a time.
func (r *Reader) ReadArray(fn func(r *Reader) error) error {
	b, err := r.peekSkipSpace()
	if err != nil {
		return err
	}
	if b != '[' {
		return r.unexpected(b)
	}
	r.pos++

	if b, err = r.peekSkipSpace(); err != nil {
		return err
	} else if b == ']' {
		r.pos++
		return nil
	}
	for {
		if err := fn(r); err != nil {
			return err
		}
		if b, err = r.peekSkipSpace(); err != nil {
			return err
		} else if b == ']' {
			r.pos++
			return nil
		} else if b != ',' {
			return r.unexpected(b)
		}
		r.pos++
	}
}

// Discard parses and drops exactly one value of any shape, leaving the
// cursor at the first byte following it. Composite values are dropped one
// element at a time, never materialized.
//
// Object members with unrecognized keys should be discarded rather than
// rejected, so that additive schema changes on the backend do not break
// devices in the field.
func (r *Reader) Discard() error {
	b, err := r.peekSkipSpace()
	if err != nil {
		return err
	}
	switch {
	case b == '{':
		return r.ReadObject(func(_ string, r *Reader) error { return r.Discard() })
	case b == '[':
		return r.ReadArray((*Reader).Discard)
	case b == '"':
		_, err := r.readString(false)
		return err
	case b == 't' || b == 'f':
		_, err := r.ReadBool()
		return err
	case b == 'n':
		return r.ReadNull()
	case b == '-' || isDigit(b):
		_, err := r.readNumber()
		return err
	}
	return r.unexpected(b)
}

// A StreamDecoder is a value that can decode its own JSON shape from a
// Reader positioned at the value. Exactly one method call decodes one value;
// there is no runtime type registry.
type StreamDecoder interface {
	DecodeStream(r *Reader) error
}

// DecodeSlice decodes a JSON array into a slice, invoking elem once per
// element with the Reader positioned at it.
func DecodeSlice[T any](r *Reader, elem func(*Reader) (T, error)) ([]T, error) {
	var out []T
	err := r.ReadArray(func(r *Reader) error {
		v, err := elem(r)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// A ContextDecoder decodes a JSON object shape while threading a
// caller-owned context value of type C through the member loop. The handler
// decides per key whether to decode into a field, recurse into a nested
// context decoder, or Discard the value; writing each decoded entity
// directly into external fixed-capacity storage keeps memory bounded to one
// entity at a time no matter how many the input carries.
type ContextDecoder[C any] interface {
	// DecodeMember consumes the value of the member named key, which r is
	// positioned at, writing any results into ctx. The handler must not
	// retain ctx past its own return.
	DecodeMember(key string, r *Reader, ctx *C) error
}

// DecodeInto decodes one JSON object, handing each member to d together with
// ctx. ctx is borrowed for the duration of the call and is owned and
// outlived by the caller. If the decode fails partway, ctx keeps whatever
// state it had reached; callers that need atomicity must snapshot it
// themselves.
func DecodeInto[C any](r *Reader, d ContextDecoder[C], ctx *C) error {
	return r.ReadObject(func(key string, r *Reader) error {
		return d.DecodeMember(key, r, ctx)
	})
}
