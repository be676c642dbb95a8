// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package microjson

import "io"

// A Source delivers input bytes to a Reader one buffered window at a time.
// Fill and Consume together let the Reader look arbitrarily far into the
// window without committing to it, and amortize physical reads across many
// single-byte peeks.
//
// Implementations over a network transport should block in Fill until input
// arrives; timeout and cancellation policy belongs to the implementation
// (for example a connection deadline), not to the codec.
type Source interface {
	// Fill returns the currently buffered, unconsumed input, reading from the
	// underlying stream if the buffer is empty. It blocks until at least one
	// byte is available or the input ends. At end of input it returns io.EOF.
	Fill() ([]byte, error)

	// Consume discards the first n buffered bytes. The next Fill will not
	// return them again. Precondition: n does not exceed the length of the
	// window most recently returned by Fill.
	Consume(n int)
}

// A Sink accepts output bytes from a Writer.
type Sink interface {
	// WriteAll writes all of p, retrying internally as needed, and reports
	// the first underlying failure.
	WriteAll(p []byte) error
}

// A SliceSource is a Source reading from an in-memory byte slice.
type SliceSource struct {
	data []byte
}

// NewSliceSource constructs a Source that reads the contents of data.
// The caller must not modify data until the source is no longer in use.
func NewSliceSource(data []byte) *SliceSource { return &SliceSource{data: data} }

// NewStringSource constructs a Source that reads the contents of s.
func NewStringSource(s string) *SliceSource { return &SliceSource{data: []byte(s)} }

// Fill satisfies the Source interface.
func (s *SliceSource) Fill() ([]byte, error) {
	if len(s.data) == 0 {
		return nil, io.EOF
	}
	return s.data, nil
}

// Consume satisfies the Source interface.
func (s *SliceSource) Consume(n int) { s.data = s.data[n:] }

// A StreamSource is a Source that reads from an io.Reader through a
// fixed-capacity buffer, so that input of any size can be consumed with
// bounded memory.
type StreamSource struct {
	r   io.Reader
	buf []byte
	n   int   // bytes of buf currently filled
	err error // deferred read error, reported once the buffer drains
}

// NewStreamSource constructs a Source reading from r with a buffer of the
// given size. Sizes below 16 bytes are raised to 16.
func NewStreamSource(r io.Reader, size int) *StreamSource {
	if size < 16 {
		size = 16
	}
	return &StreamSource{r: r, buf: make([]byte, size)}
}

// Fill satisfies the Source interface.
func (s *StreamSource) Fill() ([]byte, error) {
	for s.n == 0 {
		if s.err != nil {
			return nil, s.err
		}
		m, err := s.r.Read(s.buf)
		s.n = m
		s.err = err
	}
	return s.buf[:s.n], nil
}

// Consume satisfies the Source interface.
func (s *StreamSource) Consume(n int) {
	if n >= s.n {
		s.n = 0
		return
	}
	copy(s.buf, s.buf[n:s.n])
	s.n -= n
}

// A StreamSink is a Sink that forwards to an io.Writer.
type StreamSink struct {
	w io.Writer
}

// NewStreamSink constructs a Sink writing to w.
func NewStreamSink(w io.Writer) *StreamSink { return &StreamSink{w: w} }

// WriteAll satisfies the Sink interface.
func (s *StreamSink) WriteAll(p []byte) error {
	for len(p) > 0 {
		n, err := s.w.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// A SliceSink is a Sink that collects output in memory.
type SliceSink struct {
	data []byte
}

// WriteAll satisfies the Sink interface.
func (s *SliceSink) WriteAll(p []byte) error {
	s.data = append(s.data, p...)
	return nil
}

// Bytes returns the bytes written so far. The slice is only valid until the
// next write.
func (s *SliceSink) Bytes() []byte { return s.data }

// String returns a copy of the bytes written so far.
func (s *SliceSink) String() string { return string(s.data) }

// Reset discards all bytes written so far.
func (s *SliceSink) Reset() { s.data = s.data[:0] }
