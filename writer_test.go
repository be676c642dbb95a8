// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package microjson_test

import (
	"errors"
	"testing"

	"github.com/cardpoint/microjson"
	gjson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestWriteArray(t *testing.T) {
	var sink microjson.SliceSink
	w := microjson.NewWriter(&sink)

	err := microjson.EncodeSlice(w, []int64{1, 2, 3, 4}, (*microjson.Writer).WriteInt)
	if err != nil {
		t.Fatalf("EncodeSlice failed: %v", err)
	}
	if got, want := sink.String(), `[1, 2, 3, 4]`; got != want {
		t.Errorf("Output: got %#q, want %#q", got, want)
	}
}

func TestObjectBuilder(t *testing.T) {
	var sink microjson.SliceSink
	o, err := microjson.NewWriter(&sink).BeginObject()
	if err != nil {
		t.Fatalf("BeginObject failed: %v", err)
	}
	if err := o.String("foo", "hi"); err != nil {
		t.Fatalf("String failed: %v", err)
	}
	if err := o.Int("bar", 42); err != nil {
		t.Fatalf("Int failed: %v", err)
	}
	if err := o.Bool("baz", true); err != nil {
		t.Fatalf("Bool failed: %v", err)
	}
	if err := o.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	if got, want := sink.String(), `{"foo": "hi", "bar": 42, "baz": true}`; got != want {
		t.Errorf("Output: got %#q, want %#q", got, want)
	}
}

func TestAbandonedBuilder(t *testing.T) {
	var sink microjson.SliceSink
	o, err := microjson.NewWriter(&sink).BeginObject()
	if err != nil {
		t.Fatalf("BeginObject failed: %v", err)
	}
	if err := o.Int("a", 1); err != nil {
		t.Fatalf("Int failed: %v", err)
	}

	// Without End, the output stays open. Documented, not a bug.
	if got, want := sink.String(), `{"a": 1`; got != want {
		t.Errorf("Output: got %#q, want %#q", got, want)
	}
}

func TestScopedObjectAlwaysCloses(t *testing.T) {
	errBroken := errors.New("coin jam")

	var sink microjson.SliceSink
	err := microjson.NewWriter(&sink).WriteObject(func(o *microjson.ObjectWriter) error {
		if err := o.Int("a", 1); err != nil {
			return err
		}
		return errBroken
	})
	if err != errBroken {
		t.Errorf("got error %v, want %v", err, errBroken)
	}
	if got, want := sink.String(), `{"a": 1}`; got != want {
		t.Errorf("Output: got %#q, want %#q", got, want)
	}
}

func TestStringEscaping(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{``, `""`},
		{`plain`, `"plain"`},
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"tab\there", `"tab\there"`},
		{"line\nbreak", `"line\nbreak"`},
		{"bell\x01", `"bell\u0001"`},
		{"caffè", `"caffè"`},
	}
	for _, test := range tests {
		var sink microjson.SliceSink
		if err := microjson.NewWriter(&sink).WriteString(test.input); err != nil {
			t.Errorf("WriteString(%q) failed: %v", test.input, err)
			continue
		}
		if got := sink.String(); got != test.want {
			t.Errorf("WriteString(%q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestWriteValue(t *testing.T) {
	tests := []struct {
		value microjson.Value
		want  string
	}{
		{nil, `null`},
		{microjson.Null{}, `null`},
		{microjson.Bool(false), `false`},
		{microjson.Int(-17), `-17`},
		{microjson.Float(2.5), `2.5`},
		{microjson.String("ok"), `"ok"`},
		{microjson.Array{microjson.Int(1), microjson.String("x")}, `[1, "x"]`},
		{microjson.Object{
			{Key: "foo", Value: microjson.String("hi")},
			{Key: "bar", Value: microjson.Int(42)},
			{Key: "baz", Value: microjson.Bool(true)},
		}, `{"foo": "hi", "bar": 42, "baz": true}`},
	}
	for _, test := range tests {
		var sink microjson.SliceSink
		if err := microjson.NewWriter(&sink).WriteValue(test.value); err != nil {
			t.Errorf("WriteValue(%+v) failed: %v", test.value, err)
			continue
		}
		if got := sink.String(); got != test.want {
			t.Errorf("WriteValue(%+v): got %#q, want %#q", test.value, got, test.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	values := []microjson.Value{
		microjson.Null{},
		microjson.Bool(true),
		microjson.Bool(false),
		microjson.Int(0),
		microjson.Int(-1),
		microjson.Int(123456789),
		microjson.Float(1.5),
		microjson.Float(-4.2),
		microjson.String(""),
		microjson.String(`say "cheese"`),
		microjson.String(`back\slash`),
		microjson.Array{},
		microjson.Array{microjson.Int(1), microjson.Array{microjson.Null{}}},
		microjson.Object{},
		microjson.Object{
			{Key: "a", Value: microjson.Int(1)},
			{Key: "a", Value: microjson.String("dup")},
		},
	}

	for _, want := range values {
		var sink microjson.SliceSink
		if err := microjson.NewWriter(&sink).WriteValue(want); err != nil {
			t.Errorf("WriteValue(%+v) failed: %v", want, err)
			continue
		}
		got, err := mustReader(sink.String()).ReadAny()
		if err != nil {
			t.Errorf("ReadAny(%#q) failed: %v", sink.String(), err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Round trip of %#q: (-want, +got)\n%s", sink.String(), diff)
		}
	}
}

// The writer's output must satisfy an unrelated JSON decoder, not just our
// own reader.
func TestWriterOutputIsValidJSON(t *testing.T) {
	var sink microjson.SliceSink
	w := microjson.NewWriter(&sink)

	err := w.WriteObject(func(o *microjson.ObjectWriter) error {
		if err := o.String("name", "café \"premium\"\n"); err != nil {
			return err
		}
		if err := o.Field("prices", microjson.Array{microjson.Int(120), microjson.Float(2.5)}); err != nil {
			return err
		}
		return o.Null("note")
	})
	if err != nil {
		t.Fatalf("WriteObject failed: %v", err)
	}

	var got map[string]any
	if err := gjson.Unmarshal(sink.Bytes(), &got); err != nil {
		t.Fatalf("Output %#q is not valid JSON: %v", sink.String(), err)
	}
	want := map[string]any{
		"name":   "café \"premium\"\n",
		"prices": []any{float64(120), 2.5},
		"note":   nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Oracle decode: (-want, +got)\n%s", diff)
	}
}

type brokenSink struct{ err error }

func (b brokenSink) WriteAll([]byte) error { return b.err }

func TestSinkError(t *testing.T) {
	base := errors.New("buffer full")
	err := microjson.NewWriter(brokenSink{err: base}).WriteInt(1)
	if microjson.CodeOf(err) != microjson.CodeIO {
		t.Fatalf("got %v, want a CodeIO error", err)
	}
	if !errors.Is(err, base) {
		t.Errorf("error %v does not unwrap to %v", err, base)
	}
}
