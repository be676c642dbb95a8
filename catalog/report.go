// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package catalog

import "github.com/cardpoint/microjson"

// A VendCount records how many of one article were dispensed.
type VendCount struct {
	Article uint16
	Count   int64
}

// EncodeStream satisfies microjson.StreamEncoder.
func (v VendCount) EncodeStream(w *microjson.Writer) error {
	return w.WriteObject(func(o *microjson.ObjectWriter) error {
		if err := o.Int("article", int64(v.Article)); err != nil {
			return err
		}
		return o.Int("count", v.Count)
	})
}

// DecodeStream satisfies microjson.StreamDecoder.
func (v *VendCount) DecodeStream(r *microjson.Reader) error {
	return r.ReadObject(func(key string, r *microjson.Reader) error {
		switch key {
		case "article":
			n, err := r.ReadInt()
			if err != nil {
				return err
			}
			if n < 0 || n > 0xffff {
				return &microjson.Error{Code: microjson.CodeOverflow, Pos: -1}
			}
			v.Article = uint16(n)
			return nil
		case "count":
			n, err := r.ReadInt()
			if err != nil {
				return err
			}
			v.Count = n
			return nil
		}
		return r.Discard()
	})
}

type vendList []VendCount

func (v vendList) EncodeStream(w *microjson.Writer) error {
	return microjson.EncodeSlice(w, v, func(w *microjson.Writer, e VendCount) error {
		return e.EncodeStream(w)
	})
}

// A UsageReport is the telemetry object a terminal posts to the backend:
// which card drove the session, how long the terminal has been up, and the
// per-article vend counts since the last report. Reports are also spooled to
// local storage while the terminal is offline, so the type decodes as well
// as encodes.
type UsageReport struct {
	Card   uint32
	Uptime int64 // seconds since boot
	Vends  []VendCount
}

// EncodeStream satisfies microjson.StreamEncoder.
func (u *UsageReport) EncodeStream(w *microjson.Writer) error {
	o, err := w.BeginObject()
	if err != nil {
		return err
	}
	if err := o.Int("card", int64(u.Card)); err != nil {
		return err
	}
	if err := o.Int("uptime", u.Uptime); err != nil {
		return err
	}
	if err := o.Field("vends", vendList(u.Vends)); err != nil {
		return err
	}
	return o.End()
}

// DecodeStream satisfies microjson.StreamDecoder.
func (u *UsageReport) DecodeStream(r *microjson.Reader) error {
	return r.ReadObject(func(key string, r *microjson.Reader) error {
		switch key {
		case "card":
			n, err := r.ReadInt()
			if err != nil {
				return err
			}
			if n < 0 || n > 0xffffffff {
				return &microjson.Error{Code: microjson.CodeOverflow, Pos: -1}
			}
			u.Card = uint32(n)
			return nil
		case "uptime":
			n, err := r.ReadInt()
			if err != nil {
				return err
			}
			u.Uptime = n
			return nil
		case "vends":
			vs, err := microjson.DecodeSlice(r, func(r *microjson.Reader) (VendCount, error) {
				var v VendCount
				err := v.DecodeStream(r)
				return v, err
			})
			if err != nil {
				return err
			}
			u.Vends = vs
			return nil
		}
		return r.Discard()
	})
}
