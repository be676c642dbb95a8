// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package catalog defines the payload types a vending terminal exchanges
// with its management backend: the article catalog, the member list, and the
// usage telemetry it reports back.
//
// List responses from the backend enumerate records under ascending numeric
// index keys with a trailing total-count member:
//
//	{"0": {"id": 4, ...}, "1": {"id": 9, ...}, "count": 2}
//
// Because a response can carry far more records than a terminal has heap,
// list decoding is context-threaded: each record is decoded into transient
// storage and written straight into a caller-owned fixed-capacity table
// keyed by the record's own identifier, never collected into a list. Records
// whose identifier the table cannot track are silently dropped, as are
// members with unrecognized keys.
package catalog

import (
	"github.com/cardpoint/microjson"
)

// An Article is one entry of the product catalog.
type Article struct {
	ID         uint16
	Name       string
	PriceCents int64
	Stock      int64
}

// DecodeStream satisfies microjson.StreamDecoder.
func (a *Article) DecodeStream(r *microjson.Reader) error {
	return r.ReadObject(func(key string, r *microjson.Reader) error {
		switch key {
		case "id":
			v, err := r.ReadInt()
			if err != nil {
				return err
			}
			if v < 0 || v > 0xffff {
				return &microjson.Error{Code: microjson.CodeOverflow, Pos: -1}
			}
			a.ID = uint16(v)
			return nil
		case "name":
			v, err := r.ReadString()
			if err != nil {
				return err
			}
			a.Name = v
			return nil
		case "price":
			v, err := r.ReadInt()
			if err != nil {
				return err
			}
			a.PriceCents = v
			return nil
		case "stock":
			v, err := r.ReadInt()
			if err != nil {
				return err
			}
			a.Stock = v
			return nil
		}
		return r.Discard()
	})
}

// EncodeStream satisfies microjson.StreamEncoder.
func (a Article) EncodeStream(w *microjson.Writer) error {
	return w.WriteObject(func(o *microjson.ObjectWriter) error {
		if err := o.Int("id", int64(a.ID)); err != nil {
			return err
		}
		if err := o.String("name", a.Name); err != nil {
			return err
		}
		if err := o.Int("price", a.PriceCents); err != nil {
			return err
		}
		return o.Int("stock", a.Stock)
	})
}

// A Member is one entry of the membership list, keyed by contactless card
// number.
type Member struct {
	Card        uint32
	Name        string
	CreditCents int64
	Active      bool
}

// DecodeStream satisfies microjson.StreamDecoder.
func (m *Member) DecodeStream(r *microjson.Reader) error {
	return r.ReadObject(func(key string, r *microjson.Reader) error {
		switch key {
		case "card":
			v, err := r.ReadInt()
			if err != nil {
				return err
			}
			if v < 0 || v > 0xffffffff {
				return &microjson.Error{Code: microjson.CodeOverflow, Pos: -1}
			}
			m.Card = uint32(v)
			return nil
		case "name":
			v, err := r.ReadString()
			if err != nil {
				return err
			}
			m.Name = v
			return nil
		case "credit":
			v, err := r.ReadInt()
			if err != nil {
				return err
			}
			m.CreditCents = v
			return nil
		case "active":
			v, err := r.ReadBool()
			if err != nil {
				return err
			}
			m.Active = v
			return nil
		}
		return r.Discard()
	})
}

// EncodeStream satisfies microjson.StreamEncoder.
func (m Member) EncodeStream(w *microjson.Writer) error {
	return w.WriteObject(func(o *microjson.ObjectWriter) error {
		if err := o.Int("card", int64(m.Card)); err != nil {
			return err
		}
		if err := o.String("name", m.Name); err != nil {
			return err
		}
		if err := o.Int("credit", m.CreditCents); err != nil {
			return err
		}
		return o.Bool("active", m.Active)
	})
}

// An ArticleTable is fixed-capacity storage for articles, keyed by article
// ID. The zero table holds nothing; construct one with NewArticleTable. The
// table is owned by the caller and outlives any decode writing into it.
type ArticleTable struct {
	slots []Article
	used  []bool
}

// NewArticleTable constructs a table with room for capacity articles.
func NewArticleTable(capacity int) *ArticleTable {
	return &ArticleTable{slots: make([]Article, capacity), used: make([]bool, capacity)}
}

// Put stores a, replacing any article already tracked under the same ID.
// It reports false when the table is full and does not track a.ID, in which
// case a is dropped.
func (t *ArticleTable) Put(a Article) bool {
	free := -1
	for i, used := range t.used {
		if used && t.slots[i].ID == a.ID {
			t.slots[i] = a
			return true
		}
		if !used && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return false
	}
	t.slots[free], t.used[free] = a, true
	return true
}

// Get returns the article tracked under id, if any.
func (t *ArticleTable) Get(id uint16) (Article, bool) {
	for i, used := range t.used {
		if used && t.slots[i].ID == id {
			return t.slots[i], true
		}
	}
	return Article{}, false
}

// Len reports the number of articles currently tracked.
func (t *ArticleTable) Len() int {
	var n int
	for _, used := range t.used {
		if used {
			n++
		}
	}
	return n
}

// A MemberTable is fixed-capacity storage for members, keyed by card number.
type MemberTable struct {
	slots []Member
	used  []bool
}

// NewMemberTable constructs a table with room for capacity members.
func NewMemberTable(capacity int) *MemberTable {
	return &MemberTable{slots: make([]Member, capacity), used: make([]bool, capacity)}
}

// Put stores m, replacing any member already tracked under the same card.
// It reports false when the table is full and does not track m.Card.
func (t *MemberTable) Put(m Member) bool {
	free := -1
	for i, used := range t.used {
		if used && t.slots[i].Card == m.Card {
			t.slots[i] = m
			return true
		}
		if !used && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return false
	}
	t.slots[free], t.used[free] = m, true
	return true
}

// Get returns the member tracked under card, if any.
func (t *MemberTable) Get(card uint32) (Member, bool) {
	for i, used := range t.used {
		if used && t.slots[i].Card == card {
			return t.slots[i], true
		}
	}
	return Member{}, false
}

// Len reports the number of members currently tracked.
func (t *MemberTable) Len() int {
	var n int
	for _, used := range t.used {
		if used {
			n++
		}
	}
	return n
}

// An ArticleList decodes a catalog list response directly into an
// ArticleTable, one article at a time. After a successful decode, Count
// holds the total record count the backend reported, which may exceed what
// the table retained.
type ArticleList struct {
	Count int64
}

// DecodeMember satisfies microjson.ContextDecoder.
func (l *ArticleList) DecodeMember(key string, r *microjson.Reader, tab *ArticleTable) error {
	switch {
	case key == "count":
		n, err := r.ReadInt()
		if err != nil {
			return err
		}
		l.Count = n
		return nil
	case isIndex(key):
		var a Article
		if err := a.DecodeStream(r); err != nil {
			return err
		}
		tab.Put(a) // dropped when the table has no room left
		return nil
	}
	return r.Discard()
}

// A MemberList decodes a membership list response directly into a
// MemberTable, one member at a time.
type MemberList struct {
	Count int64
}

// DecodeMember satisfies microjson.ContextDecoder.
func (l *MemberList) DecodeMember(key string, r *microjson.Reader, tab *MemberTable) error {
	switch {
	case key == "count":
		n, err := r.ReadInt()
		if err != nil {
			return err
		}
		l.Count = n
		return nil
	case isIndex(key):
		var m Member
		if err := m.DecodeStream(r); err != nil {
			return err
		}
		tab.Put(m)
		return nil
	}
	return r.Discard()
}

// isIndex reports whether key is a run of decimal digits, the form the
// backend uses for record positions in list responses.
func isIndex(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	return true
}
