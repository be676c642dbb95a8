// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles escaping of text for inclusion in JSON strings.
//
// Only the write side lives here. The read side of the codec intentionally
// does not interpret the standard escape table (see the microjson package
// comment), so there is no Unescape.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Append appends the contents of src to dst, escaping characters as needed
// for a JSON string, and returns the extended buffer. The enclosing
// quotation marks are not added.
func Append(dst []byte, src mem.RO) []byte {
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					dst = append(dst, '\\', b)
				} else {
					dst = append(dst, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			} else if r == '\\' || r == '"' {
				dst = append(dst, '\\', byte(r))
			} else {
				dst = append(dst, byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch r {
		case '�': // replacement rune
			dst = append(dst, `�`...)
		case ' ': // line separator
			dst = append(dst, ` `...)
		case ' ': // paragraph separator
			dst = append(dst, ` `...)
		default:
			var rbuf [6]byte
			n := utf8.EncodeRune(rbuf[:], r)
			dst = append(dst, rbuf[:n]...)
		}

		src = src.SliceFrom(n)
	}
	return dst
}
