// Package textkit repairs mis-encoded export text and tokenizes it for the
// aggregators. Repair targets the common mojibake produced when UTF-8 bytes
// were decoded as Latin-1 before landing in the export JSON
package textkit

import (
	"unicode/utf8"
)

// suspicious reports whether s carries a mojibake signature: control chars in
// 0x80-0x9F, or char codes equal to common multi-byte UTF-8 lead bytes
func suspicious(s string) bool {
	for _, r := range s {
		if r >= 0x80 && r <= 0x9F {
			return true
		}
		switch r {
		case 0xC2, 0xC3, 0xE2, 0xF0:
			return true
		}
	}
	return false
}

// strayCtrls counts control characters in the 0x80-0x9F range
func strayCtrls(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x80 && r <= 0x9F {
			n++
		}
	}
	return n
}

// hasPrintable reports whether s retains at least one printable non-control rune
func hasPrintable(s string) bool {
	for _, r := range s {
		if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
			continue
		}
		return true
	}
	return false
}

// Repair re-decodes Latin-1 mojibake back into real UTF-8 text.
// Strings without a suspicious byte signature pass through untouched. The
// candidate is built by reinterpreting each rune's low 8 bits as a raw byte
// and decoding the byte sequence as UTF-8; it is accepted only when it yields
// at least as many emoji glyphs as the original, or strictly fewer stray
// control characters while keeping at least one printable rune. There is no
// ground truth here, so ties keep the original
func Repair(s string) string {
	if s == "" || !suspicious(s) {
		return s
	}

	b := make([]byte, 0, len(s))
	for _, r := range s {
		b = append(b, byte(r&0xFF))
	}
	if !utf8.Valid(b) {
		return s
	}
	decoded := string(b)

	if len(Extract(decoded)) >= len(Extract(s)) {
		return decoded
	}
	if strayCtrls(decoded) < strayCtrls(s) && hasPrintable(decoded) {
		return decoded
	}
	return s
}
