package textkit

import (
	"github.com/rivo/uniseg"
)

// Go's regexp has no emoji property classes, so classification uses the fixed
// codepoint ranges plus VS16/ZWJ presence. Ranges cover misc symbols and
// dingbats plus the supplemental emoji planes, skin-tone modifiers and
// regional indicators included
func emojiRune(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x203C && r <= 0x3299:
		return true
	}
	return false
}

const (
	vs16 = '️' // variation selector: emoji presentation
	zwj  = '‍' // zero-width joiner
)

func asciiAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// IsEmojiToken reports whether token is an emoji cluster.
// Tokens containing any ASCII letter or digit are never emoji; otherwise a
// VS16 or ZWJ anywhere, or a leading codepoint inside the emoji blocks, counts
func IsEmojiToken(token string) bool {
	if token == "" {
		return false
	}
	first := rune(-1)
	for _, r := range token {
		if asciiAlnum(r) {
			return false
		}
		if first < 0 {
			first = r
		}
	}
	for _, r := range token {
		if r == vs16 || r == zwj {
			return true
		}
	}
	return emojiRune(first)
}

// Extract returns, in order, every maximal emoji grapheme cluster in s.
// Grapheme segmentation keeps skin-tone modifiers and ZWJ sequences attached
// to their base
func Extract(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		if isEmojiCluster(cluster) {
			out = append(out, cluster)
		}
	}
	return out
}

// isEmojiCluster accepts clusters whose leading rune is an emoji codepoint, or
// clusters carrying an emoji presentation selector on a non-alphanumeric base
func isEmojiCluster(cluster string) bool {
	hasVS := false
	first := rune(-1)
	for _, r := range cluster {
		if first < 0 {
			first = r
		}
		if r == vs16 {
			hasVS = true
		}
	}
	if first < 0 {
		return false
	}
	if emojiRune(first) {
		return true
	}
	return hasVS && !asciiAlnum(first)
}
