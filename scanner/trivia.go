package scanner

import "strings"

// IsSpace reports whether ch is JavaScript whitespace or a line terminator
// in the ASCII range.
func IsSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// SkipTrivia returns the offset of the first byte at or after pos that is
// not whitespace and not part of a comment. Returns len(src) when only
// trivia remains. Non-ASCII whitespace (NBSP, BOM, U+2028) is also skipped.
func SkipTrivia(src string, pos int) int {
	for pos < len(src) {
		ch := src[pos]
		switch {
		case IsSpace(ch):
			pos++
		case ch == '/' && pos+1 < len(src) && src[pos+1] == '/':
			pos += 2
			for pos < len(src) && src[pos] != '\n' && src[pos] != '\r' {
				pos++
			}
		case ch == '/' && pos+1 < len(src) && src[pos+1] == '*':
			end := strings.Index(src[pos+2:], "*/")
			if end < 0 {
				return len(src)
			}
			pos += 2 + end + 2
		case ch >= 0x80:
			n := unicodeSpace(src[pos:])
			if n == 0 {
				return pos
			}
			pos += n
		default:
			return pos
		}
	}
	return pos
}

// SkipTriviaAnd is like SkipTrivia but also steps over any byte in set.
// It returns the position of the first byte that is neither trivia nor in
// set, and the position just past the last byte of set that was skipped
// (or -1 if none was).
func SkipTriviaAnd(src string, pos int, set string) (next, lastEnd int) {
	lastEnd = -1
	for {
		pos = SkipTrivia(src, pos)
		if pos >= len(src) || strings.IndexByte(set, src[pos]) < 0 {
			return pos, lastEnd
		}
		pos++
		lastEnd = pos
	}
}

// unicodeSpaces lists the non-ASCII whitespace and line terminators
// JavaScript accepts between tokens, UTF-8 encoded.
var unicodeSpaces = []string{
	"\u00a0", "\ufeff", "\u1680", "\u2028", "\u2029", "\u202f", "\u205f", "\u3000",
}

// unicodeSpace returns the byte length of the non-ASCII whitespace rune at
// the start of s, or 0.
func unicodeSpace(s string) int {
	for _, sp := range unicodeSpaces {
		if strings.HasPrefix(s, sp) {
			return len(sp)
		}
	}
	if len(s) >= 3 && s[0] == 0xe2 && s[1] == 0x80 && s[2] >= 0x80 && s[2] <= 0x8a {
		return 3 // U+2000..U+200A
	}
	return 0
}
