package scanner

// IsIdentByte reports whether ch can be part of a JavaScript identifier.
// Any non-ASCII byte counts, so multi-byte identifier characters are never
// split.
func IsIdentByte(ch byte) bool {
	return ch == '_' || ch == '$' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') || ch >= 0x80
}

// Match is one occurrence of a keyword: its byte offset and 1-based line.
type Match struct {
	Pos  int
	Line int
}

// FindKeyword returns every occurrence of word in src that stands alone as
// an identifier-like token and lies outside string literals, template
// literals and comments. Member accesses (obj.word) are
// not reported.
func FindKeyword(src, word string) []Match {
	if word == "" {
		return nil
	}
	var matches []Match
	sc := New(src)
	for ch, ok := sc.Next(); ok; ch, ok = sc.Next() {
		if ch != word[0] || !sc.InCode() || !sc.LookingAt(word) {
			continue
		}
		pos := sc.Pos()
		if pos > 0 && IsIdentByte(src[pos-1]) {
			continue
		}
		if end := pos + len(word); end < len(src) && IsIdentByte(src[end]) {
			continue
		}
		if afterDot(src, pos) {
			continue
		}
		matches = append(matches, Match{Pos: pos, Line: sc.Line()})
	}
	return matches
}

func afterDot(src string, pos int) bool {
	for pos > 0 && IsSpace(src[pos-1]) {
		pos--
	}
	return pos > 0 && src[pos-1] == '.'
}
