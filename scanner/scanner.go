// Package scanner provides byte-level scanning of JavaScript source text
// that is aware of string literals, template literals and comments. The
// rewriter uses it to step over trivia between tokens whose positions the
// parser reports, and the verifier uses it to search for keywords in code
// only.
package scanner

import "strings"

// closingKind tracks which construct was just closed.
type closingKind byte

const (
	noClosing       closingKind = iota
	closingDouble               // just closed a "..." string
	closingSingle               // just closed a '...' string
	closingTemplate             // just closed a `...` template
	closingComment              // just closed a comment (newline or */)
)

// CodeScanner iterates byte-by-byte over JavaScript source text, tracking
// string literal boundaries (double-quoted, single-quoted, template),
// escape sequences and comments. Callers check InCode() instead of
// maintaining their own flags.
//
// InString() and InComment() return true for the entire span including the
// opening and closing delimiters. Template substitutions (${...}) are
// treated as part of the template. Regular expression literals are not
// recognized; a quote inside a regex literal toggles string state.
type CodeScanner struct {
	src        string
	pos        int
	line       int
	inDbl      bool
	inSgl      bool
	inTpl      bool
	inLine     bool // inside a // comment
	inBlock    bool // inside a /* */ comment
	blockStart int  // offset of the '/' that opened the current block comment
	escaped    bool
	closing    closingKind // set when a closing delimiter is processed
}

// New creates a CodeScanner for the given source text.
// Call Next() to advance to the first byte.
func New(src string) *CodeScanner {
	return &CodeScanner{src: src, pos: -1, line: 1}
}

// Next advances to the next byte, updating string, comment and escape
// state. Returns the byte and true, or (0, false) at end of input.
func (s *CodeScanner) Next() (byte, bool) {
	s.closing = noClosing
	s.pos++
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]
	if ch == '\n' {
		s.line++
	}

	switch {
	case s.inLine:
		if ch == '\n' || ch == '\r' {
			s.inLine = false
			s.closing = closingComment
		}
		return ch, true
	case s.inBlock:
		if ch == '/' && s.src[s.pos-1] == '*' && s.pos-1 >= s.blockStart+2 {
			s.inBlock = false
			s.closing = closingComment
		}
		return ch, true
	}

	if s.escaped {
		s.escaped = false
		return ch, true
	}
	if ch == '\\' && (s.inDbl || s.inSgl || s.inTpl) {
		s.escaped = true
		return ch, true
	}
	switch {
	case ch == '"' && !s.inSgl && !s.inTpl:
		if s.inDbl {
			s.closing = closingDouble
		}
		s.inDbl = !s.inDbl
	case ch == '\'' && !s.inDbl && !s.inTpl:
		if s.inSgl {
			s.closing = closingSingle
		}
		s.inSgl = !s.inSgl
	case ch == '`' && !s.inDbl && !s.inSgl:
		if s.inTpl {
			s.closing = closingTemplate
		}
		s.inTpl = !s.inTpl
	case ch == '/' && !s.inDbl && !s.inSgl && !s.inTpl:
		if next, ok := s.Peek(); ok {
			if next == '/' {
				s.inLine = true
			} else if next == '*' {
				s.inBlock = true
				s.blockStart = s.pos
			}
		}
	}

	return ch, true
}

// InString reports whether the current position is inside a string or
// template literal, including both delimiters.
func (s *CodeScanner) InString() bool {
	return s.inDbl || s.inSgl || s.inTpl ||
		s.closing == closingDouble || s.closing == closingSingle || s.closing == closingTemplate
}

// InComment reports whether the current position is inside a comment,
// including the opening // or /* and the closing newline or */.
func (s *CodeScanner) InComment() bool {
	return s.inLine || s.inBlock || s.closing == closingComment
}

// InCode reports whether the current position is outside all string
// literals and comments.
func (s *CodeScanner) InCode() bool { return !s.InString() && !s.InComment() }

// Pos returns the current byte offset (the position of the last byte
// returned by Next). Returns -1 before the first call to Next.
func (s *CodeScanner) Pos() int { return s.pos }

// Line returns the current 1-based line number.
func (s *CodeScanner) Line() int { return s.line }

// Peek returns the next byte without advancing, or (0, false) at end.
func (s *CodeScanner) Peek() (byte, bool) {
	if s.pos+1 >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+1], true
}

// LookingAt checks if src[pos:] starts with the given prefix.
func (s *CodeScanner) LookingAt(prefix string) bool {
	if s.pos < 0 {
		return false
	}
	return strings.HasPrefix(s.src[s.pos:], prefix)
}
