package rewrite

import "fmt"

// State is the lifecycle stage of an occurrence.
type State int

const (
	Located State = iota
	Rewritten
	MergedIntoParent
	SplicedIntoRoot
)

func (s State) String() string {
	switch s {
	case Located:
		return "located"
	case Rewritten:
		return "rewritten"
	case MergedIntoParent:
		return "merged"
	case SplicedIntoRoot:
		return "spliced"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Span is a half-open byte range [Start, End) of the original text.
type Span struct {
	Start, End int
}

// Contains reports whether o lies within s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Overlaps reports whether s and o share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// ClauseSpan locates the pieces of one clause.
type ClauseSpan struct {
	Default bool
	Test    Span   // zero for the default clause
	Body    []Span // one span per statement, contiguous
	// Decl marks the body spans that hold exactly one function declaration.
	Decl []bool
}

// Occurrence is one located switch statement. Occurrences are kept in an
// arena ordered by discovery and refer to each other by index.
type Occurrence struct {
	Index int
	Span
	Line int

	// Parent is the innermost enclosing occurrence, or -1.
	Parent int
	// ContinueParent is the enclosing occurrence that an unlabeled continue
	// right after this switch would still belong to (no loop or function in
	// between), or -1.
	ContinueParent int

	Discriminant Span
	Clauses      []ClauseSpan
	// Continues are the unlabeled continue statements this switch owns,
	// including a trailing semicolon.
	Continues []Span
	NeedsFlag bool

	Binding string
	Flag    string
	State   State

	buf *buffer
}

// source returns the switch as it currently reads, with nested occurrences
// already replaced.
func (o *Occurrence) source() (Switch, error) {
	var sw Switch
	var err error
	if sw.Discriminant, err = o.buf.slice(o.Discriminant.Start, o.Discriminant.End); err != nil {
		return sw, err
	}
	for _, cs := range o.Clauses {
		c := Clause{Default: cs.Default}
		if !cs.Default {
			if c.Test, err = o.buf.slice(cs.Test.Start, cs.Test.End); err != nil {
				return sw, err
			}
		}
		for i, st := range cs.Body {
			text, err := o.buf.slice(st.Start, st.End)
			if err != nil {
				return sw, err
			}
			if i < len(cs.Decl) && cs.Decl[i] {
				c.Decls = append(c.Decls, text)
				continue
			}
			c.Body = append(c.Body, text)
		}
		sw.Clauses = append(sw.Clauses, c)
	}
	return sw, nil
}

// Text returns the pending text of the occurrence, or "" before the
// rewrite started.
func (o *Occurrence) Text() string {
	if o.buf == nil {
		return ""
	}
	return o.buf.String()
}
