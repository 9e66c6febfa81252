package rewrite

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParseError reports source text the front end could not parse. No output
// is produced.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConsistencyError reports an occurrence whose span cannot be reconciled
// with the nesting of the other occurrences, or a position that falls
// inside text that was already replaced. It indicates a bug, not bad input.
type ConsistencyError struct {
	Msg string
}

func (e *ConsistencyError) Error() string {
	return "internal consistency: " + e.Msg
}

// consistencyErrorf returns a ConsistencyError carrying a stack trace.
func consistencyErrorf(format string, args ...any) error {
	return errors.WithStack(&ConsistencyError{Msg: fmt.Sprintf(format, args...)})
}

// RenderError reports a replacement that could not be rendered, or an
// output text the front end rejects when parsing it back.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ErrKeywordRemains is returned by the validation pass when the keyword is
// still present in the code of a program.
var ErrKeywordRemains = errors.New("switch keyword remains in code")
