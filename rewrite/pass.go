package rewrite

import (
	"github.com/pkg/errors"
	"github.com/rubiojr/deswitch/jsast"
	"github.com/rubiojr/deswitch/scanner"
)

// Pass rewrites the text of a named program. Implementations must not keep
// state between calls.
type Pass interface {
	Name() string
	Apply(name, src string) (string, error)
}

// PassFunc adapts a named function to the Pass interface.
type PassFunc struct {
	N string
	F func(name, src string) (string, error)
}

func (p PassFunc) Name() string                           { return p.N }
func (p PassFunc) Apply(name, src string) (string, error) { return p.F(name, src) }

// Chain composes passes left-to-right into a single Pass. Each pass
// receives the output of the previous one; the first error stops the chain.
func Chain(passes ...Pass) Pass {
	return PassFunc{
		N: "chain",
		F: func(name, src string) (string, error) {
			for _, p := range passes {
				out, err := p.Apply(name, src)
				if err != nil {
					return "", errors.Wrapf(err, "%s pass", p.Name())
				}
				src = out
			}
			return src, nil
		},
	}
}

// Pass returns the rewriter as a pass named "remove-switches".
func (r *Rewriter) Pass() Pass {
	return PassFunc{
		N: "remove-switches",
		F: func(name, src string) (string, error) {
			res, err := r.Rewrite(name, src)
			if err != nil {
				return "", err
			}
			return res.Output, nil
		},
	}
}

// ValidatePass returns a pass named "validate" that leaves the text alone
// but fails when it does not parse or when the keyword appears in code.
func ValidatePass(tolerant bool) Pass {
	return PassFunc{
		N: "validate",
		F: func(name, src string) (string, error) {
			if _, err := jsast.Parse(name, src, jsast.ParseOptions{Tolerant: tolerant}); err != nil {
				return "", &ParseError{Name: name, Err: err}
			}
			if err := CheckKeyword(name, src); err != nil {
				return "", err
			}
			return src, nil
		},
	}
}

// CheckKeyword returns ErrKeywordRemains, annotated with the line of the
// first match, when the keyword appears in code outside strings and
// comments.
func CheckKeyword(name, src string) error {
	matches := scanner.FindKeyword(src, keyword)
	if len(matches) == 0 {
		return nil
	}
	return errors.Wrapf(ErrKeywordRemains, "%s:%d", name, matches[0].Line)
}
