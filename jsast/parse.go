// Package jsast is the JavaScript front end: it parses source text with the
// goja parser and exposes the tree together with byte offsets into the
// original text.
package jsast

import (
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"
)

// Program is a parsed JavaScript program and the text it came from.
type Program struct {
	*ast.Program
	Name string
	Src  string
	base int
}

// ParseOptions controls how source text is parsed.
type ParseOptions struct {
	// Tolerant accepts regular expressions the runtime could not compile
	// (lookahead, backreferences). Syntax errors still fail.
	Tolerant bool
}

// Parse parses src as a script. The returned error, if any, is the goja
// parser's error value, normally a parser.ErrorList.
func Parse(name, src string, opts ParseOptions) (*Program, error) {
	var mode parser.Mode
	if opts.Tolerant {
		mode |= parser.IgnoreRegExpErrors
	}
	prog, err := parser.ParseFile(nil, name, src, mode, parser.WithDisableSourceMaps)
	if err != nil {
		return nil, err
	}
	base := 1
	if prog.File != nil {
		base = prog.File.Base()
	}
	return &Program{Program: prog, Name: name, Src: src, base: base}, nil
}

// Offset converts a parser index into a byte offset into Src.
func (p *Program) Offset(idx file.Idx) int {
	return int(idx) - p.base
}

// Start returns the byte offset of the first character of n.
func (p *Program) Start(n ast.Node) int {
	return p.Offset(n.Idx0())
}

// End returns the byte offset just past the last character of n as the
// parser reports it. Parentheses around an expression are not part of the
// expression node.
func (p *Program) End(n ast.Node) int {
	return p.Offset(n.Idx1())
}

// Line returns the 1-based line number of the byte offset off.
func (p *Program) Line(off int) int {
	if off > len(p.Src) {
		off = len(p.Src)
	}
	line := 1
	for i := 0; i < off; i++ {
		if p.Src[i] == '\n' {
			line++
		}
	}
	return line
}
