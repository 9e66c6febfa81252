package rewrite

import (
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"
	"github.com/rubiojr/deswitch/jsast"
	"github.com/rubiojr/deswitch/scanner"
)

// Locate walks the program once and returns every switch statement in
// discovery order (outermost first, then source order), with the spans of
// its pieces and the unlabeled continue statements it owns.
func Locate(prog *jsast.Program) ([]*Occurrence, error) {
	l := &locator{prog: prog, index: map[*ast.SwitchStatement]int{}, seen: map[ast.Node]bool{}}
	jsast.Inspect(prog.Program, l.visit)
	if l.err != nil {
		return nil, l.err
	}
	for _, o := range l.occs {
		if !o.NeedsFlag {
			continue
		}
		for p := o.ContinueParent; p >= 0 && !l.occs[p].NeedsFlag; p = l.occs[p].ContinueParent {
			l.occs[p].NeedsFlag = true
		}
	}
	return l.occs, nil
}

type locator struct {
	prog  *jsast.Program
	stack []ast.Node
	occs  []*Occurrence
	index map[*ast.SwitchStatement]int
	seen  map[ast.Node]bool
	err   error
}

func (l *locator) visit(n ast.Node) bool {
	if l.err != nil {
		return false
	}
	if n == nil {
		l.stack = l.stack[:len(l.stack)-1]
		return true
	}
	if l.seen[n] {
		return false
	}
	l.seen[n] = true

	switch n := n.(type) {
	case *ast.SwitchStatement:
		o, err := l.occurrence(n)
		if err != nil {
			l.err = err
			return false
		}
		o.Index = len(l.occs)
		o.Parent = l.enclosing(false)
		o.ContinueParent = l.enclosing(true)
		l.index[n] = o.Index
		l.occs = append(l.occs, o)
	case *ast.BranchStatement:
		if n.Token == token.CONTINUE && n.Label == nil {
			if owner := l.enclosing(true); owner >= 0 {
				sp, err := l.continueSpan(n)
				if err != nil {
					l.err = err
					return false
				}
				l.occs[owner].Continues = append(l.occs[owner].Continues, sp)
				l.occs[owner].NeedsFlag = true
			}
		}
	}
	l.stack = append(l.stack, n)
	return true
}

// enclosing returns the index of the innermost switch on the stack, or -1.
// With stopAtLoops, a loop or function boundary ends the search.
func (l *locator) enclosing(stopAtLoops bool) int {
	for i := len(l.stack) - 1; i >= 0; i-- {
		switch n := l.stack[i].(type) {
		case *ast.SwitchStatement:
			return l.index[n]
		case *ast.ForStatement, *ast.ForInStatement, *ast.ForOfStatement,
			*ast.WhileStatement, *ast.DoWhileStatement,
			*ast.FunctionLiteral, *ast.ArrowFunctionLiteral, *ast.ClassStaticBlock:
			if stopAtLoops {
				return -1
			}
		}
	}
	return -1
}

func (l *locator) occurrence(sw *ast.SwitchStatement) (*Occurrence, error) {
	src := l.prog.Src
	o := &Occurrence{
		Span:           Span{Start: l.prog.Offset(sw.Switch), End: l.prog.Offset(sw.RightBrace) + 1},
		Parent:         -1,
		ContinueParent: -1,
	}
	o.Line = l.prog.Line(o.Start)
	if !strings.HasPrefix(src[o.Start:], keyword) {
		return nil, consistencyErrorf("no %s keyword at offset %d", keyword, o.Start)
	}

	open := scanner.SkipTrivia(src, o.Start+len(keyword))
	if open >= len(src) || src[open] != '(' {
		return nil, consistencyErrorf("line %d: no '(' after %s", o.Line, keyword)
	}
	next, closeEnd := scanner.SkipTriviaAnd(src, l.prog.End(sw.Discriminant), ")")
	if closeEnd < 0 || next >= len(src) || src[next] != '{' {
		return nil, consistencyErrorf("line %d: cannot find the end of the discriminant", o.Line)
	}
	o.Discriminant = Span{Start: open + 1, End: closeEnd - 1}

	for i, c := range sw.Body {
		end := l.prog.Offset(sw.RightBrace)
		if i+1 < len(sw.Body) {
			end = l.prog.Offset(sw.Body[i+1].Case)
		}
		cs, err := l.clause(c, end)
		if err != nil {
			return nil, err
		}
		o.Clauses = append(o.Clauses, cs)
	}
	return o, nil
}

func (l *locator) clause(c *ast.CaseStatement, end int) (ClauseSpan, error) {
	src := l.prog.Src
	start := l.prog.Offset(c.Case)
	line := l.prog.Line(start)

	var cs ClauseSpan
	var colon int
	if c.Test == nil {
		if !strings.HasPrefix(src[start:], "default") {
			return cs, consistencyErrorf("line %d: no default keyword at offset %d", line, start)
		}
		cs.Default = true
		colon = scanner.SkipTrivia(src, start+len("default"))
	} else {
		if !strings.HasPrefix(src[start:], "case") {
			return cs, consistencyErrorf("line %d: no case keyword at offset %d", line, start)
		}
		colon, _ = scanner.SkipTriviaAnd(src, l.prog.End(c.Test), ")")
		cs.Test = Span{Start: start + len("case"), End: colon}
	}
	if colon >= end || src[colon] != ':' {
		return cs, consistencyErrorf("line %d: cannot find the clause colon", line)
	}

	pos, first := colon+1, 0
	for k, st := range c.Consequent {
		b := end
		if k < len(c.Consequent)-1 {
			var ok bool
			if b, ok = l.boundary(st, c.Consequent[k+1], pos); !ok {
				continue
			}
		}
		_, fn := st.(*ast.FunctionDeclaration)
		cs.Body = append(cs.Body, Span{Start: pos, End: b})
		cs.Decl = append(cs.Decl, fn && first == k)
		pos, first = b, k+1
	}
	return cs, nil
}

// boundary returns where statement st ends and next begins. The parser
// leaves parentheses out of expression nodes, so the end is found by
// stepping over closing parentheses and semicolons after st. When that
// does not land on next, st and next stay in one span.
func (l *locator) boundary(st, next ast.Statement, from int) (int, bool) {
	src := l.prog.Src
	b := l.prog.End(st)
	if _, last := scanner.SkipTriviaAnd(src, b, ");"); last > b {
		b = last
	}
	nextStart := l.prog.Start(next)
	if b < from || b > nextStart {
		return 0, false
	}
	p := scanner.SkipTrivia(src, b)
	if p == nextStart || (p < nextStart && src[p] == '(') {
		return b, true
	}
	return 0, false
}

func (l *locator) continueSpan(br *ast.BranchStatement) (Span, error) {
	src := l.prog.Src
	start := l.prog.Offset(br.Idx)
	if !strings.HasPrefix(src[start:], "continue") {
		return Span{}, consistencyErrorf("line %d: no continue keyword at offset %d", l.prog.Line(start), start)
	}
	end := start + len("continue")
	if p := scanner.SkipTrivia(src, end); p < len(src) && src[p] == ';' {
		end = p + 1
	}
	return Span{Start: start, End: end}, nil
}
