// Package rewrite removes switch statements from JavaScript source text.
//
// Each switch is replaced by a block that evaluates the discriminant once
// into a fresh binding and runs one guard per case clause inside a
// do { } while (false) loop, so that every break that left the switch now
// leaves the loop:
//
//	{
//	const _sw0 = (x);
//	do {
//	if (_sw0 === (1)) {
//	a();
//	break;
//	}
//	b();
//	break;
//	} while (false);
//	}
//
// Switches nested in clause bodies or discriminants are rewritten first and
// folded into the text of their enclosing switch.
package rewrite

// Clause is one case or default clause as source text.
type Clause struct {
	Test    string // test expression; empty for the default clause
	Default bool
	Body    []string // statements in source order
	// Decls are function declarations of the clause. They are scoped to
	// the whole switch, so they are kept out of Body.
	Decls []string
}

// Switch is a switch statement as source text.
type Switch struct {
	Discriminant string
	Clauses      []Clause
}

// Stmt is one entry of a flattened statement sequence.
type Stmt struct {
	Text string
	Stop bool // synthetic break appended after the last clause
}

// Flattened is the concatenation of all clause bodies followed by a
// synthetic stop. Offsets[i] is the index of the first statement of clause
// i; a clause with an empty body points at whatever follows it.
type Flattened struct {
	Stmts         []Stmt
	Offsets       []int
	HasDefault    bool
	DefaultOffset int
}

// Flatten concatenates the clause bodies in order and appends the stop.
func Flatten(clauses []Clause) Flattened {
	f := Flattened{Offsets: make([]int, len(clauses))}
	for i, c := range clauses {
		f.Offsets[i] = len(f.Stmts)
		for _, text := range c.Body {
			f.Stmts = append(f.Stmts, Stmt{Text: text})
		}
		if c.Default {
			f.HasDefault = true
			f.DefaultOffset = f.Offsets[i]
		}
	}
	f.Stmts = append(f.Stmts, Stmt{Stop: true})
	return f
}

// Suffix returns the statements from offset to the end, stop included.
func (f Flattened) Suffix(offset int) []Stmt {
	return f.Stmts[offset:]
}
