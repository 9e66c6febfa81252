package rewrite

// Guard runs Body when the binding strictly equals Test.
type Guard struct {
	Binding string
	Test    string
	Body    []Stmt
}

// BuildGuards returns one guard per case clause, in clause order. Each
// guard runs the flattened suffix starting at its clause, which is how
// fall-through into later clauses (the default one included) happens.
// Guards are siblings: a matching guard ends with a break, so later guards
// are only tested when no earlier one matched.
func BuildGuards(sw Switch, flat Flattened, binding string) []Guard {
	var guards []Guard
	for i, c := range sw.Clauses {
		if c.Default {
			continue
		}
		guards = append(guards, Guard{
			Binding: binding,
			Test:    c.Test,
			Body:    flat.Suffix(flat.Offsets[i]),
		})
	}
	return guards
}

// DefaultSuffix returns the statements run when no guard matched, or nil
// when the switch has no default clause.
func DefaultSuffix(flat Flattened) []Stmt {
	if !flat.HasDefault {
		return nil
	}
	return flat.Suffix(flat.DefaultOffset)
}
