package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Wrapper is the block that replaces one switch statement. The binding
// and any hoisted declarations live in an outer block; the guards run in a
// do { } while (false) loop inside it, so the discriminant is evaluated
// outside the scope of the clause bodies.
type Wrapper struct {
	Binding      string
	Discriminant string
	Guards       []Guard
	Default      []Stmt
	// Decls are function declarations taken out of the clauses. They are
	// visible from every guard.
	Decls []Stmt

	// Flag is set when continue statements inside the switch were turned
	// into breaks; the wrapper then declares it and continues afterwards.
	Flag string
	// ParentFlag is the flag of the directly enclosing switch. When set, a
	// raised Flag is handed to it instead of continuing here.
	ParentFlag string
}

// Wrap builds the wrapper for a discriminant, its guards and the default
// suffix.
func Wrap(binding, discriminant string, guards []Guard, def []Stmt) *Wrapper {
	return &Wrapper{
		Binding:      binding,
		Discriminant: discriminant,
		Guards:       guards,
		Default:      def,
	}
}

// Render returns the wrapper as JavaScript source text.
func (w *Wrapper) Render() (string, error) {
	if w.Binding == "" {
		return "", errors.New("wrapper has no binding")
	}
	disc := expr(w.Discriminant)
	if disc == "" {
		return "", errors.Errorf("%s: empty discriminant", w.Binding)
	}

	var b strings.Builder
	b.WriteString("{\n")
	if w.Flag != "" {
		fmt.Fprintf(&b, "let %s = false;\n", w.Flag)
	}
	fmt.Fprintf(&b, "const %s = (%s);\n", w.Binding, disc)
	for _, d := range w.Decls {
		if text := d.render(); text != "" {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	b.WriteString("do {\n")
	for i, g := range w.Guards {
		test := expr(g.Test)
		if test == "" {
			return "", errors.Errorf("%s: guard %d has an empty test", w.Binding, i)
		}
		fmt.Fprintf(&b, "if (%s === (%s)) {\n", g.Binding, test)
		writeStmts(&b, g.Body)
		b.WriteString("}\n")
	}
	writeStmts(&b, w.Default)
	b.WriteString("} while (false);\n")
	if w.Flag != "" {
		if w.ParentFlag != "" {
			fmt.Fprintf(&b, "if (%s) {\n%s = true;\nbreak;\n}\n", w.Flag, w.ParentFlag)
		} else {
			fmt.Fprintf(&b, "if (%s) continue;\n", w.Flag)
		}
	}
	b.WriteString("}")
	return b.String(), nil
}

// continueText replaces an unlabeled continue owned by a switch.
func continueText(flag string) string {
	return fmt.Sprintf("{ %s = true; break; }", flag)
}

// writeStmts writes stmts up to and including the first one that always
// leaves the loop; anything after it is unreachable.
func writeStmts(b *strings.Builder, stmts []Stmt) {
	for _, s := range stmts {
		if text := s.render(); text != "" {
			b.WriteString(text)
			b.WriteByte('\n')
		}
		if s.exits() {
			return
		}
	}
}

var raiseFlagRe = regexp.MustCompile(`^\{\s*[A-Za-z_$][\w$]*\s*=\s*true;\s*break;\s*\}$`)

// exits reports whether the statement unconditionally breaks out of the
// loop: the synthetic stop, a bare break, or a raised continue flag.
func (s Stmt) exits() bool {
	if s.Stop {
		return true
	}
	text := strings.TrimSpace(s.Text)
	if strings.TrimSpace(strings.TrimSuffix(text, ";")) == "break" {
		return true
	}
	return raiseFlagRe.MatchString(text)
}

// render terminates the statement so that the next statement cannot be
// parsed as its continuation.
func (s Stmt) render() string {
	if s.Stop {
		return "break;"
	}
	text := strings.TrimSpace(s.Text)
	switch {
	case text == "":
		return ""
	case endsInLineComment(text):
		return text + "\n;"
	case strings.HasSuffix(text, ";"):
		return text
	default:
		return text + ";"
	}
}

// expr trims an expression and moves a trailing line comment out of the
// way of the closing parenthesis.
func expr(text string) string {
	text = strings.TrimSpace(text)
	if endsInLineComment(text) {
		return text + "\n"
	}
	return text
}

// endsInLineComment reports whether the last line of text may end in a //
// comment. A // inside a string gives a false positive, which only costs a
// line break.
func endsInLineComment(text string) bool {
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return strings.Contains(last, "//")
}
