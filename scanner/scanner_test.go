package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// codeBytes returns the bytes of src the scanner reports as code.
func codeBytes(src string) string {
	var out []byte
	sc := New(src)
	for ch, ok := sc.Next(); ok; ch, ok = sc.Next() {
		if sc.InCode() {
			out = append(out, ch)
		}
	}
	return string(out)
}

func TestCodeScannerStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"double", `a "b" c`, "a  c"},
		{"single", `a 'b' c`, "a  c"},
		{"template", "a `b ${x}` c", "a  c"},
		{"escaped quote", `a "b\"c" d`, "a  d"},
		{"quote in other kind", `a "it's" b`, "a  b"},
		{"line comment", "a // b 'c\nd", "a d"},
		{"block comment", "a /* b \" */ c", "a  c"},
		{"block comment shortest", "a /*/ b */ c", "a  c"},
		{"comment marker in string", `a "//" b`, "a  b"},
		{"division", "a / b", "a / b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codeBytes(tt.src))
		})
	}
}

func TestCodeScannerLineAndPeek(t *testing.T) {
	sc := New("a\nb")
	assert.Equal(t, -1, sc.Pos())
	ch, ok := sc.Next()
	assert.True(t, ok)
	assert.Equal(t, byte('a'), ch)
	assert.Equal(t, 1, sc.Line())
	next, ok := sc.Peek()
	assert.True(t, ok)
	assert.Equal(t, byte('\n'), next)
	sc.Next()
	sc.Next()
	assert.Equal(t, 2, sc.Line())
	assert.True(t, sc.LookingAt("b"))
	_, ok = sc.Peek()
	assert.False(t, ok)
}

func TestSkipTrivia(t *testing.T) {
	tests := []struct {
		name string
		src  string
		pos  int
		want int
	}{
		{"none", "x", 0, 0},
		{"spaces", "  \t\nx", 0, 4},
		{"line comment", "// c\nx", 0, 5},
		{"block comment", "/* c */x", 0, 7},
		{"mixed", " /* a */ // b\r\n  x", 0, 17},
		{"unterminated block", "/* x", 0, 4},
		{"only trivia", "   ", 0, 3},
		{"nbsp", "\u00a0x", 0, 2},
		{"from middle", "ab  c", 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SkipTrivia(tt.src, tt.pos))
		})
	}
}

func TestSkipTriviaAnd(t *testing.T) {
	next, last := SkipTriviaAnd("x ) /* */ ) { y", 1, ")")
	assert.Equal(t, 12, next)
	assert.Equal(t, 11, last)

	next, last = SkipTriviaAnd("x  :", 1, ")")
	assert.Equal(t, 3, next)
	assert.Equal(t, -1, last)
}

func TestFindKeyword(t *testing.T) {
	src := "switch (a) {} // switch\nvar s = 'switch'; switched(); obj.switch; _switch\n/* switch */ switch (b) {}"
	assert.Equal(t, []Match{{Pos: 0, Line: 1}, {Pos: 87, Line: 3}}, FindKeyword(src, "switch"))
	assert.Empty(t, FindKeyword("a\n  .switch()", "switch"))
	assert.Equal(t, []Match{{Pos: 7, Line: 1}}, FindKeyword("x = 1; switch (y) {}", "switch"))
	assert.Empty(t, FindKeyword("do {} while (false);", "switch"))
	assert.Empty(t, FindKeyword("x", ""))
}
