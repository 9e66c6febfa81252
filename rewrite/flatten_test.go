package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(stmts []Stmt) []string {
	var out []string
	for _, s := range stmts {
		if s.Stop {
			out = append(out, "<stop>")
			continue
		}
		out = append(out, s.Text)
	}
	return out
}

func TestFlattenEmpty(t *testing.T) {
	f := Flatten(nil)
	assert.Equal(t, []string{"<stop>"}, texts(f.Stmts))
	assert.Empty(t, f.Offsets)
	assert.False(t, f.HasDefault)
}

func TestFlattenOffsets(t *testing.T) {
	f := Flatten([]Clause{
		{Test: "1", Body: []string{"a()"}},
		{Test: "2"},
		{Default: true, Body: []string{"b()", "break"}},
		{Test: "3", Body: []string{"c()"}},
	})
	assert.Equal(t, []string{"a()", "b()", "break", "c()", "<stop>"}, texts(f.Stmts))
	assert.Equal(t, []int{0, 1, 1, 3}, f.Offsets)
	assert.True(t, f.HasDefault)
	assert.Equal(t, 1, f.DefaultOffset)
}

func TestFlattenEmptyLastClausePointsAtStop(t *testing.T) {
	f := Flatten([]Clause{
		{Test: "1", Body: []string{"a()"}},
		{Default: true},
	})
	require.Len(t, f.Stmts, 2)
	assert.Equal(t, 1, f.DefaultOffset)
	assert.True(t, f.Stmts[f.DefaultOffset].Stop)
}

func TestBuildGuardsKeepsClauseOrder(t *testing.T) {
	sw := Switch{
		Discriminant: "x",
		Clauses: []Clause{
			{Default: true, Body: []string{"d()"}},
			{Test: "1", Body: []string{"a()"}},
			{Test: "2", Body: []string{"b()", "break"}},
		},
	}
	f := Flatten(sw.Clauses)
	guards := BuildGuards(sw, f, "_sw0")
	require.Len(t, guards, 2)

	assert.Equal(t, "1", guards[0].Test)
	assert.Equal(t, "_sw0", guards[0].Binding)
	assert.Equal(t, []string{"a()", "b()", "break", "<stop>"}, texts(guards[0].Body))
	assert.Equal(t, "2", guards[1].Test)
	assert.Equal(t, []string{"b()", "break", "<stop>"}, texts(guards[1].Body))

	assert.Equal(t, []string{"d()", "a()", "b()", "break", "<stop>"}, texts(DefaultSuffix(f)))
}

func TestDefaultSuffixWithoutDefault(t *testing.T) {
	f := Flatten([]Clause{{Test: "1"}})
	assert.Nil(t, DefaultSuffix(f))
}
