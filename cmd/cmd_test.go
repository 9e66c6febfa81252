package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rubiojr/deswitch/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestRewriteFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.js", "switch (1) { default: f(); }\n")
	r, err := rewrite.New(rewrite.DefaultOptions())
	require.NoError(t, err)

	out, err := rewriteFile(rewrite.Chain(r.Pass(), rewrite.ValidatePass(true)), path)
	require.NoError(t, err)
	assert.NoError(t, rewrite.CheckKeyword(path, out))
	assert.Contains(t, out, "const _sw0 = (1);")

	_, err = rewriteFile(r.Pass(), filepath.Join(dir, "missing.js"))
	assert.Error(t, err)
}

func TestPrintOccurrences(t *testing.T) {
	r, err := rewrite.New(rewrite.DefaultOptions())
	require.NoError(t, err)
	occs, err := r.Locate("x.js", "switch (a) {\ncase 1:\n  switch (b) {}\n}")
	require.NoError(t, err)

	var buf bytes.Buffer
	printOccurrences(&buf, "x.js", occs)
	assert.Equal(t, "x.js:1: #0 [0,38) parent -, 1 clauses, 0 continues\n"+
		"x.js:3: #1 [23,36) parent #0, 0 clauses, 0 continues\n", buf.String())
}

func TestCollectFixtures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.js", "console.log(1);\n// ======\n// 1\n")
	single := writeFile(t, t.TempDir(), "two.js", "console.log(2);\n// ======\n// 2\n")

	fixtures, err := collectFixtures([]string{dir, single})
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, "one.js", fixtures[0].Name)
	assert.Equal(t, "2\n", fixtures[1].Expected)

	_, err = collectFixtures([]string{filepath.Join(dir, "nope")})
	assert.Error(t, err)
}

func TestCheckSource(t *testing.T) {
	assert.NoError(t, checkSource("a.js", "var x = 1;\n"))

	err := checkSource("b.js", "var x = 1;\nswitch (x) {}\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, rewrite.ErrKeywordRemains)
	assert.Contains(t, err.Error(), "b.js:2")

	err = checkSource("c.js", "// switch\nvar s = 'switch';\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string or comment")
}
