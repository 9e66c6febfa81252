package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamerSkipsNamesInSource(t *testing.T) {
	nm := newNamer("_sw", "var _sw0 = 1, _sw2x = 2;", false)
	assert.Equal(t, "_sw1", nm.next())
	assert.Equal(t, "_sw3", nm.next())
	assert.Equal(t, "_sw4", nm.next())
}

func TestNamerDeterministic(t *testing.T) {
	a := newNamer("_sw", "x", false)
	b := newNamer("_sw", "x", false)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.next(), b.next())
	}
}

func TestNamerRandom(t *testing.T) {
	nm := newNamer("_r", "", true)
	first, second := nm.next(), nm.next()
	assert.True(t, strings.HasPrefix(first, "_r"))
	assert.Len(t, first, len("_r")+32)
	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "-")
}

func TestValidatePrefix(t *testing.T) {
	for _, ok := range []string{"_sw", "$", "tmp_", "a1"} {
		assert.NoError(t, validatePrefix(ok), ok)
	}
	for _, bad := range []string{"", "1a", "a-b", "my switch", "_switch_"} {
		assert.Error(t, validatePrefix(bad), bad)
	}
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
	assert.NoError(t, Options{}.Validate(), "empty prefix falls back to the default")
	assert.Error(t, Options{Prefix: "switch"}.Validate())
}
