package jsrun

import (
	"context"
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesConsole(t *testing.T) {
	out, err := Run(context.Background(), "t.js", `
console.log("a", 1, true);
console.info("b");
console.error("oops");
console.warn("careful");
console.log();
`)
	require.NoError(t, err)
	assert.Equal(t, "a 1 true\nb\n\n", out.Stdout)
	assert.Equal(t, "oops\ncareful\n", out.Stderr)
}

func TestRunSloppyGlobals(t *testing.T) {
	out, err := Run(context.Background(), "t.js", "x = 2; console.log(x * 21);")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out.Stdout)
}

func TestRunExceptionKeepsOutput(t *testing.T) {
	out, err := Run(context.Background(), "t.js", `console.log("before"); throw new Error("boom");`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, "before\n", out.Stdout)
}

func TestRunSyntaxError(t *testing.T) {
	_, err := Run(context.Background(), "t.js", "if (")
	assert.Error(t, err)
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Run(ctx, "loop.js", "for (;;) {}")
	require.Error(t, err)
	var interrupted *goja.InterruptedError
	assert.ErrorAs(t, err, &interrupted)
}

func TestRunRecoversRuntimePanic(t *testing.T) {
	out, err := run(context.Background(), "panic.js", `console.log("before"); explode();`, func(vm *goja.Runtime) error {
		return vm.Set("explode", func() { panic("host failure") })
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtime panic: host failure")
	assert.Equal(t, "before\n", out.Stdout)
}
