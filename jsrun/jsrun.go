// Package jsrun executes JavaScript programs in an embedded goja runtime and
// captures what they print through console.
package jsrun

import (
	"context"
	"strings"

	"github.com/dop251/goja"
	"github.com/pkg/errors"
)

// Output is what a program printed. Stdout collects console.log and
// console.info; Stderr collects console.error and console.warn. Each call
// prints its arguments separated by spaces and ends with a newline.
type Output struct {
	Stdout string
	Stderr string
}

// Run executes src in a fresh runtime. The output printed before a failure
// is returned together with the error. Cancelling ctx interrupts the
// program. A panic inside the runtime is reported as an error.
func Run(ctx context.Context, name, src string) (Output, error) {
	return run(ctx, name, src, nil)
}

// run is Run with a hook that can install extra globals before the
// program starts.
func run(ctx context.Context, name, src string, setup func(*goja.Runtime) error) (out Output, err error) {
	vm := goja.New()
	var stdout, stderr strings.Builder

	console := vm.NewObject()
	for _, m := range []struct {
		name string
		out  *strings.Builder
	}{
		{"log", &stdout},
		{"info", &stdout},
		{"error", &stderr},
		{"warn", &stderr},
	} {
		if err := console.Set(m.name, printer(m.out)); err != nil {
			return Output{}, errors.Wrap(err, "installing console")
		}
	}
	if err := vm.Set("console", console); err != nil {
		return Output{}, errors.Wrap(err, "installing console")
	}
	if setup != nil {
		if err := setup(vm); err != nil {
			return Output{}, errors.Wrap(err, "installing globals")
		}
	}

	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	defer func() {
		if p := recover(); p != nil {
			out = Output{Stdout: stdout.String(), Stderr: stderr.String()}
			err = errors.Errorf("running %s: runtime panic: %v", name, p)
		}
	}()

	_, err = vm.RunScript(name, src)
	out = Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return out, errors.Wrapf(err, "running %s", name)
	}
	return out, nil
}

func printer(out *strings.Builder) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		for i, arg := range call.Arguments {
			if i > 0 {
				out.WriteByte(' ')
			}
			out.WriteString(arg.String())
		}
		out.WriteByte('\n')
		return goja.Undefined()
	}
}
