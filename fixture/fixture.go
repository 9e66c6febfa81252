// Package fixture loads self-checking JavaScript programs and verifies that
// rewriting them keeps their observable behavior.
//
// A fixture is a program followed by a separator line and the output it is
// expected to print, one line comment per printed line:
//
//	console.log("a");
//	// ======
//	// a
//
// An empty printed line is written as a bare "//".
package fixture

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rubiojr/deswitch/jsrun"
	"github.com/rubiojr/deswitch/rewrite"
)

// Separator divides a fixture's program from its expected output.
const Separator = "// ======"

// DefaultTimeout bounds a single program run.
const DefaultTimeout = 5 * time.Second

// Fixture is a program with the output it must print.
type Fixture struct {
	Name     string
	Path     string
	Source   string
	Expected string
}

// Parse splits the text of a fixture.
func Parse(name, text string) (*Fixture, error) {
	lines := strings.Split(text, "\n")
	sep := -1
	for i, l := range lines {
		if strings.TrimRight(l, " \t\r") == Separator {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, errors.Errorf("%s: missing %q separator", name, Separator)
	}

	var want strings.Builder
	for i, l := range lines[sep+1:] {
		l = strings.TrimRight(l, "\r")
		if l == "" {
			// trailing newline of the file
			if i == len(lines)-sep-2 {
				break
			}
			return nil, errors.Errorf("%s:%d: blank line in expected output", name, sep+i+2)
		}
		switch {
		case strings.HasPrefix(l, "// "):
			want.WriteString(l[3:])
		case l == "//":
		default:
			return nil, errors.Errorf("%s:%d: expected output line must start with //", name, sep+i+2)
		}
		want.WriteByte('\n')
	}

	return &Fixture{
		Name:     name,
		Source:   strings.Join(lines[:sep], "\n") + "\n",
		Expected: want.String(),
	}, nil
}

// Load reads a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading fixture")
	}
	f, err := Parse(filepath.Base(path), string(data))
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// LoadDir reads every .js file in dir, sorted by name.
func LoadDir(dir string) ([]*Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading directory %s", dir)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".js") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	fixtures := make([]*Fixture, 0, len(names))
	for _, n := range names {
		f, err := Load(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// Verify rewrites the fixture, then runs the program before and after the
// rewrite and compares both outputs with the expected one. A zero timeout
// means DefaultTimeout.
func Verify(ctx context.Context, r *rewrite.Rewriter, f *Fixture, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	res, err := r.Rewrite(f.Name, f.Source)
	if err != nil {
		return errors.Wrapf(err, "%s: rewrite", f.Name)
	}
	if strings.Contains(res.Output, "switch") {
		if err := rewrite.CheckKeyword(f.Name, res.Output); err != nil {
			return err
		}
		return errors.Errorf("%s: rewritten text still mentions the keyword in a string or comment", f.Name)
	}

	for _, run := range []struct {
		label string
		src   string
	}{
		{"source", f.Source},
		{"rewritten", res.Output},
	} {
		got, err := runWithTimeout(ctx, f.Name, run.src, timeout)
		if err != nil {
			return errors.Wrapf(err, "%s: %s program", f.Name, run.label)
		}
		if got != f.Expected {
			return &MismatchError{Name: f.Name, Program: run.label, Want: f.Expected, Got: got}
		}
	}
	return nil
}

func runWithTimeout(ctx context.Context, name, src string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	out, err := jsrun.Run(ctx, name, src)
	return out.Stdout, err
}

// MismatchError reports a program that printed something other than the
// expected output.
type MismatchError struct {
	Name    string
	Program string
	Want    string
	Got     string
}

func (e *MismatchError) Error() string {
	return e.Name + ": " + e.Program + " program printed\n" + indent(e.Got) + "want\n" + indent(e.Want)
}

func indent(s string) string {
	if s == "" {
		return "    (nothing)\n"
	}
	var b strings.Builder
	for _, l := range strings.SplitAfter(s, "\n") {
		if l != "" {
			b.WriteString("    " + l)
		}
	}
	return b.String()
}

// Result is the outcome of verifying one fixture.
type Result struct {
	Fixture *Fixture
	Err     error
}

// VerifyAll verifies fixtures on up to jobs goroutines. onResult, when not
// nil, is called in fixture order as results become available. The
// returned error aggregates every failure.
func VerifyAll(ctx context.Context, r *rewrite.Rewriter, fixtures []*Fixture, jobs int, timeout time.Duration, onResult func(Result)) error {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]Result, len(fixtures))
	done := make([]chan struct{}, len(fixtures))
	for i := range done {
		done[i] = make(chan struct{})
	}

	work := make(chan int, len(fixtures))
	for i := range fixtures {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = Result{Fixture: fixtures[i], Err: Verify(ctx, r, fixtures[i], timeout)}
				close(done[i])
			}
		}()
	}

	var merr *multierror.Error
	for i := range fixtures {
		<-done[i]
		if onResult != nil {
			onResult(results[i])
		}
		if results[i].Err != nil {
			merr = multierror.Append(merr, results[i].Err)
		}
	}
	wg.Wait()
	return merr.ErrorOrNil()
}
