package rewrite

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/rubiojr/deswitch/jsast"
	"github.com/sirupsen/logrus"
)

const keyword = "switch"

// Options configures a Rewriter.
type Options struct {
	// Tolerant parsing accepts regular expressions the goja runtime cannot
	// compile. Syntax errors are always fatal.
	Tolerant bool
	// Prefix starts every generated identifier. Defaults to DefaultPrefix.
	Prefix string
	// RandomNames draws generated identifiers from random UUIDs instead of
	// a counter. Output is then no longer deterministic.
	RandomNames bool
	// Logger receives debug traces. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// DefaultOptions returns tolerant parsing with deterministic names.
func DefaultOptions() Options {
	return Options{Tolerant: true, Prefix: DefaultPrefix}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.Prefix == "" {
		return nil
	}
	return validatePrefix(o.Prefix)
}

// Rewriter removes switch statements from programs. A Rewriter holds no
// state between calls and may be used concurrently.
type Rewriter struct {
	opts Options
	log  logrus.FieldLogger
}

// New returns a Rewriter for opts.
func New(opts Options) (*Rewriter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Rewriter{opts: opts, log: log}, nil
}

// Result is the outcome of a successful rewrite.
type Result struct {
	Output      string
	Occurrences []*Occurrence
}

// RemoveSwitches rewrites src with DefaultOptions.
func RemoveSwitches(src string) (string, error) {
	r, err := New(DefaultOptions())
	if err != nil {
		return "", err
	}
	res, err := r.Rewrite("input.js", src)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Locate parses src and returns its switch statements without rewriting
// them.
func (r *Rewriter) Locate(name, src string) ([]*Occurrence, error) {
	prog, err := r.parse(name, src)
	if err != nil {
		return nil, err
	}
	return Locate(prog)
}

// Rewrite replaces every switch statement in src. On error no output is
// returned. A program without switch statements is returned unchanged.
func (r *Rewriter) Rewrite(name, src string) (*Result, error) {
	prog, err := r.parse(name, src)
	if err != nil {
		return nil, err
	}
	occs, err := Locate(prog)
	if err != nil {
		return nil, err
	}
	r.log.WithField("file", name).Debugf("located %d switch statements", len(occs))
	if len(occs) == 0 {
		return &Result{Output: src}, nil
	}

	nm := newNamer(r.opts.Prefix, src, r.opts.RandomNames)
	for _, o := range occs {
		o.Binding = nm.next()
		if o.NeedsFlag {
			o.Flag = nm.next()
		}
		o.buf = newBuffer(src, o.Start, o.End)
	}
	root := newBuffer(src, 0, len(src))

	order := make([]*Occurrence, len(occs))
	copy(order, occs)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Start > order[j].Start })

	for i, o := range order {
		text, err := r.replacement(o, occs)
		if err != nil {
			return nil, err
		}
		o.State = Rewritten

		parent, err := enclosingCandidate(o, order[i+1:])
		if err != nil {
			return nil, err
		}
		target := root
		if parent != nil {
			if parent.Index != o.Parent {
				return nil, consistencyErrorf("line %d: enclosed by switch %d, walk found %d", o.Line, parent.Index, o.Parent)
			}
			target = parent.buf
		} else if o.Parent >= 0 {
			return nil, consistencyErrorf("line %d: enclosing switch %d was already finalized", o.Line, o.Parent)
		}
		if err := target.patch(o.Start, o.End, text); err != nil {
			return nil, err
		}

		where := "root"
		o.State = SplicedIntoRoot
		if parent != nil {
			where = "parent"
			o.State = MergedIntoParent
		}
		r.log.WithFields(logrus.Fields{
			"file":    name,
			"binding": o.Binding,
			"start":   o.Start,
			"end":     o.End,
			"target":  where,
		}).Debug("rewrote switch")
	}

	out := root.String()
	if err := r.check(name, out); err != nil {
		return nil, err
	}
	return &Result{Output: out, Occurrences: occs}, nil
}

func (r *Rewriter) parse(name, src string) (*jsast.Program, error) {
	prog, err := jsast.Parse(name, src, jsast.ParseOptions{Tolerant: r.opts.Tolerant})
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	return prog, nil
}

// replacement redirects the continue statements o owns and renders the
// wrapper for its current text.
func (r *Rewriter) replacement(o *Occurrence, occs []*Occurrence) (string, error) {
	for _, c := range o.Continues {
		if err := o.buf.patch(c.Start, c.End, continueText(o.Flag)); err != nil {
			return "", err
		}
	}
	sw, err := o.source()
	if err != nil {
		return "", err
	}
	flat := Flatten(sw.Clauses)
	w := Wrap(o.Binding, sw.Discriminant, BuildGuards(sw, flat, o.Binding), DefaultSuffix(flat))
	for _, c := range sw.Clauses {
		for _, d := range c.Decls {
			w.Decls = append(w.Decls, Stmt{Text: d})
		}
	}
	w.Flag = o.Flag
	if o.Flag != "" && o.ContinueParent >= 0 {
		w.ParentFlag = occs[o.ContinueParent].Flag
	}
	text, err := w.Render()
	if err != nil {
		return "", &RenderError{Err: errors.Wrapf(err, "switch at line %d", o.Line)}
	}
	return text, nil
}

// enclosingCandidate returns the first of the remaining occurrences whose
// span contains o. Remaining occurrences start at or before o, so the first
// match is the innermost one.
func enclosingCandidate(o *Occurrence, remaining []*Occurrence) (*Occurrence, error) {
	for _, c := range remaining {
		if c.Contains(o.Span) {
			return c, nil
		}
		if c.Overlaps(o.Span) {
			return nil, consistencyErrorf("switch at line %d partially overlaps switch at line %d", o.Line, c.Line)
		}
	}
	return nil, nil
}

// check parses the output back and makes sure no switch survived.
func (r *Rewriter) check(name, out string) error {
	prog, err := jsast.Parse(name, out, jsast.ParseOptions{Tolerant: r.opts.Tolerant})
	if err != nil {
		return &RenderError{Err: errors.Wrap(err, "output does not parse")}
	}
	if n := jsast.CountSwitches(prog.Program); n > 0 {
		return consistencyErrorf("%d switch statements survived", n)
	}
	return nil
}
