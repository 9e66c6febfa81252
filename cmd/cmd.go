package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rubiojr/deswitch/fixture"
	"github.com/rubiojr/deswitch/rewrite"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the deswitch CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "deswitch",
		Usage:                  "Rewrite JavaScript switch statements into equivalent code",
		Version:                version,
		UseShortOptionHandling: true,
		Flags:                  globalFlags(),
		Before:                 setupLogging,
		// Allow `deswitch file.js` as shorthand for `deswitch rewrite file.js`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 && strings.HasSuffix(cmd.Args().First(), ".js") {
				return rewriteAction(ctx, cmd)
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "rewrite",
				Usage:     "Print a program with its switch statements replaced",
				ArgsUsage: "<file.js>...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the result to this file instead of stdout",
					},
				},
				Action: rewriteAction,
			},
			{
				Name:      "locate",
				Usage:     "List the switch statements of a program",
				ArgsUsage: "<file.js>...",
				Action:    locateAction,
			},
			{
				Name:      "verify",
				Usage:     "Rewrite fixture programs and compare their output",
				ArgsUsage: "[file.js | directory]...",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "Fixtures verified in parallel",
						Value:   1,
					},
					&cli.BoolFlag{
						Name:    "no-color",
						Aliases: []string{"C"},
						Usage:   "Disable ANSI color output",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Maximum run time of a single program",
						Value: fixture.DefaultTimeout,
					},
				},
				Action: verifyAction,
			},
			{
				Name:      "check",
				Usage:     "Fail when the switch keyword appears in code",
				ArgsUsage: "<file.js>...",
				Action:    checkAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "prefix",
			Usage:   "Prefix of generated identifiers",
			Value:   rewrite.DefaultPrefix,
			Sources: cli.EnvVars("DESWITCH_PREFIX"),
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Reject regular expressions the runtime cannot compile",
		},
		&cli.BoolFlag{
			Name:  "random-names",
			Usage: "Use random identifiers instead of numbered ones",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log every rewritten switch",
			Sources: cli.EnvVars("DESWITCH_DEBUG"),
		},
	}
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:    os.Getenv("NO_COLOR") != "",
		DisableTimestamp: true,
	})
	if cmd.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return ctx, nil
}

func newRewriter(cmd *cli.Command) (*rewrite.Rewriter, error) {
	return rewrite.New(rewrite.Options{
		Tolerant:    !cmd.Bool("strict"),
		Prefix:      cmd.String("prefix"),
		RandomNames: cmd.Bool("random-names"),
	})
}

func rewriteAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: deswitch rewrite [-o output] <file.js>...")
	}
	output := cmd.String("output")
	if output != "" && cmd.NArg() > 1 {
		return fmt.Errorf("--output accepts a single input file")
	}
	r, err := newRewriter(cmd)
	if err != nil {
		return err
	}
	pass := rewrite.Chain(r.Pass(), rewrite.ValidatePass(!cmd.Bool("strict")))

	for _, path := range cmd.Args().Slice() {
		out, err := rewriteFile(pass, path)
		if err != nil {
			return err
		}
		if output != "" {
			if err := os.WriteFile(output, []byte(out), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			continue
		}
		fmt.Print(out)
	}
	return nil
}

// rewriteFile applies pass to the contents of path.
func rewriteFile(pass rewrite.Pass, path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return pass.Apply(path, string(src))
}

func locateAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: deswitch locate <file.js>...")
	}
	r, err := newRewriter(cmd)
	if err != nil {
		return err
	}
	for _, path := range cmd.Args().Slice() {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		occs, err := r.Locate(path, string(src))
		if err != nil {
			return err
		}
		printOccurrences(os.Stdout, path, occs)
	}
	return nil
}

func printOccurrences(w io.Writer, path string, occs []*rewrite.Occurrence) {
	for _, o := range occs {
		parent := "-"
		if o.Parent >= 0 {
			parent = fmt.Sprintf("#%d", o.Parent)
		}
		fmt.Fprintf(w, "%s:%d: #%d [%d,%d) parent %s, %d clauses, %d continues\n",
			path, o.Line, o.Index, o.Start, o.End, parent, len(o.Clauses), len(o.Continues))
	}
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: deswitch check <file.js>...")
	}
	var merr *multierror.Error
	for _, path := range cmd.Args().Slice() {
		src, err := os.ReadFile(path)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if err := checkSource(path, string(src)); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

// checkSource reports the keyword in code first, then anywhere in the text.
func checkSource(path, src string) error {
	if err := rewrite.CheckKeyword(path, src); err != nil {
		return err
	}
	if strings.Contains(src, "switch") {
		return fmt.Errorf("%s: switch appears in a string or comment", path)
	}
	return nil
}

// collectFixtures expands directories into the .js files they contain.
func collectFixtures(targets []string) ([]*fixture.Fixture, error) {
	var fixtures []*fixture.Fixture
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", target, err)
		}
		if info.IsDir() {
			fs, err := fixture.LoadDir(target)
			if err != nil {
				return nil, err
			}
			fixtures = append(fixtures, fs...)
			continue
		}
		f, err := fixture.Load(target)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

func verifyAction(ctx context.Context, cmd *cli.Command) error {
	targets := cmd.Args().Slice()
	if len(targets) == 0 {
		targets = []string{"."}
	}

	noColor := cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stderr.Fd()))
	colorOK, colorFail, colorReset := "\033[32m", "\033[31m", "\033[0m"
	if noColor {
		colorOK, colorFail, colorReset = "", "", ""
	}

	fixtures, err := collectFixtures(targets)
	if err != nil {
		return err
	}
	if len(fixtures) == 0 {
		return fmt.Errorf("no .js fixtures found")
	}

	r, err := newRewriter(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	passed, failed := 0, 0
	err = fixture.VerifyAll(ctx, r, fixtures, int(cmd.Int("jobs")), cmd.Duration("timeout"), func(res fixture.Result) {
		name := res.Fixture.Name
		if res.Fixture.Path != "" {
			name = res.Fixture.Path
		}
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%sFAIL%s %s\n%s\n", colorFail, colorReset, name, res.Err)
			return
		}
		passed++
		fmt.Fprintf(os.Stderr, "%sok%s   %s\n", colorOK, colorReset, name)
	})

	elapsed := time.Since(start).Round(time.Millisecond)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "\n%d fixtures, %d passed, %s%d failed%s (%s)\n",
			len(fixtures), passed, colorFail, failed, colorReset, elapsed)
		return fmt.Errorf("%d of %d fixtures failed", failed, len(fixtures))
	}
	fmt.Fprintf(os.Stderr, "\n%d fixtures, %s%d passed%s, 0 failed (%s)\n",
		len(fixtures), colorOK, passed, colorReset, elapsed)
	return err
}
