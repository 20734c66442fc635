// Package cli implements the scanfmt command.
//
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/db47h/scanfmt"
	"github.com/db47h/scanfmt/pattern"
	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes.
//
const (
	ExitOK    = 0 // all lines scanned
	ExitFail  = 1 // some line did not match the pattern
	ExitUsage = 2 // invalid options or pattern
)

// Options are the command line options. They can also be set from an INI file
// given by --config, in the [Application Options] section. Environment
// variables and flags override the file.
//
type Options struct {
	Pattern    string `short:"p" long:"pattern" env:"SCANFMT_PATTERN" description:"Scan pattern" value-name:"PATTERN"`
	Types      string `short:"t" long:"types" env:"SCANFMT_TYPES" description:"Comma separated list of argument types" value-name:"TYPES"`
	Names      string `short:"n" long:"names" description:"Comma separated list of argument names (default: anonymous)" value-name:"NAMES"`
	Format     string `short:"o" long:"format" choice:"table" choice:"jsonl" choice:"yaml" description:"Output format (default: table)"`
	Jobs       int    `short:"j" long:"jobs" description:"Number of lines scanned concurrently (default: number of CPUs)"`
	SkipErrors bool   `long:"skip-errors" description:"Report lines that do not match and go on"`
	Verbose    bool   `short:"v" long:"verbose" description:"Log each scan step"`
	NoColor    bool   `long:"no-color" description:"Disable colored error messages"`
	Config     string `long:"config" description:"INI configuration file" value-name:"FILE"`
}

// line is one line of input.
//
type line struct {
	source string
	num    int
	text   string
}

// result is the outcome of scanning one line.
//
type result struct {
	rec *record
	err error
}

type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	fs             afero.Fs
	opts           Options
	log            *zap.Logger
	errColor       *color.Color
	srcColor       *color.Color
}

// Run runs the scanfmt command with the given arguments (not including the
// program name) and returns its exit code. Input files are opened on fs.
//
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer, fs afero.Fs) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, fs: fs}
	files, code, ok := a.parseOptions(args)
	if !ok {
		return code
	}
	a.errColor = color.New(color.FgRed, color.Bold)
	a.srcColor = color.New(color.Bold)
	if a.opts.NoColor {
		a.errColor.DisableColor()
		a.srcColor.DisableColor()
	}
	a.log = newLogger(stderr, a.opts.Verbose)
	defer func() { _ = a.log.Sync() }()

	return a.run(files)
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	level := lo.Ternary(verbose, zapcore.DebugLevel, zapcore.WarnLevel)
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

// parseOptions parses the command line, and the configuration file if any. It
// returns the positional arguments. If ok is false, the command must exit with
// the returned code.
//
func (a *app) parseOptions(args []string) (files []string, code int, ok bool) {
	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "scanfmt"
	parser.Usage = "[OPTIONS] [FILE...]"
	files, err := parser.ParseArgs(args)
	if err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprintln(a.stdout, err)
			return nil, ExitOK, false
		}
		fmt.Fprintln(a.stderr, err)
		return nil, ExitUsage, false
	}
	if a.opts.Config == "" {
		return files, ExitOK, true
	}

	// load the file, then parse the command line again on top of it
	var opts Options
	f, err := a.fs.Open(a.opts.Config)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return nil, ExitUsage, false
	}
	defer f.Close()
	if err := flags.NewIniParser(flags.NewParser(&opts, flags.None)).Parse(f); err != nil {
		fmt.Fprintf(a.stderr, "%s: %v\n", a.opts.Config, err)
		return nil, ExitUsage, false
	}
	if files, err = flags.NewParser(&opts, flags.PassDoubleDash).ParseArgs(args); err != nil {
		fmt.Fprintln(a.stderr, err)
		return nil, ExitUsage, false
	}
	a.opts = opts
	return files, ExitOK, true
}

func (a *app) errorf(format string, args ...any) {
	a.errColor.Fprint(a.stderr, "error: ")
	fmt.Fprintf(a.stderr, format+"\n", args...)
}

func (a *app) run(files []string) int {
	if a.opts.Pattern == "" {
		a.errorf("no pattern given; use --pattern or set SCANFMT_PATTERN")
		return ExitUsage
	}
	decs, err := parseTypes(a.opts.Types)
	if err != nil {
		a.errorf("%v", err)
		return ExitUsage
	}
	names := splitList(a.opts.Names)
	if names == nil {
		names = make([]string, len(decs))
	}
	if len(names) != len(decs) {
		a.errorf("%d names for %d types", len(names), len(decs))
		return ExitUsage
	}

	plan, err := scanfmt.Compile(a.opts.Pattern, names...)
	if err != nil {
		a.compileError(err)
		return ExitUsage
	}
	sc, err := scanfmt.NewScanner(plan, decs, scanfmt.WithLogger(a.log))
	if err != nil {
		a.compileError(err)
		return ExitUsage
	}
	out, err := newWriter(a.opts.Format, a.stdout, lo.Times(plan.NumArgs(), plan.ArgName))
	if err != nil {
		a.errorf("%v", err)
		return ExitUsage
	}

	lines, err := a.readLines(files)
	if err != nil {
		a.errorf("%v", err)
		return ExitFail
	}
	a.log.Debug("input read", zap.Int("lines", len(lines)), zap.Int("files", len(files)))

	jobs := a.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := iter.Mapper[line, result]{MaxGoroutines: jobs}.Map(lines, func(l *line) result {
		vals, err := sc.Scan(l.text)
		if err != nil {
			return result{err: err}
		}
		return result{rec: &record{Source: l.source, Line: l.num, Values: vals}}
	})

	code := ExitOK
	for i, r := range results {
		if r.err != nil {
			a.scanError(&lines[i], r.err)
			code = ExitFail
			if !a.opts.SkipErrors {
				break
			}
			continue
		}
		if err := out.Write(r.rec); err != nil {
			a.errorf("%s:%d: %v", lines[i].source, lines[i].num, err)
			code = ExitFail
			if !a.opts.SkipErrors {
				break
			}
		}
	}
	if err := out.Flush(); err != nil {
		a.errorf("%v", err)
		return ExitFail
	}
	return code
}

// compileError reports pattern and argument errors. Syntax errors are shown
// with a caret under the offending character.
//
func (a *app) compileError(err error) {
	var pe *pattern.Error
	if errors.As(err, &pe) {
		a.errorf("%v", pe)
		fmt.Fprintln(a.stderr, pattern.Caret(a.opts.Pattern, pe.Pos))
		return
	}
	for _, e := range multierr.Errors(err) {
		a.errorf("%v", e)
	}
}

// scanError reports a line that does not match, with a caret at the offset of
// the failing step.
//
func (a *app) scanError(l *line, err error) {
	a.srcColor.Fprintf(a.stderr, "%s:%d: ", l.source, l.num)
	a.errorf("%v", err)
	var se *scanfmt.ScanError
	if errors.As(err, &se) {
		fmt.Fprintln(a.stderr, pattern.Caret(l.text, pattern.Pos(se.Offset)))
	}
}

// readLines reads all input lines, from files or from stdin if there are
// none. The name "-" also stands for stdin.
//
func (a *app) readLines(files []string) ([]line, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	var (
		lines []line
		errs  error
	)
	for _, name := range files {
		var r io.Reader = a.stdin
		if name != "-" {
			f, err := a.fs.Open(name)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			r = f
			defer f.Close()
		}
		s := bufio.NewScanner(r)
		s.Buffer(nil, 1<<20)
		for n := 1; s.Scan(); n++ {
			lines = append(lines, line{source: name, num: n, text: strings.TrimSuffix(s.Text(), "\r")})
		}
		if err := s.Err(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return lines, errs
}
