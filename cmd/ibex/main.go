package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/ibex"
)

// errFailed reports that at least one expression failed. The failures have
// already been logged.
var errFailed = errors.New("evaluation failed")

var errNaN = errors.New("result is not a number")

func main() {
	cmd := newRootCmd()
	cmd.SetArgs(exprArgs(cmd.Flags(), os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "ibex:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		path, in string
		given    []string
	)
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "ibex [flags] [--] [expression]",
		Short: "Evaluate floating-point expressions",
		Long: `Evaluate an expression given as the argument, or one expression per line
of standard input if there is no argument. With --in, the lines of the input
file are evaluated before the argument.

An argument beginning with - that is not a flag is taken as the expression,
so "ibex -12.5" works. Use -- to force it otherwise.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, path, given)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd.ErrOrStderr(), cfg.Level, cfg.Format)
			if err != nil {
				return err
			}
			r := &runner{
				out:  cmd.OutOrStdout(),
				log:  log,
				verb: cfg.Verb + "\n",
				echo: cfg.Echo,
				env:  ibex.NewEnv(),
			}
			if err := r.define(cfg.Given); err != nil {
				return err
			}
			src, done, err := input(in, len(args) == 0, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer done()
			if src != nil {
				err = r.lines(src)
				if err != nil && !errors.Is(err, errFailed) {
					return err
				}
			}
			if len(args) == 1 {
				if e := r.one(args[0]); e != nil {
					err = e
				}
			}
			return err
		},
	}
	flags := cmd.Flags()
	flags.String("fmt", "%g", "result formatting string")
	flags.StringArrayVar(&given, "given", nil, "name=value variable definition (any number of times)")
	flags.Bool("echo", false, "print the postfix form of each expression before its result")
	flags.String("log-level", "info", "log level")
	flags.String("log-format", "text", "log format, text or json")
	flags.StringVar(&in, "in", "", "input file, - for stdin (default stdin if no args given)")
	flags.StringVar(&path, "config", "", "config file (default ibex.{yaml,toml,json} if present)")
	if err := bindConfig(v, flags); err != nil {
		panic(err)
	}
	return cmd
}

// input opens the line-mode source: the named file, stdin for "-", or stdin
// when there is no expression argument. The returned func closes any opened
// file.
func input(name string, std bool, stdin io.Reader) (io.Reader, func(), error) {
	switch {
	case name != "" && name != "-":
		f, err := os.Open(name)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	case name == "-", std:
		return stdin, func() {}, nil
	}
	return nil, func() {}, nil
}

// exprArgs inserts "--" before a final argument that begins with - but is
// not a flag or a flag's value, so that expressions like -12.5 and --x reach
// the command as its argument.
func exprArgs(flags *pflag.FlagSet, args []string) []string {
	n := len(args)
	if n == 0 {
		return args
	}
	last := args[n-1]
	if len(last) < 2 || last[0] != '-' || isflag(flags, last) {
		return args
	}
	for _, a := range args[:n-1] {
		if a == "--" {
			return args
		}
	}
	if n >= 2 && takesValue(flags, args[n-2]) {
		return args
	}
	r := make([]string, 0, n+1)
	r = append(r, args[:n-1]...)
	return append(r, "--", last)
}

// isflag reports whether arg names a flag of flags or the help flag.
func isflag(flags *pflag.FlagSet, arg string) bool {
	switch arg {
	case "-h", "--help", "--":
		return true
	}
	if !strings.HasPrefix(arg, "--") {
		return false
	}
	name, _, _ := strings.Cut(arg[2:], "=")
	return flags.Lookup(name) != nil
}

// takesValue reports whether arg is a flag that consumes the next argument.
func takesValue(flags *pflag.FlagSet, arg string) bool {
	if !strings.HasPrefix(arg, "--") || strings.Contains(arg, "=") {
		return false
	}
	f := flags.Lookup(arg[2:])
	return f != nil && f.NoOptDefVal == ""
}

type runner struct {
	out  io.Writer
	log  *logrus.Logger
	verb string
	echo bool
	env  *ibex.Env
}

// define evaluates name=value definitions in order and sets each in the
// environment.
func (r *runner) define(defs []string) error {
	for _, s := range defs {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		name, text := strings.TrimSpace(d[0]), strings.TrimSpace(d[1])
		v, err := r.eval(text)
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		r.env.Set(name, v)
	}
	return nil
}

// one evaluates a single expression and prints its result.
func (r *runner) one(text string) error {
	if err := r.print(text); err != nil {
		return errFailed
	}
	return nil
}

// lines evaluates each non-blank line of in. Failed lines are skipped.
func (r *runner) lines(in io.Reader) error {
	failed := false
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if err := r.print(text); err != nil {
			failed = true
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if failed {
		return errFailed
	}
	return nil
}

func (r *runner) print(text string) error {
	p, v, err := r.run(text)
	if err != nil {
		return err
	}
	if r.echo {
		fmt.Fprintf(r.out, "%v : ", p)
	}
	fmt.Fprintf(r.out, r.verb, v)
	return nil
}

func (r *runner) eval(text string) (float64, error) {
	_, v, err := r.run(text)
	return v, err
}

// run compiles and evaluates text, logging each stage. Failures are logged
// before they are returned.
func (r *runner) run(text string) (*ibex.Program, float64, error) {
	entry := r.log.WithField("expr", text)
	if r.log.IsLevelEnabled(logrus.DebugLevel) {
		entry.WithField("stage", "lex").Debugf("tokens %v", ibex.Tokenize(text))
	}
	p, err := ibex.Compile(text)
	if err != nil {
		failure(entry.WithField("stage", "translate"), err)
		return nil, 0, err
	}
	entry.WithField("stage", "translate").Debugf("postfix %v", p)
	v, err := r.env.Eval(p)
	if err == nil && math.IsNaN(v) {
		err = errNaN
	}
	if err != nil {
		failure(entry.WithField("stage", "eval"), err)
		return nil, 0, err
	}
	entry.WithField("stage", "eval").Debugf("result %v", v)
	return p, v, nil
}

func failure(entry *logrus.Entry, err error) {
	var ie ibex.InputError
	if errors.As(err, &ie) {
		entry = entry.WithField("kind", ie.Kind().String())
	}
	entry.Error(err)
}
