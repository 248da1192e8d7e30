package internal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// IPrinter printer interface
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	Fprintln(w io.Writer, a ...interface{}) (n int, err error)
}

// DefaultMaxCallDepth is the number of nested calls allowed before a run is
// stopped with a stack overflow
const DefaultMaxCallDepth = 2048

// Option configures an Interpreter
type Option func(*Interpreter)

// WithMaxCallDepth sets the maximum number of nested calls
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.exec.maxDepth = depth
		}
	}
}

// WithLogger sets the logger used for debug and trace events
func WithLogger(logger *logrus.Logger) Option {
	return func(i *Interpreter) {
		i.log = logger.WithField("component", "interpreter")
		i.exec.log = i.log
	}
}

// WithInput sets where read() takes its lines from
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) {
		i.exec.input = bufio.NewReader(r)
	}
}

// WithEcho makes top level expression statements print their value
func WithEcho(echo bool) Option {
	return func(i *Interpreter) {
		i.exec.echo = echo
	}
}

// Interpreter runs programs against a set of globals that persists between
// runs
type Interpreter struct {
	printer IPrinter
	log     *logrus.Entry
	exec    *exec
	nextID  int
}

// NewInterpreter returns an interpreter with the built-in library installed
func NewInterpreter(p IPrinter, opts ...Option) *Interpreter {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	log := logger.WithField("component", "interpreter")

	globals := newEnv(nil)
	i := &Interpreter{
		printer: p,
		log:     log,
		exec: &exec{
			globals:  globals,
			env:      globals,
			locals:   make(map[int]int),
			printer:  p,
			input:    bufio.NewReader(os.Stdin),
			log:      log,
			maxDepth: DefaultMaxCallDepth,
		},
	}
	defineGlobals(i.exec)
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run scans, parses, resolves and executes source. The error is a
// *StaticError, a *RuntimeError, a *ThrowSignal or a *FatalError.
func (i *Interpreter) Run(absPath, source string) error {
	state, err := i.compile(absPath, source)
	if err != nil {
		return err
	}

	start := time.Now()
	i.exec.state = state
	i.exec.env = i.exec.globals
	err = i.exec.interpret(state.stmts)
	i.log.WithField("elapsed", time.Since(start)).Debug("execute")
	if err != nil {
		i.log.WithError(err).Debug("uncaught error")
	}
	return err
}

// compile runs every phase that comes before execution and merges the
// resolved locals into the interpreter's table
func (i *Interpreter) compile(absPath, source string) (*interpreterState, error) {
	state := newInterpreterState(absPath, source)

	start := time.Now()
	lex := &lexer{line: 1, state: state}
	lex.scan()
	i.log.WithFields(logrus.Fields{
		"tokens":  len(state.tokens),
		"elapsed": time.Since(start),
	}).Debug("scan")
	if !state.Valid() {
		return nil, state.staticError()
	}

	start = time.Now()
	p := &parser{state: state, nextID: &i.nextID}
	p.parse()
	i.log.WithFields(logrus.Fields{
		"stmts":   len(state.stmts),
		"elapsed": time.Since(start),
	}).Debug("parse")
	if !state.Valid() {
		return nil, state.staticError()
	}

	start = time.Now()
	locals := newResolver(state).resolve(state.stmts)
	i.log.WithFields(logrus.Fields{
		"locals":  len(locals),
		"elapsed": time.Since(start),
	}).Debug("resolve")
	if !state.Valid() {
		return nil, state.staticError()
	}

	for id, distance := range locals {
		i.exec.locals[id] = distance
	}
	return state, nil
}

// Report writes err on the printer's error channel
func (i *Interpreter) Report(err error) {
	report(i.printer, err)
}

func report(p IPrinter, err error) {
	var static *StaticError
	var runtimeErr *RuntimeError
	var thrown *ThrowSignal
	var fatal *FatalError
	switch {
	case errors.As(err, &static):
		for _, e := range static.errors {
			p.Fprintf(os.Stderr, "Error on line %d\n\t%s\n", e.line, e.err)
		}
	case errors.As(err, &runtimeErr):
		p.Fprintf(os.Stderr, "Runtime Error on line %d\n\t%s\n", runtimeErr.Line(), runtimeErr.err)
		for _, frame := range runtimeErr.trace {
			p.Fprintf(os.Stderr, "\t%s\n", frame)
		}
	case errors.As(err, &thrown):
		p.Fprintf(os.Stderr, "Runtime Error on line %d\n\t%s\n", thrown.token.line, thrown)
	case errors.As(err, &fatal):
		p.Fprintf(os.Stderr, "Fatal Error on line %d\n\t%s\n", fatal.token.line, fatal)
	default:
		p.Fprintln(os.Stderr, err)
	}
}

// RunSourceWithPrinter runs source code on a fresh interpreter instance and
// reports whether it finished without errors
func RunSourceWithPrinter(absPath, source string, p IPrinter) bool {
	i := NewInterpreter(p)
	if err := i.Run(absPath, source); err != nil {
		i.Report(err)
		return false
	}
	return true
}

// ExitCode maps the error returned by Run to a process exit status
func ExitCode(err error) int {
	var static *StaticError
	var runtimeErr *RuntimeError
	var thrown *ThrowSignal
	var fatal *FatalError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &static):
		return 65
	case errors.As(err, &runtimeErr), errors.As(err, &thrown):
		return 70
	case errors.As(err, &fatal):
		return 71
	}
	return 1
}

// Tokens scans source and returns one line per token
func Tokens(source string) ([]string, error) {
	state := newInterpreterState("", source)
	lex := &lexer{line: 1, state: state}
	lex.scan()
	if !state.Valid() {
		return nil, state.staticError()
	}
	out := make([]string, len(state.tokens))
	for i, tk := range state.tokens {
		out[i] = tk.String()
	}
	return out, nil
}

// Check scans and parses source without running it
func Check(source string) error {
	state := newInterpreterState("", source)
	(&lexer{line: 1, state: state}).scan()
	if !state.Valid() {
		return state.staticError()
	}
	nextID := 0
	(&parser{state: state, nextID: &nextID}).parse()
	if !state.Valid() {
		return state.staticError()
	}
	return nil
}

// PrintTree parses and resolves source and returns its tree as S-expressions
func PrintTree(absPath, source string) (string, error) {
	i := NewInterpreter(nopPrinter{})
	state, err := i.compile(absPath, source)
	if err != nil {
		return "", err
	}
	return state.PrintTree(), nil
}

type nopPrinter struct{}

func (nopPrinter) Println(a ...interface{}) (int, error) { return 0, nil }

func (nopPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (int, error) {
	return 0, nil
}

func (nopPrinter) Fprintln(w io.Writer, a ...interface{}) (int, error) { return 0, nil }

// IsIncomplete reports whether err only complains about input that ended
// too early, which the REPL uses to ask for another line
func IsIncomplete(err error) bool {
	var static *StaticError
	if !errors.As(err, &static) {
		return false
	}
	for _, e := range static.errors {
		switch {
		case errors.Is(e.err, errUnclosedString), errors.Is(e.err, errUnclosedComment),
			errors.Is(e.err, errExpectedClosingCurlyBrace):
		default:
			return false
		}
	}
	return true
}
