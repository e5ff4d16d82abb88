package driver

import (
	"fmt"
	"log/slog"

	"github.com/takoeight0821/aviator/ast"
	"github.com/takoeight0821/aviator/parser"
)

// Pass inspects a parsed program. Init sees the whole program before any
// Run call.
type Pass interface {
	Name() string
	Init([]*ast.Statement) error
	Run([]*ast.Statement) ([]*ast.Statement, error)
}

type PassRunner struct {
	passes  []Pass
	profile parser.Profile
	logger  *slog.Logger
}

type Option func(*PassRunner)

func WithProfile(profile parser.Profile) Option {
	return func(r *PassRunner) {
		r.profile = profile
	}
}

// WithLogger sets the logger used for pass execution. A nil logger
// disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *PassRunner) {
		r.logger = logger
	}
}

func NewPassRunner(opts ...Option) *PassRunner {
	r := &PassRunner{profile: parser.Full}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddPass adds a pass to the end of the pass list.
func (r *PassRunner) AddPass(pass Pass) {
	r.passes = append(r.passes, pass)
}

// Run executes passes in order.
// If an error occurs, it stops the execution and returns the current program.
func (r *PassRunner) Run(program []*ast.Statement) ([]*ast.Statement, error) {
	for _, pass := range r.passes {
		r.debug("pass starting", slog.String("pass", pass.Name()), slog.Int("statements", len(program)))
		err := pass.Init(program)
		if err != nil {
			r.debug("pass init failed", slog.String("pass", pass.Name()), slog.String("error", err.Error()))
			return program, fmt.Errorf("init: %w", err)
		}
		program, err = pass.Run(program)
		if err != nil {
			r.debug("pass failed", slog.String("pass", pass.Name()), slog.String("error", err.Error()))
			return program, fmt.Errorf("run: %w", err)
		}
	}

	return program, nil
}

// Parse parses the source with the configured profile. The expression-only
// profile yields a program of exactly one statement.
func (r *PassRunner) Parse(source string) ([]*ast.Statement, error) {
	p := parser.New(source, parser.WithProfile(r.profile))
	if r.profile != parser.Full {
		expr, err := p.ParseExpr()
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		return []*ast.Statement{{Expr: expr}}, nil
	}

	program, err := p.ParseProgram()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	r.debug("parsed", slog.String("profile", r.profile.String()), slog.Int("statements", len(program)))

	return program, nil
}

// RunSource parses the source code and executes passes in order.
func (r *PassRunner) RunSource(source string) ([]*ast.Statement, error) {
	program, err := r.Parse(source)
	if err != nil {
		return nil, err
	}

	return r.Run(program)
}

func (r *PassRunner) debug(msg string, attrs ...any) {
	if r.logger == nil {
		return
	}
	r.logger.Debug(msg, attrs...)
}
