package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/takoeight0821/aviator/ast"
	"github.com/takoeight0821/aviator/config"
	"github.com/takoeight0821/aviator/driver"
	"github.com/takoeight0821/aviator/lexer"
	"github.com/takoeight0821/aviator/refs"
	"gopkg.in/yaml.v3"
)

// Runner parses one source per Run call and prints the result.
type Runner struct {
	Config config.Config
	Tokens bool // print tokens instead of the tree
	Check  bool // list references after the tree
	Logger *slog.Logger
	Out    io.Writer
}

func (r *Runner) Run(source string) error {
	if r.Tokens {
		tokens, err := lexer.Lex(source)
		if err != nil {
			return fmt.Errorf("lex: %w", err)
		}
		for _, tok := range tokens {
			fmt.Fprintln(r.Out, tok)
		}
		return nil
	}

	runner := driver.NewPassRunner(
		driver.WithProfile(r.Config.ParserProfile()),
		driver.WithLogger(r.Logger),
	)

	var collector *refs.Collector
	if r.Check {
		var opts []refs.Option
		if len(r.Config.Functions) > 0 {
			opts = append(opts, refs.WithKnownFunctions(r.Config.Functions...))
		}
		collector = refs.NewCollector(opts...)
		runner.AddPass(collector)
	}

	program, err := runner.RunSource(source)
	if err != nil {
		return err
	}

	if err := r.print(program); err != nil {
		return err
	}

	if collector != nil {
		fmt.Fprintf(r.Out, "variables: %s\n", strings.Join(collector.Variables(), ", "))
		fmt.Fprintf(r.Out, "functions: %s\n", strings.Join(collector.Functions(), ", "))
	}

	return nil
}

func (r *Runner) print(program []*ast.Statement) error {
	switch r.Config.Format {
	case "json":
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(program)
	case "yaml":
		enc := yaml.NewEncoder(r.Out)
		enc.SetIndent(2)
		if err := enc.Encode(program); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, stmt := range program {
			fmt.Fprintln(r.Out, stmt)
		}
		return nil
	}
}
