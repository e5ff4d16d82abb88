package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/peterh/liner"
	"github.com/takoeight0821/aviator/config"
)

func main() {
	const (
		inputUsage = "input file path"
		exprUsage  = "expression to parse"
	)
	var (
		inputPath  string
		exprSource string
		configPath string
		format     string
		profile    string
		tokens     bool
		check      bool
		verbose    bool
	)
	flag.StringVar(&inputPath, "input", "", inputUsage)
	flag.StringVar(&inputPath, "i", "", inputUsage+" (shorthand)")
	flag.StringVar(&exprSource, "e", "", exprUsage)
	flag.StringVar(&configPath, "config", "", "config file path (default: $XDG_CONFIG_HOME/aviator/config.yaml)")
	flag.StringVar(&format, "format", "", "output format: sexpr, json or yaml")
	flag.StringVar(&profile, "profile", "", "parser profile: full or expr")
	flag.BoolVar(&tokens, "tokens", false, "print the token stream instead of the tree")
	flag.BoolVar(&check, "check", false, "list referenced variables and functions")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")

	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if format != "" {
		cfg.Format = format
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	r := &Runner{Config: cfg, Tokens: tokens, Check: check, Logger: logger, Out: os.Stdout}

	switch {
	case exprSource != "":
		err = r.Run(exprSource)
	case inputPath != "":
		err = RunFile(r, inputPath)
	default:
		err = RunPrompt(r)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.FromFile(path)
	}
	path, err := config.Path()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}

func RunPrompt(r *Runner) error {
	history := r.Config.History
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		input, err := line.Prompt("> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line.AppendHistory(input)
		if err := r.Run(input); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func RunFile(r *Runner, path string) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return r.Run(string(bytes))
}
