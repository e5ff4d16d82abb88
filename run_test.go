package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/aviator/config"
	"github.com/takoeight0821/aviator/utils"
	"gopkg.in/yaml.v3"
)

func newRunner(cfg config.Config) (*Runner, *bytes.Buffer) {
	var out bytes.Buffer
	return &Runner{Config: cfg, Out: &out}, &out
}

func TestRunGolden(t *testing.T) {
	t.Parallel()
	testfiles, err := utils.FindSourceFiles("testdata")
	require.NoError(t, err)

	for _, testfile := range testfiles {
		r, out := newRunner(config.Default())
		require.NoError(t, RunFile(r, testfile))

		name := strings.TrimSuffix(filepath.Base(testfile), filepath.Ext(testfile))
		g := goldie.New(t, goldie.WithNameSuffix(".ast.golden"))
		g.Assert(t, name, out.Bytes())
	}
}

func TestRunTokens(t *testing.T) {
	t.Parallel()
	r, out := newRunner(config.Default())
	r.Tokens = true
	require.NoError(t, r.Run("a != 'b'"))

	want := `{Identifier, "a", 1, a}
{NotEqual, "!=", 1, <nil>}
{String, "'b'", 1, b}
{EOF, "", 1, <nil>}
`
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestRunJSON(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Format = "json"
	r, out := newRunner(cfg)
	require.NoError(t, r.Run("a == 1"))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "statement", got[0]["type"])
	expression := got[0]["expression"].(map[string]any)
	require.Equal(t, "Equal", expression["operator"])
}

func TestRunYAML(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Format = "yaml"
	r, out := newRunner(cfg)
	require.NoError(t, r.Run("ok"))
	require.True(t, strings.HasPrefix(out.String(), "- type: statement\n"), out.String())

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	want := []map[string]any{{
		"type":       "statement",
		"expression": map[string]any{"type": "identifier", "name": "ok"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCheck(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Functions = []string{"contains"}
	r, out := newRunner(cfg)
	r.Check = true

	require.NoError(t, r.Run(`contains(tags, "x") && level > 3`))
	require.Equal(t, `(binary LogicAnd (call contains (ident tags) (string "x")) (binary GreaterThan (ident level) (number 3)))
variables: tags, level
functions: contains
`, out.String())

	require.ErrorContains(t, r.Run(`other(1)`), "other is not a known function")
}

func TestRunFileMissing(t *testing.T) {
	t.Parallel()
	r, _ := newRunner(config.Default())
	err := RunFile(r, filepath.Join(t.TempDir(), "none.av"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
