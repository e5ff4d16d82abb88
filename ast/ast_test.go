package ast_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/aviator/ast"
	"github.com/takoeight0821/aviator/parser"
	"github.com/takoeight0821/aviator/token"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, source string) ast.Node {
	t.Helper()
	node, err := parser.New(source).ParseExpr()
	require.NoError(t, err)
	return node
}

func TestString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		node ast.Node
		want string
	}{
		{&ast.Number{Value: 7330000}, "(number 7330000)"},
		{&ast.Number{Value: 0.25}, "(number 0.25)"},
		{&ast.Number{Value: 1e300}, "(number 1e+300)"},
		{&ast.String{Value: "a\"b"}, `(string "a\"b")`},
		{&ast.Nil{}, "(nil)"},
		{&ast.Call{Name: "now", Args: []ast.Node{}}, "(call now)"},
		{&ast.Unary{Op: token.LOGICNOT, Argument: &ast.Boolean{Value: false}}, "(unary LogicNot (boolean false))"},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()
	node := parse(t, `a==1&&!contains(tags,"vip")`)
	got, err := json.Marshal(node)
	require.NoError(t, err)

	want := `{"type":"binary-expression",` +
		`"left":{"type":"binary-expression","left":{"type":"identifier","name":"a"},"operator":"Equal","right":{"type":"number-literal","value":1}},` +
		`"operator":"LogicAnd",` +
		`"right":{"type":"unary-expression","operator":"LogicNot","argument":{"type":"function-call","name":"contains","arguments":[{"type":"identifier","name":"tags"},{"type":"string-literal","value":"vip"}]}}}`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("MarshalJSON mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalJSONStatements(t *testing.T) {
	t.Parallel()
	program, err := parser.New("x ? nil : /a/; f()").ParseProgram()
	require.NoError(t, err)
	got, err := json.Marshal(program)
	require.NoError(t, err)

	want := `[{"type":"statement","expression":{"type":"ternary-expression","test":{"type":"identifier","name":"x"},"consequent":{"type":"nil-literal"},"alternate":{"type":"regex-literal","value":"a"}}},` +
		`{"type":"statement","expression":{"type":"function-call","name":"f","arguments":[]}}]`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("MarshalJSON mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()
	node := parse(t, `f(x, 'y') != true`)
	out, err := yaml.Marshal(node)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "type: binary-expression\n"), string(out))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(out, &got))
	want := map[string]any{
		"type": "binary-expression",
		"left": map[string]any{
			"type": "function-call",
			"name": "f",
			"arguments": []any{
				map[string]any{"type": "identifier", "name": "x"},
				map[string]any{"type": "string-literal", "value": "y"},
			},
		},
		"operator": "NotEqual",
		"right":    map[string]any{"type": "boolean-literal", "value": true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MarshalYAML mismatch (-want +got):\n%s", diff)
	}
}

func TestUniverse(t *testing.T) {
	t.Parallel()
	node := parse(t, "a + f(b, c) * 2")
	var names []string
	for _, n := range ast.Universe(node) {
		switch n := n.(type) {
		case *ast.Ident:
			names = append(names, n.Name)
		case *ast.Call:
			names = append(names, n.Name+"()")
		}
	}
	require.Equal(t, []string{"a", "b", "c", "f()"}, names)
	require.Len(t, ast.Children(node), 2)
}

func TestTraverseRewrites(t *testing.T) {
	t.Parallel()
	node := parse(t, "a == b")
	renamed, err := ast.Traverse(node, func(n ast.Node, err error) (ast.Node, error) {
		if id, ok := n.(*ast.Ident); ok {
			return &ast.Ident{Name: strings.ToUpper(id.Name)}, err
		}
		return n, err
	})
	require.NoError(t, err)
	require.Equal(t, "(binary Equal (ident A) (ident B))", renamed.String())
}

// depth counts the height of a tree through the exhaustive fold.
type depth struct{}

func (depth) Binary(l int, _ token.Kind, r int) int { return 1 + max(l, r) }
func (depth) Unary(_ token.Kind, a int) int         { return 1 + a }
func (depth) Ternary(t, c, a int) int               { return 1 + max(t, c, a) }
func (depth) String(string) int                     { return 1 }
func (depth) Number(float64) int                    { return 1 }
func (depth) Boolean(bool) int                      { return 1 }
func (depth) Nil() int                              { return 1 }
func (depth) Regex(string) int                      { return 1 }
func (depth) Ident(string) int                      { return 1 }
func (depth) Call(_ string, args []int) int {
	d := 0
	for _, a := range args {
		d = max(d, a)
	}
	return 1 + d
}

func TestFold(t *testing.T) {
	t.Parallel()
	require.Equal(t, 1, ast.Fold[int](parse(t, "a"), depth{}))
	require.Equal(t, 3, ast.Fold[int](parse(t, "a || b && c"), depth{}))
	require.Equal(t, 4, ast.Fold[int](parse(t, "x ? f(!y) : 1"), depth{}))
}

func TestClone(t *testing.T) {
	t.Parallel()
	node := parse(t, `x ? f(!y, nil, /r/) : 1 - 'z'`)
	clone := ast.Clone(node)
	if diff := cmp.Diff(node, clone); diff != "" {
		t.Errorf("Clone mismatch (-want +got):\n%s", diff)
	}
	clone.(*ast.Ternary).Test = &ast.Ident{Name: "other"}
	require.Equal(t, "(ident x)", node.(*ast.Ternary).Test.String())
}
