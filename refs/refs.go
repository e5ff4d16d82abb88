// Package refs collects the variables and functions a program refers to,
// so a host knows what it has to bind before evaluation.
package refs

import (
	"fmt"

	"github.com/takoeight0821/aviator/ast"
	"github.com/takoeight0821/aviator/driver"
)

type Collector struct {
	known     map[string]struct{} // nil disables the check
	variables []string
	functions []string
	seen      map[string]struct{}
}

var _ driver.Pass = &Collector{}

type Option func(*Collector)

// WithKnownFunctions makes Run fail on calls to any other function name.
func WithKnownFunctions(names ...string) Option {
	return func(c *Collector) {
		if c.known == nil {
			c.known = make(map[string]struct{})
		}
		for _, name := range names {
			c.known[name] = struct{}{}
		}
	}
}

func NewCollector(opts ...Option) *Collector {
	c := &Collector{seen: make(map[string]struct{})}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collector) Name() string {
	return "refs.Collector"
}

func (c *Collector) Init([]*ast.Statement) error {
	c.variables = nil
	c.functions = nil
	c.seen = make(map[string]struct{})
	return nil
}

func (c *Collector) Run(program []*ast.Statement) ([]*ast.Statement, error) {
	for _, stmt := range program {
		_, err := ast.Traverse(stmt.Expr, func(n ast.Node, err error) (ast.Node, error) {
			if err != nil {
				return n, err
			}
			switch n := n.(type) {
			case *ast.Ident:
				c.add(&c.variables, "v:"+n.Name, n.Name)
			case *ast.Call:
				if c.known != nil {
					if _, ok := c.known[n.Name]; !ok {
						return n, UndefinedFunctionError{Name: n.Name}
					}
				}
				c.add(&c.functions, "f:"+n.Name, n.Name)
			}
			return n, nil
		})
		if err != nil {
			return program, err
		}
	}
	return program, nil
}

func (c *Collector) add(list *[]string, key, name string) {
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	*list = append(*list, name)
}

// Variables returns referenced identifiers, deduplicated, in the order the
// tree is visited (children before parents, left to right).
func (c *Collector) Variables() []string {
	return c.variables
}

// Functions returns called function names in visiting order.
func (c *Collector) Functions() []string {
	return c.functions
}

type UndefinedFunctionError struct {
	Name string
}

func (e UndefinedFunctionError) Error() string {
	return fmt.Sprintf("%s is not a known function", e.Name)
}
