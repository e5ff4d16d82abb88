package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/takoeight0821/aviator/token"
)

// AST

// Node is an expression tree node. The set of implementations is closed;
// use Fold for exhaustive consumers.
type Node interface {
	fmt.Stringer
	// Plate applies the given function to each child node.
	// If f returns an error, f also must return the original argument n.
	// It is similar to Visitor pattern.
	// FYI: https://hackage.haskell.org/package/lens-5.2.3/docs/Control-Lens-Plated.html
	Plate(error, func(Node, error) (Node, error)) (Node, error)
	node()
}

type Binary struct {
	Left  Node
	Op    token.Kind
	Right Node
}

func (b Binary) String() string {
	return parenthesize("binary", b.Op, b.Left, b.Right).String()
}

func (b *Binary) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	b.Left, err = f(b.Left, err)
	b.Right, err = f(b.Right, err)
	return b, err
}

func (*Binary) node() {}

var _ Node = &Binary{}

// Unary is a prefix operator application. Op is always token.LOGICNOT.
type Unary struct {
	Op       token.Kind
	Argument Node
}

func (u Unary) String() string {
	return parenthesize("unary", u.Op, u.Argument).String()
}

func (u *Unary) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	u.Argument, err = f(u.Argument, err)
	return u, err
}

func (*Unary) node() {}

var _ Node = &Unary{}

type Ternary struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

func (t Ternary) String() string {
	return parenthesize("ternary", t.Test, t.Consequent, t.Alternate).String()
}

func (t *Ternary) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	t.Test, err = f(t.Test, err)
	t.Consequent, err = f(t.Consequent, err)
	t.Alternate, err = f(t.Alternate, err)
	return t, err
}

func (*Ternary) node() {}

var _ Node = &Ternary{}

type String struct {
	Value string
}

func (s String) String() string {
	return parenthesize("string", atom(strconv.Quote(s.Value))).String()
}

func (s *String) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return s, err
}

func (*String) node() {}

var _ Node = &String{}

type Number struct {
	Value float64
}

func (n Number) String() string {
	return parenthesize("number", atom(formatNumber(n.Value))).String()
}

// formatNumber prints integral values without an exponent, e.g. 7330000
// rather than 7.33e+06.
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n *Number) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return n, err
}

func (*Number) node() {}

var _ Node = &Number{}

type Boolean struct {
	Value bool
}

func (b Boolean) String() string {
	return parenthesize("boolean", atom(strconv.FormatBool(b.Value))).String()
}

func (b *Boolean) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return b, err
}

func (*Boolean) node() {}

var _ Node = &Boolean{}

type Nil struct{}

func (Nil) String() string {
	return "(nil)"
}

func (n *Nil) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return n, err
}

func (*Nil) node() {}

var _ Node = &Nil{}

// Regex holds the raw pattern between the slashes, without any unescaping.
type Regex struct {
	Value string
}

func (r Regex) String() string {
	return parenthesize("regex", atom(strconv.Quote(r.Value))).String()
}

func (r *Regex) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return r, err
}

func (*Regex) node() {}

var _ Node = &Regex{}

type Ident struct {
	Name string
}

func (i Ident) String() string {
	return parenthesize("ident", atom(i.Name)).String()
}

func (i *Ident) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return i, err
}

func (*Ident) node() {}

var _ Node = &Ident{}

type Call struct {
	Name string
	Args []Node // in source order, never nil
}

func (c Call) String() string {
	return parenthesize("call", atom(c.Name), concat(c.Args)).String()
}

func (c *Call) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	for i, arg := range c.Args {
		c.Args[i], err = f(arg, err)
	}
	return c, err
}

func (*Call) node() {}

var _ Node = &Call{}

// Statement is one `;`-separated top-level expression of a program.
type Statement struct {
	Expr Node
}

func (s Statement) String() string {
	return s.Expr.String()
}

type atom string

func (a atom) String() string {
	return string(a)
}

// parenthesize takes a head string and a variadic number of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is parenthesized and separated by a space.
// If the head string is not empty, it is added at the beginning of the string.
func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat takes a slice of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is separated by a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for _, elem := range elems {
		// ignore empty string
		// e.g. concat({}) == ""
		str := elem.String()
		if str == "" {
			continue
		}
		if b.Len() != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}

// Traverse the [Node] in depth-first order.
// f is called for each node.
// If f returns an error, f also must return the original argument n.
// Traverse modifies each child before n.
func Traverse(n Node, f func(Node, error) (Node, error)) (Node, error) {
	n, err := n.Plate(nil, func(n Node, err error) (Node, error) {
		child, childErr := Traverse(n, f)
		if err != nil {
			return child, err
		}
		return child, childErr
	})
	return f(n, err)
}

func Children(n Node) []Node {
	var children []Node
	_, err := n.Plate(nil, func(n Node, _ error) (Node, error) {
		children = append(children, n)
		return n, nil
	})
	if err != nil {
		panic(fmt.Errorf("unexpected error: %w", err))
	}
	return children
}

// Universe returns n and all of its descendants in post-order.
func Universe(n Node) []Node {
	var nodes []Node
	_, err := Traverse(n, func(n Node, _ error) (Node, error) {
		nodes = append(nodes, n)
		return n, nil
	})
	if err != nil {
		panic(fmt.Errorf("unexpected error: %w", err))
	}
	return nodes
}
