package ast

import (
	"log"

	"github.com/takoeight0821/aviator/token"
)

// Repr is a final-tagless view of the expression tree. Implementing it
// forces a consumer to handle every node variant.
type Repr[T any] interface {
	Binary(left T, op token.Kind, right T) T
	Unary(op token.Kind, argument T) T
	Ternary(test T, consequent T, alternate T) T
	String(value string) T
	Number(value float64) T
	Boolean(value bool) T
	Nil() T
	Regex(value string) T
	Ident(name string) T
	Call(name string, args []T) T
}

// Fold interprets n bottom-up with r.
func Fold[T any](n Node, r Repr[T]) T {
	switch n := n.(type) {
	case *Binary:
		return r.Binary(Fold(n.Left, r), n.Op, Fold(n.Right, r))
	case *Unary:
		return r.Unary(n.Op, Fold(n.Argument, r))
	case *Ternary:
		return r.Ternary(Fold(n.Test, r), Fold(n.Consequent, r), Fold(n.Alternate, r))
	case *String:
		return r.String(n.Value)
	case *Number:
		return r.Number(n.Value)
	case *Boolean:
		return r.Boolean(n.Value)
	case *Nil:
		return r.Nil()
	case *Regex:
		return r.Regex(n.Value)
	case *Ident:
		return r.Ident(n.Name)
	case *Call:
		args := make([]T, len(n.Args))
		for i, arg := range n.Args {
			args[i] = Fold(arg, r)
		}
		return r.Call(n.Name, args)
	default:
		log.Panicf("invalid node %v", n)
	}
	panic("unreachable")
}

// Builder rebuilds the tree it folds over.
type Builder struct{}

var _ Repr[Node] = Builder{}

func (b Builder) Binary(left Node, op token.Kind, right Node) Node {
	return &Binary{Left: left, Op: op, Right: right}
}

func (b Builder) Unary(op token.Kind, argument Node) Node {
	return &Unary{Op: op, Argument: argument}
}

func (b Builder) Ternary(test Node, consequent Node, alternate Node) Node {
	return &Ternary{Test: test, Consequent: consequent, Alternate: alternate}
}

func (b Builder) String(value string) Node {
	return &String{Value: value}
}

func (b Builder) Number(value float64) Node {
	return &Number{Value: value}
}

func (b Builder) Boolean(value bool) Node {
	return &Boolean{Value: value}
}

func (b Builder) Nil() Node {
	return &Nil{}
}

func (b Builder) Regex(value string) Node {
	return &Regex{Value: value}
}

func (b Builder) Ident(name string) Node {
	return &Ident{Name: name}
}

func (b Builder) Call(name string, args []Node) Node {
	return &Call{Name: name, Args: args}
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	return Fold[Node](n, Builder{})
}
