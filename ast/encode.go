package ast

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// field is one key of an encoded node. Encoded nodes keep a fixed key order
// so the output is stable: "type" first, then the node's own fields.
type field struct {
	key   string
	value any
}

func fieldsOf(n Node) []field {
	switch n := n.(type) {
	case *Binary:
		return []field{
			{"type", "binary-expression"},
			{"left", n.Left},
			{"operator", n.Op.String()},
			{"right", n.Right},
		}
	case *Unary:
		return []field{
			{"type", "unary-expression"},
			{"operator", n.Op.String()},
			{"argument", n.Argument},
		}
	case *Ternary:
		return []field{
			{"type", "ternary-expression"},
			{"test", n.Test},
			{"consequent", n.Consequent},
			{"alternate", n.Alternate},
		}
	case *String:
		return []field{{"type", "string-literal"}, {"value", n.Value}}
	case *Number:
		return []field{{"type", "number-literal"}, {"value", n.Value}}
	case *Boolean:
		return []field{{"type", "boolean-literal"}, {"value", n.Value}}
	case *Nil:
		return []field{{"type", "nil-literal"}}
	case *Regex:
		return []field{{"type", "regex-literal"}, {"value", n.Value}}
	case *Ident:
		return []field{{"type", "identifier"}, {"name", n.Name}}
	case *Call:
		args := n.Args
		if args == nil {
			args = []Node{}
		}
		return []field{{"type", "function-call"}, {"name", n.Name}, {"arguments", args}}
	}
	return nil
}

func encodeJSON(fields []field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i != 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeYAML(fields []field) (*yaml.Node, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range fields {
		value := &yaml.Node{}
		if err := value.Encode(f.value); err != nil {
			return nil, err
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.key},
			value,
		)
	}
	return mapping, nil
}

func (b *Binary) MarshalJSON() ([]byte, error)  { return encodeJSON(fieldsOf(b)) }
func (u *Unary) MarshalJSON() ([]byte, error)   { return encodeJSON(fieldsOf(u)) }
func (t *Ternary) MarshalJSON() ([]byte, error) { return encodeJSON(fieldsOf(t)) }
func (s *String) MarshalJSON() ([]byte, error)  { return encodeJSON(fieldsOf(s)) }
func (n *Number) MarshalJSON() ([]byte, error)  { return encodeJSON(fieldsOf(n)) }
func (b *Boolean) MarshalJSON() ([]byte, error) { return encodeJSON(fieldsOf(b)) }
func (n *Nil) MarshalJSON() ([]byte, error)     { return encodeJSON(fieldsOf(n)) }
func (r *Regex) MarshalJSON() ([]byte, error)   { return encodeJSON(fieldsOf(r)) }
func (i *Ident) MarshalJSON() ([]byte, error)   { return encodeJSON(fieldsOf(i)) }
func (c *Call) MarshalJSON() ([]byte, error)    { return encodeJSON(fieldsOf(c)) }

func (b *Binary) MarshalYAML() (any, error)  { return encodeYAML(fieldsOf(b)) }
func (u *Unary) MarshalYAML() (any, error)   { return encodeYAML(fieldsOf(u)) }
func (t *Ternary) MarshalYAML() (any, error) { return encodeYAML(fieldsOf(t)) }
func (s *String) MarshalYAML() (any, error)  { return encodeYAML(fieldsOf(s)) }
func (n *Number) MarshalYAML() (any, error)  { return encodeYAML(fieldsOf(n)) }
func (b *Boolean) MarshalYAML() (any, error) { return encodeYAML(fieldsOf(b)) }
func (n *Nil) MarshalYAML() (any, error)     { return encodeYAML(fieldsOf(n)) }
func (r *Regex) MarshalYAML() (any, error)   { return encodeYAML(fieldsOf(r)) }
func (i *Ident) MarshalYAML() (any, error)   { return encodeYAML(fieldsOf(i)) }
func (c *Call) MarshalYAML() (any, error)    { return encodeYAML(fieldsOf(c)) }

func statementFields(s *Statement) []field {
	return []field{{"type", "statement"}, {"expression", s.Expr}}
}

func (s *Statement) MarshalJSON() ([]byte, error) { return encodeJSON(statementFields(s)) }
func (s *Statement) MarshalYAML() (any, error)    { return encodeYAML(statementFields(s)) }
