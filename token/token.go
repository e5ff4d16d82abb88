package token

import "fmt"

type Kind int

const (
	EOF Kind = iota

	// Literals and identifiers.
	IDENTIFIER
	NUMBER
	STRING
	TRUE
	FALSE
	NIL
	REGEX

	// Arithmetic operators.
	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	MOD

	// Relational and logical operators.
	LIKE
	EQUAL
	NOTEQUAL
	LESSTHAN
	LESSTHANEQUAL
	GREATERTHAN
	GREATERTHANEQUAL
	LOGICOR
	LOGICAND
	LOGICNOT

	// Punctuation.
	LEFTPAREN
	RIGHTPAREN
	CONDITIONAL
	COLON
	COMMA
	SEMICOLON
)

var kindNames = [...]string{
	EOF:              "EOF",
	IDENTIFIER:       "Identifier",
	NUMBER:           "Number",
	STRING:           "String",
	TRUE:             "True",
	FALSE:            "False",
	NIL:              "Nil",
	REGEX:            "Regex",
	ADD:              "Add",
	SUBTRACT:         "Subtract",
	MULTIPLY:         "Multiply",
	DIVIDE:           "Divide",
	MOD:              "Mod",
	LIKE:             "Like",
	EQUAL:            "Equal",
	NOTEQUAL:         "NotEqual",
	LESSTHAN:         "LessThan",
	LESSTHANEQUAL:    "LessThanEqual",
	GREATERTHAN:      "GreaterThan",
	GREATERTHANEQUAL: "GreaterThanEqual",
	LOGICOR:          "LogicOr",
	LOGICAND:         "LogicAnd",
	LOGICNOT:         "LogicNot",
	LEFTPAREN:        "LeftParen",
	RIGHTPAREN:       "RightParen",
	CONDITIONAL:      "Conditional",
	COLON:            "Colon",
	COMMA:            "Comma",
	SEMICOLON:        "Semicolon",
}

// String returns the operator name used in rendered trees, e.g. "LogicAnd".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Token is one lexical unit. Literal carries the decoded payload for
// IDENTIFIER (string), NUMBER (float64), STRING (string) and REGEX (string);
// it is nil for every other kind.
type Token struct {
	Kind    Kind
	Lexeme  string
	Line    int
	Literal any
}

func (t Token) Pretty() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case STRING, REGEX, IDENTIFIER, NUMBER:
		return fmt.Sprintf("%v %v", t.Kind, t.Lexeme)
	default:
		return fmt.Sprintf("%v `%s`", t.Kind, t.Lexeme)
	}
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d, %v}", t.Kind, t.Lexeme, t.Line, t.Literal)
}
