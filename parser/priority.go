package parser

import "github.com/takoeight0821/aviator/token"

const conditionalPriority = 7

// Priority returns the binding power of an operator token; higher binds
// tighter. ok is false for tokens that are not operators.
func Priority(kind token.Kind) (priority int, ok bool) {
	//exhaustive:ignore
	switch kind {
	case token.LEFTPAREN, token.RIGHTPAREN:
		return 15, true
	case token.LOGICNOT:
		return 14, true
	case token.MULTIPLY, token.DIVIDE, token.MOD:
		return 13, true
	case token.ADD, token.SUBTRACT:
		return 12, true
	case token.LESSTHAN, token.LESSTHANEQUAL, token.GREATERTHAN, token.GREATERTHANEQUAL:
		return 11, true
	case token.EQUAL, token.NOTEQUAL, token.LIKE:
		return 10, true
	case token.LOGICAND:
		return 9, true
	case token.LOGICOR:
		return 8, true
	case token.CONDITIONAL, token.COLON:
		return conditionalPriority, true
	default:
		return 0, false
	}
}

// IsBinaryOperator reports whether kind may continue a binary chain.
// LOGICNOT is in the set but the parser rejects it in binary position.
func IsBinaryOperator(kind token.Kind) bool {
	//exhaustive:ignore
	switch kind {
	case token.ADD, token.SUBTRACT, token.MULTIPLY, token.DIVIDE, token.MOD,
		token.LIKE, token.EQUAL, token.NOTEQUAL,
		token.LESSTHAN, token.LESSTHANEQUAL, token.GREATERTHAN, token.GREATERTHANEQUAL,
		token.LOGICOR, token.LOGICAND, token.LOGICNOT:
		return true
	default:
		return false
	}
}
