package lexer

import (
	"math"
	"strconv"
	"strings"

	"github.com/takoeight0821/aviator/token"
)

func isOctDigit(c rune) bool {
	return c >= '0' && c <= '7'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// digits consumes a run of digits accepted by isDigit, allowing '_' as a
// separator.
func (l *Lexer) digits(isDigit func(rune) bool) {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

// number scans a numeric literal whose first character has already been
// consumed. Supported forms: .5, 0x1F, 017, 0.5, 0 and 1_000.25.
func (l *Lexer) number(first rune) (token.Token, error) {
	switch {
	case first == '.':
		l.digits(isDigit)

		return l.decimal("0" + l.source[l.start:l.current])
	case first == '0' && (l.peek() == 'x' || l.peek() == 'X') && isHexDigit(l.peekNext()):
		l.advance()
		l.digits(isHexDigit)

		return l.radix(l.source[l.start+2:l.current], 16)
	case first == '0' && isOctDigit(l.peek()):
		l.digits(isOctDigit)

		return l.radix(l.source[l.start+1:l.current], 8)
	case first == '0' && l.peek() == '.' && isDigit(l.peekNext()):
		l.advance()
		l.digits(isDigit)

		return l.decimal(l.source[l.start:l.current])
	case first == '0':
		return l.makeToken(token.NUMBER, 0.0), nil
	}

	l.digits(isDigit)
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		l.digits(isDigit)
	}

	return l.decimal(l.source[l.start:l.current])
}

func (l *Lexer) decimal(text string) (token.Token, error) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil || math.IsInf(value, 0) {
		return token.Token{}, InvalidNumberError{Line: l.line, Lexeme: l.source[l.start:l.current]}
	}

	return l.makeToken(token.NUMBER, value), nil
}

// radix sums digit_i * base^i starting from the least significant digit.
func (l *Lexer) radix(text string, base float64) (token.Token, error) {
	text = strings.ReplaceAll(text, "_", "")
	value := 0.0
	for i := 0; i < len(text); i++ {
		value += math.Pow(base, float64(i)) * float64(digitValue(text[len(text)-1-i]))
	}
	if math.IsInf(value, 0) {
		return token.Token{}, InvalidNumberError{Line: l.line, Lexeme: l.source[l.start:l.current]}
	}

	return l.makeToken(token.NUMBER, value), nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
