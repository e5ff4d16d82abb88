package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/aviator/token"
)

// Lex scans the whole source and returns its tokens terminated by a single
// token.EOF. Scanning stops at the first error.
func Lex(source string) ([]token.Token, error) {
	lexer := New(source)
	tokens := []token.Token{}

	for {
		tok, err := lexer.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// Lexer is a pull-based scanner over an immutable source string.
// It is not safe for concurrent use.
type Lexer struct {
	source string

	start     int // start of current lexeme
	current   int // current position in source
	line      int // current line number
	startLine int // line of the current lexeme
}

func New(source string) *Lexer {
	return &Lexer{
		source:    source,
		start:     0,
		current:   0,
		line:      1,
		startLine: 1,
	}
}

// Next skips blanks, newlines and comments, then returns the next token.
// Once the source is exhausted, or a NUL character is reached, every call
// returns a token.EOF token.
func (l *Lexer) Next() (token.Token, error) {
	for {
		l.start = l.current
		l.startLine = l.line
		if l.isAtEnd() {
			return l.makeToken(token.EOF, nil), nil
		}

		char := l.advance()
		switch char {
		case ' ', '\t', '\r':
			// ignore whitespace
			continue
		case '\n':
			l.line++

			continue
		case '#':
			l.skipComment()

			continue
		}

		if tok, ok, err := l.scanToken(char); ok || err != nil {
			return tok, err
		}
	}
}

// isAtEnd reports whether the cursor reached the end of the source or
// the NUL sentinel.
func (l Lexer) isAtEnd() bool {
	return l.current >= len(l.source) || l.source[l.current] == '\x00'
}

func (l Lexer) peek() rune {
	if l.current >= len(l.source) {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l Lexer) peekNext() rune {
	if l.current >= len(l.source) {
		return '\x00'
	}
	_, width := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+width >= len(l.source) {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current+width:])

	return runeValue
}

func (l *Lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width

	return runeValue
}

func (l *Lexer) match(expected rune) bool {
	if l.current >= len(l.source) || l.peek() != expected {
		return false
	}
	l.advance()

	return true
}

func (l *Lexer) makeToken(kind token.Kind, literal any) token.Token {
	text := l.source[l.start:l.current]

	return token.Token{Kind: kind, Lexeme: text, Line: l.startLine, Literal: literal}
}

// scanToken reports ok == false for a character that starts no token; the
// caller skips it.
func (l *Lexer) scanToken(char rune) (token.Token, bool, error) {
	if isAlpha(char) {
		tok, err := l.identifier()
		return tok, true, err
	}
	if isDigit(char) || (char == '.' && isDigit(l.peek())) {
		tok, err := l.number(char)
		return tok, true, err
	}

	switch char {
	case '"', '\'':
		tok, err := l.string(char)
		return tok, true, err
	case '/':
		tok, err := l.regex()
		return tok, true, err
	case '=':
		if l.match('=') {
			return l.makeToken(token.EQUAL, nil), true, nil
		}
		if l.match('~') {
			return l.makeToken(token.LIKE, nil), true, nil
		}
	case '!':
		if l.match('=') {
			return l.makeToken(token.NOTEQUAL, nil), true, nil
		}

		return l.makeToken(token.LOGICNOT, nil), true, nil
	case '<':
		if l.match('=') {
			return l.makeToken(token.LESSTHANEQUAL, nil), true, nil
		}

		return l.makeToken(token.LESSTHAN, nil), true, nil
	case '>':
		if l.match('=') {
			return l.makeToken(token.GREATERTHANEQUAL, nil), true, nil
		}

		return l.makeToken(token.GREATERTHAN, nil), true, nil
	case '&':
		if l.match('&') {
			return l.makeToken(token.LOGICAND, nil), true, nil
		}
	case '|':
		if l.match('|') {
			return l.makeToken(token.LOGICOR, nil), true, nil
		}
	default:
		if k, ok := singleCharacters[char]; ok {
			return l.makeToken(k, nil), true, nil
		}
	}

	return token.Token{}, false, nil
}

var singleCharacters = map[rune]token.Kind{
	'+': token.ADD,
	'-': token.SUBTRACT,
	'*': token.MULTIPLY,
	'%': token.MOD,
	'(': token.LEFTPAREN,
	')': token.RIGHTPAREN,
	'?': token.CONDITIONAL,
	':': token.COLON,
	',': token.COMMA,
	';': token.SEMICOLON,
}

// skipComment consumes a line comment up to, but not including, the newline.
func (l *Lexer) skipComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

func isAlpha(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentifierChar(c rune) bool {
	return isAlpha(c) || isDigit(c) || c == '.'
}

// isEOL reports whether c ends a string or regex literal.
func isEOL(c rune) bool {
	return c == '\x00' || c == '\n' || c == '\r'
}

func (l *Lexer) identifier() (token.Token, error) {
	for {
		if l.peek() == '.' && l.peekNext() == '.' {
			return token.Token{}, InvalidIdentifierError{Line: l.line, Name: l.source[l.start:l.current]}
		}
		if !isIdentifierChar(l.peek()) {
			break
		}
		l.advance()
	}

	value := l.source[l.start:l.current]
	if k, ok := keywords[value]; ok {
		return l.makeToken(k, nil), nil
	}

	return l.makeToken(token.IDENTIFIER, value), nil
}

var keywords = map[string]token.Kind{
	"true":  token.TRUE,
	"false": token.FALSE,
	"nil":   token.NIL,
}

func (l *Lexer) string(quote rune) (token.Token, error) {
	var b strings.Builder
	for l.peek() != quote {
		char := l.peek()
		if isEOL(char) {
			return token.Token{}, UnterminatedStringError{Line: l.line}
		}
		l.advance()

		// A backslash as the very last character stays a literal backslash.
		if char == '\\' && l.current < len(l.source) {
			escaped := l.advance()
			if escaped == '\n' {
				l.line++
			}
			b.WriteRune(unescape(escaped))

			continue
		}
		b.WriteRune(char)
	}
	l.advance()

	return l.makeToken(token.STRING, b.String()), nil
}

// unescape maps the character after a backslash to the character it
// stands for. Unknown escapes stand for themselves.
func unescape(c rune) rune {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return '\x00'
	default:
		return c
	}
}

func (l *Lexer) regex() (token.Token, error) {
	for l.peek() != '/' {
		if isEOL(l.peek()) {
			return token.Token{}, UnterminatedRegexError{Line: l.line}
		}
		l.advance()
	}
	value := l.source[l.start+1 : l.current]
	l.advance()

	return l.makeToken(token.REGEX, value), nil
}

type UnterminatedStringError struct {
	Line int
}

func (e UnterminatedStringError) Error() string {
	return fmt.Sprintf("unterminated string at line %d", e.Line)
}

type UnterminatedRegexError struct {
	Line int
}

func (e UnterminatedRegexError) Error() string {
	return fmt.Sprintf("unterminated regex at line %d", e.Line)
}

// InvalidIdentifierError reports a dotted identifier containing "..".
type InvalidIdentifierError struct {
	Line int
	Name string
}

func (e InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier: `%s..` at line %d", e.Name, e.Line)
}

type InvalidNumberError struct {
	Line   int
	Lexeme string
}

func (e InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number: %s at line %d", e.Lexeme, e.Line)
}
