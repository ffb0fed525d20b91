package lang

import (
	"log/slog"
	"unicode/utf8"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

var tokenName = map[tokenType]string{
	tokEOF:    "end of expression",
	tokNumber: "number",
	tokIdent:  "identifier",
	tokOp:     "operator",
	tokLParen: "'('",
	tokRParen: "')'",
	tokComma:  "','",
}

type token struct {
	val string
	pos Position
	typ tokenType
}

// describe names the token for error messages.
func (t token) describe() string {
	if t.typ == tokEOF {
		return tokenName[tokEOF]
	}

	return tokenName[t.typ] + " " + quote(t.val)
}

func quote(s string) string { return "\"" + s + "\"" }

// lexer splits expression source into tokens.
type lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

func lex(src string) ([]token, error) {
	l := &lexer{input: []byte(src), line: 1, col: 1}

	var toks []token

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.typ == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespace()

	start := l.position()

	if l.eof() {
		return token{typ: tokEOF, pos: start}, nil
	}

	r := l.peek()

	switch {
	case isDigit(r) || (r == '.' && isDigit(l.peekAt(1))):
		return l.number(start)

	case isIdentifierStart(r):
		for !l.eof() && isIdentifierContinue(l.peek()) {
			l.advance()
		}

		return token{typ: tokIdent, pos: start, val: l.slice(start)}, nil
	}

	l.advance()

	switch r {
	case '+', '-', '*', '/', '^':
		return token{typ: tokOp, pos: start, val: string(r)}, nil
	case '(':
		return token{typ: tokLParen, pos: start, val: "("}, nil
	case ')':
		return token{typ: tokRParen, pos: start, val: ")"}, nil
	case ',':
		return token{typ: tokComma, pos: start, val: ","}, nil
	}

	return token{}, syntaxError(start, string(r), "invalid character")
}

// number scans digits, an optional fraction, and an optional exponent.
// An 'e' not followed by digits ends the number, so "2eV" is 2 then eV.
// A second '.' is malformed rather than two juxtaposed numbers.
func (l *lexer) number(start Position) (token, error) {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' {
		l.advance()

		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if r := l.peek(); r == 'e' || r == 'E' {
		n := 1
		if s := l.peekAt(1); s == '+' || s == '-' {
			n = 2
		}

		if isDigit(l.peekAt(n)) {
			for range n {
				l.advance()
			}

			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	if r := l.peek(); r == '.' || isDigit(r) {
		l.advance()

		return token{}, syntaxError(start, l.slice(start), "malformed number")
	}

	return token{typ: tokNumber, pos: start, val: l.slice(start)}, nil
}

func (l *lexer) slice(start Position) string {
	return string(l.input[start.Offset:l.pos])
}

func (l *lexer) eof() bool { return l.pos >= len(l.input) }

func (l *lexer) peek() rune { return l.peekAt(0) }

// peekAt returns the rune n runes ahead without consuming input.
func (l *lexer) peekAt(n int) rune {
	pos := l.pos

	for {
		if pos >= len(l.input) {
			return 0
		}

		r, size := utf8.DecodeRune(l.input[pos:])
		if n == 0 {
			return r
		}

		pos += size
		n--
	}
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRune(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *lexer) skipWhitespace() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentifierStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

// IsIdentifier reports whether s is a valid identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if (i == 0 && !isIdentifierStart(r)) || !isIdentifierContinue(r) {
			return false
		}
	}

	return true
}

// syntaxError describes malformed input at pos.
func syntaxError(pos Position, near, reason string) error {
	return ErrSyntax.
		With(
			slog.String("reason", reason),
			slog.String("near", near),
			slog.Int("offset", pos.Offset),
			slog.Int("line", pos.Line),
			slog.Int("column", pos.Column),
		).
		Wrap(&PositionError{Pos: pos, Near: near, Reason: reason})
}

// PositionError locates a problem inside expression source text.
type PositionError struct {
	Near   string
	Reason string
	Pos    Position
}

func (e *PositionError) Error() string {
	if e.Near == "" {
		return e.Reason + " at " + e.Pos.String()
	}

	return e.Reason + " near " + quote(e.Near) + " at " + e.Pos.String()
}
