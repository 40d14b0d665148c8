package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sandrolain/goevalexpr/pkg/types"
)

const eof = -1

// Lexer converts an expression string into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
type Lexer struct {
	input   string    // Input string being scanned
	length  int       // Length of input string
	start   int       // Start position of current token
	current int       // Current position in input
	width   int       // Width of last rune read
	prev    TokenType // Type of the last significant token emitted
	err     error     // First error encountered
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Tokenize scans the whole input and returns the token sequence,
// excluding the terminating EOF token.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		t := l.Next()
		switch t.Type {
		case TokenEOF:
			return tokens, nil
		case TokenError:
			return nil, l.err
		}
		tokens = append(tokens, t)
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all
// subsequent calls.
func (l *Lexer) Next() Token {
	t := l.scan()
	if t.Type != TokenEOF && t.Type != TokenError {
		l.prev = t.Type
	}
	return t
}

// Error returns the first error encountered during lexing, if any.
func (l *Lexer) Error() error {
	return l.err
}

func (l *Lexer) scan() Token {
	l.acceptAll(isWhitespace)
	l.ignore()

	ch := l.nextRune()
	if ch == eof {
		return l.eof()
	}

	// Check for two-character symbols first (e.g., ==, <=, &&)
	if rts := lookupSymbol2(ch); rts != nil {
		for _, rt := range rts {
			if l.acceptRune(rt.r) {
				return l.newToken(rt.tt)
			}
		}
	}

	// Check for single-character symbols
	if tt := lookupSymbol1(ch); tt > 0 {
		// A sign that does not follow a complete operand is a prefix.
		if !l.prev.terminatesOperand() {
			switch tt {
			case TokenMinus:
				tt = TokenUnaryMinus
			case TokenPlus:
				tt = TokenUnaryPlus
			}
		}
		return l.newToken(tt)
	}

	// String literals
	if ch == '"' {
		return l.scanString(ch)
	}

	// Number literals
	if isDigit(ch) {
		l.backup()
		return l.scanNumber()
	}

	// Identifiers and keywords
	if isIdentStart(ch) {
		l.backup()
		return l.scanIdent()
	}

	return l.error(types.ErrUnknownCharacter, fmt.Sprintf("unknown character %q", ch))
}

// scanString reads a string literal from the current position.
// The opening quote has already been consumed. Escape sequences are
// decoded in place; an invalid escape or a missing closing quote is an
// error.
func (l *Lexer) scanString(quote rune) Token {
	pos := l.start
	var sb strings.Builder

	for {
		switch ch := l.nextRune(); ch {
		case quote:
			l.ignore()
			return Token{Type: TokenString, Value: sb.String(), Position: pos}
		case '\\':
			esc := l.nextRune()
			switch esc {
			case '\\', '"', '\'':
				sb.WriteRune(esc)
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case eof:
				return l.error(types.ErrStringNotClosed, "unterminated string literal")
			default:
				return l.error(types.ErrUnsupportedEscape,
					fmt.Sprintf("unsupported escape sequence \\%c", esc))
			}
		case eof:
			return l.error(types.ErrStringNotClosed, "unterminated string literal")
		default:
			sb.WriteRune(ch)
		}
	}
}

// scanNumber reads a number literal from the current position.
// Supports integers, decimals, and scientific notation:
// [0-9]+(\.[0-9]*)?([eE][+-]?[0-9]+)?
// A second decimal point or an exponent without digits is an error.
func (l *Lexer) scanNumber() Token {
	tt := TokenInt

	l.acceptAll(isDigit)

	// Decimal part
	if l.acceptRune('.') {
		tt = TokenFloat
		l.acceptAll(isDigit)
		if l.acceptRune('.') {
			return l.error(types.ErrMalformedNumber,
				"number literal with more than one decimal point")
		}
	}

	// Exponent part
	if l.acceptRunes2('e', 'E') {
		tt = TokenFloat
		l.acceptRunes2('+', '-')
		if !l.acceptAll(isDigit) {
			return l.error(types.ErrMalformedNumber,
				"exponent without digits in number literal")
		}
	}

	return l.newToken(tt)
}

// scanIdent reads an identifier or keyword from the current position.
// Identifiers start with a letter or underscore and continue with
// letters, digits, and underscores.
func (l *Lexer) scanIdent() Token {
	l.accept(isIdentStart)
	l.acceptAll(isIdentPart)

	t := l.newToken(TokenIdent)
	if tt := lookupKeyword(t.Value); tt > 0 {
		t.Type = tt
	}
	return t
}

// Helper methods

func (l *Lexer) eof() Token {
	return Token{
		Type:     TokenEOF,
		Position: l.current,
	}
}

func (l *Lexer) error(code types.ErrorCode, message string) Token {
	t := l.newToken(TokenError)
	l.err = &types.Error{
		Code:     code,
		Message:  message,
		Position: t.Position,
		Token:    t.Value,
	}
	return t
}

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:     tt,
		Value:    l.input[l.start:l.current],
		Position: l.start,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.err != nil || l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) acceptRunes2(r1, r2 rune) bool {
	return l.accept(func(c rune) bool {
		return c == r1 || c == r2
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
