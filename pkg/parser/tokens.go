package parser

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenInt     // 123
	TokenFloat   // 3.14, 1e-10
	TokenString  // "hello"
	TokenBoolean // true, false
	TokenIdent   // variable or function name

	// Arithmetic operators
	TokenPlus       // + (binary)
	TokenMinus      // - (binary)
	TokenUnaryPlus  // + (prefix)
	TokenUnaryMinus // - (prefix)
	TokenMult       // *
	TokenDiv        // /
	TokenMod        // %
	TokenPow        // ^

	// Comparison operators
	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=

	// Logical operators
	TokenAnd // &&
	TokenOr  // ||
	TokenNot // !

	// Punctuation
	TokenParenOpen  // (
	TokenParenClose // )
	TokenComma      // ,
	TokenAssign     // =
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "(eof)"
	case TokenError:
		return "(error)"
	case TokenInt:
		return "(int)"
	case TokenFloat:
		return "(float)"
	case TokenString:
		return "(string)"
	case TokenBoolean:
		return "(boolean)"
	case TokenIdent:
		return "(identifier)"
	case TokenPlus, TokenUnaryPlus:
		return "+"
	case TokenMinus, TokenUnaryMinus:
		return "-"
	case TokenMult:
		return "*"
	case TokenDiv:
		return "/"
	case TokenMod:
		return "%"
	case TokenPow:
		return "^"
	case TokenEqual:
		return "=="
	case TokenNotEqual:
		return "!="
	case TokenLess:
		return "<"
	case TokenLessEqual:
		return "<="
	case TokenGreater:
		return ">"
	case TokenGreaterEqual:
		return ">="
	case TokenAnd:
		return "&&"
	case TokenOr:
		return "||"
	case TokenNot:
		return "!"
	case TokenParenOpen:
		return "("
	case TokenParenClose:
		return ")"
	case TokenComma:
		return ","
	case TokenAssign:
		return "="
	default:
		return "(unknown)"
	}
}

// Token represents a lexical token in an expression.
type Token struct {
	Type     TokenType // Type of the token
	Value    string    // Literal payload of the token
	Position int       // Starting byte offset in the input string
}

// symbols1 maps single-character symbols to token types.
var symbols1 = [...]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMult,
	'/': TokenDiv,
	'%': TokenMod,
	'^': TokenPow,
	'<': TokenLess,
	'>': TokenGreater,
	'!': TokenNot,
	'=': TokenAssign,
	'(': TokenParenOpen,
	')': TokenParenClose,
	',': TokenComma,
}

// runeTokenType pairs a rune with its corresponding token type.
type runeTokenType struct {
	r  rune
	tt TokenType
}

// symbols2 maps two-character symbol sequences to token types.
// The key is the first character of the sequence.
var symbols2 = [...][]runeTokenType{
	'=': {{'=', TokenEqual}},
	'!': {{'=', TokenNotEqual}},
	'<': {{'=', TokenLessEqual}},
	'>': {{'=', TokenGreaterEqual}},
	'&': {{'&', TokenAnd}},
	'|': {{'|', TokenOr}},
}

const (
	symbol1Count = rune(len(symbols1))
	symbol2Count = rune(len(symbols2))
)

// lookupSymbol1 returns the token type for a single-character symbol.
// Returns 0 if the rune is not a valid symbol.
func lookupSymbol1(r rune) TokenType {
	if r < 0 || r >= symbol1Count {
		return 0
	}
	return symbols1[r]
}

// lookupSymbol2 returns possible two-character symbol completions.
// Returns nil if the rune cannot start a two-character symbol.
func lookupSymbol2(r rune) []runeTokenType {
	if r < 0 || r >= symbol2Count {
		return nil
	}
	return symbols2[r]
}

// lookupKeyword returns the token type for a keyword.
// Returns 0 if the string is not a recognized keyword.
func lookupKeyword(s string) TokenType {
	switch s {
	case "true", "false":
		return TokenBoolean
	default:
		return 0
	}
}

// terminatesOperand reports whether a token of this type can end an
// operand. The lexer uses it to tell unary minus/plus apart from the
// binary forms: a sign following a non-terminating token is a prefix.
func (tt TokenType) terminatesOperand() bool {
	switch tt {
	case TokenInt, TokenFloat, TokenString, TokenBoolean, TokenIdent, TokenParenClose:
		return true
	default:
		return false
	}
}
