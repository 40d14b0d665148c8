package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sandrolain/goevalexpr/pkg/types"
)

// builder turns a token sequence into an operator tree using Pratt's
// "Top Down Operator Precedence" algorithm.
type builder struct {
	tokens []Token
	pos    int
	depth  int
	opts   CompileOptions
}

// Operator precedence table (binding power).
// Higher values bind more tightly.
var precedence = map[TokenType]int{
	TokenComma:        5,  // tuple/argument separator
	TokenOr:           10, // ||
	TokenAnd:          15, // &&
	TokenEqual:        20, // ==
	TokenNotEqual:     20, // !=
	TokenLess:         25, // <
	TokenLessEqual:    25, // <=
	TokenGreater:      25, // >
	TokenGreaterEqual: 25, // >=
	TokenPlus:         30, // + (binary)
	TokenMinus:        30, // - (binary)
	TokenMult:         35, // *
	TokenDiv:          35, // /
	TokenMod:          35, // %
	TokenPow:          40, // ^ (right-associative)
}

// unaryPrecedence is the binding power of the prefix operators - + !.
// They bind more tightly than ^, so -2^2 parses as (-2)^2.
const unaryPrecedence = 45

// getPrecedence returns the precedence of a token type.
func getPrecedence(tt TokenType) int {
	return precedence[tt]
}

// binaryOperators maps binary operator tokens to tree operators.
var binaryOperators = map[TokenType]types.Operator{
	TokenPlus:         types.OpAdd,
	TokenMinus:        types.OpSub,
	TokenMult:         types.OpMul,
	TokenDiv:          types.OpDiv,
	TokenMod:          types.OpMod,
	TokenPow:          types.OpPow,
	TokenEqual:        types.OpEq,
	TokenNotEqual:     types.OpNe,
	TokenLess:         types.OpLt,
	TokenLessEqual:    types.OpLe,
	TokenGreater:      types.OpGt,
	TokenGreaterEqual: types.OpGe,
	TokenAnd:          types.OpAnd,
	TokenOr:           types.OpOr,
}

// build parses the whole token sequence into a single operator tree.
func (b *builder) build() (*types.Node, error) {
	if len(b.tokens) == 0 {
		return nil, types.NewError(types.ErrSyntaxError, "empty expression", 0)
	}

	// Top-level assignment: identifier = expression.
	// Assignment is not an operator inside expressions; it only exists as
	// this outermost form, and only mutable configurations can run it.
	if len(b.tokens) >= 2 &&
		b.tokens[0].Type == TokenIdent &&
		b.tokens[1].Type == TokenAssign {
		name := b.tokens[0]
		b.pos = 2
		rhs, err := b.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if err := b.expectEnd(); err != nil {
			return nil, err
		}
		return types.NewAssignNode(name.Value, rhs, name.Position), nil
	}

	node, err := b.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := b.expectEnd(); err != nil {
		return nil, err
	}
	return node, nil
}

// parseExpression parses an expression with operator precedence.
// rbp is the right binding power (minimum precedence).
func (b *builder) parseExpression(rbp int) (*types.Node, error) {
	b.depth++
	defer func() { b.depth-- }()
	if b.depth > b.opts.MaxDepth {
		return nil, types.NewError(types.ErrParseTooDeep,
			"expression too deeply nested", b.current().Position)
	}

	// Parse prefix expression (nud - null denotation)
	left, err := b.parsePrefix()
	if err != nil {
		return nil, err
	}

	// Parse infix expressions while precedence allows (led - left denotation)
	for rbp < getPrecedence(b.current().Type) {
		left, err = b.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parsePrefix parses a prefix expression (nud - null denotation).
// These are expressions that don't require a left-hand side.
func (b *builder) parsePrefix() (*types.Node, error) {
	token := b.current()

	switch token.Type {
	case TokenInt:
		b.advance()
		i, err := strconv.ParseInt(token.Value, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, b.errorAt(types.ErrNumberOutOfRange,
					fmt.Sprintf("integer literal %s out of range", token.Value), token)
			}
			return nil, b.errorAt(types.ErrMalformedNumber,
				fmt.Sprintf("malformed integer literal %s", token.Value), token)
		}
		return types.NewLiteralNode(types.IntValue(i), token.Position), nil

	case TokenFloat:
		b.advance()
		f, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return nil, b.errorAt(types.ErrNumberOutOfRange,
				fmt.Sprintf("float literal %s out of range", token.Value), token)
		}
		return types.NewLiteralNode(types.FloatValue(f), token.Position), nil

	case TokenString:
		b.advance()
		return types.NewLiteralNode(types.StringValue(token.Value), token.Position), nil

	case TokenBoolean:
		b.advance()
		return types.NewLiteralNode(types.BooleanValue(token.Value == "true"), token.Position), nil

	case TokenIdent:
		b.advance()
		if b.current().Type == TokenParenOpen {
			return b.parseCall(token)
		}
		return types.NewVariableNode(token.Value, token.Position), nil

	case TokenUnaryMinus, TokenUnaryPlus, TokenNot:
		b.advance()
		child, err := b.parseExpression(unaryPrecedence)
		if err != nil {
			return nil, err
		}
		op := types.OpNeg
		switch token.Type {
		case TokenUnaryPlus:
			op = types.OpPos
		case TokenNot:
			op = types.OpNot
		}
		return types.NewUnaryNode(op, child, token.Position), nil

	case TokenParenOpen:
		b.advance()
		if b.current().Type == TokenParenClose {
			b.advance()
			return types.NewLiteralNode(types.EmptyValue(), token.Position), nil
		}
		node, err := b.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if err := b.expect(TokenParenClose); err != nil {
			return nil, err
		}
		return node, nil

	case TokenEOF:
		return nil, b.errorAt(types.ErrSyntaxError,
			"unexpected end of expression", token)

	case TokenAssign:
		return nil, b.errorAt(types.ErrLeftSideAssignment,
			"assignment target must be a single identifier", token)

	default:
		return nil, b.errorAt(types.ErrSyntaxError,
			fmt.Sprintf("operator %s is missing an operand", token.Type), token)
	}
}

// parseInfix parses an infix expression (led - left denotation).
func (b *builder) parseInfix(left *types.Node) (*types.Node, error) {
	token := b.current()

	if token.Type == TokenComma {
		return b.parseTuple(left)
	}

	op, ok := binaryOperators[token.Type]
	if !ok {
		return nil, b.errorAt(types.ErrSyntaxError,
			fmt.Sprintf("unexpected token %s", token.Type), token)
	}

	b.advance()

	// ^ is right-associative: parse its right side with one less binding
	// power so a following ^ folds to the right.
	rbp := getPrecedence(token.Type)
	if token.Type == TokenPow {
		rbp--
	}

	right, err := b.parseExpression(rbp)
	if err != nil {
		return nil, err
	}
	return types.NewBinaryNode(op, left, right, token.Position), nil
}

// parseTuple collects a comma-separated sequence into a tuple node.
// The arity of the node is the element count; a single element without a
// comma never reaches this method and stays a plain expression.
func (b *builder) parseTuple(left *types.Node) (*types.Node, error) {
	elements := []*types.Node{left}

	for b.current().Type == TokenComma {
		b.advance()
		element, err := b.parseExpression(getPrecedence(TokenComma))
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}

	return types.NewTupleNode(elements, left.Position()), nil
}

// parseCall parses a function-call argument list.
// Called with the identifier token after its '(' has been reached.
func (b *builder) parseCall(name Token) (*types.Node, error) {
	if err := b.expect(TokenParenOpen); err != nil {
		return nil, err
	}

	var args []*types.Node
	if b.current().Type != TokenParenClose {
		for {
			arg, err := b.parseExpression(getPrecedence(TokenComma))
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if b.current().Type != TokenComma {
				break
			}
			b.advance()
		}
	}

	if err := b.expect(TokenParenClose); err != nil {
		return nil, err
	}
	return types.NewCallNode(name.Value, args, name.Position), nil
}

// current returns the token at the cursor, or a synthetic EOF token.
func (b *builder) current() Token {
	if b.pos < len(b.tokens) {
		return b.tokens[b.pos]
	}
	return Token{Type: TokenEOF, Position: b.endPosition()}
}

// advance moves the cursor to the next token.
func (b *builder) advance() {
	b.pos++
}

// endPosition returns the byte offset just past the last token.
func (b *builder) endPosition() int {
	if len(b.tokens) == 0 {
		return 0
	}
	last := b.tokens[len(b.tokens)-1]
	return last.Position + len(last.Value)
}

// expect checks that the current token matches the expected type and
// advances past it.
func (b *builder) expect(tt TokenType) error {
	token := b.current()
	if token.Type != tt {
		return b.errorAt(types.ErrExpectedToken,
			fmt.Sprintf("expected %s but got %s", tt, token.Type), token)
	}
	b.advance()
	return nil
}

// expectEnd rejects trailing tokens after a complete expression.
func (b *builder) expectEnd() error {
	token := b.current()
	switch token.Type {
	case TokenEOF:
		return nil
	case TokenAssign:
		return b.errorAt(types.ErrLeftSideAssignment,
			"assignment target must be a single identifier", token)
	default:
		return b.errorAt(types.ErrSyntaxError,
			fmt.Sprintf("unexpected token %s after expression", token.Type), token)
	}
}

// errorAt creates a builder error anchored to a token.
func (b *builder) errorAt(code types.ErrorCode, message string, token Token) error {
	return types.NewError(code, message, token.Position).WithToken(token.Value)
}
