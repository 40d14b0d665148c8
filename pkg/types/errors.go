package types

import "fmt"

// ErrorCode classifies an expression error.
type ErrorCode string

// Error codes, grouped by pipeline stage.
const (
	// S01xx: Lexer errors
	ErrStringNotClosed   ErrorCode = "S0101"
	ErrNumberOutOfRange  ErrorCode = "S0102"
	ErrUnsupportedEscape ErrorCode = "S0103"
	ErrUnknownCharacter  ErrorCode = "S0104"
	ErrMalformedNumber   ErrorCode = "S0105"

	// S02xx: Parser/Syntax errors
	ErrSyntaxError   ErrorCode = "S0201"
	ErrExpectedToken ErrorCode = "S0202"
	ErrParseTooDeep  ErrorCode = "S0206"

	// T0xxx/T1xxx/T2xxx: Type errors
	ErrArgumentCountMismatch ErrorCode = "T0410"
	ErrTypeMismatch          ErrorCode = "T1001"
	ErrExpectedKind          ErrorCode = "T1002"
	ErrTupleLength           ErrorCode = "T1003"
	ErrLeftSideAssignment    ErrorCode = "T2001"
	ErrReadOnlyConfiguration ErrorCode = "T2002"

	// D1xxx/D3xxx: Evaluation errors
	ErrIntegerOverflow  ErrorCode = "D1001"
	ErrDivisionByZero   ErrorCode = "D1002"
	ErrNegativeExponent ErrorCode = "D1003"
	ErrStackOverflow    ErrorCode = "D3020"

	// U1xxx: Lookup errors
	ErrUndefinedVariable ErrorCode = "U1001"
	ErrUndefinedFunction ErrorCode = "U1002"
)

// Error represents a structured expression error.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	Err      error
}

// NewError creates a new expression error.
// Position -1 marks an error that has no meaningful source location.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}

// NewTypeMismatch creates the operand-kind error for an operator,
// naming the expected and actual kinds.
func NewTypeMismatch(op string, expected Kind, actual Value) *Error {
	return NewError(ErrTypeMismatch,
		fmt.Sprintf("operator %q expects %s, got %s", op, expected, actual.Kind()), -1)
}

// NewExpectedKind creates the typed-extraction error returned when a
// Value does not hold the requested kind.
func NewExpectedKind(expected Kind, actual Value) *Error {
	return NewError(ErrExpectedKind,
		fmt.Sprintf("expected %s, got %s", expected, actual.Kind()), -1)
}

// NewUndefinedVariable creates the lookup error for an unknown variable name.
func NewUndefinedVariable(name string) *Error {
	return NewError(ErrUndefinedVariable,
		fmt.Sprintf("undefined variable %q", name), -1).WithToken(name)
}

// NewUndefinedFunction creates the lookup error for an unknown function name.
func NewUndefinedFunction(name string) *Error {
	return NewError(ErrUndefinedFunction,
		fmt.Sprintf("undefined function %q", name), -1).WithToken(name)
}
