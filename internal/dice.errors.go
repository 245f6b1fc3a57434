package internal

import "fmt"

// ErrorKind classifies a failure inside the engine pipeline
type ErrorKind string

// Error kinds
const (
	ErrorKindLex        ErrorKind = "LexAnomaly"
	ErrorKindParse      ErrorKind = "ParseFailure"
	ErrorKindVariable   ErrorKind = "UndefinedVariable"
	ErrorKindArithmetic ErrorKind = "ArithmeticHazard"
	ErrorKindRandom     ErrorKind = "RandomFailure"
)

// Lexer error messages
const (
	ErrMsgUnexpectedChar = "unexpected character"
)

// Parser error messages
const (
	ErrMsgEmptyExpression  = "empty expression"
	ErrMsgUnexpectedToken  = "unexpected token"
	ErrMsgExpectedOperand  = "expected number or variable"
	ErrMsgExpectedSides    = "expected number or variable for dice sides"
	ErrMsgExpectedDice     = "expected dice marker"
	ErrMsgExpectedRParen   = "expected closing parenthesis"
	ErrMsgExpectedCompare  = "expected comparison after target marker"
	ErrMsgUnknownModifier  = "unknown modifier"
	ErrMsgInvalidNumber    = "invalid number"
	ErrMsgUnexpectedEOF    = "unexpected end of expression"
)

// Evaluator error messages
const (
	ErrMsgNilNode            = "nil expression node"
	ErrMsgUnknownNodeType    = "unknown expression node type"
	ErrMsgUndefinedVariable  = "variable is not defined"
	ErrMsgDivisionByZero     = "division by zero"
	ErrMsgNonPositiveCount   = "dice count must be positive"
	ErrMsgNonPositiveSides   = "dice sides must be positive"
	ErrMsgNegativePool       = "advantage and disadvantage counts must not be negative"
	ErrMsgNegativeKeepCount  = "keep/drop count must not be negative"
	ErrMsgTooManyDice        = "too many dice in one term"
	ErrMsgRerollEveryFace    = "reroll condition matches every face"
	ErrMsgUnknownComparison  = "unknown comparison operator"
	ErrMsgUnknownOperator    = "unknown arithmetic operator"
	ErrMsgNoRandomSource     = "no random source configured"
	ErrMsgRandomSourceFailed = "random source failed"
)

// Error format strings
const (
	ErrFmtWithPosition       = "%s at position %d"
	ErrFmtWithPositionDetail = "%s at position %d: %s"
	ErrFmtWithDetail         = "%s: %s"
	ErrFmtVariable           = "variable @%s is not defined"
	ErrFmtWithHint           = "%s (%s)"
)

// LexError represents an error during tokenization
type LexError struct {
	Message string
	Pos     int
	Detail  string
}

// NewLexError creates a new lexer error
func NewLexError(message string, pos int, detail string) *LexError {
	return &LexError{Message: message, Pos: pos, Detail: detail}
}

// Error implements the error interface
func (e *LexError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf(ErrFmtWithPositionDetail, e.Message, e.Pos, e.Detail)
	}
	return fmt.Sprintf(ErrFmtWithPosition, e.Message, e.Pos)
}

// Kind returns the error classification
func (e *LexError) Kind() ErrorKind { return ErrorKindLex }

// ParseError represents an error during parsing. Token is the type of the
// offending token.
type ParseError struct {
	Message string
	Pos     int
	Token   TokenType
	Detail  string
}

// NewParseError creates a new parse error
func NewParseError(message string, tok Token) *ParseError {
	return &ParseError{Message: message, Pos: tok.Pos, Token: tok.Type, Detail: tok.Value}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	subject := string(e.Token)
	if e.Detail != "" {
		subject = fmt.Sprintf("%s %q", e.Token, e.Detail)
	}
	return fmt.Sprintf(ErrFmtWithPositionDetail, e.Message, e.Pos, subject)
}

// Kind returns the error classification
func (e *ParseError) Kind() ErrorKind { return ErrorKindParse }

// EvalError represents an error during evaluation
type EvalError struct {
	ErrKind  ErrorKind
	Message  string
	Detail   string
	Variable string
	// Hint is an optional suggestion appended to the message.
	Hint     string
	Cause    error
}

// NewEvalError creates an evaluation error of the given kind
func NewEvalError(kind ErrorKind, message, detail string) *EvalError {
	return &EvalError{ErrKind: kind, Message: message, Detail: detail}
}

// NewUndefinedVariableError creates an error for a variable missing from the table
func NewUndefinedVariableError(name string) *EvalError {
	return &EvalError{
		ErrKind:  ErrorKindVariable,
		Message:  fmt.Sprintf(ErrFmtVariable, name),
		Variable: name,
	}
}

// NewRandomError wraps a failure of the random source
func NewRandomError(cause error) *EvalError {
	return &EvalError{ErrKind: ErrorKindRandom, Message: ErrMsgRandomSourceFailed, Cause: cause}
}

// Error implements the error interface
func (e *EvalError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf(ErrFmtWithHint, e.Message, e.Hint)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Detail != "" {
		return fmt.Sprintf(ErrFmtWithDetail, e.Message, e.Detail)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *EvalError) Unwrap() error { return e.Cause }

// Kind returns the error classification
func (e *EvalError) Kind() ErrorKind { return e.ErrKind }

// KindedError is implemented by every error raised by the pipeline
type KindedError interface {
	error
	Kind() ErrorKind
}
