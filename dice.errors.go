package dice

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-dice/internal"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Pipeline errors
	ErrMsgHookAborted      = "roll aborted by hook"
	ErrMsgUnknownPipeline  = "unexpected engine failure"
	ErrMsgScriptExhausted  = "scripted source has no draws left"
	ErrMsgScriptOutOfRange = "scripted draw is outside the die range"
	ErrMsgInvalidRange     = "random range must be positive"

	// Configuration errors
	ErrMsgConfigParse      = "environment configuration is invalid"
	ErrMsgEnvFileLoad      = "environment file could not be loaded"
	ErrMsgInvalidLogLevel  = "invalid log level"
	ErrMsgVariablesRead    = "variable sheet could not be read"
	ErrMsgVariablesDecode  = "variable sheet could not be decoded"
	ErrMsgVariablesFormat  = "unsupported variable sheet format"
	ErrMsgVariableName     = "variable name is invalid"
	ErrMsgVariableAssign   = "variable assignment must look like NAME=VALUE"
	ErrMsgVariableValue    = "variable value must be an integer"
	ErrMsgAuditMissingRoll = "audit record requires a roll result"
)

// Error code constants for categorization
const (
	ErrCodeLex        = "DICE_LEX"
	ErrCodeParse      = "DICE_PARSE"
	ErrCodeVariable   = "DICE_VARIABLE"
	ErrCodeArithmetic = "DICE_ARITHMETIC"
	ErrCodeRandom     = "DICE_RANDOM"
	ErrCodeHook       = "DICE_HOOK"
	ErrCodeConfig     = "DICE_CONFIG"
	ErrCodeVariables  = "DICE_VARIABLES"
	ErrCodeAudit      = "DICE_AUDIT"
)

// ErrorKind classifies roll failures
type ErrorKind = internal.ErrorKind

// Error kinds
const (
	KindLexAnomaly       = internal.ErrorKindLex
	KindParseFailure     = internal.ErrorKindParse
	KindUndefinedVar     = internal.ErrorKindVariable
	KindArithmeticHazard = internal.ErrorKindArithmetic
	KindRandomFailure    = internal.ErrorKindRandom
)

// Sentinel errors returned by the bundled random sources
var (
	ErrScriptExhausted  = errors.New(ErrMsgScriptExhausted)
	ErrScriptOutOfRange = errors.New(ErrMsgScriptOutOfRange)
	ErrInvalidRange     = errors.New(ErrMsgInvalidRange)
)

// NewLexError creates an error for an unrecognized character in strict mode
func NewLexError(cause *internal.LexError) error {
	return cuserr.WrapStdError(cause, ErrCodeLex, cause.Error()).
		WithMetadata(MetaKeyKind, string(KindLexAnomaly)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(cause.Pos)).
		WithMetadata(MetaKeyToken, cause.Detail)
}

// NewParseError creates a parse error with the offending token and offset
func NewParseError(cause *internal.ParseError) error {
	return cuserr.WrapStdError(cause, ErrCodeParse, cause.Error()).
		WithMetadata(MetaKeyKind, string(KindParseFailure)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(cause.Pos)).
		WithMetadata(MetaKeyToken, string(cause.Token))
}

// NewUndefinedVariableError creates an error for a variable missing from the table
func NewUndefinedVariableError(cause *internal.EvalError) error {
	return cuserr.WrapStdError(cause, ErrCodeVariable, cause.Error()).
		WithMetadata(MetaKeyKind, string(KindUndefinedVar)).
		WithMetadata(MetaKeyVariable, cause.Variable)
}

// NewArithmeticError creates an error for division by zero, bad counts and
// similar hazards
func NewArithmeticError(cause *internal.EvalError) error {
	return cuserr.WrapStdError(cause, ErrCodeArithmetic, cause.Error()).
		WithMetadata(MetaKeyKind, string(KindArithmeticHazard))
}

// NewRandomError creates an error for a failing random source
func NewRandomError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRandom, cause.Error()).
		WithMetadata(MetaKeyKind, string(KindRandomFailure))
}

// NewHookError creates an error for a before-roll hook that aborted the roll
func NewHookError(point HookPoint, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeHook, ErrMsgHookAborted+": "+cause.Error()).
		WithMetadata(MetaKeyHookPoint, string(point))
}

// NewConfigError creates an error for invalid environment configuration
func NewConfigError(msg string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	return cuserr.WrapStdError(cause, ErrCodeConfig, msg)
}

// NewVariablesError creates an error for a variable name or value that cannot
// be used
func NewVariablesError(msg, key string, cause error) error {
	return newVariablesError(msg, cause).WithMetadata(MetaKeyKey, key)
}

// NewVariablesFormatError creates an error for a variable sheet that cannot
// be decoded in the given format
func NewVariablesFormatError(msg, format string, cause error) error {
	return newVariablesError(msg, cause).WithMetadata(MetaKeyFormat, format)
}

// NewVariablesFileError creates an error for a variable sheet file
func NewVariablesFileError(msg, path string, cause error) error {
	return newVariablesError(msg, cause).WithMetadata(MetaKeyPath, path)
}

func newVariablesError(msg string, cause error) *cuserr.CustomError {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeVariables, msg)
	}
	return cuserr.NewValidationError(ErrCodeVariables, msg)
}

// wrapPipelineError converts an internal pipeline error into a public error
func wrapPipelineError(err error) error {
	var lexErr *internal.LexError
	if errors.As(err, &lexErr) {
		return NewLexError(lexErr)
	}
	var parseErr *internal.ParseError
	if errors.As(err, &parseErr) {
		return NewParseError(parseErr)
	}
	var evalErr *internal.EvalError
	if errors.As(err, &evalErr) {
		switch evalErr.Kind() {
		case internal.ErrorKindVariable:
			return NewUndefinedVariableError(evalErr)
		case internal.ErrorKindRandom:
			return NewRandomError(evalErr)
		case internal.ErrorKindParse:
			return cuserr.WrapStdError(evalErr, ErrCodeParse, evalErr.Error()).
				WithMetadata(MetaKeyKind, string(KindParseFailure))
		default:
			return NewArithmeticError(evalErr)
		}
	}
	return cuserr.WrapStdError(err, ErrCodeParse, ErrMsgUnknownPipeline)
}

// KindOf reports the classification of a roll error, or "" when err is not
// a pipeline failure
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var kinded internal.KindedError
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	var customErr *cuserr.CustomError
	if errors.As(err, &customErr) {
		if kind, ok := customErr.GetMetadata(MetaKeyKind); ok {
			return ErrorKind(kind)
		}
	}
	return ""
}

// pipelineMessage returns the message shown in an error breakdown
func pipelineMessage(err error) string {
	var kinded internal.KindedError
	if errors.As(err, &kinded) {
		return kinded.Error()
	}
	return err.Error()
}
