package dice

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-dice/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPipelineError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     ErrorKind
		metaKey  string
		metaWant string
	}{
		{
			name:     "lex",
			err:      internal.NewLexError(internal.ErrMsgUnexpectedChar, 3, "#"),
			kind:     KindLexAnomaly,
			metaKey:  MetaKeyToken,
			metaWant: "#",
		},
		{
			name:     "parse",
			err:      internal.NewParseError(internal.ErrMsgUnexpectedEOF, internal.NewEOFToken(5)),
			kind:     KindParseFailure,
			metaKey:  MetaKeyOffset,
			metaWant: "5",
		},
		{
			name:     "variable",
			err:      internal.NewUndefinedVariableError("STR"),
			kind:     KindUndefinedVar,
			metaKey:  MetaKeyVariable,
			metaWant: "STR",
		},
		{
			name:     "arithmetic",
			err:      internal.NewEvalError(internal.ErrorKindArithmetic, internal.ErrMsgDivisionByZero, "0"),
			kind:     KindArithmeticHazard,
			metaKey:  MetaKeyKind,
			metaWant: string(KindArithmeticHazard),
		},
		{
			name:     "random",
			err:      internal.NewRandomError(ErrScriptExhausted),
			kind:     KindRandomFailure,
			metaKey:  MetaKeyKind,
			metaWant: string(KindRandomFailure),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapPipelineError(tt.err)

			var customErr *cuserr.CustomError
			require.True(t, errors.As(err, &customErr))
			value, ok := customErr.GetMetadata(tt.metaKey)
			assert.True(t, ok)
			assert.Equal(t, tt.metaWant, value)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.True(t, errors.Is(err, tt.err))
			assert.Equal(t, tt.err.Error(), pipelineMessage(err))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(NewConfigError(ErrMsgConfigParse, nil)))

	tagged := cuserr.NewValidationError(ErrCodeParse, "tagged").
		WithMetadata(MetaKeyKind, string(KindParseFailure))
	assert.Equal(t, KindParseFailure, KindOf(tagged))
}

func TestRandomErrorUnwrapsToSentinel(t *testing.T) {
	err := wrapPipelineError(internal.NewRandomError(ErrScriptExhausted))

	assert.ErrorIs(t, err, ErrScriptExhausted)
}

func TestNewHookError(t *testing.T) {
	cause := errors.New("denied")

	err := NewHookError(HookBeforeRoll, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), ErrMsgHookAborted)
	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	point, ok := customErr.GetMetadata(MetaKeyHookPoint)
	assert.True(t, ok)
	assert.Equal(t, string(HookBeforeRoll), point)
}
