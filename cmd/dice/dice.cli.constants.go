package main

// CLI metadata
const (
	CLIName        = "dice"
	CLIDescription = "Roll tabletop dice notation from the command line"
)

// Command names
const (
	CmdNameRoll         = "roll"
	CmdNameValidate     = "validate"
	CmdNameVars         = "vars"
	CmdNameHelpNotation = "help-notation"
	CmdNameExamples     = "examples"
	CmdNameVersion      = "version"
)

// Flag names
const (
	FlagHelp     = "--help"
	FlagNoColor  = "no-color"
	FlagVerbose  = "verbose"
	FlagEnvFile  = "env-file"
	FlagVar      = "var"
	FlagVarsFile = "vars-file"
	FlagSeed     = "seed"
	FlagJSON     = "json"
	FlagActor    = "actor"
	FlagRoom     = "room"
	FlagRepeat   = "repeat"
)

// Flag default values
const (
	FlagDefaultEnvFile = ".env"
	FlagDefaultRepeat  = 1
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeRollError  = 3
	ExitCodeInputError = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUsage            = "invalid usage"
	ErrMsgCLISetup         = "failed to build command line parser"
	ErrMsgMissingExpr      = "expression required"
	ErrMsgReadStdinFailed  = "failed to read from stdin"
	ErrMsgInvalidSeed      = "seed must be a non-negative integer"
	ErrMsgInvalidRepeat    = "repeat must be at least 1"
	ErrMsgLoadConfig       = "failed to load configuration"
	ErrMsgLoadVariables    = "failed to load variables"
	ErrMsgBuildEngine      = "failed to create dice engine"
	ErrMsgInvalidExpr      = "expression is invalid"
	ErrMsgAuditFailed      = "failed to build audit record"
	ErrMsgWriteOutput      = "failed to write output"
	ErrMsgJSONMarshal      = "failed to marshal JSON"
	ErrMsgMissingVariables = "variables are not defined"
	ErrMsgUnknownCategory  = "unknown example category"
)

// Output format templates
const (
	FmtRollLine        = "%s: %s\n"
	FmtAuditLine       = "audit: id=%s digest=%s\n"
	FmtValidLine       = "valid: %s\n"
	FmtVariablesLine   = "variables: %s\n"
	FmtVariableValue   = "%s = %d\n"
	FmtVariableMissing = "%s (missing)\n"
	FmtExampleHeader   = "%s:\n"
	FmtExampleLine     = "  %s\n"
	FmtVersion         = "%s %s (%s)\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtCause           = "%s: %v"
	FmtErrorWithDetail = "%s: %s\n"
	FmtNewline         = "\n"
)

// Breakdown fragments that get highlighted
const (
	BreakdownPass     = "PASS"
	BreakdownFail     = "FAIL"
	BreakdownCritical = "[Critical]"
	BreakdownHope     = "[Hope]"
	BreakdownFear     = "[Fear]"
)

// Output separators
const (
	ListSeparator       = ", "
	ExpressionSeparator = " "
	NoVariables         = "none"
)
