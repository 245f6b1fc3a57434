package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/itsatony/go-dice"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI represents the command-line interface
type CLI struct {
	NoColor bool   `name:"no-color" help:"Disable coloured output"`
	Verbose bool   `name:"verbose" help:"Log engine activity to stderr"`
	EnvFile string `name:"env-file" help:"Load DICE_* settings from this file if it exists" default:".env" type:"path"`

	Roll         RollCmd         `cmd:"" help:"Roll a dice expression"`
	Validate     ValidateCmd     `cmd:"" help:"Check that an expression parses without rolling"`
	Vars         VarsCmd         `cmd:"" help:"List the variables an expression references"`
	HelpNotation HelpNotationCmd `cmd:"" name:"help-notation" help:"Show the dice notation reference"`
	Examples     ExamplesCmd     `cmd:"" help:"Show example expressions by category"`
	Version      VersionCmd      `cmd:"" help:"Show version information"`
}

// VariableFlags are shared by every command that evaluates variables
type VariableFlags struct {
	Var      []string `name:"var" sep:"none" placeholder:"NAME=VALUE" help:"Set a variable (repeatable)"`
	VarsFile string   `name:"vars-file" type:"path" help:"YAML or JSON file of variables"`
}

// load reads the sheet first so --var assignments override it
func (f VariableFlags) load() (map[string]int, error) {
	var sheet map[string]int
	if f.VarsFile != "" {
		loaded, err := dice.LoadVariables(f.VarsFile)
		if err != nil {
			return nil, err
		}
		sheet = loaded
	}
	assigned, err := dice.ParseAssignments(f.Var)
	if err != nil {
		return nil, err
	}
	return dice.MergeVariables(sheet, assigned), nil
}

// appContext carries I/O and global settings into commands
type appContext struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	cli     *CLI
	config  dice.Config
	logger  *zap.Logger
	painter *painter
}

// cliError carries an exit code out of a command. An empty message means
// the command already reported the failure.
type cliError struct {
	code    int
	message string
	cause   error
}

func (e *cliError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return fmt.Sprintf(FmtCause, e.message, e.cause)
}

func (e *cliError) Unwrap() error {
	return e.cause
}

func newCLIError(code int, message string, cause error) error {
	return &cliError{code: code, message: message, cause: cause}
}

// execute parses args with kong and runs the selected command
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cli := &CLI{}
	exitCode := -1
	parser, err := kong.New(cli,
		kong.Name(CLIName),
		kong.Description(CLIDescription),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgCLISetup, err)
		return ExitCodeError
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgUsage, err)
		return ExitCodeUsageError
	}

	app, err := newAppContext(cli, stdin, stdout, stderr)
	if err != nil {
		return report(stderr, err)
	}
	defer func() { _ = app.logger.Sync() }()

	if err := kctx.Run(app); err != nil {
		return report(stderr, err)
	}
	return ExitCodeSuccess
}

func newAppContext(cli *CLI, stdin io.Reader, stdout, stderr io.Writer) (*appContext, error) {
	config, err := dice.LoadConfig(cli.EnvFile)
	if err != nil {
		return nil, newCLIError(ExitCodeInputError, ErrMsgLoadConfig, err)
	}

	level, err := config.Level()
	if err != nil {
		return nil, newCLIError(ExitCodeInputError, ErrMsgLoadConfig, err)
	}
	if cli.Verbose {
		level = zapcore.DebugLevel
	}

	logger := newLogger(stderr, level)
	if _, err := os.Stat(cli.EnvFile); err == nil {
		logger.Debug(dice.LogMsgEnvFileLoaded, zap.String(dice.LogFieldPath, cli.EnvFile))
	}
	logger.Debug(dice.LogMsgConfigLoaded,
		zap.Int(dice.LogFieldLimit, config.ExplodeLimit),
		zap.Bool(dice.LogFieldStrict, config.StrictLexing))

	return &appContext{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		cli:     cli,
		config:  config,
		logger:  logger,
		painter: newPainter(stdout, cli.NoColor),
	}, nil
}

// newLogger writes human-readable logs to the CLI's stderr
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core)
}

// engine builds a dice engine from the environment configuration. A seed
// replaces the default source with a reproducible one.
func (a *appContext) engine(seed string) (*dice.Engine, error) {
	opts := append(a.config.Options(), dice.WithLogger(a.logger))
	if seed != "" {
		value, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, newCLIError(ExitCodeUsageError, ErrMsgInvalidSeed, err)
		}
		a.logger.Debug(dice.LogMsgSeededSource, zap.Uint64(dice.LogFieldSeed, value))
		opts = append(opts, dice.WithRandomSource(dice.NewSeededSource(value)))
	}
	engine, err := dice.New(opts...)
	if err != nil {
		return nil, newCLIError(ExitCodeError, ErrMsgBuildEngine, err)
	}
	return engine, nil
}

// report prints a command failure and returns its exit code
func report(stderr io.Writer, err error) int {
	var cliErr *cliError
	if errors.As(err, &cliErr) {
		if cliErr.message != "" {
			fmt.Fprintln(stderr, cliErr.Error())
		}
		return cliErr.code
	}
	fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgUsage, err)
	return ExitCodeError
}
