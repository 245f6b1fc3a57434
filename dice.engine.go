package dice

import (
	"context"
	"strings"
	"sync"

	"github.com/itsatony/go-dice/internal"
	"go.uber.org/zap"
)

// cacheKeyStrictPrefix separates strict-mode trees from lenient ones in a
// shared cache
const cacheKeyStrictPrefix = "strict:"

// Engine is the main entry point for rolling dice notation.
// An Engine is safe for concurrent use when its RandomSource is.
type Engine struct {
	config *engineConfig
	source RandomSource
	hooks  *HookRegistry
	logger *zap.Logger
}

// New creates a new dice Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	source := config.source
	if source == nil {
		source = CryptoSource{}
	}

	hooks := config.hooks
	if hooks == nil {
		hooks = NewHookRegistry()
	}

	logger.Debug(LogMsgEngineCreated,
		zap.Int(LogFieldLimit, config.explodeLimit),
		zap.Bool(LogFieldStrict, config.strict),
	)

	return &Engine{
		config: config,
		source: source,
		hooks:  hooks,
		logger: logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Hooks returns the engine's hook registry for registering hooks after
// construction.
func (e *Engine) Hooks() *HookRegistry {
	return e.hooks
}

// Expression is parsed notation ready to be rolled any number of times.
type Expression struct {
	source   string
	expanded string
	node     internal.Node
}

// Source returns the expression as given by the caller
func (x *Expression) Source() string {
	return x.source
}

// Expanded returns the expression after alias expansion
func (x *Expression) Expanded() string {
	return x.expanded
}

// String returns the canonical, fully parenthesized notation
func (x *Expression) String() string {
	return x.node.String()
}

// Parse expands aliases, tokenizes and parses an expression without rolling.
// The returned error is a *cuserr.CustomError; use KindOf to classify it.
func (e *Engine) Parse(expression string) (*Expression, error) {
	expanded := e.expand(expression)
	node, err := e.parse(expanded)
	if err != nil {
		return nil, wrapPipelineError(err)
	}
	return &Expression{source: expression, expanded: expanded, node: node}, nil
}

// Validate reports whether an expression parses.
func (e *Engine) Validate(expression string) error {
	_, err := e.Parse(expression)
	return err
}

// Roll evaluates an expression against a variable table.
// It never fails: errors become a Result with a zero total and an
// "Error: " breakdown.
func (e *Engine) Roll(expression string, variables map[string]int) *Result {
	return e.RollContext(context.Background(), expression, variables)
}

// RollContext is Roll with a context passed through to hooks.
func (e *Engine) RollContext(ctx context.Context, expression string, variables map[string]int) *Result {
	table := NormalizeVariables(variables)
	expanded := e.expand(expression)
	data := NewHookData(expression, table).WithExpanded(expanded)

	e.logger.Debug(LogMsgRollStart,
		zap.String(LogFieldExpression, expression),
		zap.String(LogFieldExpanded, expanded),
	)

	result, err := e.roll(ctx, expanded, table, data)
	if err != nil {
		e.logger.Debug(LogMsgRollFailed,
			zap.String(LogFieldExpression, expression),
			zap.String(LogFieldKind, string(KindOf(err))),
			zap.Error(err),
		)
		result = newErrorResult(expression, table, err)
	} else {
		e.logger.Debug(LogMsgRollComplete,
			zap.String(LogFieldExpression, expression),
			zap.Int(LogFieldTotal, result.Total),
			zap.Int(LogFieldRolls, len(result.Rolls)),
		)
	}

	data.WithResult(result).WithError(err)
	for _, hookErr := range e.hooks.RunWithErrors(ctx, HookAfterRoll, data) {
		e.logger.Warn(LogMsgAfterHookFailed,
			zap.String(LogFieldHookPoint, string(HookAfterRoll)),
			zap.Error(hookErr),
		)
	}

	return result
}

// roll runs the before hooks and the pipeline. Errors are public errors.
func (e *Engine) roll(ctx context.Context, expanded string, table map[string]int, data *HookData) (*Result, error) {
	if err := e.hooks.Run(ctx, HookBeforeRoll, data); err != nil {
		return nil, NewHookError(HookBeforeRoll, err)
	}

	node, err := e.parse(expanded)
	if err != nil {
		return nil, wrapPipelineError(err)
	}

	evaluator := internal.NewEvaluator(internal.EvaluatorConfig{
		Source:       e.source,
		Variables:    table,
		ExplodeLimit: e.config.explodeLimit,
		MaxDice:      e.config.maxDice,
	}, e.logger)

	out, err := evaluator.Evaluate(node)
	if err != nil {
		return nil, wrapPipelineError(err)
	}
	return newResult(data.Expression, out), nil
}

// parse tokenizes and parses, consulting the expression cache when one is
// configured. Errors are internal pipeline errors.
func (e *Engine) parse(expanded string) (internal.Node, error) {
	cache := e.config.cache
	key := e.cacheKey(expanded)
	if cache != nil {
		if node, ok := cache.get(key); ok {
			e.logger.Debug(LogMsgCacheHit, zap.String(LogFieldExpanded, expanded))
			return node, nil
		}
	}

	lexer := internal.NewLexerWithConfig(expanded, internal.LexerConfig{Strict: e.config.strict}, e.logger)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}
	node, err := internal.NewParser(tokens, e.logger).Parse()
	if err != nil {
		return nil, err
	}

	if cache != nil {
		cache.set(key, node)
	}
	return node, nil
}

func (e *Engine) cacheKey(expanded string) string {
	key := internal.Normalize(expanded)
	if e.config.strict {
		return cacheKeyStrictPrefix + key
	}
	return key
}

func (e *Engine) expand(expression string) string {
	if !e.config.aliases {
		return expression
	}
	expanded := ExpandAliases(expression)
	if expanded != expression {
		e.logger.Debug(LogMsgAliasExpanded,
			zap.String(LogFieldExpression, expression),
			zap.String(LogFieldExpanded, expanded),
		)
	}
	return expanded
}

// NormalizeVariables returns a copy of the table with names uppercased and
// any leading @ removed. Nil yields an empty table.
func NormalizeVariables(variables map[string]int) map[string]int {
	table := make(map[string]int, len(variables))
	for name, value := range variables {
		table[strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(name), "@"))] = value
	}
	return table
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

func getDefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = MustNew()
	})
	return defaultEngine
}

// Roll evaluates an expression on a default engine backed by CryptoSource.
func Roll(expression string, variables map[string]int) *Result {
	return getDefaultEngine().Roll(expression, variables)
}

// Validate reports whether an expression parses, using the default engine.
func Validate(expression string) error {
	return getDefaultEngine().Validate(expression)
}
