package dice

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	source       RandomSource
	explodeLimit int
	maxDice      int
	strict       bool
	aliases      bool
	cache        *ExpressionCache
	hooks        *HookRegistry
	logger       *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		source:       nil,
		explodeLimit: DefaultExplodeLimit,
		maxDice:      DefaultMaxDice,
		strict:       false,
		aliases:      true,
		logger:       nil,
	}
}

// WithRandomSource sets the source of randomness.
// Default: CryptoSource
func WithRandomSource(source RandomSource) Option {
	return func(c *engineConfig) {
		c.source = source
	}
}

// WithExplodeLimit caps the explosions of one dice term.
// Values below 1 keep the default.
// Default: 100
func WithExplodeLimit(limit int) Option {
	return func(c *engineConfig) {
		if limit > 0 {
			c.explodeLimit = limit
		}
	}
}

// WithMaxDice caps the dice one term may roll up front.
// Default: 10000
func WithMaxDice(n int) Option {
	return func(c *engineConfig) {
		if n > 0 {
			c.maxDice = n
		}
	}
}

// WithStrictLexing makes unrecognized characters a LexAnomaly error instead
// of skipping them.
// Default: false
func WithStrictLexing(strict bool) Option {
	return func(c *engineConfig) {
		c.strict = strict
	}
}

// WithAliases toggles expansion of the adv and dis shorthands.
// Default: true
func WithAliases(enabled bool) Option {
	return func(c *engineConfig) {
		c.aliases = enabled
	}
}

// WithExpressionCache caches parsed expressions in the given cache.
// Default: nil (no caching)
func WithExpressionCache(cache *ExpressionCache) Option {
	return func(c *engineConfig) {
		c.cache = cache
	}
}

// WithHook registers a hook for a roll lifecycle point.
func WithHook(point HookPoint, hook Hook) Option {
	return func(c *engineConfig) {
		if c.hooks == nil {
			c.hooks = NewHookRegistry()
		}
		c.hooks.Register(point, hook)
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
