package dice

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds engine settings read from the environment.
type Config struct {
	ExplodeLimit    int           `env:"DICE_EXPLODE_LIMIT"     envDefault:"100"`
	MaxDice         int           `env:"DICE_MAX_DICE"          envDefault:"10000"`
	StrictLexing    bool          `env:"DICE_STRICT_LEXING"     envDefault:"false"`
	Aliases         bool          `env:"DICE_ALIASES"           envDefault:"true"`
	CacheEnabled    bool          `env:"DICE_CACHE_ENABLED"     envDefault:"false"`
	CacheTTL        time.Duration `env:"DICE_CACHE_TTL"         envDefault:"10m"`
	CacheMaxEntries int           `env:"DICE_CACHE_MAX_ENTRIES" envDefault:"1000"`
	LogLevel        string        `env:"DICE_LOG_LEVEL"         envDefault:"info"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		ExplodeLimit:    DefaultExplodeLimit,
		MaxDice:         DefaultMaxDice,
		StrictLexing:    false,
		Aliases:         true,
		CacheEnabled:    false,
		CacheTTL:        DefaultCacheTTL,
		CacheMaxEntries: DefaultCacheMaxEntries,
		LogLevel:        zapcore.InfoLevel.String(),
	}
}

// LoadConfig loads the given .env files, if present, and then parses the
// environment. Files that do not exist are skipped; variables already set in
// the process environment win over file values.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, path := range envFiles {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return Config{}, NewConfigError(ErrMsgEnvFileLoad, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, NewConfigError(ErrMsgConfigParse, err)
	}
	return cfg, nil
}

// Options converts the configuration into engine options.
func (c Config) Options() []Option {
	opts := []Option{
		WithExplodeLimit(c.ExplodeLimit),
		WithMaxDice(c.MaxDice),
		WithStrictLexing(c.StrictLexing),
		WithAliases(c.Aliases),
	}
	if c.CacheEnabled {
		opts = append(opts, WithExpressionCache(NewExpressionCache(ExpressionCacheConfig{
			TTL:        c.CacheTTL,
			MaxEntries: c.CacheMaxEntries,
		})))
	}
	return opts
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, NewConfigError(ErrMsgInvalidLogLevel, err)
	}
	return level, nil
}

// Logger builds a production zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigParse, err)
	}
	return logger, nil
}
