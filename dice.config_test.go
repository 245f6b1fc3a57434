package dice

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// clearDiceEnv blanks every variable LoadConfig reads so the process
// environment cannot leak into a test.
func clearDiceEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvExplodeLimit, EnvMaxDice, EnvStrictLexing, EnvAliases,
		EnvCacheEnabled, EnvCacheTTL, EnvCacheMaxEntries, EnvLogLevel,
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearDiceEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearDiceEnv(t)
	t.Setenv(EnvExplodeLimit, "12")
	t.Setenv(EnvMaxDice, "50")
	t.Setenv(EnvStrictLexing, "true")
	t.Setenv(EnvAliases, "false")
	t.Setenv(EnvCacheEnabled, "true")
	t.Setenv(EnvCacheTTL, "90s")
	t.Setenv(EnvCacheMaxEntries, "64")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.ExplodeLimit)
	assert.Equal(t, 50, cfg.MaxDice)
	assert.True(t, cfg.StrictLexing)
	assert.False(t, cfg.Aliases)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 64, cfg.CacheMaxEntries)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearDiceEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DICE_EXPLODE_LIMIT=7\nDICE_STRICT_LEXING=true\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv(EnvExplodeLimit)
		_ = os.Unsetenv(EnvStrictLexing)
	})

	cfg, err := LoadConfig(path, filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.ExplodeLimit)
	assert.True(t, cfg.StrictLexing)
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	clearDiceEnv(t)
	t.Setenv(EnvExplodeLimit, "lots")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgConfigParse)
}

func TestConfig_Options(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExplodeLimit = 3
	cfg.StrictLexing = true
	cfg.CacheEnabled = true

	engine := MustNew(cfg.Options()...)

	assert.Equal(t, 3, engine.config.explodeLimit)
	assert.True(t, engine.config.strict)
	require.NotNil(t, engine.config.cache)
	assert.Equal(t, DefaultCacheTTL, engine.config.cache.config.TTL)

	plain := MustNew(DefaultConfig().Options()...)
	assert.Nil(t, plain.config.cache)
}

func TestConfig_Level(t *testing.T) {
	cfg := DefaultConfig()

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	cfg.LogLevel = "warn"
	level, err = cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	cfg.LogLevel = "chatty"
	_, err = cfg.Level()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidLogLevel)

	_, err = cfg.Logger()
	assert.Error(t, err)
}

func TestConfig_Logger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "error"

	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}
