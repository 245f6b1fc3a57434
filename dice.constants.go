package dice

import (
	"time"

	"github.com/itsatony/go-dice/internal"
)

// Version is the library version reported by the CLI
const Version = "1.0.0"

// Engine defaults
const (
	DefaultExplodeLimit = internal.DefaultExplodeLimit
	DefaultMaxDice      = internal.DefaultMaxDice
)

// Expression cache defaults
const (
	DefaultCacheTTL        = 10 * time.Minute
	DefaultCacheMaxEntries = 1000
)

// Error result formatting
const (
	ErrorBreakdownPrefix = "Error: "
)

// Alias replacements
const (
	AliasAdvantage         = "adv"
	AliasDisadvantage      = "dis"
	AliasAdvantageNotation = "2d20kh1"
	AliasDisadvantageNote  = "2d20kl1"
)

// Variable sheet formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Variable file extensions
const (
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtJSON = ".json"
)

// Environment variable names read by LoadConfig
const (
	EnvExplodeLimit    = "DICE_EXPLODE_LIMIT"
	EnvMaxDice         = "DICE_MAX_DICE"
	EnvStrictLexing    = "DICE_STRICT_LEXING"
	EnvAliases         = "DICE_ALIASES"
	EnvCacheEnabled    = "DICE_CACHE_ENABLED"
	EnvCacheTTL        = "DICE_CACHE_TTL"
	EnvCacheMaxEntries = "DICE_CACHE_MAX_ENTRIES"
	EnvLogLevel        = "DICE_LOG_LEVEL"
)

// Metadata keys attached to errors
const (
	MetaKeyKind      = "kind"
	MetaKeyOffset    = "offset"
	MetaKeyToken     = "token"
	MetaKeyVariable  = "variable"
	MetaKeyHookPoint = "hook_point"
	MetaKeyPath      = "path"
	MetaKeyFormat    = "format"
	MetaKeyKey       = "key"
)

// Log message constants
const (
	LogMsgEngineCreated    = "dice engine created"
	LogMsgRollStart        = "rolling expression"
	LogMsgRollComplete     = "roll complete"
	LogMsgRollFailed       = "roll failed"
	LogMsgAliasExpanded    = "aliases expanded"
	LogMsgCacheHit         = "expression cache hit"
	LogMsgAfterHookFailed  = "after-roll hook failed"
	LogMsgSeededSource     = "using seeded random source"
	LogMsgEnvFileLoaded    = "environment file loaded"
	LogMsgVariablesLoaded  = "variable sheet loaded"
	LogMsgConfigLoaded     = "configuration loaded from environment"
	LogMsgAuditRecordBuilt = "audit record built"
)

// Log field names
const (
	LogFieldExpression = "expression"
	LogFieldExpanded   = "expanded"
	LogFieldTotal      = "total"
	LogFieldRolls      = "roll_count"
	LogFieldError      = "error"
	LogFieldKind       = "kind"
	LogFieldHookPoint  = "hook_point"
	LogFieldSeed       = "seed"
	LogFieldPath       = "path"
	LogFieldCount      = "count"
	LogFieldAuditID    = "audit_id"
	LogFieldLimit      = "explode_limit"
	LogFieldStrict     = "strict"
)
