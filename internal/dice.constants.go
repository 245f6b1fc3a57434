package internal

// Character constants
const (
	CharVariable   = '@'
	CharDice       = 'd'
	CharHigh       = 'h'
	CharLow        = 'l'
	CharFate       = 'f'
	CharKeep       = 'k'
	CharReroll     = 'r'
	CharRerollOnce = 'o'
	CharExplode    = '!'
	CharAdvantage  = 'a'
	CharTarget     = 't'
	CharPlus       = '+'
	CharMinus      = '-'
	CharStar       = '*'
	CharSlash      = '/'
	CharLParen     = '('
	CharRParen     = ')'
	CharGreater    = '>'
	CharLess       = '<'
	CharEquals     = '='
	CharUnderscore = '_'
)

// Modifier token values
const (
	ModKeepHigh       = "kh"
	ModKeepLow        = "kl"
	ModDropHigh       = "dh"
	ModDropLow        = "dl"
	ModExplode        = "!"
	ModReroll         = "r"
	ModRerollContinue = "ro"
)

// Marker token values
const (
	MarkerDice      = "d"
	MarkerSpecial   = "dh"
	MarkerFate      = "df"
	MarkerAdvantage = "a"
	MarkerTarget    = "t"
)

// Die group labels used to group rolls in the breakdown
const (
	GroupHope         = "hope"
	GroupFear         = "fear"
	GroupAdvantage    = "adv"
	GroupDisadvantage = "dis"
	GroupFate         = "dF"
	GroupDicePrefix   = "d"
)

// Special mechanic constants
const (
	DualitySides = 12
	PoolSides    = 6
)

// Fate die constants
const (
	FateSides   = 0 // sentinel, a Fate die has no numeric side count
	FateFaces   = 3
	FateMinFace = -1
	FateMaxFace = 1
)

// Classification tags for the special mechanic
const (
	TagCritical = "Critical"
	TagHope     = "Hope"
	TagFear     = "Fear"
)

// Evaluator defaults
const (
	DefaultExplodeLimit = 100
	DefaultMaxDice      = 10000
)

// Breakdown format constants
const (
	BreakdownPartSep    = " + "
	BreakdownRollSep    = ", "
	BreakdownPoolSep    = ","
	BreakdownExploded   = "!"
	BreakdownSuccess    = "✓"
	BreakdownPass       = "PASS"
	BreakdownFail       = "FAIL"
	FmtBreakdownTotal   = "= %d"
	FmtBreakdownEquals  = " = %d"
	FmtBreakdownSuccess = " = %d successes"
	FmtBreakdownTag     = " [%s]"
	FmtBreakdownTarget  = " vs %s%d → %s"
	FmtBreakdownDuality = "2d12: Hope(%d) + Fear(%d)"
	FmtBreakdownPool    = "%d%s%d %s: [%s] → max(%d)"
	FmtBreakdownGroup   = "%d%s"
	FmtBreakdownRolls   = " (%s)"
	FmtBreakdownDropped = " drop(%s)"
	FmtBreakdownReroll  = " reroll(%s)"
)

// Suggestion phrasing for undefined variables
const (
	SuggestionPrefix  = "did you mean "
	SuggestionSep     = ", "
	SuggestionLastSep = " or "
)

// Log message constants
const (
	LogMsgLexerCreated      = "lexer created"
	LogMsgTokenizerStart    = "starting tokenization"
	LogMsgTokenizerEnd      = "tokenization complete"
	LogMsgCharSkipped       = "unrecognized character skipped"
	LogMsgParserCreated     = "parser created"
	LogMsgParserStart       = "starting parse"
	LogMsgParserEnd         = "parse complete"
	LogMsgParserBacktrack   = "dice production failed, rewinding to atom"
	LogMsgEvaluatorCreated  = "evaluator created"
	LogMsgEvaluatorStart    = "starting evaluation"
	LogMsgEvaluatorEnd      = "evaluation complete"
	LogMsgExplodeLimitHit   = "explosion limit reached"
	LogMsgRerollChainCapped = "reroll chain capped"
)

// Log field names
const (
	LogFieldSource     = "source_length"
	LogFieldTokens     = "token_count"
	LogFieldChar       = "char"
	LogFieldPosition   = "position"
	LogFieldTotal      = "total"
	LogFieldRolls      = "roll_count"
	LogFieldLimit      = "limit"
	LogFieldExpression = "expression"
	LogFieldStrict     = "strict"
)
