package internal

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	// Strict turns unrecognized characters into a LexError instead of
	// silently skipping them.
	Strict bool
}

// DefaultLexerConfig returns the default lexer configuration
func DefaultLexerConfig() LexerConfig {
	return LexerConfig{Strict: false}
}

// Lexer tokenizes dice notation into a token stream.
//
// The input is lowercased before scanning and token offsets refer to the
// normalized text. Whitespace is insignificant: lookahead for keyword pairs
// and comparisons skips it, so "1d20 t >= 15" scans like "1d20t>=15". It
// only ends number and variable runs, so "@prof t>=15" keeps the name intact.
type Lexer struct {
	input  string
	config LexerConfig
	pos    int
	tokens []Token
	logger *zap.Logger
}

// NewLexer creates a new lexer with default configuration
func NewLexer(input string, logger *zap.Logger) *Lexer {
	return NewLexerWithConfig(input, DefaultLexerConfig(), logger)
}

// NewLexerWithConfig creates a lexer with custom configuration
func NewLexerWithConfig(input string, config LexerConfig, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	normalized := Normalize(input)
	logger.Debug(LogMsgLexerCreated,
		zap.Int(LogFieldSource, len(normalized)),
		zap.Bool(LogFieldStrict, config.Strict),
	)
	return &Lexer{
		input:  normalized,
		config: config,
		logger: logger,
	}
}

// Normalize lowercases the input and trims surrounding whitespace
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// Input returns the normalized text being scanned
func (l *Lexer) Input() string {
	return l.input
}

// Tokenize processes the input and returns a token stream ending in EOF.
// It only fails in strict mode.
func (l *Lexer) Tokenize() ([]Token, error) {
	l.logger.Debug(LogMsgTokenizerStart)
	l.tokens = l.tokens[:0]

	for !l.isAtEnd() {
		start := l.pos
		ch := l.peek()

		switch {
		case isSpace(ch):
			l.pos++
		case isDigit(ch):
			l.emit(TokenTypeNumber, l.readWhile(isDigit), start)
		case ch == CharVariable:
			l.pos++
			name := l.readWhile(isIdentChar)
			l.emit(TokenTypeVariable, string(CharVariable)+name, start)
		case ch == CharDice:
			l.scanD()
		case ch == CharKeep:
			if next, at := l.lookahead(); next == CharHigh || next == CharLow {
				l.pos = at + 1
				l.emit(TokenTypeModifier, string([]byte{CharKeep, next}), start)
				continue
			}
			if err := l.skip(); err != nil {
				return nil, err
			}
		case ch == CharReroll:
			if l.scanReroll() {
				continue
			}
			if err := l.skip(); err != nil {
				return nil, err
			}
		case ch == CharExplode:
			l.pos++
			l.emit(TokenTypeModifier, ModExplode, start)
		case ch == CharAdvantage && startsOperand(l.peekNext()):
			l.pos++
			l.emit(TokenTypeAdvantage, MarkerAdvantage, start)
		case ch == CharTarget && isComparisonChar(l.peekNext()):
			l.pos++
			l.emit(TokenTypeTarget, MarkerTarget, start)
		case ch == CharPlus || ch == CharMinus || ch == CharStar || ch == CharSlash:
			l.pos++
			l.emit(TokenTypeOperator, string(ch), start)
		case ch == CharLParen:
			l.pos++
			l.emit(TokenTypeLParen, string(ch), start)
		case ch == CharRParen:
			l.pos++
			l.emit(TokenTypeRParen, string(ch), start)
		case isComparisonChar(ch):
			l.emit(TokenTypeComparison, l.readComparison(), start)
		default:
			if err := l.skip(); err != nil {
				return nil, err
			}
		}
	}

	l.tokens = append(l.tokens, NewEOFToken(l.pos))
	l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldTokens, len(l.tokens)))
	return l.tokens, nil
}

// scanD resolves the ambiguity of the letter d:
//
//	d + f              -> Fate marker
//	d + h|l in a tail  -> drop modifier (4d6dh1)
//	d + h otherwise    -> special mechanic marker (dh a2)
//	d                  -> dice marker
func (l *Lexer) scanD() {
	start := l.pos
	next, at := l.lookahead()

	switch {
	case next == CharFate:
		l.pos = at + 1
		l.emit(TokenTypeFate, MarkerFate, start)
	case (next == CharHigh || next == CharLow) && l.inDiceTail():
		l.pos = at + 1
		l.emit(TokenTypeModifier, string([]byte{CharDice, next}), start)
	case next == CharHigh:
		l.pos = at + 1
		l.emit(TokenTypeSpecial, MarkerSpecial, start)
	default:
		l.pos++
		l.emit(TokenTypeDice, MarkerDice, start)
	}
}

// scanReroll emits r or ro when it opens a reroll condition on a dice term.
// Anywhere else the letter is left for skip.
func (l *Lexer) scanReroll() bool {
	if !l.inDiceTail() {
		return false
	}
	start := l.pos
	value, end := ModReroll, l.pos+1
	if next, at := l.lookahead(); next == CharRerollOnce {
		value, end = ModRerollContinue, at+1
	}
	if after, _ := l.significantFrom(end); !startsOperand(after) && !isComparisonChar(after) {
		return false
	}
	l.pos = end
	l.emit(TokenTypeModifier, value, start)
	return true
}

// inDiceTail reports whether the previous token can end a dice operand, in
// which case a following dh/dl is a modifier rather than a new term.
func (l *Lexer) inDiceTail() bool {
	if len(l.tokens) == 0 {
		return false
	}
	prev := l.tokens[len(l.tokens)-1]
	switch prev.Type {
	case TokenTypeNumber, TokenTypeVariable, TokenTypeFate:
		return true
	case TokenTypeModifier:
		return prev.Value == ModExplode
	default:
		return false
	}
}

// readComparison reads a comparison operator, two characters at most
func (l *Lexer) readComparison() string {
	start := l.pos
	ch := l.peek()
	l.pos++
	if ch == CharGreater || ch == CharLess {
		if next, at := l.significantFrom(l.pos); next == CharEquals {
			l.pos = at + 1
			return string([]byte{ch, CharEquals})
		}
	}
	return l.input[start:l.pos]
}

// readWhile consumes characters while the predicate holds
func (l *Lexer) readWhile(pred func(byte) bool) string {
	start := l.pos
	for !l.isAtEnd() && pred(l.peek()) {
		l.pos++
	}
	return l.input[start:l.pos]
}

// skip drops an unrecognized character, or fails in strict mode
func (l *Lexer) skip() error {
	ch := l.peek()
	if l.config.Strict {
		return NewLexError(ErrMsgUnexpectedChar, l.pos, string(ch))
	}
	l.logger.Debug(LogMsgCharSkipped,
		zap.String(LogFieldChar, string(ch)),
		zap.Int(LogFieldPosition, l.pos),
	)
	l.pos++
	return nil
}

func (l *Lexer) emit(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, NewToken(tokenType, value, pos))
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// lookahead returns the first non-space character after the current one and
// its offset, or 0 at the end of input.
func (l *Lexer) lookahead() (byte, int) {
	return l.significantFrom(l.pos + 1)
}

func (l *Lexer) peekNext() byte {
	next, _ := l.lookahead()
	return next
}

func (l *Lexer) significantFrom(i int) (byte, int) {
	for i < len(l.input) && isSpace(l.input[i]) {
		i++
	}
	if i >= len(l.input) {
		return 0, i
	}
	return l.input[i], i
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.input)
}

func isSpace(ch byte) bool {
	return unicode.IsSpace(rune(ch))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || isDigit(ch) || ch == CharUnderscore
}

func startsOperand(ch byte) bool {
	return isDigit(ch) || ch == CharVariable
}

func isComparisonChar(ch byte) bool {
	return ch == CharGreater || ch == CharLess || ch == CharEquals
}

// Tokenize is a convenience function that tokenizes input with default configuration
func Tokenize(input string) []Token {
	tokens, _ := NewLexer(input, nil).Tokenize()
	return tokens
}
