package internal

import (
	"strconv"

	"go.uber.org/zap"
)

// Parser builds an AST from a dice notation token stream using recursive
// descent. A leading number is ambiguous between a literal and a dice count,
// so factor parsing checkpoints the cursor and rewinds when the dice
// production does not match.
type Parser struct {
	tokens   []Token
	pos      int
	farthest *ParseError
	logger   *zap.Logger
}

// NewParser creates a new parser
func NewParser(tokens []Token, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldTokens, len(tokens)))
	return &Parser{
		tokens: tokens,
		logger: logger,
	}
}

// Parse parses the token stream and returns the root node
func (p *Parser) Parse() (Node, error) {
	p.logger.Debug(LogMsgParserStart)

	if p.isAtEnd() {
		return nil, NewParseError(ErrMsgEmptyExpression, p.peek())
	}

	node, err := p.parseTarget()
	if err != nil {
		return nil, p.explain(err)
	}

	if !p.isAtEnd() {
		return nil, p.explain(NewParseError(ErrMsgUnexpectedToken, p.peek()))
	}

	p.logger.Debug(LogMsgParserEnd)
	return node, nil
}

// parseTarget parses an expression with an optional trailing target clause
func (p *Parser) parseTarget() (Node, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.match(TokenTypeTarget) {
		return expr, nil
	}

	if !p.check(TokenTypeComparison) {
		return nil, NewParseError(ErrMsgExpectedCompare, p.peek())
	}
	op, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	threshold, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	return &TargetNode{Expr: expr, Op: op, Threshold: threshold}, nil
}

// parseExpression parses additive expressions
func (p *Parser) parseExpression() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.matchOperator(string(CharPlus), string(CharMinus)) {
		op := p.previous().Value
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = NewBinary(left, op, right)
	}

	return left, nil
}

// parseTerm parses multiplicative expressions
func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.matchOperator(string(CharStar), string(CharSlash)) {
		op := p.previous().Value
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = NewBinary(left, op, right)
	}

	return left, nil
}

// parseFactor tries a dice production first and falls back to an atom
func (p *Parser) parseFactor() (Node, error) {
	checkpoint := p.pos

	node, diceErr := p.parseDice()
	if diceErr == nil {
		return node, nil
	}

	p.pos = checkpoint
	p.remember(diceErr)
	p.logger.Debug(LogMsgParserBacktrack, zap.Int(LogFieldPosition, p.peek().Pos))

	return p.parseAtom()
}

// remember records the failure that got furthest into the input
func (p *Parser) remember(err error) {
	pe, ok := err.(*ParseError)
	if !ok {
		return
	}
	if p.farthest == nil || pe.Pos > p.farthest.Pos {
		p.farthest = pe
	}
}

// explain reports the abandoned dice failure instead of err when that
// failure reached further, so "2d" blames the missing sides rather than
// the stray dice marker left behind by the fallback.
func (p *Parser) explain(err error) error {
	pe, ok := err.(*ParseError)
	if !ok || p.farthest == nil || p.farthest.Pos <= pe.Pos {
		return err
	}
	return p.farthest
}

// parseDice parses a special term, NdS or NdF with optional modifiers
func (p *Parser) parseDice() (Node, error) {
	if p.match(TokenTypeSpecial) {
		return p.parseSpecial()
	}

	count := Literal(1)
	if p.check(TokenTypeNumber) || p.check(TokenTypeVariable) {
		operand, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		count = operand
	}

	if p.match(TokenTypeDice) {
		if !p.check(TokenTypeNumber) && !p.check(TokenTypeVariable) {
			return nil, NewParseError(ErrMsgExpectedSides, p.peek())
		}
		sides, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		mods, err := p.parseModifiers()
		if err != nil {
			return nil, err
		}
		return &DiceNode{Count: count, Sides: sides, Modifiers: mods}, nil
	}

	if p.match(TokenTypeFate) {
		mods, err := p.parseModifiers()
		if err != nil {
			return nil, err
		}
		return &DiceNode{Count: count, Sides: Literal(FateSides), Fate: true, Modifiers: mods}, nil
	}

	return nil, NewParseError(ErrMsgExpectedDice, p.peek())
}

// parseSpecial parses interleaved aN / dN pool sizes after the special marker
func (p *Parser) parseSpecial() (Node, error) {
	node := &SpecialNode{Advantage: Literal(0), Disadvantage: Literal(0)}

	for {
		switch {
		case p.match(TokenTypeAdvantage):
			operand, err := p.parseOperand()
			if err != nil {
				return nil, err
			}
			node.Advantage = operand
		case p.match(TokenTypeDice):
			operand, err := p.parseOperand()
			if err != nil {
				return nil, err
			}
			node.Disadvantage = operand
		default:
			mods, err := p.parseModifiers()
			if err != nil {
				return nil, err
			}
			node.Modifiers = mods
			return node, nil
		}
	}
}

// parseModifiers greedily consumes a run of modifier and comparison tokens
func (p *Parser) parseModifiers() ([]Modifier, error) {
	var mods []Modifier

	for p.check(TokenTypeModifier) || p.check(TokenTypeComparison) {
		if p.check(TokenTypeComparison) {
			op, err := p.parseComparison()
			if err != nil {
				return nil, err
			}
			threshold, err := p.parseOperand()
			if err != nil {
				return nil, err
			}
			mods = append(mods, &SuccessModifier{Op: op, Threshold: threshold})
			continue
		}

		tok := p.advance()
		switch tok.Value {
		case ModKeepHigh, ModKeepLow:
			count, err := p.parseCount()
			if err != nil {
				return nil, err
			}
			mods = append(mods, &KeepModifier{High: tok.Value == ModKeepHigh, Count: count})

		case ModDropHigh, ModDropLow:
			count, err := p.parseCount()
			if err != nil {
				return nil, err
			}
			mods = append(mods, &DropModifier{High: tok.Value == ModDropHigh, Count: count})

		case ModExplode:
			mod := &ExplodeModifier{Op: CompareGte}
			if p.check(TokenTypeComparison) {
				op, err := p.parseComparison()
				if err != nil {
					return nil, err
				}
				threshold, err := p.parseOperand()
				if err != nil {
					return nil, err
				}
				mod.Op = op
				mod.Threshold = &threshold
			}
			mods = append(mods, mod)

		case ModReroll, ModRerollContinue:
			op := CompareLte
			if p.check(TokenTypeComparison) {
				parsed, err := p.parseComparison()
				if err != nil {
					return nil, err
				}
				op = parsed
			}
			threshold, err := p.parseOperand()
			if err != nil {
				return nil, err
			}
			mods = append(mods, &RerollModifier{Once: tok.Value == ModReroll, Op: op, Threshold: threshold})

		default:
			return nil, NewParseError(ErrMsgUnknownModifier, tok)
		}
	}

	return mods, nil
}

// parseCount parses a keep/drop count; a bare kh/kl/dh/dl means one die
func (p *Parser) parseCount() (Operand, error) {
	if !p.check(TokenTypeNumber) && !p.check(TokenTypeVariable) {
		return Literal(1), nil
	}
	return p.parseOperand()
}

// parseAtom parses a number, a variable or a parenthesized expression
func (p *Parser) parseAtom() (Node, error) {
	switch {
	case p.check(TokenTypeNumber):
		tok := p.advance()
		value, err := strconv.Atoi(tok.Value)
		if err != nil {
			return nil, NewParseError(ErrMsgInvalidNumber, tok)
		}
		return NewNumber(value), nil

	case p.check(TokenTypeVariable):
		return NewVariable(p.advance().Value), nil

	case p.match(TokenTypeLParen):
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.match(TokenTypeRParen) {
			return nil, NewParseError(ErrMsgExpectedRParen, p.peek())
		}
		return expr, nil
	}

	if p.isAtEnd() {
		return nil, NewParseError(ErrMsgUnexpectedEOF, p.peek())
	}
	return nil, NewParseError(ErrMsgUnexpectedToken, p.peek())
}

// parseOperand parses a number or variable operand
func (p *Parser) parseOperand() (Operand, error) {
	switch {
	case p.check(TokenTypeNumber):
		tok := p.advance()
		value, err := strconv.Atoi(tok.Value)
		if err != nil {
			return Operand{}, NewParseError(ErrMsgInvalidNumber, tok)
		}
		return Literal(value), nil
	case p.check(TokenTypeVariable):
		return VarOperand(p.advance().Value), nil
	default:
		return Operand{}, NewParseError(ErrMsgExpectedOperand, p.peek())
	}
}

// parseComparison consumes a comparison token
func (p *Parser) parseComparison() (Comparison, error) {
	tok := p.advance()
	op, ok := ParseComparison(tok.Value)
	if !ok {
		return "", NewParseError(ErrMsgUnexpectedToken, tok)
	}
	return op, nil
}

// Helper methods

// match checks if the current token matches and advances if so
func (p *Parser) match(tokenType TokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}

// matchOperator matches an operator token with one of the given values
func (p *Parser) matchOperator(values ...string) bool {
	if !p.check(TokenTypeOperator) {
		return false
	}
	for _, v := range values {
		if p.peek().Value == v {
			p.advance()
			return true
		}
	}
	return false
}

// check returns true if the current token is of the given type
func (p *Parser) check(tokenType TokenType) bool {
	return p.peek().Type == tokenType
}

// advance moves to the next token and returns the consumed one
func (p *Parser) advance() Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

// peek returns the current token
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return NewEOFToken(p.endPos())
	}
	return p.tokens[p.pos]
}

// previous returns the last consumed token
func (p *Parser) previous() Token {
	if p.pos == 0 {
		return p.peek()
	}
	return p.tokens[p.pos-1]
}

// isAtEnd returns true once only EOF remains
func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens) || p.tokens[p.pos].Type == TokenTypeEOF
}

func (p *Parser) endPos() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].Pos
}

// ParseExpression is a convenience function that tokenizes and parses notation
func ParseExpression(input string) (Node, error) {
	tokens, err := NewLexer(input, nil).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens, nil).Parse()
}
