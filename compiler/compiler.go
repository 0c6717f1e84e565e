// Package compiler implements glint's single-pass compiler: a Pratt parser
// that emits bytecode directly as it parses, with no intermediate AST.
package compiler

import (
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"glint/chunk"
	"glint/scanner"
	"glint/token"
	"glint/value"
)

// Precedence levels, low to high. All eleven are carried even though this
// grammar only populates rules for Term, Factor, Equality, and Comparison;
// Assignment/Or/And/Call round out the table shape a TokenKind lookup walks
// through, future-proofing it rather than leaving it dead.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

// parseAction names a parse-table entry's behavior. Using a named action
// instead of a raw function pointer keeps the rule table a plain data
// value (spec's "static dispatch" note) while still giving O(1) lookup.
type parseAction int

const (
	actionNone parseAction = iota
	actionGrouping
	actionUnary
	actionBinary
	actionNumber
	actionLiteral
)

type parseRule struct {
	prefix, infix parseAction
	precedence    Precedence
}

var rules = map[token.Kind]parseRule{
	token.LeftParen:    {prefix: actionGrouping},
	token.Minus:        {prefix: actionUnary, infix: actionBinary, precedence: PrecTerm},
	token.Plus:         {infix: actionBinary, precedence: PrecTerm},
	token.Slash:        {infix: actionBinary, precedence: PrecFactor},
	token.Star:         {infix: actionBinary, precedence: PrecFactor},
	token.Bang:         {prefix: actionUnary},
	token.BangEqual:    {infix: actionBinary, precedence: PrecEquality},
	token.EqualEqual:   {infix: actionBinary, precedence: PrecEquality},
	token.Greater:      {infix: actionBinary, precedence: PrecComparison},
	token.GreaterEqual: {infix: actionBinary, precedence: PrecComparison},
	token.Less:         {infix: actionBinary, precedence: PrecComparison},
	token.LessEqual:    {infix: actionBinary, precedence: PrecComparison},
	token.Number:       {prefix: actionNumber},
	token.False:        {prefix: actionLiteral},
	token.Nil:          {prefix: actionLiteral},
	token.True:         {prefix: actionLiteral},
}

func ruleFor(kind token.Kind) parseRule {
	return rules[kind] // zero value is {actionNone, actionNone, PrecNone}
}

// Debug enables disassembly logging at the end of a successful compile.
var Debug = false

// Parser holds single-pass compiler state: the token stream, the chunk
// being built, and panic-mode error bookkeeping.
type Parser struct {
	scanner *scanner.Scanner
	chunk   *chunk.Chunk

	previous, current token.Token
	hadError          bool
	panicMode         bool
	errors            *multierror.Error
}

// Compile compiles source into a Chunk. It returns the chunk (always
// non-nil and internally consistent, even on failure) and a non-nil error
// iff any compile error was reported.
func Compile(source string) (*chunk.Chunk, error) {
	p := &Parser{
		scanner: scanner.New(source),
		chunk:   chunk.New(),
		errors:  &multierror.Error{ErrorFormat: errorListFormat},
	}

	p.advance()
	p.expression()
	p.consume(token.Eof, "Expect end of expression.")
	p.endCompiler()

	return p.chunk, p.errors.ErrorOrNil()
}

func (p *Parser) expression() {
	p.parsePrecedence(PrecAssignment)
}

func (p *Parser) parsePrecedence(prec Precedence) {
	p.advance()
	prefix := ruleFor(p.previous.Kind).prefix
	if prefix == actionNone {
		p.error("Expect expression.")
		return
	}
	p.applyAction(prefix)

	for prec <= ruleFor(p.current.Kind).precedence {
		p.advance()
		infix := ruleFor(p.previous.Kind).infix
		p.applyAction(infix)
	}
}

func (p *Parser) applyAction(action parseAction) {
	switch action {
	case actionGrouping:
		p.grouping()
	case actionUnary:
		p.unary()
	case actionBinary:
		p.binary()
	case actionNumber:
		p.number()
	case actionLiteral:
		p.literal()
	}
}

func (p *Parser) grouping() {
	p.expression()
	p.consume(token.RightParen, "Expect ')' after expression.")
}

func (p *Parser) number() {
	n, err := strconv.ParseFloat(p.previous.Lexeme, 64)
	if err != nil {
		p.error("Expect expression.")
		return
	}
	p.emitConstant(value.Number(n))
}

func (p *Parser) literal() {
	switch p.previous.Kind {
	case token.False:
		p.emitByte(byte(chunk.OpFalse))
	case token.Nil:
		p.emitByte(byte(chunk.OpNil))
	case token.True:
		p.emitByte(byte(chunk.OpTrue))
	}
}

func (p *Parser) unary() {
	op := p.previous.Kind
	p.parsePrecedence(PrecUnary)
	switch op {
	case token.Bang:
		p.emitByte(byte(chunk.OpNot))
	case token.Minus:
		p.emitByte(byte(chunk.OpNegate))
	}
}

func (p *Parser) binary() {
	op := p.previous.Kind
	rule := ruleFor(op)
	p.parsePrecedence(rule.precedence + 1)

	switch op {
	case token.BangEqual:
		p.emitBytes(byte(chunk.OpEqual), byte(chunk.OpNot))
	case token.EqualEqual:
		p.emitByte(byte(chunk.OpEqual))
	case token.Greater:
		p.emitByte(byte(chunk.OpGreater))
	case token.GreaterEqual:
		p.emitBytes(byte(chunk.OpLess), byte(chunk.OpNot))
	case token.Less:
		p.emitByte(byte(chunk.OpLess))
	case token.LessEqual:
		p.emitBytes(byte(chunk.OpGreater), byte(chunk.OpNot))
	case token.Plus:
		p.emitByte(byte(chunk.OpAdd))
	case token.Minus:
		p.emitByte(byte(chunk.OpSubtract))
	case token.Star:
		p.emitByte(byte(chunk.OpMultiply))
	case token.Slash:
		p.emitByte(byte(chunk.OpDivide))
	}
}

/* token stream helpers */

func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.scanner.Next()
		if p.current.Kind != token.Error {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *Parser) consume(kind token.Kind, message string) {
	if p.current.Kind == kind {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

/* emission helpers */

func (p *Parser) emitByte(b byte) {
	p.chunk.Write(b, p.previous.Line)
}

func (p *Parser) emitBytes(b1, b2 byte) {
	p.emitByte(b1)
	p.emitByte(b2)
}

func (p *Parser) emitReturn() {
	p.emitByte(byte(chunk.OpReturn))
}

func (p *Parser) emitConstant(v value.Value) {
	p.emitBytes(byte(chunk.OpConstant), p.makeConstant(v))
}

// makeConstant reports "Too many constants in one chunk." and returns 0 to
// keep compiling when the pool would overflow a byte index.
func (p *Parser) makeConstant(v value.Value) byte {
	index := p.chunk.AddConstant(v)
	if index > 255 {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return byte(index)
}

func (p *Parser) endCompiler() {
	p.emitReturn()
	if Debug && !p.hadError {
		logrus.Debugln(p.chunk.Disassemble("code"))
	}
}

/* error reporting */

func (p *Parser) error(message string) {
	p.errorAt(p.previous, message)
}

func (p *Parser) errorAtCurrent(message string) {
	p.errorAt(p.current, message)
}

func (p *Parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	var where string
	switch {
	case tok.Kind == token.Eof:
		where = " at end"
	case tok.Kind == token.Error:
		where = ""
	default:
		where = " at '" + tok.Lexeme + "'"
	}

	err := CompileError{Line: tok.Line, Where: where, Reason: message}
	if Debug {
		logrus.Debugln(err)
	}
	p.errors = multierror.Append(p.errors, err)
}
