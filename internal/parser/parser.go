// Package parser builds an AST from a token stream by recursive descent
// with precedence climbing for expressions (spec §4.2).
package parser

import (
	"fmt"

	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/lexer"
	"github.com/iziteam/izi/internal/token"
)

// Error is a single parse error with its source position.
type Error struct {
	Pos     token.Position
	Message string
}

func (e Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Message) }

// Parser consumes a token stream and emits a tree of Stmt/Expr nodes.
// On a parse error it records the error and recovers by skipping to the
// next statement boundary, so a single file can report several errors
// (spec §4.2 Error recovery).
type Parser struct {
	lex *lexer.Lexer

	cur  token.Token
	next token.Token

	errors     []Error
	prevLine   int // line of the token just consumed, for newline-as-terminator
}

// New creates a Parser reading tokens from lex.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.advance()
	p.advance()
	return p
}

// Errors returns every parse error accumulated during ParseProgram.
func (p *Parser) Errors() []Error { return p.errors }

func (p *Parser) advance() {
	p.prevLine = p.cur.Pos.Line
	p.cur = p.next
	p.next = p.lex.Next()
}

func (p *Parser) check(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(k token.Kind, context string) token.Token {
	if p.check(k) {
		t := p.cur
		p.advance()
		return t
	}
	p.errorf("expected %s %s, got %s %q", k, context, p.cur.Kind, p.cur.Lexeme)
	return p.cur
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, Error{Pos: p.cur.Pos, Message: fmt.Sprintf(format, args...)})
}

// statementTerminated consumes a trailing ';' if present; otherwise
// accepts an implicit newline terminator only when the next token starts
// a new statement on a new source line (spec §4.2 Semicolons). Two
// statements on one line without an intervening ';' is a syntax error.
func (p *Parser) statementTerminated() {
	if p.check(token.Semicolon) {
		p.advance()
		return
	}
	if p.cur.Pos.Line > p.prevLine || p.check(token.EndOfFile) || p.check(token.RightBrace) {
		return
	}
	p.errorf("expected ';' before %q", p.cur.Lexeme)
}

// synchronize advances until a statement-boundary keyword or ';' is
// found, so that one parse error does not cascade into spurious ones.
func (p *Parser) synchronize() {
	for !p.check(token.EndOfFile) {
		if p.cur.Kind == token.Semicolon {
			p.advance()
			return
		}
		switch p.cur.Kind {
		case token.Class, token.Fn, token.Var, token.For, token.If,
			token.While, token.Return, token.Import, token.Export,
			token.Try, token.Throw, token.Break, token.Continue:
			return
		}
		p.advance()
	}
}

// ParseProgram parses the full token stream into a Program, recording
// (not aborting on) any errors.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.check(token.EndOfFile) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}
