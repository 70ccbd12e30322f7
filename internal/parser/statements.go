package parser

import (
	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/token"
)

func (p *Parser) parseDeclaration() ast.Stmt {
	errsBefore := len(p.errors)
	stmt := p.parseDeclarationInner()
	if len(p.errors) > errsBefore {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseDeclarationInner() ast.Stmt {
	switch p.cur.Kind {
	case token.Var:
		return p.parseVarStmt(false)
	case token.Fn:
		return p.parseFunctionStmt(false)
	case token.Async:
		if p.next.Kind == token.Fn {
			return p.parseFunctionStmt(false)
		}
	case token.Class:
		return p.parseClassStmt(false)
	case token.Import:
		return p.parseImportStmt()
	case token.Export:
		return p.parseExportStmt()
	}
	return p.parseStatement()
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Kind {
	case token.LeftBrace:
		return p.parseBlockStmt()
	case token.If:
		return p.parseIfStmt()
	case token.While:
		return p.parseWhileStmt()
	case token.For:
		return p.parseForStmt()
	case token.Return:
		return p.parseReturnStmt()
	case token.Break:
		tok := p.cur
		p.advance()
		p.statementTerminated()
		return &ast.BreakStmt{Token: tok}
	case token.Continue:
		tok := p.cur
		p.advance()
		p.statementTerminated()
		return &ast.ContinueStmt{Token: tok}
	case token.Try:
		return p.parseTryStmt()
	case token.Throw:
		return p.parseThrowStmt()
	case token.Print:
		return p.parsePrintStmt()
	case token.Match:
		return p.parseMatchStmt()
	}
	return p.parseExprStmt()
}

func (p *Parser) parseVarStmt(exported bool) ast.Stmt {
	tok := p.cur
	p.advance() // 'var'

	if p.check(token.LeftBracket) || p.check(token.LeftBrace) {
		pat := p.parsePattern()
		p.expect(token.Equal, "after destructuring pattern")
		init := p.parseExpression()
		p.statementTerminated()
		return &ast.VarStmt{Token: tok, Pattern: pat, Initializer: init, Exported: exported}
	}

	name := p.expect(token.Identifier, "as variable name")
	stmt := &ast.VarStmt{Token: tok, Name: name.Lexeme, Exported: exported}

	if p.match(token.Colon) {
		typeTok := p.cur
		p.advance()
		stmt.Type = &ast.TypeAnnotation{Tok: typeTok, Name: typeTok.Lexeme}
	}
	if p.match(token.Equal) {
		stmt.Initializer = p.parseExpression()
	}
	p.statementTerminated()
	return stmt
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	tok := p.cur
	p.expect(token.LeftBrace, "to start block")
	block := &ast.BlockStmt{Token: tok}
	for !p.check(token.RightBrace) && !p.check(token.EndOfFile) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.expect(token.RightBrace, "to close block")
	return block
}

func (p *Parser) parseIfStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LeftParen, "after 'if'")
	cond := p.parseExpression()
	p.expect(token.RightParen, "after if condition")
	then := p.parseStatement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.parseStatement()
	}
	return &ast.IfStmt{Token: tok, Condition: cond, Then: then, Else: elseBranch}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LeftParen, "after 'while'")
	cond := p.parseExpression()
	p.expect(token.RightParen, "after while condition")
	body := p.parseStatement()
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}
}

// parseForStmt desugars `for (init; cond; step) body` into
// `{ init; while (cond) { body; step; } }` (spec §4.2 Desugaring).
func (p *Parser) parseForStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LeftParen, "after 'for'")

	var init ast.Stmt
	if !p.check(token.Semicolon) {
		if p.check(token.Var) {
			init = p.parseVarStmt(false)
		} else {
			init = p.parseExprStmt()
		}
	} else {
		p.advance()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.parseExpression()
	}
	p.expect(token.Semicolon, "after for condition")

	var step ast.Expr
	if !p.check(token.RightParen) {
		step = p.parseExpression()
	}
	p.expect(token.RightParen, "after for clauses")

	body := p.parseStatement()

	if cond == nil {
		cond = &ast.Literal{Token: tok, Kind: ast.LiteralBool, Bool: true}
	}

	innerStatements := []ast.Stmt{body}
	if step != nil {
		innerStatements = append(innerStatements, &ast.ExprStmt{Token: tok, Expr: step})
	}
	loop := &ast.WhileStmt{
		Token:     tok,
		Condition: cond,
		Body:      &ast.BlockStmt{Token: tok, Statements: innerStatements},
	}

	outer := &ast.BlockStmt{Token: tok}
	if init != nil {
		outer.Statements = append(outer.Statements, init)
	}
	outer.Statements = append(outer.Statements, loop)
	return outer
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	var value ast.Expr
	if !p.check(token.Semicolon) && !p.check(token.RightBrace) && p.cur.Pos.Line == p.prevLine {
		value = p.parseExpression()
	}
	p.statementTerminated()
	return &ast.ReturnStmt{Token: tok, Value: value}
}

func (p *Parser) parsePrintStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LeftParen, "after 'print'")
	value := p.parseExpression()
	p.expect(token.RightParen, "after print argument")
	p.statementTerminated()
	return &ast.PrintStmt{Token: tok, Value: value}
}

func (p *Parser) parseThrowStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	value := p.parseExpression()
	p.statementTerminated()
	return &ast.ThrowStmt{Token: tok, Value: value}
}

func (p *Parser) parseTryStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	body := p.parseBlockStmt()
	stmt := &ast.TryStmt{Token: tok, Body: body}

	if p.match(token.Catch) {
		var name string
		if p.match(token.LeftParen) {
			name = p.expect(token.Identifier, "as catch variable").Lexeme
			p.expect(token.RightParen, "after catch variable")
		}
		stmt.Catch = &ast.CatchClause{Name: name, Body: p.parseBlockStmt()}
	}
	if p.match(token.Finally) {
		stmt.Finally = p.parseBlockStmt()
	}
	return stmt
}

func (p *Parser) parseMatchStmt() ast.Stmt {
	tok := p.cur
	expr := p.parseMatchExpr()
	p.statementTerminated()
	return &ast.MatchStmt{Token: tok, Match: expr}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	tok := p.cur
	expr := p.parseExpression()
	p.statementTerminated()
	return &ast.ExprStmt{Token: tok, Expr: expr}
}

func (p *Parser) parseFunctionStmt(exported bool) ast.Stmt {
	tok := p.cur
	async := p.match(token.Async)
	p.expect(token.Fn, "to start function declaration")
	name := p.expect(token.Identifier, "as function name")
	fn := p.parseFunctionTail(name.Lexeme, async)
	fn.Token = tok
	return &ast.FunctionStmt{Token: tok, Function: fn, Exported: exported}
}

// parseFunctionTail parses `(params) { body }` once `fn name` (or the
// anonymous `fn`) has already been consumed.
func (p *Parser) parseFunctionTail(name string, async bool) *ast.FunctionExpr {
	tok := p.cur
	p.expect(token.LeftParen, "after function name")
	var params []ast.Identifier
	for !p.check(token.RightParen) && !p.check(token.EndOfFile) {
		pt := p.expect(token.Identifier, "as parameter name")
		params = append(params, ast.Identifier{Token: pt, Name: pt.Lexeme})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RightParen, "after parameters")
	body := p.parseBlockStmt()
	return &ast.FunctionExpr{Token: tok, Name: name, Params: params, Body: body.Statements, Async: async}
}

func (p *Parser) parseClassStmt(exported bool) ast.Stmt {
	tok := p.cur
	p.advance()
	name := p.expect(token.Identifier, "as class name")
	class := &ast.ClassStmt{Token: tok, Name: name.Lexeme, Exported: exported}

	if p.match(token.Extends) {
		superTok := p.expect(token.Identifier, "as superclass name")
		class.Superclass = &ast.Identifier{Token: superTok, Name: superTok.Lexeme}
	}

	p.expect(token.LeftBrace, "to start class body")
	for !p.check(token.RightBrace) && !p.check(token.EndOfFile) {
		if p.check(token.Fn) || (p.check(token.Async) && p.next.Kind == token.Fn) {
			async := p.match(token.Async)
			p.advance() // 'fn'
			mname := p.expect(token.Identifier, "as method name")
			fn := p.parseFunctionTail(mname.Lexeme, async)
			class.Methods = append(class.Methods, &ast.FunctionStmt{Token: mname, Function: fn})
			continue
		}
		fname := p.expect(token.Identifier, "as field name")
		field := ast.Field{Name: fname.Lexeme}
		if p.match(token.Equal) {
			field.Initializer = p.parseExpression()
		}
		p.statementTerminated()
		class.Fields = append(class.Fields, field)
	}
	p.expect(token.RightBrace, "to close class body")
	return class
}

func (p *Parser) parseImportStmt() ast.Stmt {
	tok := p.cur
	p.advance()

	stmt := &ast.ImportStmt{Token: tok}

	switch {
	case p.check(token.String):
		stmt.Kind = ast.ImportSideEffect
		stmt.Path = p.cur.Lexeme
		p.advance()
	case p.check(token.Star):
		p.advance()
		p.expect(token.As, "after 'import *'")
		alias := p.expect(token.Identifier, "as namespace alias")
		stmt.Kind = ast.ImportNamespace
		stmt.Alias = alias.Lexeme
		p.expect(token.From, "after namespace alias")
		stmt.Path = p.expect(token.String, "as module path").Lexeme
	case p.check(token.LeftBrace):
		p.advance()
		stmt.Kind = ast.ImportNamed
		for !p.check(token.RightBrace) && !p.check(token.EndOfFile) {
			spec := ast.ImportSpecifier{Name: p.expect(token.Identifier, "as import name").Lexeme}
			if p.match(token.As) {
				spec.Alias = p.expect(token.Identifier, "as import alias").Lexeme
			}
			stmt.Specifiers = append(stmt.Specifiers, spec)
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.RightBrace, "to close import list")
		p.expect(token.From, "after import list")
		stmt.Path = p.expect(token.String, "as module path").Lexeme
	default:
		p.errorf("expected import form after 'import'")
	}

	p.statementTerminated()
	return stmt
}

func (p *Parser) parseExportStmt() ast.Stmt {
	tok := p.cur
	p.advance()

	switch p.cur.Kind {
	case token.Var:
		return p.parseVarStmt(true)
	case token.Fn:
		return p.parseFunctionStmt(true)
	case token.Async:
		return p.parseFunctionStmt(true)
	case token.Class:
		return p.parseClassStmt(true)
	case token.LeftBrace:
		p.advance()
		re := &ast.ReExportStmt{Token: tok}
		for !p.check(token.RightBrace) && !p.check(token.EndOfFile) {
			spec := ast.ImportSpecifier{Name: p.expect(token.Identifier, "as export name").Lexeme}
			if p.match(token.As) {
				spec.Alias = p.expect(token.Identifier, "as export alias").Lexeme
			}
			re.Specifiers = append(re.Specifiers, spec)
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.RightBrace, "to close export list")
		p.expect(token.From, "after export list")
		re.Path = p.expect(token.String, "as module path").Lexeme
		p.statementTerminated()
		return re
	default:
		p.errorf("expected declaration or '{' after 'export'")
		return &ast.ExprStmt{Token: tok, Expr: &ast.Literal{Token: tok, Kind: ast.LiteralNil}}
	}
}
