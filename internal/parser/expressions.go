package parser

import (
	"strconv"

	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/token"
)

func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment implements `assignment → ( target '=' assignment ) |
// conditional` (spec §4.2). Anything other than Identifier/Index/Property
// on the left of '=' is a syntax error.
func (p *Parser) parseAssignment() ast.Expr {
	expr := p.parseConditional()

	if p.check(token.Equal) {
		tok := p.cur
		p.advance()
		value := p.parseAssignment()

		switch expr.(type) {
		case *ast.Identifier, *ast.Index, *ast.Property:
			return &ast.Assign{Token: tok, Target: expr, Value: value}
		default:
			p.errorf("invalid assignment target")
			return expr
		}
	}
	return expr
}

func (p *Parser) parseConditional() ast.Expr {
	expr := p.parseNullish()
	if p.check(token.Question) {
		tok := p.cur
		p.advance()
		then := p.parseAssignment()
		p.expect(token.Colon, "in conditional expression")
		elseExpr := p.parseAssignment()
		return &ast.Conditional{Token: tok, Condition: expr, Then: then, Else: elseExpr}
	}
	return expr
}

func (p *Parser) parseNullish() ast.Expr {
	expr := p.parseLogicalOr()
	for p.check(token.QuestionQuestion) {
		tok := p.cur
		p.advance()
		right := p.parseLogicalOr()
		expr = &ast.Nullish{Token: tok, Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) parseLogicalOr() ast.Expr {
	expr := p.parseLogicalAnd()
	for p.check(token.Or) {
		tok := p.cur
		p.advance()
		right := p.parseLogicalAnd()
		expr = &ast.Logical{Token: tok, Left: expr, Operator: token.Or, Right: right}
	}
	return expr
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	expr := p.parseEquality()
	for p.check(token.And) {
		tok := p.cur
		p.advance()
		right := p.parseEquality()
		expr = &ast.Logical{Token: tok, Left: expr, Operator: token.And, Right: right}
	}
	return expr
}

func (p *Parser) parseEquality() ast.Expr {
	expr := p.parseComparison()
	for p.check(token.EqualEqual) || p.check(token.BangEqual) {
		tok := p.cur
		p.advance()
		right := p.parseComparison()
		expr = &ast.Binary{Token: tok, Left: expr, Operator: tok.Kind, Right: right}
	}
	return expr
}

func (p *Parser) parseComparison() ast.Expr {
	expr := p.parseTerm()
	for p.check(token.Less) || p.check(token.LessEqual) || p.check(token.Greater) || p.check(token.GreaterEqual) {
		tok := p.cur
		p.advance()
		right := p.parseTerm()
		expr = &ast.Binary{Token: tok, Left: expr, Operator: tok.Kind, Right: right}
	}
	return expr
}

func (p *Parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	for p.check(token.Plus) || p.check(token.Minus) {
		tok := p.cur
		p.advance()
		right := p.parseFactor()
		expr = &ast.Binary{Token: tok, Left: expr, Operator: tok.Kind, Right: right}
	}
	return expr
}

func (p *Parser) parseFactor() ast.Expr {
	expr := p.parseUnary()
	for p.check(token.Star) || p.check(token.Slash) {
		tok := p.cur
		p.advance()
		right := p.parseUnary()
		expr = &ast.Binary{Token: tok, Left: expr, Operator: tok.Kind, Right: right}
	}
	return expr
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Kind {
	case token.Bang, token.Minus:
		tok := p.cur
		p.advance()
		operand := p.parseUnary()
		return &ast.Unary{Token: tok, Operator: tok.Kind, Operand: operand}
	case token.Await:
		tok := p.cur
		p.advance()
		value := p.parseUnary()
		return &ast.AwaitExpr{Token: tok, Value: value}
	}
	return p.parseCall()
}

// parseCall implements `call → primary ( '(' args ')' | '[' expr ']' |
// '.' name )*` (spec §4.2).
func (p *Parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(token.LeftParen):
			expr = p.finishCall(expr)
		case p.check(token.LeftBracket):
			tok := p.cur
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RightBracket, "to close index expression")
			expr = &ast.Index{Token: tok, Collection: expr, IndexExpr: idx}
		case p.check(token.Dot):
			tok := p.cur
			p.advance()
			name := p.expect(token.Identifier, "as property name")
			expr = &ast.Property{Token: tok, Object: expr, Name: name.Lexeme}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	tok := p.cur
	p.advance() // '('
	var args []ast.Expr
	for !p.check(token.RightParen) && !p.check(token.EndOfFile) {
		if p.check(token.DotDotDot) {
			spreadTok := p.cur
			p.advance()
			args = append(args, &ast.SpreadExpr{Token: spreadTok, Value: p.parseAssignment()})
		} else {
			args = append(args, p.parseAssignment())
		}
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RightParen, "to close call arguments")
	return &ast.Call{Token: tok, Callee: callee, Args: args}
}

// parsePrimary implements the `primary` production (spec §4.2).
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur

	switch tok.Kind {
	case token.Number:
		p.advance()
		n, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errorf("invalid number literal %q", tok.Lexeme)
		}
		return &ast.Literal{Token: tok, Kind: ast.LiteralNumber, Num: n}
	case token.String:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralString, Str: tok.Lexeme}
	case token.True:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralBool, Bool: true}
	case token.False:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralBool, Bool: false}
	case token.Nil:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralNil}
	case token.Identifier:
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}
	case token.This:
		p.advance()
		return &ast.ThisExpr{Token: tok}
	case token.Super:
		p.advance()
		p.expect(token.Dot, "after 'super'")
		name := p.expect(token.Identifier, "as superclass method name")
		return &ast.SuperExpr{Token: tok, Method: name.Lexeme}
	case token.LeftParen:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RightParen, "to close grouped expression")
		return expr
	case token.LeftBracket:
		return p.parseArrayLiteral()
	case token.LeftBrace:
		return p.parseMapLiteral()
	case token.Fn:
		p.advance()
		return p.parseFunctionTail("", false)
	case token.Async:
		p.advance()
		p.expect(token.Fn, "after 'async'")
		return p.parseFunctionTail("", true)
	case token.Match:
		return p.parseMatchExpr()
	}

	p.errorf("unexpected token %s %q", tok.Kind, tok.Lexeme)
	p.advance()
	return &ast.Literal{Token: tok, Kind: ast.LiteralNil}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	tok := p.cur
	p.advance()
	arr := &ast.ArrayLiteral{Token: tok}
	for !p.check(token.RightBracket) && !p.check(token.EndOfFile) {
		if p.check(token.DotDotDot) {
			spreadTok := p.cur
			p.advance()
			arr.Elements = append(arr.Elements, &ast.SpreadExpr{Token: spreadTok, Value: p.parseAssignment()})
		} else {
			arr.Elements = append(arr.Elements, p.parseAssignment())
		}
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RightBracket, "to close array literal")
	return arr
}

func (p *Parser) parseMapLiteral() ast.Expr {
	tok := p.cur
	p.advance()
	m := &ast.MapLiteral{Token: tok}
	for !p.check(token.RightBrace) && !p.check(token.EndOfFile) {
		if p.check(token.DotDotDot) {
			p.advance()
			m.Entries = append(m.Entries, ast.MapEntry{Spread: p.parseAssignment()})
		} else {
			var key ast.Expr
			if p.check(token.String) || p.check(token.Identifier) {
				kt := p.cur
				p.advance()
				key = &ast.Literal{Token: kt, Kind: ast.LiteralString, Str: kt.Lexeme}
			} else {
				key = p.parseAssignment()
			}
			p.expect(token.Colon, "after map key")
			value := p.parseAssignment()
			m.Entries = append(m.Entries, ast.MapEntry{Key: key, Value: value})
		}
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RightBrace, "to close map literal")
	return m
}

// parseMatchExpr implements `match expr { pattern [if guard] => result,
// ... }` (spec §4.7).
func (p *Parser) parseMatchExpr() *ast.MatchExpr {
	tok := p.cur
	p.advance() // 'match'
	scrutinee := p.parseExpression()
	p.expect(token.LeftBrace, "to start match arms")

	m := &ast.MatchExpr{Token: tok, Scrutinee: scrutinee}
	for !p.check(token.RightBrace) && !p.check(token.EndOfFile) {
		pat := p.parsePattern()
		var guard ast.Expr
		if p.match(token.If) {
			guard = p.parseExpression()
		}
		p.expect(token.FatArrow, "after match pattern")
		result := p.parseAssignment()
		m.Arms = append(m.Arms, ast.MatchArm{Pattern: pat, Guard: guard, Result: result})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RightBrace, "to close match arms")
	return m
}

// parsePattern implements the pattern grammar in spec §4.7.
func (p *Parser) parsePattern() ast.Pattern {
	tok := p.cur
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return &ast.WildcardPattern{Token: tok}
	case token.Number, token.String, token.True, token.False, token.Nil:
		lit := p.parsePrimary().(*ast.Literal)
		return &ast.LiteralPattern{Token: tok, Value: lit}
	case token.Identifier:
		p.advance()
		return &ast.VariablePattern{Token: tok, Name: tok.Lexeme}
	case token.LeftBracket:
		p.advance()
		arr := &ast.ArrayPattern{Token: tok}
		for !p.check(token.RightBracket) && !p.check(token.EndOfFile) {
			arr.Elements = append(arr.Elements, p.parsePattern())
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.RightBracket, "to close array pattern")
		return arr
	case token.LeftBrace:
		p.advance()
		m := &ast.MapPattern{Token: tok}
		for !p.check(token.RightBrace) && !p.check(token.EndOfFile) {
			key := p.expect(token.Identifier, "as map pattern key")
			m.Keys = append(m.Keys, key.Lexeme)
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.RightBrace, "to close map pattern")
		return m
	}
	p.errorf("unexpected token %s %q in pattern", tok.Kind, tok.Lexeme)
	p.advance()
	return &ast.WildcardPattern{Token: tok}
}
