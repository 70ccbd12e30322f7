// Package optimizer implements the optional constant-folding and
// dead-code-elimination pass spec §4.3/§9 describes as a stage between
// parsing and evaluation. It only ever removes or precomputes work that
// provably cannot change a program's observable behavior: folding is
// restricted to operations on two literal operands (so it can never
// turn a would-be TypeError into a silent value), and elimination only
// drops branches whose condition is itself a literal and statements that
// follow an unconditional return, break, continue or throw in a block.
package optimizer

import (
	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/token"
)

// Optimize rewrites program in place and also returns it, for call-site
// convenience (program := optimizer.Optimize(program)).
func Optimize(program *ast.Program) *ast.Program {
	program.Statements = optimizeStmts(program.Statements)
	return program
}

func optimizeStmts(stmts []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, stmt := range stmts {
		s := optimizeStmt(stmt)
		if s == nil {
			continue
		}
		out = append(out, s)
		switch s.(type) {
		case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt, *ast.ThrowStmt:
			// Everything after an unconditional exit in this block is
			// unreachable and can be dropped outright (spec §4.3).
			return out
		}
	}
	return out
}

func optimizeStmt(stmt ast.Stmt) ast.Stmt {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		s.Expr = optimizeExpr(s.Expr)
		return s
	case *ast.PrintStmt:
		s.Value = optimizeExpr(s.Value)
		return s
	case *ast.VarStmt:
		if s.Initializer != nil {
			s.Initializer = optimizeExpr(s.Initializer)
		}
		return s
	case *ast.BlockStmt:
		s.Statements = optimizeStmts(s.Statements)
		return s
	case *ast.IfStmt:
		s.Condition = optimizeExpr(s.Condition)
		if lit, ok := s.Condition.(*ast.Literal); ok && lit.Kind == ast.LiteralBool {
			if lit.Bool {
				return optimizeStmt(s.Then)
			}
			if s.Else != nil {
				return optimizeStmt(s.Else)
			}
			return nil
		}
		s.Then = optimizeStmt(s.Then)
		if s.Else != nil {
			s.Else = optimizeStmt(s.Else)
		}
		return s
	case *ast.WhileStmt:
		s.Condition = optimizeExpr(s.Condition)
		if lit, ok := s.Condition.(*ast.Literal); ok && lit.Kind == ast.LiteralBool && !lit.Bool {
			// while (false) { ... } never runs; drop it entirely.
			return nil
		}
		s.Body = optimizeStmt(s.Body)
		return s
	case *ast.ReturnStmt:
		if s.Value != nil {
			s.Value = optimizeExpr(s.Value)
		}
		return s
	case *ast.ThrowStmt:
		s.Value = optimizeExpr(s.Value)
		return s
	case *ast.FunctionStmt:
		s.Function.Body = optimizeStmts(s.Function.Body)
		return s
	case *ast.ClassStmt:
		for i := range s.Fields {
			if s.Fields[i].Initializer != nil {
				s.Fields[i].Initializer = optimizeExpr(s.Fields[i].Initializer)
			}
		}
		for _, m := range s.Methods {
			m.Function.Body = optimizeStmts(m.Function.Body)
		}
		return s
	case *ast.TryStmt:
		s.Body.Statements = optimizeStmts(s.Body.Statements)
		if s.Catch != nil {
			s.Catch.Body.Statements = optimizeStmts(s.Catch.Body.Statements)
		}
		if s.Finally != nil {
			s.Finally.Statements = optimizeStmts(s.Finally.Statements)
		}
		return s
	case *ast.MatchStmt:
		s.Match = optimizeMatchExpr(s.Match)
		return s
	case *ast.ExportStmt:
		s.Declaration = optimizeStmt(s.Declaration)
		return s
	default:
		// Imports/re-exports/break/continue carry no sub-expressions to fold.
		return stmt
	}
}

func optimizeMatchExpr(m *ast.MatchExpr) *ast.MatchExpr {
	m.Scrutinee = optimizeExpr(m.Scrutinee)
	for i := range m.Arms {
		if m.Arms[i].Guard != nil {
			m.Arms[i].Guard = optimizeExpr(m.Arms[i].Guard)
		}
		m.Arms[i].Result = optimizeExpr(m.Arms[i].Result)
	}
	return m
}

func optimizeExpr(expr ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.Unary:
		e.Operand = optimizeExpr(e.Operand)
		return foldUnary(e)
	case *ast.Binary:
		e.Left = optimizeExpr(e.Left)
		e.Right = optimizeExpr(e.Right)
		return foldBinary(e)
	case *ast.Logical:
		e.Left = optimizeExpr(e.Left)
		e.Right = optimizeExpr(e.Right)
		return e
	case *ast.Nullish:
		e.Left = optimizeExpr(e.Left)
		e.Right = optimizeExpr(e.Right)
		return e
	case *ast.Conditional:
		e.Condition = optimizeExpr(e.Condition)
		e.Then = optimizeExpr(e.Then)
		e.Else = optimizeExpr(e.Else)
		if lit, ok := e.Condition.(*ast.Literal); ok && lit.Kind == ast.LiteralBool {
			if lit.Bool {
				return e.Then
			}
			return e.Else
		}
		return e
	case *ast.Assign:
		e.Value = optimizeExpr(e.Value)
		return e
	case *ast.Call:
		e.Callee = optimizeExpr(e.Callee)
		for i := range e.Args {
			e.Args[i] = optimizeExpr(e.Args[i])
		}
		return e
	case *ast.Index:
		e.Collection = optimizeExpr(e.Collection)
		e.IndexExpr = optimizeExpr(e.IndexExpr)
		return e
	case *ast.Property:
		e.Object = optimizeExpr(e.Object)
		return e
	case *ast.ArrayLiteral:
		for i := range e.Elements {
			e.Elements[i] = optimizeExpr(e.Elements[i])
		}
		return e
	case *ast.MapLiteral:
		for i := range e.Entries {
			if e.Entries[i].Spread != nil {
				e.Entries[i].Spread = optimizeExpr(e.Entries[i].Spread)
				continue
			}
			e.Entries[i].Key = optimizeExpr(e.Entries[i].Key)
			e.Entries[i].Value = optimizeExpr(e.Entries[i].Value)
		}
		return e
	case *ast.SpreadExpr:
		e.Value = optimizeExpr(e.Value)
		return e
	case *ast.FunctionExpr:
		e.Body = optimizeStmts(e.Body)
		return e
	case *ast.MatchExpr:
		return optimizeMatchExpr(e)
	case *ast.AwaitExpr:
		e.Value = optimizeExpr(e.Value)
		return e
	default:
		return expr
	}
}

// foldUnary precomputes `!literal` and `-literal`; anything else is left
// for the evaluator, since a non-literal operand might still raise a
// TypeError at runtime that folding must not silently swallow.
func foldUnary(u *ast.Unary) ast.Expr {
	lit, ok := u.Operand.(*ast.Literal)
	if !ok {
		return u
	}
	switch u.Operator {
	case token.Bang:
		if lit.Kind == ast.LiteralBool {
			return &ast.Literal{Token: u.Token, Kind: ast.LiteralBool, Bool: !lit.Bool}
		}
	case token.Minus:
		if lit.Kind == ast.LiteralNumber {
			return &ast.Literal{Token: u.Token, Kind: ast.LiteralNumber, Num: -lit.Num}
		}
	}
	return u
}

// foldBinary precomputes arithmetic between two number literals and
// concatenation between two string literals; every other combination
// (including mixed types) is left unfolded so the evaluator reports the
// same TypeError it would have without the optimizer.
func foldBinary(b *ast.Binary) ast.Expr {
	left, ok := b.Left.(*ast.Literal)
	if !ok {
		return b
	}
	right, ok := b.Right.(*ast.Literal)
	if !ok {
		return b
	}

	if left.Kind == ast.LiteralNumber && right.Kind == ast.LiteralNumber {
		switch b.Operator {
		case token.Plus:
			return numberLit(b, left.Num+right.Num)
		case token.Minus:
			return numberLit(b, left.Num-right.Num)
		case token.Star:
			return numberLit(b, left.Num*right.Num)
		case token.Slash:
			if right.Num != 0 {
				return numberLit(b, left.Num/right.Num)
			}
		}
	}
	if left.Kind == ast.LiteralString && right.Kind == ast.LiteralString && b.Operator == token.Plus {
		return &ast.Literal{Token: b.Token, Kind: ast.LiteralString, Str: left.Str + right.Str}
	}
	return b
}

func numberLit(b *ast.Binary, n float64) *ast.Literal {
	return &ast.Literal{Token: b.Token, Kind: ast.LiteralNumber, Num: n}
}
