// Package ast defines the node types the parser builds (spec §3, §4.2).
package ast

import (
	"strings"

	"github.com/iziteam/izi/internal/token"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expr is any node that produces a Value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node executed for its side effect.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of every parse.
type Program struct {
	Statements []Stmt
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// TypeAnnotation is a syntactic type name attached to a var declaration,
// consumed only by the analyzer's lightweight compatibility check (§4.3).
type TypeAnnotation struct {
	Tok  token.Token
	Name string
}

func (t *TypeAnnotation) TokenLiteral() string  { return t.Tok.Lexeme }
func (t *TypeAnnotation) Pos() token.Position   { return t.Tok.Pos }
func (t *TypeAnnotation) String() string        { return t.Name }

// Pattern is the base interface for match-arm patterns (§4.7).
type Pattern interface {
	Node
	patternNode()
}
