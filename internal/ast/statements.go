package ast

import (
	"strings"

	"github.com/iziteam/izi/internal/token"
)

func (*ExprStmt) stmtNode()        {}
func (*VarStmt) stmtNode()         {}
func (*BlockStmt) stmtNode()       {}
func (*IfStmt) stmtNode()          {}
func (*WhileStmt) stmtNode()       {}
func (*ReturnStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()       {}
func (*ContinueStmt) stmtNode()    {}
func (*FunctionStmt) stmtNode()    {}
func (*ClassStmt) stmtNode()       {}
func (*ImportStmt) stmtNode()      {}
func (*ExportStmt) stmtNode()      {}
func (*ReExportStmt) stmtNode()    {}
func (*TryStmt) stmtNode()         {}
func (*ThrowStmt) stmtNode()       {}
func (*PrintStmt) stmtNode()       {}
func (*MatchStmt) stmtNode()       {}

// ExprStmt is an expression evaluated for its side effect.
type ExprStmt struct {
	Token token.Token
	Expr  Expr
}

func (s *ExprStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *ExprStmt) Pos() token.Position  { return s.Token.Pos }
func (s *ExprStmt) String() string       { return s.Expr.String() + ";" }

// PrintStmt is `print(expr);` — kept as a dedicated statement because
// `print` is a reserved keyword (spec §6.1), not an ordinary call target.
type PrintStmt struct {
	Token token.Token
	Value Expr
}

func (s *PrintStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *PrintStmt) Pos() token.Position  { return s.Token.Pos }
func (s *PrintStmt) String() string       { return "print(" + s.Value.String() + ");" }

// DestructurePattern, when non-nil on a VarStmt, destructures the
// initializer via the same pattern grammar match arms use (§4.2: "a
// variable declaration ... with optional destructuring pattern").
type VarStmt struct {
	Token       token.Token
	Name        string
	Type        *TypeAnnotation
	Pattern     Pattern
	Initializer Expr
	Exported    bool
}

func (v *VarStmt) TokenLiteral() string { return v.Token.Lexeme }
func (v *VarStmt) Pos() token.Position  { return v.Token.Pos }
func (v *VarStmt) String() string {
	var sb strings.Builder
	sb.WriteString("var ")
	sb.WriteString(v.Name)
	if v.Type != nil {
		sb.WriteString(": ")
		sb.WriteString(v.Type.Name)
	}
	if v.Initializer != nil {
		sb.WriteString(" = ")
		sb.WriteString(v.Initializer.String())
	}
	sb.WriteString(";")
	return sb.String()
}

// BlockStmt is `{ stmt; stmt; ... }`, introducing a child scope.
type BlockStmt struct {
	Token      token.Token
	Statements []Stmt
}

func (b *BlockStmt) TokenLiteral() string { return b.Token.Lexeme }
func (b *BlockStmt) Pos() token.Position  { return b.Token.Pos }
func (b *BlockStmt) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range b.Statements {
		sb.WriteString(s.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	Token     token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (i *IfStmt) TokenLiteral() string { return i.Token.Lexeme }
func (i *IfStmt) Pos() token.Position  { return i.Token.Pos }
func (i *IfStmt) String() string {
	s := "if (" + i.Condition.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// WhileStmt is `while (cond) body`. `for` is desugared into this by the
// parser (spec §4.2 Desugaring).
type WhileStmt struct {
	Token     token.Token
	Condition Expr
	Body      Stmt
}

func (w *WhileStmt) TokenLiteral() string { return w.Token.Lexeme }
func (w *WhileStmt) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStmt) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	Token token.Token
	Value Expr
}

func (r *ReturnStmt) TokenLiteral() string { return r.Token.Lexeme }
func (r *ReturnStmt) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// BreakStmt is `break;`.
type BreakStmt struct{ Token token.Token }

func (b *BreakStmt) TokenLiteral() string { return b.Token.Lexeme }
func (b *BreakStmt) Pos() token.Position  { return b.Token.Pos }
func (b *BreakStmt) String() string       { return "break;" }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ Token token.Token }

func (c *ContinueStmt) TokenLiteral() string { return c.Token.Lexeme }
func (c *ContinueStmt) Pos() token.Position  { return c.Token.Pos }
func (c *ContinueStmt) String() string       { return "continue;" }

// FunctionStmt is a named function/class-method declaration; it wraps a
// FunctionExpr so the evaluator's FunctionExpr-construction logic is
// reused for both declarations and expressions.
type FunctionStmt struct {
	Token    token.Token
	Function *FunctionExpr
	Exported bool
}

func (f *FunctionStmt) TokenLiteral() string { return f.Token.Lexeme }
func (f *FunctionStmt) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionStmt) String() string       { return f.Function.String() }

// Field is one class field declaration with an optional initializer.
type Field struct {
	Name        string
	Initializer Expr
}

// ClassStmt is a class declaration (§3.4).
type ClassStmt struct {
	Token      token.Token
	Name       string
	Superclass *Identifier
	Fields     []Field
	Methods    []*FunctionStmt
	Exported   bool
}

func (c *ClassStmt) TokenLiteral() string { return c.Token.Lexeme }
func (c *ClassStmt) Pos() token.Position  { return c.Token.Pos }
func (c *ClassStmt) String() string {
	var sb strings.Builder
	sb.WriteString("class ")
	sb.WriteString(c.Name)
	if c.Superclass != nil {
		sb.WriteString(" extends ")
		sb.WriteString(c.Superclass.Name)
	}
	sb.WriteString(" { ... }")
	return sb.String()
}

// ImportSpecifier is one `name` or `name as alias` in `import {..} from`.
type ImportSpecifier struct {
	Name  string
	Alias string
}

// ImportKind distinguishes the three import forms in spec §4.8.
type ImportKind int

const (
	ImportSideEffect ImportKind = iota // import "path";
	ImportNamed                        // import { a, b as c } from "path";
	ImportNamespace                    // import * as name from "path";
)

// ImportStmt is any of the three import forms (§4.8).
type ImportStmt struct {
	Token       token.Token
	Kind        ImportKind
	Path        string
	Specifiers  []ImportSpecifier
	Alias       string // for ImportNamespace
}

func (i *ImportStmt) TokenLiteral() string { return i.Token.Lexeme }
func (i *ImportStmt) Pos() token.Position  { return i.Token.Pos }
func (i *ImportStmt) String() string       { return "import ... from \"" + i.Path + "\";" }

// ExportStmt wraps a declaration (`var`, `fn`, or `class`) marked exported.
// Parsing sets Exported on the wrapped declaration directly; ExportStmt
// exists for `export <decl>` forms that wrap a statement not otherwise
// carrying an Exported flag.
type ExportStmt struct {
	Token       token.Token
	Declaration Stmt
}

func (e *ExportStmt) TokenLiteral() string { return e.Token.Lexeme }
func (e *ExportStmt) Pos() token.Position  { return e.Token.Pos }
func (e *ExportStmt) String() string       { return "export " + e.Declaration.String() }

// ReExportStmt is `export { a, b as c } from "path";`.
type ReExportStmt struct {
	Token      token.Token
	Path       string
	Specifiers []ImportSpecifier
}

func (r *ReExportStmt) TokenLiteral() string { return r.Token.Lexeme }
func (r *ReExportStmt) Pos() token.Position  { return r.Token.Pos }
func (r *ReExportStmt) String() string       { return "export ... from \"" + r.Path + "\";" }

// CatchClause is `catch (name) { body }`.
type CatchClause struct {
	Name string
	Body *BlockStmt
}

// TryStmt is `try { } [catch (e) { }] [finally { }]` (§4.5, §5).
type TryStmt struct {
	Token   token.Token
	Body    *BlockStmt
	Catch   *CatchClause
	Finally *BlockStmt
}

func (t *TryStmt) TokenLiteral() string { return t.Token.Lexeme }
func (t *TryStmt) Pos() token.Position  { return t.Token.Pos }
func (t *TryStmt) String() string       { return "try " + t.Body.String() }

// ThrowStmt is `throw expr;`.
type ThrowStmt struct {
	Token token.Token
	Value Expr
}

func (t *ThrowStmt) TokenLiteral() string { return t.Token.Lexeme }
func (t *ThrowStmt) Pos() token.Position  { return t.Token.Pos }
func (t *ThrowStmt) String() string       { return "throw " + t.Value.String() + ";" }

// MatchStmt wraps a MatchExpr used as a statement rather than bound to a
// value (spec §4.2: "match expression used as a statement").
type MatchStmt struct {
	Token token.Token
	Match *MatchExpr
}

func (m *MatchStmt) TokenLiteral() string { return m.Token.Lexeme }
func (m *MatchStmt) Pos() token.Position  { return m.Token.Pos }
func (m *MatchStmt) String() string       { return m.Match.String() + ";" }
