package ast

import (
	"strings"

	"github.com/iziteam/izi/internal/token"
)

func (*WildcardPattern) patternNode() {}
func (*LiteralPattern) patternNode()  {}
func (*VariablePattern) patternNode() {}
func (*ArrayPattern) patternNode()    {}
func (*MapPattern) patternNode()      {}

// WildcardPattern is `_`: always matches, binds nothing.
type WildcardPattern struct {
	Token token.Token
}

func (w *WildcardPattern) TokenLiteral() string { return w.Token.Lexeme }
func (w *WildcardPattern) Pos() token.Position  { return w.Token.Pos }
func (w *WildcardPattern) String() string       { return "_" }

// LiteralPattern matches the scrutinee by value equality against Value.
type LiteralPattern struct {
	Token token.Token
	Value *Literal
}

func (l *LiteralPattern) TokenLiteral() string { return l.Token.Lexeme }
func (l *LiteralPattern) Pos() token.Position  { return l.Token.Pos }
func (l *LiteralPattern) String() string       { return l.Value.String() }

// VariablePattern always matches and binds Name to the scrutinee.
type VariablePattern struct {
	Token token.Token
	Name  string
}

func (v *VariablePattern) TokenLiteral() string { return v.Token.Lexeme }
func (v *VariablePattern) Pos() token.Position  { return v.Token.Pos }
func (v *VariablePattern) String() string       { return v.Name }

// ArrayPattern matches an array of the same length, element-wise.
type ArrayPattern struct {
	Token    token.Token
	Elements []Pattern
}

func (a *ArrayPattern) TokenLiteral() string { return a.Token.Lexeme }
func (a *ArrayPattern) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayPattern) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapPattern matches a map that contains at least the listed keys,
// binding each key name as a local.
type MapPattern struct {
	Token token.Token
	Keys  []string
}

func (m *MapPattern) TokenLiteral() string { return m.Token.Lexeme }
func (m *MapPattern) Pos() token.Position  { return m.Token.Pos }
func (m *MapPattern) String() string       { return "{" + strings.Join(m.Keys, ", ") + "}" }
