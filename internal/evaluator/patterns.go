package evaluator

import (
	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/env"
	"github.com/iziteam/izi/internal/value"
)

// matchPattern reports whether v matches pat, binding any pattern
// variables into scope as a side effect (spec §4.7). Bindings are made
// even on a path that is ultimately abandoned only because match tries
// patterns in scopes discarded on failure (see evalMatchExpr), so partial
// binding on a failed attempt is harmless.
func (ev *Evaluator) matchPattern(pat ast.Pattern, v value.Value, scope *env.Environment) bool {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true

	case *ast.VariablePattern:
		scope.Define(p.Name, v)
		return true

	case *ast.LiteralPattern:
		lit := ev.evalLiteral(p.Value)
		return value.Equal(lit, v)

	case *ast.ArrayPattern:
		arr, ok := v.(*value.Array)
		if !ok || len(arr.Elements) != len(p.Elements) {
			return false
		}
		for i, elemPat := range p.Elements {
			if !ev.matchPattern(elemPat, arr.Elements[i], scope) {
				return false
			}
		}
		return true

	case *ast.MapPattern:
		m, ok := v.(*value.Map)
		if !ok {
			return false
		}
		for _, key := range p.Keys {
			fv, ok := m.Get(key)
			if !ok {
				return false
			}
			scope.Define(key, fv)
		}
		return true

	default:
		return false
	}
}

// destructure binds a VarStmt's Pattern against v directly into the
// current scope (spec §4.7 "destructuring assignment in var").
func (ev *Evaluator) destructure(pat ast.Pattern, v value.Value) bool {
	return ev.matchPattern(pat, v, ev.current)
}
