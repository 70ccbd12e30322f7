package analyzer

import (
	"strings"

	"github.com/iziteam/izi/internal/ast"
)

func (a *Analyzer) walkStmt(stmt ast.Stmt, s *scope) {
	switch st := stmt.(type) {
	case *ast.ExprStmt:
		a.walkExpr(st.Expr, s)
	case *ast.PrintStmt:
		a.walkExpr(st.Value, s)
	case *ast.VarStmt:
		if st.Initializer != nil {
			a.walkExpr(st.Initializer, s)
		}
		if st.Pattern != nil {
			a.declarePattern(st.Pattern, s)
		} else {
			if s.hasLocal(st.Name) {
				a.errorf(st, "%q is already declared in this scope", st.Name)
			}
			s.declare(st.Name)
			if st.Type != nil {
				s.declareType(st.Name, st.Type.Name)
				if st.Initializer != nil {
					a.checkTypeAnnotation(st, s)
				}
			}
		}
	case *ast.BlockStmt:
		child := newScope(s)
		a.walkStmts(st.Statements, child)
		a.reportUnused(child)
	case *ast.IfStmt:
		a.walkExpr(st.Condition, s)
		a.walkStmt(st.Then, s)
		if st.Else != nil {
			a.walkStmt(st.Else, s)
		}
	case *ast.WhileStmt:
		a.walkExpr(st.Condition, s)
		a.inLoop++
		a.walkStmt(st.Body, s)
		a.inLoop--
	case *ast.ReturnStmt:
		if len(a.inMethod) == 0 {
			a.errorf(st, "return used outside a function")
		}
		if st.Value != nil {
			a.walkExpr(st.Value, s)
		}
	case *ast.BreakStmt:
		if a.inLoop == 0 {
			a.errorf(st, "break used outside a loop")
		}
	case *ast.ContinueStmt:
		if a.inLoop == 0 {
			a.errorf(st, "continue used outside a loop")
		}
	case *ast.FunctionStmt:
		if s.hasLocal(st.Function.Name) {
			a.errorf(st, "%q is already declared in this scope", st.Function.Name)
		}
		s.declare(st.Function.Name)
		s.used[st.Function.Name] = true // a declared function not called is not flagged as unused
		a.walkFunction(st.Function, s, false)
	case *ast.ClassStmt:
		a.walkClass(st, s)
	case *ast.TryStmt:
		tryScope := newScope(s)
		a.walkStmts(st.Body.Statements, tryScope)
		a.reportUnused(tryScope)
		if st.Catch != nil {
			catchScope := newScope(s)
			if st.Catch.Name != "" {
				catchScope.declare(st.Catch.Name)
				catchScope.used[st.Catch.Name] = true
			}
			a.walkStmts(st.Catch.Body.Statements, catchScope)
		}
		if st.Finally != nil {
			finallyScope := newScope(s)
			a.walkStmts(st.Finally.Statements, finallyScope)
			a.reportUnused(finallyScope)
		}
	case *ast.ThrowStmt:
		a.walkExpr(st.Value, s)
	case *ast.MatchStmt:
		a.walkExpr(st.Match, s)
	case *ast.ImportStmt:
		switch st.Kind {
		case ast.ImportNamespace:
			s.declare(st.Alias)
			s.used[st.Alias] = true
		case ast.ImportNamed:
			for _, spec := range st.Specifiers {
				name := spec.Alias
				if name == "" {
					name = spec.Name
				}
				s.declare(name)
				s.used[name] = true
			}
		}
	case *ast.ExportStmt:
		a.walkStmt(st.Declaration, s)
	case *ast.ReExportStmt:
		// no local bindings introduced
	}
}

// checkTypeAnnotation reports an Error when st's declared type and its
// initializer's syntactically inferred type disagree (spec §4.3:
// "literal -> its tag; variable -> its declared type; all other
// expressions -> Any. Any is compatible with every type.").
func (a *Analyzer) checkTypeAnnotation(st *ast.VarStmt, s *scope) {
	inferred, ok := inferredType(st.Initializer, s)
	if !ok {
		return
	}
	if !strings.EqualFold(inferred, st.Type.Name) {
		a.errorf(st, "variable %q declared as %s but initialized with a %s", st.Name, st.Type.Name, inferred)
	}
}

// inferredType returns expr's syntactic type tag and whether it could
// be determined at all; (_, false) stands for Any, compatible with
// every declared type.
func inferredType(expr ast.Expr, s *scope) (string, bool) {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.Kind {
		case ast.LiteralNumber:
			return "Number", true
		case ast.LiteralString:
			return "String", true
		case ast.LiteralBool:
			return "Boolean", true
		case ast.LiteralNil:
			return "Nil", true
		}
	case *ast.ArrayLiteral:
		return "Array", true
	case *ast.MapLiteral:
		return "Map", true
	case *ast.Identifier:
		if t, ok := s.lookupType(e.Name); ok {
			return t, true
		}
	}
	return "", false
}

func (a *Analyzer) declarePattern(p ast.Pattern, s *scope) {
	switch pat := p.(type) {
	case *ast.VariablePattern:
		s.declare(pat.Name)
	case *ast.ArrayPattern:
		for _, elem := range pat.Elements {
			a.declarePattern(elem, s)
		}
	case *ast.MapPattern:
		for _, k := range pat.Keys {
			s.declare(k)
		}
	}
}

func (a *Analyzer) walkFunction(fn *ast.FunctionExpr, parent *scope, isMethod bool) {
	fnScope := newScope(parent)
	for _, p := range fn.Params {
		fnScope.declare(p.Name)
		fnScope.used[p.Name] = true // unused-parameter is not currently diagnosed, only unused locals
	}
	a.inMethod = append(a.inMethod, isMethod)
	a.walkStmts(fn.Body, fnScope)
	a.inMethod = a.inMethod[:len(a.inMethod)-1]
	a.reportUnused(fnScope)
}

func (a *Analyzer) walkClass(c *ast.ClassStmt, s *scope) {
	if s.hasLocal(c.Name) {
		a.errorf(c, "%q is already declared in this scope", c.Name)
	}
	s.declare(c.Name)
	s.used[c.Name] = true

	hasSuper := c.Superclass != nil
	if hasSuper && !s.markUsed(c.Superclass.Name) {
		a.errorf(c, "undefined superclass %q", c.Superclass.Name)
	}

	seen := make(map[string]bool)
	for _, f := range c.Fields {
		if seen[f.Name] {
			a.errorf(c, "duplicate field %q in class %q", f.Name, c.Name)
		}
		seen[f.Name] = true
	}
	for _, m := range c.Methods {
		if seen[m.Function.Name] {
			a.errorf(c, "duplicate member %q in class %q", m.Function.Name, c.Name)
		}
		seen[m.Function.Name] = true
		if m.Function.Name == c.Name {
			a.errorf(c, "method %q is named after its class %q; did you mean %q?", m.Function.Name, c.Name, "constructor")
		}
	}

	classScope := newScope(s)
	classScope.declare("this")
	classScope.used["this"] = true
	a.classCtx = append(a.classCtx, hasSuper)
	for _, m := range c.Methods {
		a.walkFunction(m.Function, classScope, true)
	}
	a.classCtx = a.classCtx[:len(a.classCtx)-1]
}

func (a *Analyzer) walkExpr(expr ast.Expr, s *scope) {
	switch e := expr.(type) {
	case *ast.Literal:
	case *ast.Identifier:
		if !s.markUsed(e.Name) {
			a.errorf(e, "undefined name %q", e.Name)
		}
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			a.walkExpr(el, s)
		}
	case *ast.MapLiteral:
		for _, entry := range e.Entries {
			if entry.Spread != nil {
				a.walkExpr(entry.Spread, s)
				continue
			}
			a.walkExpr(entry.Key, s)
			a.walkExpr(entry.Value, s)
		}
	case *ast.SpreadExpr:
		a.walkExpr(e.Value, s)
	case *ast.Unary:
		a.walkExpr(e.Operand, s)
	case *ast.Binary:
		a.walkExpr(e.Left, s)
		a.walkExpr(e.Right, s)
	case *ast.Logical:
		a.walkExpr(e.Left, s)
		a.walkExpr(e.Right, s)
	case *ast.Nullish:
		a.walkExpr(e.Left, s)
		a.walkExpr(e.Right, s)
	case *ast.Conditional:
		a.walkExpr(e.Condition, s)
		a.walkExpr(e.Then, s)
		a.walkExpr(e.Else, s)
	case *ast.Assign:
		a.walkExpr(e.Value, s)
		a.walkExpr(e.Target, s)
	case *ast.Call:
		a.walkExpr(e.Callee, s)
		for _, arg := range e.Args {
			a.walkExpr(arg, s)
		}
	case *ast.Index:
		a.walkExpr(e.Collection, s)
		a.walkExpr(e.IndexExpr, s)
	case *ast.Property:
		a.walkExpr(e.Object, s)
	case *ast.ThisExpr:
		if len(a.classCtx) == 0 {
			a.errorf(e, "'this' used outside a method")
		}
	case *ast.SuperExpr:
		if len(a.classCtx) == 0 {
			a.errorf(e, "'super' used outside a method")
		} else if !a.classCtx[len(a.classCtx)-1] {
			a.errorf(e, "'super' used in a class with no superclass")
		}
	case *ast.FunctionExpr:
		a.walkFunction(e, s, false)
	case *ast.MatchExpr:
		a.walkExpr(e.Scrutinee, s)
		for _, arm := range e.Arms {
			armScope := newScope(s)
			a.declarePattern(arm.Pattern, armScope)
			if arm.Guard != nil {
				a.walkExpr(arm.Guard, armScope)
			}
			a.walkExpr(arm.Result, armScope)
			a.reportUnused(armScope)
		}
	case *ast.AwaitExpr:
		a.walkExpr(e.Value, s)
	}
}
