// Package analyzer implements the semantic pre-pass spec §4.3 describes:
// a read-only walk over the AST that reports diagnostics — undefined
// names, duplicate declarations, break/continue/this/super used outside
// a valid context, unreachable code after return, unused locals — but
// never changes program behavior. It runs before the evaluator and
// never after it; its findings are advisory (the evaluator does not
// consult them), mirroring how the teacher's internal/semantic package
// stands in front of (rather than inside) its interpreter.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/diag"
)

// scope tracks names declared directly in one lexical block, plus
// whether each was ever read (for the unused-locals warning).
type scope struct {
	declared map[string]*ast.Node // not populated; declarations are tracked in used
	used     map[string]bool
	types    map[string]string // name -> annotated type, for vars with an explicit type annotation
	parent   *scope
}

func newScope(parent *scope) *scope {
	return &scope{declared: make(map[string]*ast.Node), used: make(map[string]bool), parent: parent}
}

func (s *scope) declare(name string) {
	s.used[name] = false
}

// declareType records name's syntactic type annotation, for later
// lookups by other variables initialized from it (spec §4.3 "variable
// -> its declared type").
func (s *scope) declareType(name, typ string) {
	if s.types == nil {
		s.types = make(map[string]string)
	}
	s.types[name] = typ
}

// lookupType finds the nearest enclosing declared type for name, if
// it was ever given an explicit annotation.
func (s *scope) lookupType(name string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.types[name]; ok {
			return t, true
		}
		if _, ok := cur.used[name]; ok {
			return "", false // declared here, but with no annotation
		}
	}
	return "", false
}

func (s *scope) markUsed(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.used[name]; ok {
			cur.used[name] = true
			return true
		}
	}
	return false
}

func (s *scope) hasLocal(name string) bool {
	_, ok := s.used[name]
	return ok
}

// Analyzer walks a Program once, accumulating Diagnostics.
type Analyzer struct {
	file  string
	diags []diag.Diagnostic

	inLoop   int
	classCtx []bool // true if a superclass exists, for `super` validity at each nesting level
	inMethod []bool
}

// New creates an Analyzer for diagnostics attributed to file.
func New(file string) *Analyzer {
	return &Analyzer{file: file}
}

// Analyze walks program and returns every diagnostic found, in
// encounter order (spec §4.3: all diagnostics are reported, not just
// the first).
func (a *Analyzer) Analyze(program *ast.Program) []diag.Diagnostic {
	top := newScope(nil)
	a.declareGlobals(top)
	a.walkStmts(program.Statements, top)
	a.reportUnused(top)
	return a.diags
}

// declareGlobals seeds the built-in identifiers the evaluator always
// provides (spec §4.6, §6.2), so referencing them never triggers a
// false-positive NameError diagnostic.
func (a *Analyzer) declareGlobals(s *scope) {
	for _, name := range []string{"str", "spawn", "len", "set"} {
		s.declare(name)
		s.used[name] = true
	}
}

func (a *Analyzer) errorf(n ast.Node, format string, args ...any) {
	a.diags = append(a.diags, diag.Diagnostic{
		Severity: diag.SeverityError,
		Message:  fmt.Sprintf(format, args...),
		File:     a.file,
		Pos:      n.Pos(),
	})
}

func (a *Analyzer) warnf(n ast.Node, format string, args ...any) {
	a.diags = append(a.diags, diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		File:     a.file,
		Pos:      n.Pos(),
	})
}

func (a *Analyzer) reportUnused(s *scope) {
	names := make([]string, 0, len(s.used))
	for name, used := range s.used {
		if !used {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		a.diags = append(a.diags, diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Message:  fmt.Sprintf("%q is declared but never used", name),
			File:     a.file,
		})
	}
}

// walkStmts walks a statement list in scope s, reporting unreachable
// code once a terminating statement (return/break/continue/throw) is
// seen (spec §4.3 "unreachable code after return").
func (a *Analyzer) walkStmts(stmts []ast.Stmt, s *scope) {
	terminated := false
	for _, stmt := range stmts {
		if terminated {
			a.warnf(stmt, "unreachable code")
			terminated = false // report once per block, not once per trailing statement
		}
		a.walkStmt(stmt, s)
		switch stmt.(type) {
		case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt, *ast.ThrowStmt:
			terminated = true
		}
	}
}
