package evaluator

import (
	"fmt"

	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/env"
	"github.com/iziteam/izi/internal/value"
)

// exec walks one statement node, returning the value of the statement
// if it is an expression statement (so a bare top-level expression acts
// like a REPL echo) and a non-nil signal for any non-local transfer.
func (ev *Evaluator) exec(stmt ast.Stmt) (value.Value, *signal) {
	if ev.debug.BeforeStatement != nil {
		ev.debug.BeforeStatement(stmt)
	}
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		v, sig := ev.eval(s.Expr)
		return v, sig
	case *ast.PrintStmt:
		return nil, ev.execPrintStmt(s)
	case *ast.VarStmt:
		return nil, ev.execVarStmt(s)
	case *ast.BlockStmt:
		return nil, ev.execBlock(s.Statements, ev.arena.NewChild(ev.current))
	case *ast.IfStmt:
		return nil, ev.execIfStmt(s)
	case *ast.WhileStmt:
		return nil, ev.execWhileStmt(s)
	case *ast.ReturnStmt:
		return nil, ev.execReturnStmt(s)
	case *ast.BreakStmt:
		return nil, breakSignal
	case *ast.ContinueStmt:
		return nil, continueSignal
	case *ast.FunctionStmt:
		return nil, ev.execFunctionStmt(s)
	case *ast.ClassStmt:
		return nil, ev.execClassStmt(s)
	case *ast.TryStmt:
		return nil, ev.execTryStmt(s)
	case *ast.ThrowStmt:
		return nil, ev.execThrowStmt(s)
	case *ast.MatchStmt:
		_, sig := ev.evalMatchExpr(s.Match)
		return nil, sig
	case *ast.ImportStmt:
		return nil, ev.execImportStmt(s)
	case *ast.ExportStmt:
		return nil, ev.execExportStmt(s)
	case *ast.ReExportStmt:
		return nil, ev.execReExportStmt(s)
	default:
		return nil, ev.runtimeErrorf(stmt, "InternalError", "unhandled statement type %T", stmt)
	}
}

// execBlock runs stmts in scope (or ev.current, if scope is nil — used
// when the caller already pushed the scope it wants, e.g. a catch
// clause binding its error name), restoring ev.current on every exit
// path (normal fallthrough or any signal).
func (ev *Evaluator) execBlock(stmts []ast.Stmt, scope *env.Environment) *signal {
	saved := ev.current
	if scope != nil {
		ev.current = scope
	}
	defer func() { ev.current = saved }()

	for _, stmt := range stmts {
		_, sig := ev.exec(stmt)
		if sig != nil {
			return sig
		}
	}
	return nil
}

func (ev *Evaluator) execPrintStmt(s *ast.PrintStmt) *signal {
	v, sig := ev.eval(s.Value)
	if sig != nil {
		return sig
	}
	fmt.Fprintln(ev.out, ev.stringify(v))
	return nil
}

func (ev *Evaluator) execVarStmt(s *ast.VarStmt) *signal {
	var v value.Value = value.Nil{}
	if s.Initializer != nil {
		iv, sig := ev.eval(s.Initializer)
		if sig != nil {
			return sig
		}
		v = iv
	}
	if s.Pattern != nil {
		if !ev.destructure(s.Pattern, v) {
			return ev.runtimeErrorf(s, "ValueError", "destructuring pattern did not match value %s", ev.stringify(v))
		}
	} else {
		ev.current.Define(s.Name, v)
	}
	if s.Exported {
		ev.exportName(s.Name, v)
	}
	return nil
}

func (ev *Evaluator) execIfStmt(s *ast.IfStmt) *signal {
	cond, sig := ev.eval(s.Condition)
	if sig != nil {
		return sig
	}
	if value.Truthy(cond) {
		_, sig := ev.exec(s.Then)
		return sig
	}
	if s.Else != nil {
		_, sig := ev.exec(s.Else)
		return sig
	}
	return nil
}

func (ev *Evaluator) execWhileStmt(s *ast.WhileStmt) *signal {
	for {
		cond, sig := ev.eval(s.Condition)
		if sig != nil {
			return sig
		}
		if !value.Truthy(cond) {
			return nil
		}
		_, sig = ev.exec(s.Body)
		if sig != nil {
			switch sig.kind {
			case signalBreak:
				return nil
			case signalContinue:
				continue
			default:
				return sig
			}
		}
	}
}

func (ev *Evaluator) execReturnStmt(s *ast.ReturnStmt) *signal {
	var v value.Value = value.Nil{}
	if s.Value != nil {
		rv, sig := ev.eval(s.Value)
		if sig != nil {
			return sig
		}
		v = rv
	}
	return returnSignal(v)
}

func (ev *Evaluator) execFunctionStmt(s *ast.FunctionStmt) *signal {
	fn := &UserFunction{
		Name:    s.Function.Name,
		Params:  paramNames(s.Function.Params),
		Body:    s.Function.Body,
		Closure: ev.current,
		Async:   s.Function.Async,
	}
	ev.current.Define(fn.Name, fn)
	if s.Exported {
		ev.exportName(fn.Name, fn)
	}
	return nil
}

func (ev *Evaluator) execTryStmt(s *ast.TryStmt) *signal {
	sig := ev.execBlock(s.Body.Statements, ev.arena.NewChild(ev.current))
	if sig != nil && sig.kind == signalThrow && s.Catch != nil {
		scope := ev.arena.NewChild(ev.current)
		if s.Catch.Name != "" {
			scope.Define(s.Catch.Name, sig.payload)
		}
		sig = ev.execBlock(s.Catch.Body.Statements, scope)
	}
	if s.Finally != nil {
		if finallySig := ev.execBlock(s.Finally.Statements, ev.arena.NewChild(ev.current)); finallySig != nil {
			// A signal from `finally` overrides whatever try/catch produced
			// (matches the usual try/finally override rule).
			return finallySig
		}
	}
	return sig
}

func (ev *Evaluator) execThrowStmt(s *ast.ThrowStmt) *signal {
	v, sig := ev.eval(s.Value)
	if sig != nil {
		return sig
	}
	return throwSignal(v)
}
