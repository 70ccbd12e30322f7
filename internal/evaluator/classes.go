package evaluator

import (
	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/value"
)

// execClassStmt builds the runtime Class descriptor and binds it in the
// current scope (spec §3.4, §4.5 class declaration).
func (ev *Evaluator) execClassStmt(stmt *ast.ClassStmt) *signal {
	var super *Class
	if stmt.Superclass != nil {
		v, ok := ev.current.Get(stmt.Superclass.Name)
		if !ok {
			return ev.runtimeErrorf(stmt, "NameError", "undefined superclass %q", stmt.Superclass.Name)
		}
		super, ok = v.(*Class)
		if !ok {
			return ev.runtimeErrorf(stmt, "TypeError", "%q is not a class", stmt.Superclass.Name)
		}
	}

	cls := &Class{
		Name:       stmt.Name,
		Super:      super,
		Fields:     stmt.Fields,
		Methods:    make(map[string]*UserFunction),
		ClosureEnv: ev.current,
	}
	for _, m := range stmt.Methods {
		cls.Methods[m.Function.Name] = &UserFunction{
			Name:    m.Function.Name,
			Params:  paramNames(m.Function.Params),
			Body:    m.Function.Body,
			Closure: ev.current,
			Async:   m.Function.Async,
		}
	}

	ev.current.Define(stmt.Name, cls)
	if stmt.Exported {
		ev.exportName(stmt.Name, cls)
	}
	return nil
}

func paramNames(params []ast.Identifier) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}

// instantiate allocates a new Instance, runs field initializers from
// the base class down to the most derived one (so a subclass's default
// overrides its parent's), then calls `constructor` if the class chain
// defines one (spec §3.4 "construction").
func (ev *Evaluator) instantiate(cls *Class, args []value.Value, callNode ast.Node) (value.Value, *signal) {
	inst := &Instance{Class: cls, Fields: make(map[string]value.Value)}

	chain := classChainFromBase(cls)
	for _, c := range chain {
		saved := ev.current
		scope := ev.arena.NewChild(c.ClosureEnv)
		scope.Define("this", inst)
		ev.current = scope
		for _, f := range c.Fields {
			var fv value.Value = value.Nil{}
			if f.Initializer != nil {
				v, sig := ev.eval(f.Initializer)
				if sig != nil {
					ev.current = saved
					return nil, sig
				}
				fv = v
			}
			inst.Fields[f.Name] = fv
		}
		ev.current = saved
	}

	if ctor, declClass := cls.FindMethod("constructor"); ctor != nil {
		_, sig := ev.callUserFunction(ctor, inst, args, callNode, declClass)
		if sig != nil {
			return nil, sig
		}
	} else if len(args) != 0 {
		return nil, ev.runtimeErrorf(callNode, "ArityError", "%s has no constructor, expects 0 arguments, got %d", cls.Name, len(args))
	}

	return inst, nil
}

func classChainFromBase(cls *Class) []*Class {
	var chain []*Class
	for c := cls; c != nil; c = c.Super {
		chain = append(chain, c)
	}
	// reverse: base class first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
