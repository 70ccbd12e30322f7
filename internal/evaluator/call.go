package evaluator

import (
	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/natives"
	"github.com/iziteam/izi/internal/token"
	"github.com/iziteam/izi/internal/value"
)

// syntheticNode stands in for a call site the evaluator itself
// synthesizes (an implicit toString() invocation, a Task body with no
// textual call expression) rather than one the parser produced.
type syntheticNode struct{}

func (n syntheticNode) TokenLiteral() string   { return "" }
func (n syntheticNode) String() string         { return "<internal>" }
func (n syntheticNode) Pos() token.Position    { return token.Position{Line: 0, Column: 0} }

// call invokes any Callable Value, checking arity and the recursion
// depth limit (spec §4.5, §9 MAX_CALL_DEPTH). callNode supplies the
// call site's position for diagnostics and the stack trace; nil means
// an internally synthesized call.
//
// Calling an async function or method does not run its body: it
// creates a pending Task (spec §3.5 "Created by invoking an async
// function or by the spawn primitive"), the same as spawn() does
// explicitly for ordinary callables. The body only actually runs when
// something drives the Task, via invoke below.
func (ev *Evaluator) call(callee value.Value, args []value.Value, callNode ast.Node) (value.Value, *signal) {
	if isAsyncCallable(callee) {
		return &Task{State: TaskPending, Body: callee, Args: args}, nil
	}
	return ev.invoke(callee, args, callNode)
}

func isAsyncCallable(callee value.Value) bool {
	switch fn := callee.(type) {
	case *UserFunction:
		return fn.Async
	case *BoundMethod:
		return fn.Method.Async
	default:
		return false
	}
}

// invoke runs callee's body directly, bypassing the async-wraps-into-
// a-Task check in call above. Used for the calls that must actually
// execute now: driving a Task's body (task.go), spawn() capturing an
// already-evaluated callable as a Task body, and the implicit
// toString() dispatch in stringify.
func (ev *Evaluator) invoke(callee value.Value, args []value.Value, callNode ast.Node) (value.Value, *signal) {
	if callNode == nil {
		callNode = syntheticNode{}
	}

	ev.callDepth++
	defer func() { ev.callDepth-- }()
	if ev.callDepth > MaxCallDepth {
		return nil, ev.runtimeErrorf(callNode, "StackOverflow", "maximum call depth (%d) exceeded", MaxCallDepth)
	}

	switch fn := callee.(type) {
	case *natives.Function:
		result, err := fn.Call(ev, args)
		if err != nil {
			return nil, throwSignal(NewError("NativeError", err.Error()))
		}
		return result, nil

	case *UserFunction:
		return ev.callUserFunction(fn, nil, args, callNode)

	case *BoundMethod:
		declClass := ev.methodDeclaringClass(fn)
		return ev.callUserFunction(fn.Method, fn.Receiver, args, callNode, declClass)

	case *Class:
		return ev.instantiate(fn, args, callNode)

	default:
		return nil, ev.runtimeErrorf(callNode, "TypeError", "%s is not callable", callee.Type())
	}
}

// methodDeclaringClass finds which class in the receiver's chain
// actually declares fn, so super.method inside it resolves against
// THAT class's parent rather than the receiver's dynamic type (spec §9
// "resolved at call time against the declaring class, not the runtime
// type").
func (ev *Evaluator) methodDeclaringClass(b *BoundMethod) *Class {
	for cur := b.Receiver.Class; cur != nil; cur = cur.Super {
		if m, ok := cur.Methods[b.Method.Name]; ok && m == b.Method {
			return cur
		}
	}
	return b.Receiver.Class
}

// callUserFunction binds params, optionally `this`, pushes a fresh
// child scope of the function's closure, and runs its body.
// declClass, if present, is pushed onto classStack for super
// resolution and popped on return.
func (ev *Evaluator) callUserFunction(fn *UserFunction, receiver *Instance, args []value.Value, callNode ast.Node, declClass ...*Class) (value.Value, *signal) {
	if len(args) != len(fn.Params) {
		return nil, ev.runtimeErrorf(callNode, "ArityError", "%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	saved := ev.current
	scope := ev.arena.NewChild(fn.Closure)
	ev.current = scope

	if receiver != nil {
		ev.current.Define("this", receiver)
	}
	for i, p := range fn.Params {
		ev.current.Define(p, args[i])
	}

	var pushedClass bool
	if len(declClass) > 0 && declClass[0] != nil {
		ev.classStack = append(ev.classStack, declClass[0])
		pushedClass = true
	}

	if ev.debug.EnterFunction != nil {
		ev.debug.EnterFunction(fn.Name)
	}

	var result value.Value = value.Nil{}
	var out *signal
	for _, stmt := range fn.Body {
		v, sig := ev.exec(stmt)
		if sig != nil {
			switch sig.kind {
			case signalReturn:
				result = sig.payload
			case signalThrow:
				out = sig
			default:
				// break/continue escaping a function body is an
				// analyzer-time error (spec §4.3); treat as no-op here.
			}
			break
		}
		if v != nil {
			result = v
		}
	}

	if ev.debug.ExitFunction != nil {
		ev.debug.ExitFunction(fn.Name)
	}
	if pushedClass {
		ev.classStack = ev.classStack[:len(ev.classStack)-1]
	}
	ev.current = saved

	if out != nil {
		return nil, out
	}
	return result, nil
}
