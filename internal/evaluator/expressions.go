package evaluator

import (
	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/token"
	"github.com/iziteam/izi/internal/value"
)

// eval walks one expression node, returning either its Value or a
// signal (always signalThrow for expressions — no expression form
// produces Return/Break/Continue).
func (ev *Evaluator) eval(expr ast.Expr) (value.Value, *signal) {
	switch e := expr.(type) {
	case *ast.Literal:
		return ev.evalLiteral(e), nil
	case *ast.Identifier:
		return ev.evalIdentifier(e)
	case *ast.ArrayLiteral:
		return ev.evalArrayLiteral(e)
	case *ast.MapLiteral:
		return ev.evalMapLiteral(e)
	case *ast.Unary:
		return ev.evalUnary(e)
	case *ast.Binary:
		return ev.evalBinary(e)
	case *ast.Logical:
		return ev.evalLogical(e)
	case *ast.Nullish:
		return ev.evalNullish(e)
	case *ast.Conditional:
		return ev.evalConditional(e)
	case *ast.Assign:
		return ev.evalAssign(e)
	case *ast.Call:
		return ev.evalCall(e)
	case *ast.Index:
		return ev.evalIndex(e)
	case *ast.Property:
		return ev.evalProperty(e)
	case *ast.ThisExpr:
		return ev.evalThis(e)
	case *ast.SuperExpr:
		return ev.evalSuper(e)
	case *ast.FunctionExpr:
		return ev.evalFunctionExpr(e), nil
	case *ast.MatchExpr:
		return ev.evalMatchExpr(e)
	case *ast.AwaitExpr:
		v, sig := ev.eval(e.Value)
		if sig != nil {
			return nil, sig
		}
		return ev.await(v, e)
	default:
		return nil, ev.runtimeErrorf(expr, "InternalError", "unhandled expression type %T", expr)
	}
}

func (ev *Evaluator) evalLiteral(l *ast.Literal) value.Value {
	switch l.Kind {
	case ast.LiteralNil:
		return value.Nil{}
	case ast.LiteralBool:
		return value.Boolean(l.Bool)
	case ast.LiteralNumber:
		return value.Number(l.Num)
	case ast.LiteralString:
		return value.String(l.Str)
	default:
		return value.Nil{}
	}
}

func (ev *Evaluator) evalIdentifier(id *ast.Identifier) (value.Value, *signal) {
	if v, ok := ev.current.Get(id.Name); ok {
		return v, nil
	}
	return nil, ev.runtimeErrorf(id, "NameError", "undefined name %q", id.Name)
}

// evalArgs evaluates an argument list, splicing SpreadExpr arguments
// (spec §4.4 call-site spread, §4.2 array-literal spread) into the
// flat argument slice.
func (ev *Evaluator) evalArgs(exprs []ast.Expr) ([]value.Value, *signal) {
	out := make([]value.Value, 0, len(exprs))
	for _, e := range exprs {
		if spread, ok := e.(*ast.SpreadExpr); ok {
			v, sig := ev.eval(spread.Value)
			if sig != nil {
				return nil, sig
			}
			arr, ok := v.(*value.Array)
			if !ok {
				return nil, ev.runtimeErrorf(spread, "TypeError", "spread target must be an array, got %s", v.Type())
			}
			out = append(out, arr.Elements...)
			continue
		}
		v, sig := ev.eval(e)
		if sig != nil {
			return nil, sig
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *Evaluator) evalArrayLiteral(a *ast.ArrayLiteral) (value.Value, *signal) {
	elems, sig := ev.evalArgs(a.Elements)
	if sig != nil {
		return nil, sig
	}
	return value.NewArray(elems), nil
}

func (ev *Evaluator) evalMapLiteral(m *ast.MapLiteral) (value.Value, *signal) {
	out := value.NewMap()
	for _, entry := range m.Entries {
		if entry.Spread != nil {
			v, sig := ev.eval(entry.Spread)
			if sig != nil {
				return nil, sig
			}
			src, ok := v.(*value.Map)
			if !ok {
				return nil, ev.runtimeErrorf(m, "TypeError", "spread target must be a map, got %s", v.Type())
			}
			for _, k := range src.Keys() {
				fv, _ := src.Get(k)
				out.Set(k, fv)
			}
			continue
		}
		keyVal, sig := ev.eval(entry.Key)
		if sig != nil {
			return nil, sig
		}
		key, ok := keyVal.(value.String)
		if !ok {
			return nil, ev.runtimeErrorf(m, "TypeError", "map keys must be strings, got %s", keyVal.Type())
		}
		val, sig := ev.eval(entry.Value)
		if sig != nil {
			return nil, sig
		}
		out.Set(string(key), val)
	}
	return out, nil
}

func (ev *Evaluator) evalUnary(u *ast.Unary) (value.Value, *signal) {
	operand, sig := ev.eval(u.Operand)
	if sig != nil {
		return nil, sig
	}
	switch u.Operator {
	case token.Bang:
		return value.Boolean(!value.Truthy(operand)), nil
	case token.Minus:
		n, ok := operand.(value.Number)
		if !ok {
			return nil, ev.runtimeErrorf(u, "TypeError", "unary - expects a number, got %s", operand.Type())
		}
		return -n, nil
	default:
		return nil, ev.runtimeErrorf(u, "InternalError", "unhandled unary operator %s", u.Operator)
	}
}

func asNumber(v value.Value) (value.Number, bool) {
	n, ok := v.(value.Number)
	return n, ok
}

func (ev *Evaluator) evalBinary(b *ast.Binary) (value.Value, *signal) {
	left, sig := ev.eval(b.Left)
	if sig != nil {
		return nil, sig
	}
	right, sig := ev.eval(b.Right)
	if sig != nil {
		return nil, sig
	}

	switch b.Operator {
	case token.EqualEqual:
		return value.Boolean(value.Equal(left, right)), nil
	case token.BangEqual:
		return value.Boolean(!value.Equal(left, right)), nil
	case token.Plus:
		if ls, ok := left.(value.String); ok {
			rs, ok := right.(value.String)
			if !ok {
				return nil, ev.runtimeErrorf(b, "TypeError", "cannot add %s to string", right.Type())
			}
			return value.String(string(ls) + string(rs)), nil
		}
		ln, ok := asNumber(left)
		if !ok {
			return nil, ev.runtimeErrorf(b, "TypeError", "+ expects numbers or strings, got %s", left.Type())
		}
		rn, ok := asNumber(right)
		if !ok {
			return nil, ev.runtimeErrorf(b, "TypeError", "+ expects numbers or strings, got %s", right.Type())
		}
		return ln + rn, nil
	case token.Minus, token.Star, token.Slash:
		ln, ok := asNumber(left)
		if !ok {
			return nil, ev.runtimeErrorf(b, "TypeError", "%s expects numbers, got %s", b.Operator, left.Type())
		}
		rn, ok := asNumber(right)
		if !ok {
			return nil, ev.runtimeErrorf(b, "TypeError", "%s expects numbers, got %s", b.Operator, right.Type())
		}
		switch b.Operator {
		case token.Minus:
			return ln - rn, nil
		case token.Star:
			return ln * rn, nil
		case token.Slash:
			if rn == 0 {
				return nil, ev.runtimeErrorf(b, "ValueError", "division by zero")
			}
			return ln / rn, nil
		}
	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
		return ev.evalComparison(b, left, right)
	}
	return nil, ev.runtimeErrorf(b, "InternalError", "unhandled binary operator %s", b.Operator)
}

func (ev *Evaluator) evalComparison(b *ast.Binary, left, right value.Value) (value.Value, *signal) {
	if ln, ok := left.(value.Number); ok {
		rn, ok := right.(value.Number)
		if !ok {
			return nil, ev.runtimeErrorf(b, "TypeError", "cannot compare number to %s", right.Type())
		}
		return value.Boolean(compareOrdered(float64(ln), float64(rn), b.Operator)), nil
	}
	if ls, ok := left.(value.String); ok {
		rs, ok := right.(value.String)
		if !ok {
			return nil, ev.runtimeErrorf(b, "TypeError", "cannot compare string to %s", right.Type())
		}
		return value.Boolean(compareStrings(string(ls), string(rs), b.Operator)), nil
	}
	return nil, ev.runtimeErrorf(b, "TypeError", "%s is not comparable", left.Type())
}

func compareOrdered(a, b float64, op token.Kind) bool {
	switch op {
	case token.Less:
		return a < b
	case token.LessEqual:
		return a <= b
	case token.Greater:
		return a > b
	case token.GreaterEqual:
		return a >= b
	}
	return false
}

func compareStrings(a, b string, op token.Kind) bool {
	switch op {
	case token.Less:
		return a < b
	case token.LessEqual:
		return a <= b
	case token.Greater:
		return a > b
	case token.GreaterEqual:
		return a >= b
	}
	return false
}

func (ev *Evaluator) evalLogical(l *ast.Logical) (value.Value, *signal) {
	left, sig := ev.eval(l.Left)
	if sig != nil {
		return nil, sig
	}
	if l.Operator == token.And {
		if !value.Truthy(left) {
			return left, nil
		}
		return ev.eval(l.Right)
	}
	// or
	if value.Truthy(left) {
		return left, nil
	}
	return ev.eval(l.Right)
}

func (ev *Evaluator) evalNullish(n *ast.Nullish) (value.Value, *signal) {
	left, sig := ev.eval(n.Left)
	if sig != nil {
		return nil, sig
	}
	if _, isNil := left.(value.Nil); isNil {
		return ev.eval(n.Right)
	}
	return left, nil
}

func (ev *Evaluator) evalConditional(c *ast.Conditional) (value.Value, *signal) {
	cond, sig := ev.eval(c.Condition)
	if sig != nil {
		return nil, sig
	}
	if value.Truthy(cond) {
		return ev.eval(c.Then)
	}
	return ev.eval(c.Else)
}

func (ev *Evaluator) evalAssign(a *ast.Assign) (value.Value, *signal) {
	v, sig := ev.eval(a.Value)
	if sig != nil {
		return nil, sig
	}
	switch target := a.Target.(type) {
	case *ast.Identifier:
		if !ev.current.Assign(target.Name, v) {
			return nil, ev.runtimeErrorf(a, "NameError", "undefined name %q", target.Name)
		}
		return v, nil
	case *ast.Index:
		coll, sig := ev.eval(target.Collection)
		if sig != nil {
			return nil, sig
		}
		idx, sig := ev.eval(target.IndexExpr)
		if sig != nil {
			return nil, sig
		}
		if sig := ev.assignIndex(target, coll, idx, v); sig != nil {
			return nil, sig
		}
		return v, nil
	case *ast.Property:
		obj, sig := ev.eval(target.Object)
		if sig != nil {
			return nil, sig
		}
		switch o := obj.(type) {
		case *Instance:
			o.Set(target.Name, v)
		case *value.Map:
			o.Set(target.Name, v)
		default:
			return nil, ev.runtimeErrorf(a, "TypeError", "cannot set property on %s", obj.Type())
		}
		return v, nil
	default:
		return nil, ev.runtimeErrorf(a, "InternalError", "invalid assignment target")
	}
}

func (ev *Evaluator) assignIndex(node ast.Node, coll, idx, v value.Value) *signal {
	switch c := coll.(type) {
	case *value.Array:
		n, ok := idx.(value.Number)
		if !ok {
			return ev.runtimeErrorf(node, "TypeError", "array index must be a number, got %s", idx.Type())
		}
		i := int(n)
		if i < 0 || i >= len(c.Elements) {
			return ev.runtimeErrorf(node, "IndexError", "array index %d out of range (len %d)", i, len(c.Elements))
		}
		c.Elements[i] = v
		return nil
	case *value.Map:
		key, ok := idx.(value.String)
		if !ok {
			return ev.runtimeErrorf(node, "TypeError", "map key must be a string, got %s", idx.Type())
		}
		c.Set(string(key), v)
		return nil
	default:
		return ev.runtimeErrorf(node, "TypeError", "%s is not indexable", coll.Type())
	}
}

func (ev *Evaluator) evalCall(c *ast.Call) (value.Value, *signal) {
	callee, sig := ev.eval(c.Callee)
	if sig != nil {
		return nil, sig
	}
	args, sig := ev.evalArgs(c.Args)
	if sig != nil {
		return nil, sig
	}
	return ev.call(callee, args, c)
}

func (ev *Evaluator) evalIndex(ix *ast.Index) (value.Value, *signal) {
	coll, sig := ev.eval(ix.Collection)
	if sig != nil {
		return nil, sig
	}
	idx, sig := ev.eval(ix.IndexExpr)
	if sig != nil {
		return nil, sig
	}
	switch c := coll.(type) {
	case *value.Array:
		n, ok := idx.(value.Number)
		if !ok {
			return nil, ev.runtimeErrorf(ix, "TypeError", "array index must be a number, got %s", idx.Type())
		}
		i := int(n)
		if i < 0 || i >= len(c.Elements) {
			return nil, ev.runtimeErrorf(ix, "IndexError", "array index %d out of range (len %d)", i, len(c.Elements))
		}
		return c.Elements[i], nil
	case *value.Map:
		key, ok := idx.(value.String)
		if !ok {
			return nil, ev.runtimeErrorf(ix, "TypeError", "map key must be a string, got %s", idx.Type())
		}
		v, ok := c.Get(string(key))
		if !ok {
			return value.Nil{}, nil
		}
		return v, nil
	case *value.Set:
		return value.Boolean(c.Has(idx)), nil
	default:
		return nil, ev.runtimeErrorf(ix, "TypeError", "%s is not indexable", coll.Type())
	}
}

func (ev *Evaluator) evalProperty(p *ast.Property) (value.Value, *signal) {
	obj, sig := ev.eval(p.Object)
	if sig != nil {
		return nil, sig
	}
	switch o := obj.(type) {
	case *Instance:
		v, ok := o.Get(p.Name)
		if !ok {
			return nil, ev.runtimeErrorf(p, "NameError", "%s has no field or method %q", o.Class.Name, p.Name)
		}
		return v, nil
	case *value.Map:
		v, ok := o.Get(p.Name)
		if !ok {
			return value.Nil{}, nil
		}
		return v, nil
	case *Class:
		if m, _ := o.FindMethod(p.Name); m != nil {
			return m, nil
		}
		return nil, ev.runtimeErrorf(p, "NameError", "%s has no static member %q", o.Name, p.Name)
	default:
		return nil, ev.runtimeErrorf(p, "TypeError", "%s has no property %q", obj.Type(), p.Name)
	}
}

func (ev *Evaluator) evalThis(t *ast.ThisExpr) (value.Value, *signal) {
	v, ok := ev.current.Get("this")
	if !ok {
		return nil, ev.runtimeErrorf(t, "NameError", "'this' is not bound outside a method")
	}
	return v, nil
}

func (ev *Evaluator) evalSuper(s *ast.SuperExpr) (value.Value, *signal) {
	thisVal, ok := ev.current.Get("this")
	if !ok {
		return nil, ev.runtimeErrorf(s, "NameError", "'super' is not bound outside a method")
	}
	inst, ok := thisVal.(*Instance)
	if !ok || len(ev.classStack) == 0 {
		return nil, ev.runtimeErrorf(s, "NameError", "'super' is not bound outside a method")
	}
	declClass := ev.classStack[len(ev.classStack)-1]
	if declClass.Super == nil {
		return nil, ev.runtimeErrorf(s, "NameError", "%s has no superclass", declClass.Name)
	}
	m, _ := declClass.Super.FindMethod(s.Method)
	if m == nil {
		return nil, ev.runtimeErrorf(s, "NameError", "superclass has no method %q", s.Method)
	}
	return &BoundMethod{Method: m, Receiver: inst}, nil
}

func (ev *Evaluator) evalFunctionExpr(f *ast.FunctionExpr) value.Value {
	return &UserFunction{
		Name:    f.Name,
		Params:  paramNames(f.Params),
		Body:    f.Body,
		Closure: ev.current,
		Async:   f.Async,
	}
}

func (ev *Evaluator) evalMatchExpr(m *ast.MatchExpr) (value.Value, *signal) {
	scrutinee, sig := ev.eval(m.Scrutinee)
	if sig != nil {
		return nil, sig
	}
	for _, arm := range m.Arms {
		saved := ev.current
		scope := ev.arena.NewChild(saved)
		ev.current = scope
		if !ev.matchPattern(arm.Pattern, scrutinee, scope) {
			ev.current = saved
			continue
		}
		if arm.Guard != nil {
			g, sig := ev.eval(arm.Guard)
			if sig != nil {
				ev.current = saved
				return nil, sig
			}
			if !value.Truthy(g) {
				ev.current = saved
				continue
			}
		}
		result, sig := ev.eval(arm.Result)
		ev.current = saved
		return result, sig
	}
	return nil, ev.runtimeErrorf(m, "ValueError", "no match arm matched value %s", ev.stringify(scrutinee))
}
