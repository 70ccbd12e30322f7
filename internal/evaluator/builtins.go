package evaluator

import (
	"fmt"

	"github.com/iziteam/izi/internal/natives"
	"github.com/iziteam/izi/internal/value"
)

// registerBuiltins binds the handful of global primitives spec §4.6/§7
// describes as ordinary callables rather than keywords: str() (used by
// string-interpolation desugaring, spec §4.4), spawn() (spec §4.6,
// deliberately an ordinary identifier rather than a reserved word — see
// SPEC_FULL.md's Open Question on the token set), and set() — the only
// way izi source can construct a value.Set, since the grammar has no
// set-literal syntax (spec §3.2 Set).
func (ev *Evaluator) registerBuiltins() {
	ev.globals.Define("str", &natives.Function{
		Name:  "str",
		Arity: 1,
		Impl: func(ctx natives.Context, args []value.Value) (value.Value, error) {
			return value.String(ctx.Stringify(args[0])), nil
		},
	})

	ev.globals.Define("spawn", &natives.Function{
		Name:  "spawn",
		Arity: 1,
		Impl: func(ctx natives.Context, args []value.Value) (value.Value, error) {
			switch args[0].(type) {
			case *UserFunction, *BoundMethod, *natives.Function:
				return &Task{State: TaskPending, Body: args[0]}, nil
			default:
				return nil, fmt.Errorf("TypeError: spawn expects a callable, got %s", args[0].Type())
			}
		},
	})

	ev.globals.Define("set", &natives.Function{
		Name:  "set",
		Arity: -1,
		Impl: func(ctx natives.Context, args []value.Value) (value.Value, error) {
			s := value.NewSet()
			for _, a := range args {
				if _, err := s.Add(a); err != nil {
					return nil, err
				}
			}
			return s, nil
		},
	})

	ev.globals.Define("len", &natives.Function{
		Name:  "len",
		Arity: 1,
		Impl: func(ctx natives.Context, args []value.Value) (value.Value, error) {
			switch v := args[0].(type) {
			case value.String:
				return value.Number(len([]rune(string(v)))), nil
			case *value.Array:
				return value.Number(len(v.Elements)), nil
			case *value.Map:
				return value.Number(v.Len()), nil
			case *value.Set:
				return value.Number(v.Len()), nil
			default:
				return nil, fmt.Errorf("TypeError: len() does not accept %s", args[0].Type())
			}
		},
	})
}
