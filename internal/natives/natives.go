// Package natives implements the native-callable mechanism spec §4.5/§6.2
// describes — a Go function plus a declared arity (-1 for variadic) — and
// registers a minimal reference subset of the fixed native-module
// namespace in spec §6.2: math, string, array, assert, env, process.
//
// Real host I/O (file, network, audio, GUI — the remaining names in
// spec §6.2) is explicitly out of scope per spec §1; those names still
// resolve (so import resolution and the native short-circuit are fully
// exercised end to end) but return an empty exports map tagged with a
// placeholder explaining why no host collaborator is wired up.
package natives

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/iziteam/izi/internal/value"
)

// Context is the minimal host surface a NativeFunction needs. The
// evaluator implements this interface so natives never imports package
// evaluator (avoiding an import cycle) while still reaching stdout,
// process args, and the environment.
type Context interface {
	Stdout() io.Writer
	Args() []string
	Getenv(name string) string
	Stringify(v value.Value) string
}

// Fn is a native function implementation.
type Fn func(ctx Context, args []value.Value) (value.Value, error)

// Function is a Callable Value wrapping a native implementation (spec
// §3.2 Callable "native function (arity, implementation)").
type Function struct {
	Name  string
	Arity int // -1 means variadic
	Impl  Fn
}

func (f *Function) Type() string   { return "NATIVE_FUNCTION" }
func (f *Function) String() string { return fmt.Sprintf("<native fn %s>", f.Name) }

// Call checks arity (spec §7 ArityError) and invokes Impl.
func (f *Function) Call(ctx Context, args []value.Value) (value.Value, error) {
	if f.Arity >= 0 && len(args) != f.Arity {
		return nil, fmt.Errorf("ArityError: %s expects %d argument(s), got %d", f.Name, f.Arity, len(args))
	}
	return f.Impl(ctx, args)
}

func fn(name string, arity int, impl Fn) *Function {
	return &Function{Name: name, Arity: arity, Impl: impl}
}

func newModule(fns ...*Function) *value.Map {
	m := value.NewMap()
	for _, f := range fns {
		m.Set(f.Name, f)
	}
	return m
}

// Placeholder names are §6.2 entries that resolve but carry no host
// implementation in this build (spec §1 Out of scope).
var placeholderNames = map[string]bool{
	"io": true, "log": true, "path": true, "fs": true, "time": true,
	"json": true, "regex": true, "http": true, "ui": true, "audio": true,
	"image": true, "ipc": true, "net": true,
}

// Resolve returns the exports map for a native module name (bare, "std."
// already stripped by the caller), or (nil, false) if name is not a
// recognized native module at all.
func Resolve(name string) (*value.Map, bool) {
	switch name {
	case "math":
		return mathModule(), true
	case "string":
		return stringModule(), true
	case "array":
		return arrayModule(), true
	case "assert":
		return assertModule(), true
	case "env":
		return envModule(), true
	case "process":
		return processModule(), true
	}
	if placeholderNames[name] {
		m := value.NewMap()
		m.Set("__host__", value.String("not available in this build: "+name+" is a native host collaborator out of scope for the core (spec §1)"))
		return m, true
	}
	return nil, false
}

func numArg(args []value.Value, i int) (float64, error) {
	n, ok := args[i].(value.Number)
	if !ok {
		return 0, fmt.Errorf("TypeError: argument %d must be a number, got %s", i+1, args[i].Type())
	}
	return float64(n), nil
}

func strArg(args []value.Value, i int) (string, error) {
	s, ok := args[i].(value.String)
	if !ok {
		return "", fmt.Errorf("TypeError: argument %d must be a string, got %s", i+1, args[i].Type())
	}
	return string(s), nil
}

func mathModule() *value.Map {
	return newModule(
		fn("abs", 1, func(_ Context, a []value.Value) (value.Value, error) {
			n, err := numArg(a, 0)
			if err != nil {
				return nil, err
			}
			return value.Number(math.Abs(n)), nil
		}),
		fn("floor", 1, func(_ Context, a []value.Value) (value.Value, error) {
			n, err := numArg(a, 0)
			if err != nil {
				return nil, err
			}
			return value.Number(math.Floor(n)), nil
		}),
		fn("ceil", 1, func(_ Context, a []value.Value) (value.Value, error) {
			n, err := numArg(a, 0)
			if err != nil {
				return nil, err
			}
			return value.Number(math.Ceil(n)), nil
		}),
		fn("sqrt", 1, func(_ Context, a []value.Value) (value.Value, error) {
			n, err := numArg(a, 0)
			if err != nil {
				return nil, err
			}
			return value.Number(math.Sqrt(n)), nil
		}),
		fn("pow", 2, func(_ Context, a []value.Value) (value.Value, error) {
			base, err := numArg(a, 0)
			if err != nil {
				return nil, err
			}
			exp, err := numArg(a, 1)
			if err != nil {
				return nil, err
			}
			return value.Number(math.Pow(base, exp)), nil
		}),
		fn("max", -1, func(_ Context, a []value.Value) (value.Value, error) {
			if len(a) == 0 {
				return nil, fmt.Errorf("ArityError: max expects at least 1 argument")
			}
			best, err := numArg(a, 0)
			if err != nil {
				return nil, err
			}
			for i := 1; i < len(a); i++ {
				n, err := numArg(a, i)
				if err != nil {
					return nil, err
				}
				if n > best {
					best = n
				}
			}
			return value.Number(best), nil
		}),
		fn("min", -1, func(_ Context, a []value.Value) (value.Value, error) {
			if len(a) == 0 {
				return nil, fmt.Errorf("ArityError: min expects at least 1 argument")
			}
			best, err := numArg(a, 0)
			if err != nil {
				return nil, err
			}
			for i := 1; i < len(a); i++ {
				n, err := numArg(a, i)
				if err != nil {
					return nil, err
				}
				if n < best {
					best = n
				}
			}
			return value.Number(best), nil
		}),
	)
}

func stringModule() *value.Map {
	return newModule(
		fn("upper", 1, func(_ Context, a []value.Value) (value.Value, error) {
			s, err := strArg(a, 0)
			if err != nil {
				return nil, err
			}
			return value.String(strings.ToUpper(s)), nil
		}),
		fn("lower", 1, func(_ Context, a []value.Value) (value.Value, error) {
			s, err := strArg(a, 0)
			if err != nil {
				return nil, err
			}
			return value.String(strings.ToLower(s)), nil
		}),
		fn("trim", 1, func(_ Context, a []value.Value) (value.Value, error) {
			s, err := strArg(a, 0)
			if err != nil {
				return nil, err
			}
			return value.String(strings.TrimSpace(s)), nil
		}),
		fn("split", 2, func(_ Context, a []value.Value) (value.Value, error) {
			s, err := strArg(a, 0)
			if err != nil {
				return nil, err
			}
			sep, err := strArg(a, 1)
			if err != nil {
				return nil, err
			}
			parts := strings.Split(s, sep)
			elems := make([]value.Value, len(parts))
			for i, p := range parts {
				elems[i] = value.String(p)
			}
			return value.NewArray(elems), nil
		}),
		fn("len", 1, func(_ Context, a []value.Value) (value.Value, error) {
			s, err := strArg(a, 0)
			if err != nil {
				return nil, err
			}
			return value.Number(len([]rune(s))), nil
		}),
		fn("contains", 2, func(_ Context, a []value.Value) (value.Value, error) {
			s, err := strArg(a, 0)
			if err != nil {
				return nil, err
			}
			sub, err := strArg(a, 1)
			if err != nil {
				return nil, err
			}
			return value.Boolean(strings.Contains(s, sub)), nil
		}),
	)
}

func arrayModule() *value.Map {
	return newModule(
		fn("length", 1, func(_ Context, a []value.Value) (value.Value, error) {
			arr, ok := a[0].(*value.Array)
			if !ok {
				return nil, fmt.Errorf("TypeError: argument 1 must be an array, got %s", a[0].Type())
			}
			return value.Number(len(arr.Elements)), nil
		}),
		fn("push", 2, func(_ Context, a []value.Value) (value.Value, error) {
			arr, ok := a[0].(*value.Array)
			if !ok {
				return nil, fmt.Errorf("TypeError: argument 1 must be an array, got %s", a[0].Type())
			}
			arr.Elements = append(arr.Elements, a[1])
			return arr, nil
		}),
		fn("pop", 1, func(_ Context, a []value.Value) (value.Value, error) {
			arr, ok := a[0].(*value.Array)
			if !ok {
				return nil, fmt.Errorf("TypeError: argument 1 must be an array, got %s", a[0].Type())
			}
			if len(arr.Elements) == 0 {
				return value.Nil{}, nil
			}
			last := arr.Elements[len(arr.Elements)-1]
			arr.Elements = arr.Elements[:len(arr.Elements)-1]
			return last, nil
		}),
	)
}

func assertModule() *value.Map {
	return newModule(
		fn("ok", -1, func(ctx Context, a []value.Value) (value.Value, error) {
			if len(a) == 0 {
				return nil, fmt.Errorf("ArityError: ok expects at least 1 argument")
			}
			if !value.Truthy(a[0]) {
				msg := "assertion failed"
				if len(a) > 1 {
					msg = ctx.Stringify(a[1])
				}
				return nil, fmt.Errorf("ValueError: %s", msg)
			}
			return value.Nil{}, nil
		}),
		fn("equal", 2, func(ctx Context, a []value.Value) (value.Value, error) {
			if !value.Equal(a[0], a[1]) {
				return nil, fmt.Errorf("ValueError: expected %s to equal %s", ctx.Stringify(a[0]), ctx.Stringify(a[1]))
			}
			return value.Nil{}, nil
		}),
	)
}

func envModule() *value.Map {
	return newModule(
		fn("get", 1, func(ctx Context, a []value.Value) (value.Value, error) {
			name, err := strArg(a, 0)
			if err != nil {
				return nil, err
			}
			v := ctx.Getenv(name)
			if v == "" {
				return value.Nil{}, nil
			}
			return value.String(v), nil
		}),
	)
}

func processModule() *value.Map {
	m := value.NewMap()
	m.Set("args", fn("args", 0, func(ctx Context, _ []value.Value) (value.Value, error) {
		args := ctx.Args()
		elems := make([]value.Value, len(args))
		for i, a := range args {
			elems[i] = value.String(a)
		}
		return value.NewArray(elems), nil
	}))
	return m
}
