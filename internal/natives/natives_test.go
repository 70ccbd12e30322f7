package natives

import (
	"bytes"
	"io"
	"testing"

	"github.com/iziteam/izi/internal/value"
)

// fakeContext is a minimal natives.Context for exercising Function.Call
// in isolation, without depending on package evaluator.
type fakeContext struct {
	out  bytes.Buffer
	args []string
	env  map[string]string
}

func (f *fakeContext) Stdout() io.Writer              { return &f.out }
func (f *fakeContext) Args() []string                 { return f.args }
func (f *fakeContext) Getenv(name string) string      { return f.env[name] }
func (f *fakeContext) Stringify(v value.Value) string { return v.String() }

func TestResolveKnownModules(t *testing.T) {
	for _, name := range []string{"math", "string", "array", "assert", "env", "process"} {
		m, ok := Resolve(name)
		if !ok || m == nil {
			t.Errorf("Resolve(%q) = %v, %v, want a module", name, m, ok)
		}
	}
}

func TestResolveUnknownNameFails(t *testing.T) {
	if _, ok := Resolve("not-a-real-module"); ok {
		t.Error("Resolve of an unknown name should fail")
	}
}

func TestResolvePlaceholderModuleCarriesHostMarker(t *testing.T) {
	m, ok := Resolve("fs")
	if !ok {
		t.Fatal("Resolve(fs) should succeed as a placeholder")
	}
	v, ok := m.Get("__host__")
	if !ok {
		t.Fatal("placeholder module should set __host__")
	}
	if _, ok := v.(value.String); !ok {
		t.Errorf("__host__ = %v, want a String", v)
	}
}

func call(t *testing.T, m *value.Map, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	v, ok := m.Get(name)
	if !ok {
		t.Fatalf("module has no function %q", name)
	}
	fn, ok := v.(*Function)
	if !ok {
		t.Fatalf("%q is not a *Function", name)
	}
	return fn.Call(&fakeContext{}, args)
}

func TestMathAbs(t *testing.T) {
	m, _ := Resolve("math")
	v, err := call(t, m, "abs", value.Number(-5))
	if err != nil {
		t.Fatal(err)
	}
	if v != value.Number(5) {
		t.Errorf("abs(-5) = %v, want 5", v)
	}
}

func TestMathMaxVariadic(t *testing.T) {
	m, _ := Resolve("math")
	v, err := call(t, m, "max", value.Number(1), value.Number(9), value.Number(3))
	if err != nil {
		t.Fatal(err)
	}
	if v != value.Number(9) {
		t.Errorf("max(1,9,3) = %v, want 9", v)
	}
}

func TestMathMaxRequiresAtLeastOneArg(t *testing.T) {
	m, _ := Resolve("math")
	if _, err := call(t, m, "max"); err == nil {
		t.Error("max() with no arguments should error")
	}
}

func TestStringUpperLower(t *testing.T) {
	m, _ := Resolve("string")
	v, err := call(t, m, "upper", value.String("abc"))
	if err != nil || v != value.String("ABC") {
		t.Errorf("upper(abc) = %v, %v", v, err)
	}
	v, err = call(t, m, "lower", value.String("ABC"))
	if err != nil || v != value.String("abc") {
		t.Errorf("lower(ABC) = %v, %v", v, err)
	}
}

func TestStringSplit(t *testing.T) {
	m, _ := Resolve("string")
	v, err := call(t, m, "split", value.String("a,b,c"), value.String(","))
	if err != nil {
		t.Fatal(err)
	}
	arr, ok := v.(*value.Array)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("split result = %+v", v)
	}
}

func TestArrayPushPop(t *testing.T) {
	m, _ := Resolve("array")
	arr := value.NewArray([]value.Value{value.Number(1)})
	if _, err := call(t, m, "push", arr, value.Number(2)); err != nil {
		t.Fatal(err)
	}
	if len(arr.Elements) != 2 {
		t.Fatalf("after push, Elements = %+v", arr.Elements)
	}
	v, err := call(t, m, "pop", arr)
	if err != nil || v != value.Number(2) {
		t.Errorf("pop() = %v, %v, want 2", v, err)
	}
	if len(arr.Elements) != 1 {
		t.Errorf("after pop, Elements = %+v", arr.Elements)
	}
}

func TestArrayPopEmptyReturnsNil(t *testing.T) {
	m, _ := Resolve("array")
	arr := value.NewArray(nil)
	v, err := call(t, m, "pop", arr)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(value.Nil); !ok {
		t.Errorf("pop() on empty array = %v, want Nil", v)
	}
}

func TestAssertOkFailureIncludesMessage(t *testing.T) {
	m, _ := Resolve("assert")
	_, err := call(t, m, "ok", value.Boolean(false), value.String("custom message"))
	if err == nil {
		t.Fatal("assert.ok(false) should error")
	}
}

func TestAssertEqual(t *testing.T) {
	m, _ := Resolve("assert")
	if _, err := call(t, m, "equal", value.Number(1), value.Number(1)); err != nil {
		t.Errorf("equal(1,1) should not error: %v", err)
	}
	if _, err := call(t, m, "equal", value.Number(1), value.Number(2)); err == nil {
		t.Error("equal(1,2) should error")
	}
}

func TestFunctionCallArityMismatch(t *testing.T) {
	m, _ := Resolve("math")
	v, ok := m.Get("abs")
	fn := v.(*Function)
	if !ok {
		t.Fatal("abs should be registered")
	}
	if _, err := fn.Call(&fakeContext{}, nil); err == nil {
		t.Error("calling abs() with 0 args should report an ArityError")
	}
}

func TestEnvGetMissingReturnsNil(t *testing.T) {
	m, _ := Resolve("env")
	v, ok := m.Get("get")
	if !ok {
		t.Fatal("env module should export get")
	}
	fn := v.(*Function)
	ctx := &fakeContext{env: map[string]string{}}
	result, err := fn.Call(ctx, []value.Value{value.String("MISSING_VAR")})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := result.(value.Nil); !ok {
		t.Errorf("env.get(missing) = %v, want Nil", result)
	}
}
