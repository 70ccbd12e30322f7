// Package evaluator is the tree-walking core (spec §4.5): it walks an
// *ast.Program directly, with no bytecode or intermediate form, and
// reports every outcome as either a value.Value or one of the four
// non-local signals (signal.go).
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/env"
	"github.com/iziteam/izi/internal/module"
	"github.com/iziteam/izi/internal/value"
)

// MaxCallDepth bounds recursion so a runaway script fails with a
// StackOverflow Value rather than crashing the host process (spec §4.5,
// §9 citing the original's MAX_CALL_DEPTH).
const MaxCallDepth = 256

// DebugHook lets a host (the REPL, a future debugger) observe
// execution without changing it (spec §6.4).
type DebugHook struct {
	BeforeStatement func(stmt ast.Stmt)
	EnterFunction   func(name string)
	ExitFunction    func(name string)
}

// loadedModule caches a module's parsed program and its exports, keyed
// by canonical path (spec §4.8 step 4).
type loadedModule struct {
	program *ast.Program
	exports *value.Map
}

// Evaluator holds all interpreter-run state: the Environment tree (owned
// by one Arena for the run's lifetime), the module cache and import
// stack, and the call-depth counter.
type Evaluator struct {
	arena   *env.Arena
	globals *env.Environment
	current *env.Environment

	out io.Writer
	args []string
	cwd  string
	file string

	callDepth int
	classStack []*Class // declaring class of the method currently executing, for super resolution

	importStack  module.Stack
	modules      map[string]*loadedModule
	exportsStack []*value.Map // top is the exports map of the module currently loading, nil at top level

	debug DebugHook

	// readFile is the filesystem hook used to load imported modules;
	// overridable in tests so module loading never touches the real disk.
	readFile func(path string) (string, error)
}

// Option configures an Evaluator at construction, following the
// functional-options idiom the lexer package also uses.
type Option func(*Evaluator)

// WithStdout redirects `print` output (default os.Stdout).
func WithStdout(w io.Writer) Option { return func(e *Evaluator) { e.out = w } }

// WithArgs sets the argument vector exposed as std.process.args.
func WithArgs(args []string) Option { return func(e *Evaluator) { e.args = args } }

// WithCwd sets the working directory used to resolve non-relative
// import paths (spec §4.8).
func WithCwd(cwd string) Option { return func(e *Evaluator) { e.cwd = cwd } }

// WithFile records the entry file's path, used as the base for its own
// relative imports.
func WithFile(file string) Option { return func(e *Evaluator) { e.file = file } }

// WithDebugHook installs observation callbacks (spec §6.4).
func WithDebugHook(h DebugHook) Option { return func(e *Evaluator) { e.debug = h } }

// WithFileReader overrides how module source is read from disk.
func WithFileReader(f func(path string) (string, error)) Option {
	return func(e *Evaluator) { e.readFile = f }
}

// New builds an Evaluator with an empty global scope (spec §3.3).
func New(opts ...Option) *Evaluator {
	arena := env.NewArena()
	ev := &Evaluator{
		arena:   arena,
		globals: arena.NewRoot(),
		out:     os.Stdout,
		cwd:     ".",
		modules: make(map[string]*loadedModule),
		readFile: func(path string) (string, error) {
			b, err := os.ReadFile(path)
			return string(b), err
		},
	}
	for _, opt := range opts {
		opt(ev)
	}
	ev.current = ev.globals
	ev.registerBuiltins()
	return ev
}

// Run executes program's top-level statements in the global scope,
// returning the value of the final expression statement (REPL-style) or
// Nil, and an *ErrorValue if an uncaught Throw escaped (spec §4.5 Throw
// statement, spec §7 uncaught-error reporting).
func (ev *Evaluator) Run(program *ast.Program) (value.Value, *ErrorValue) {
	var last value.Value = value.Nil{}
	for _, stmt := range program.Statements {
		v, sig := ev.exec(stmt)
		if sig != nil {
			switch sig.kind {
			case signalThrow:
				return value.Nil{}, ev.toErrorValue(sig.payload)
			case signalReturn:
				// A bare top-level `return` ends the program early
				// (useful for scripts), mirroring early-exit semantics.
				return sig.payload, nil
			default:
				// break/continue escaping every loop is an analyzer
				// diagnostic target, not a runtime condition here; treat
				// as a no-op at top level.
			}
		}
		if v != nil {
			last = v
		}
	}
	return last, nil
}

// Arena exposes the Environment arena, e.g. for REPL session reuse.
func (ev *Evaluator) Arena() *env.Arena { return ev.arena }

// Globals exposes the top-level Environment.
func (ev *Evaluator) Globals() *env.Environment { return ev.globals }

// toErrorValue coerces an uncaught thrown value to an *ErrorValue at the
// host-reporting boundary. Throw itself never wraps: a raw *ErrorValue
// thrown by the script is returned as-is, and any other Value (string,
// number, bool, ...) is only wrapped here, for the caller that needs a
// Go error to report, not inside catch, where it must still be the
// original Value.
func (ev *Evaluator) toErrorValue(v value.Value) *ErrorValue {
	if err, ok := v.(*ErrorValue); ok {
		return err
	}
	return NewError("Error", ev.stringify(v))
}

func (ev *Evaluator) runtimeErrorf(pos ast.Node, kind, format string, args ...any) *signal {
	msg := fmt.Sprintf(format, args...)
	p := pos.Pos()
	err := &ErrorValue{Kind: kind, Message: msg}
	err.Stack = append(err.Stack, Frame{Function: ev.currentFunctionName(), Line: p.Line, Column: p.Column})
	return throwSignal(err)
}

func (ev *Evaluator) currentFunctionName() string {
	if len(ev.classStack) == 0 {
		return "<script>"
	}
	return ev.classStack[len(ev.classStack)-1].Name
}
