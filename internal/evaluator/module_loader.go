package evaluator

import (
	"strings"

	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/lexer"
	"github.com/iziteam/izi/internal/module"
	"github.com/iziteam/izi/internal/natives"
	"github.com/iziteam/izi/internal/parser"
	"github.com/iziteam/izi/internal/value"
)

// exportName records name=v in the exports map of the module currently
// loading (a no-op at top level, where nothing imports the script).
func (ev *Evaluator) exportName(name string, v value.Value) {
	if len(ev.exportsStack) == 0 {
		return
	}
	ev.exportsStack[len(ev.exportsStack)-1].Set(name, v)
}

// loadModule resolves importPath relative to fromFile, returning its
// exports map. Native modules short-circuit straight to package
// natives; file modules are parsed once and cached by canonical path
// (spec §4.8 step 4), with a full re-run for every distinct path since
// each module's top-level statements must execute exactly once but its
// Environment must persist for the lifetime of the exports it produced
// — captured by closures that outlive the import.
func (ev *Evaluator) loadModule(importPath, fromFile string, node ast.Node) (*value.Map, *signal) {
	canonical, native, name := module.Resolve(importPath, fromFile, ev.cwd)
	if native {
		exports, ok := natives.Resolve(name)
		if !ok {
			return nil, ev.runtimeErrorf(node, "ImportError", "unknown native module %q", name)
		}
		return exports, nil
	}

	if cached, ok := ev.modules[canonical]; ok {
		return cached.exports, nil
	}

	if ev.importStack.Contains(canonical) {
		chain := append(ev.importStack.Paths(), canonical)
		return nil, ev.runtimeErrorf(node, "ImportError", "circular import: %s", strings.Join(chain, " -> "))
	}

	src, err := ev.readFile(canonical)
	if err != nil {
		return nil, ev.runtimeErrorf(node, "ImportError", "cannot read module %q: %s", canonical, err)
	}

	lex := lexer.New(src)
	p := parser.New(lex)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return nil, ev.runtimeErrorf(node, "SyntaxError", "module %q: %s", canonical, p.Errors()[0].Message)
	}

	ev.importStack.Push(canonical)
	exports := value.NewMap()
	ev.exportsStack = append(ev.exportsStack, exports)

	savedScope := ev.current
	savedFile := ev.file
	moduleScope := ev.arena.NewChild(ev.globals)
	ev.current = moduleScope
	ev.file = canonical

	var runSig *signal
	for _, stmt := range program.Statements {
		if _, sig := ev.exec(stmt); sig != nil {
			if sig.kind == signalThrow {
				runSig = sig
			}
			break
		}
	}

	ev.file = savedFile
	ev.current = savedScope
	ev.exportsStack = ev.exportsStack[:len(ev.exportsStack)-1]
	ev.importStack.Pop()

	if runSig != nil {
		return nil, runSig
	}

	ev.modules[canonical] = &loadedModule{program: program, exports: exports}
	return exports, nil
}

func (ev *Evaluator) execImportStmt(s *ast.ImportStmt) *signal {
	exports, sig := ev.loadModule(s.Path, ev.file, s)
	if sig != nil {
		return sig
	}
	switch s.Kind {
	case ast.ImportSideEffect:
		return nil
	case ast.ImportNamespace:
		ev.current.Define(s.Alias, exports)
		return nil
	case ast.ImportNamed:
		for _, spec := range s.Specifiers {
			v, ok := exports.Get(spec.Name)
			if !ok {
				return ev.runtimeErrorf(s, "ImportError", "module %q has no export %q", s.Path, spec.Name)
			}
			local := spec.Alias
			if local == "" {
				local = spec.Name
			}
			ev.current.Define(local, v)
		}
		return nil
	default:
		return ev.runtimeErrorf(s, "InternalError", "unhandled import kind %d", s.Kind)
	}
}

func (ev *Evaluator) execExportStmt(s *ast.ExportStmt) *signal {
	_, sig := ev.exec(s.Declaration)
	return sig
}

func (ev *Evaluator) execReExportStmt(s *ast.ReExportStmt) *signal {
	exports, sig := ev.loadModule(s.Path, ev.file, s)
	if sig != nil {
		return sig
	}
	for _, spec := range s.Specifiers {
		v, ok := exports.Get(spec.Name)
		if !ok {
			return ev.runtimeErrorf(s, "ImportError", "module %q has no export %q", s.Path, spec.Name)
		}
		local := spec.Alias
		if local == "" {
			local = spec.Name
		}
		ev.exportName(local, v)
	}
	return nil
}
