// Package module implements the pure, evaluator-independent half of the
// module loader (spec §3.6, §4.8): canonical path resolution, the
// native-namespace short-circuit, the import-stack used for circular-
// import detection, and the cache of already-loaded module exports.
//
// The half that actually executes a module body (parsing + running
// statements against a fresh Environment) lives in package evaluator,
// next to the rest of the tree-walker, the same way the teacher keeps
// its unit loader (internal/interp/unit_loader.go) inside internal/interp
// rather than as a standalone package — loading a module IS running an
// evaluator over it.
package module

import (
	"path/filepath"
	"strings"
)

// NativeNames is the fixed namespace of identifiers that resolve without
// filesystem lookup (spec §6.2). Each name may also be imported under the
// "std." prefix.
var NativeNames = map[string]bool{
	"math": true, "string": true, "array": true, "io": true, "log": true,
	"assert": true, "env": true, "process": true, "path": true, "fs": true,
	"time": true, "json": true, "regex": true, "http": true, "ui": true,
	"audio": true, "image": true, "ipc": true, "net": true,
}

// Extension is appended to an import path when it has neither `.izi`
// nor `.iz` (spec §4.8).
const Extension = ".izi"

// Resolve normalizes an import path (spec §4.8 Resolution). If the path
// names a native module, native is true and name is the bare module name
// (prefix "std." stripped). Otherwise canonical is the absolute,
// cleaned file path the loader should use as a cache key.
func Resolve(importPath, fromFile, cwd string) (canonical string, native bool, name string) {
	bare := strings.TrimPrefix(importPath, "std.")
	if NativeNames[bare] {
		return "", true, bare
	}

	path := importPath
	if !strings.HasSuffix(path, ".izi") && !strings.HasSuffix(path, ".iz") {
		path += Extension
	}

	var base string
	if strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../") {
		base = filepath.Dir(fromFile)
	} else if filepath.IsAbs(path) {
		return filepath.Clean(path), false, ""
	} else {
		base = cwd
	}
	return filepath.Clean(filepath.Join(base, path)), false, ""
}

// Stack tracks canonical paths currently being loaded, for circular-
// import detection (spec §4.8 step 2, P6).
type Stack struct {
	paths []string
}

// Contains reports whether path is already on the stack.
func (s *Stack) Contains(path string) bool {
	for _, p := range s.paths {
		if p == path {
			return true
		}
	}
	return false
}

// Push records path as currently loading.
func (s *Stack) Push(path string) { s.paths = append(s.paths, path) }

// Pop removes the most recently pushed path.
func (s *Stack) Pop() {
	if len(s.paths) > 0 {
		s.paths = s.paths[:len(s.paths)-1]
	}
}

// Paths returns a copy of the stack, bottom to top, for cycle error
// messages ("Circular import: a.izi -> b.izi -> a.izi").
func (s *Stack) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}
