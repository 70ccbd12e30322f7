// Package value implements the runtime tagged union described in spec §3.2:
// Nil, Boolean, Number, String, Array, Map, Set, Callable, Instance, Task,
// and Error. Array/Map/Set/Instance/Task/Callable/Error are reference-
// semantic; Number/Boolean/Nil/String are value-semantic.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is implemented by every runtime value kind.
type Value interface {
	Type() string
	String() string
}

// Nil is the singleton unit value.
type Nil struct{}

func (Nil) Type() string   { return "NIL" }
func (Nil) String() string { return "nil" }

// NilValue is the single shared Nil instance; reference equality is not
// meaningful for Nil (it is value-semantic) but sharing one instance
// avoids needless allocation.
var NilValue = Nil{}

// Boolean is true or false.
type Boolean bool

func (b Boolean) Type() string { return "BOOLEAN" }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is an IEEE-754 double.
//
// Stringification (spec §7): integers in the representable range print
// without a decimal point; other numbers print with at least one
// fractional digit. strconv's 'g' verb with precision -1 already yields
// the shortest round-trippable form, which satisfies both rules because
// Go's FormatFloat never appends a trailing ".0" to integral values, so
// that case is special-cased explicitly below.
type Number float64

func (n Number) Type() string { return "NUMBER" }
func (n Number) String() string {
	f := float64(n)
	if f == float64(int64(f)) && !isNegZero(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func isNegZero(f float64) bool {
	return f == 0 && 1/f < 0
}

// String is an immutable UTF-8 byte sequence (the core does not
// validate encoding; spec §3.2).
type String string

func (s String) Type() string   { return "STRING" }
func (s String) String() string { return string(s) }

// Array is a shared mutable ordered sequence of Value.
type Array struct {
	Elements []Value
}

func NewArray(elems []Value) *Array { return &Array{Elements: elems} }

func (a *Array) Type() string { return "ARRAY" }
func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = reprOf(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Map is a shared mutable String->Value mapping preserving first-
// insertion order where observable (spec §3.2).
type Map struct {
	keys   []string
	values map[string]Value
}

func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Map) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *Map) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Map) Len() int { return len(m.keys) }

func (m *Map) Type() string { return "MAP" }
func (m *Map) String() string {
	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		parts = append(parts, k+": "+reprOf(m.values[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Set is a shared mutable set keyed by the canonical string form of
// primitive members only (spec §3.2). Canonicalization for Number uses
// Number.String() itself, integer or shortest round-trip form (see
// SPEC_FULL.md / DESIGN.md open-question decision), so Set membership
// and printed representation never disagree.
type Set struct {
	order   []string
	members map[string]Value
}

func NewSet() *Set {
	return &Set{members: make(map[string]Value)}
}

// CanonicalKey returns the canonical membership key for a primitive
// Value, or ("", false) if v is not a primitive eligible for Set
// membership.
func CanonicalKey(v Value) (string, bool) {
	switch vv := v.(type) {
	case Nil:
		return "nil", true
	case Boolean:
		return "bool:" + vv.String(), true
	case Number:
		return "num:" + vv.String(), true
	case String:
		return "str:" + string(vv), true
	default:
		return "", false
	}
}

func (s *Set) Add(v Value) (bool, error) {
	key, ok := CanonicalKey(v)
	if !ok {
		return false, fmt.Errorf("cannot add non-primitive value of type %s to a Set", v.Type())
	}
	if _, exists := s.members[key]; exists {
		return false, nil
	}
	s.order = append(s.order, key)
	s.members[key] = v
	return true, nil
}

func (s *Set) Has(v Value) bool {
	key, ok := CanonicalKey(v)
	if !ok {
		return false
	}
	_, exists := s.members[key]
	return exists
}

func (s *Set) Remove(v Value) bool {
	key, ok := CanonicalKey(v)
	if !ok {
		return false
	}
	if _, exists := s.members[key]; !exists {
		return false
	}
	delete(s.members, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Set) Len() int { return len(s.order) }

func (s *Set) Values() []Value {
	out := make([]Value, len(s.order))
	for i, k := range s.order {
		out[i] = s.members[k]
	}
	return out
}

func (s *Set) Type() string { return "SET" }
func (s *Set) String() string {
	sorted := make([]string, len(s.order))
	copy(sorted, s.order)
	sort.Strings(sorted)
	parts := make([]string, len(sorted))
	for i, k := range sorted {
		parts[i] = reprOf(s.members[k])
	}
	return "set(" + strings.Join(parts, ", ") + ")"
}

// reprOf formats a value the way it should appear nested inside a
// collection literal: strings get quotes, everything else uses its
// normal String().
func reprOf(v Value) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}
	if v == nil {
		return "nil"
	}
	return v.String()
}

// Truthy implements spec §3.2: exactly Nil and Boolean false are falsy.
func Truthy(v Value) bool {
	switch vv := v.(type) {
	case Nil:
		return false
	case Boolean:
		return bool(vv)
	default:
		return true
	}
}

// Equal implements `==` equality, used by pattern literal matching (§4.7)
// and Array.indexOf-style helpers. Reference types compare by identity
// except for the primitives embedded as interface values.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	default:
		return a == b
	}
}
