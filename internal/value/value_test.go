package value

import "testing"

func TestNumberString(t *testing.T) {
	cases := []struct {
		in   Number
		want string
	}{
		{Number(3), "3"},
		{Number(-3), "-3"},
		{Number(0), "0"},
		{Number(3.5), "3.5"},
		{Number(0.1), "0.1"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("Number(%v).String() = %q, want %q", float64(c.in), got, c.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	falsy := []Value{Nil{}, Boolean(false)}
	for _, v := range falsy {
		if Truthy(v) {
			t.Errorf("Truthy(%v) = true, want false", v)
		}
	}
	truthy := []Value{Boolean(true), Number(0), String(""), NewArray(nil), NewMap()}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Errorf("Truthy(%v) = false, want true", v)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Number(1), Number(1)) {
		t.Error("Number(1) should equal Number(1)")
	}
	if Equal(Number(1), String("1")) {
		t.Error("Number(1) should not equal String(\"1\") — no cross-type coercion")
	}
	if !Equal(Nil{}, Nil{}) {
		t.Error("Nil should equal Nil")
	}
	a := NewArray(nil)
	b := NewArray(nil)
	if Equal(a, b) {
		t.Error("distinct Arrays should not be Equal by value — reference identity only")
	}
	if !Equal(a, a) {
		t.Error("an Array should Equal itself")
	}
}

func TestMapOrderPreserved(t *testing.T) {
	m := NewMap()
	m.Set("b", Number(2))
	m.Set("a", Number(1))
	m.Set("b", Number(99)) // re-set must not move "b" to the end
	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("Keys() = %v, want [b a]", keys)
	}
	v, ok := m.Get("b")
	if !ok || v != Number(99) {
		t.Errorf("Get(b) = %v, %v, want 99, true", v, ok)
	}
}

func TestMapDelete(t *testing.T) {
	m := NewMap()
	m.Set("a", Number(1))
	m.Set("b", Number(2))
	m.Delete("a")
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	if _, ok := m.Get("a"); ok {
		t.Error("a should be gone after Delete")
	}
}

func TestSetMembership(t *testing.T) {
	s := NewSet()
	added, err := s.Add(Number(1))
	if err != nil || !added {
		t.Fatalf("Add(1) = %v, %v", added, err)
	}
	added, err = s.Add(Number(1))
	if err != nil || added {
		t.Fatalf("Add(1) again should report already-present: %v, %v", added, err)
	}
	if !s.Has(Number(1)) {
		t.Error("Has(1) should be true")
	}
	if s.Has(Number(2)) {
		t.Error("Has(2) should be false")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if !s.Remove(Number(1)) {
		t.Error("Remove(1) should succeed")
	}
	if s.Has(Number(1)) {
		t.Error("Has(1) should be false after Remove")
	}
}

func TestSetRejectsNonPrimitive(t *testing.T) {
	s := NewSet()
	_, err := s.Add(NewArray(nil))
	if err == nil {
		t.Error("Add(array) should fail — only primitives are Set-eligible")
	}
}

func TestArrayString(t *testing.T) {
	a := NewArray([]Value{Number(1), String("x"), Boolean(true)})
	got := a.String()
	want := `[1, "x", true]`
	if got != want {
		t.Errorf("Array.String() = %q, want %q", got, want)
	}
}
