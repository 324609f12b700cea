package orderedmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSet_RejectsDuplicate(t *testing.T) {
	m := New[string, int]()
	if !m.Set("a", 1) {
		t.Fatal("first Set returned false")
	}
	if m.Set("a", 2) {
		t.Fatal("duplicate Set returned true")
	}
	got, ok := m.Get("a")
	if !ok || got != 1 {
		t.Fatalf("Get(a) = (%d, %v), want (1, true)", got, ok)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
}

func TestEntries_KeepInsertionOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("b", 2)
	m.Set("a", 1)
	m.Set("c", 3)

	want := []Entry[string, int]{{"b", 2}, {"a", 1}, {"c", 3}}
	if diff := cmp.Diff(want, m.Entries()); diff != "" {
		t.Fatalf("Entries mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, m.Keys()); diff != "" {
		t.Fatalf("Keys mismatch (-want +got):\n%s", diff)
	}
}

func TestUnion_ConcatenatesInOrder(t *testing.T) {
	a := New[string, int]()
	a.Set("x", 1)
	b := New[string, int]()
	b.Set("y", 2)
	b.Set("z", 3)

	merged, ok := Union(a, b)
	if !ok {
		t.Fatal("Union failed on disjoint maps")
	}
	want := []Entry[string, int]{{"x", 1}, {"y", 2}, {"z", 3}}
	if diff := cmp.Diff(want, merged.Entries()); diff != "" {
		t.Fatalf("Union entries mismatch (-want +got):\n%s", diff)
	}
}

func TestUnion_RejectsCollision(t *testing.T) {
	a := New[string, int]()
	a.Set("x", 1)
	b := New[string, int]()
	b.Set("x", 2)

	if merged, ok := Union(a, b); ok {
		t.Fatalf("Union succeeded on colliding key, got %v", merged.Entries())
	}
}

func TestUnion_NilInputsCountAsEmpty(t *testing.T) {
	a := New[string, int]()
	a.Set("x", 1)

	merged, ok := Union(nil, a, nil)
	if !ok {
		t.Fatal("Union failed with nil inputs")
	}
	if merged.Len() != 1 || !merged.Has("x") {
		t.Fatalf("unexpected union result: %v", merged.Entries())
	}
}
