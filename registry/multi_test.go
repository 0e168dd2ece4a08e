package registry

import (
	"errors"
	"reflect"
	"testing"
)

type zone int

const (
	zoneA zone = iota
	zoneB
)

func (z zone) String() string {
	if z == zoneA {
		return "zone-a"
	}
	return "zone-b"
}

func TestMultiScopesNamesPerDestination(t *testing.T) {
	m := NewMulti[zone, string]([]zone{zoneA, zoneB})
	if err := m.Add("x", zoneA, "in-a", Create); err != nil {
		t.Fatalf("add to A: %v", err)
	}
	if err := m.Add("x", zoneB, "in-b", Create); err != nil {
		t.Fatalf("same name in B should succeed: %v", err)
	}
	if err := m.Add("x", zoneA, "again", Create); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName within A, got %v", err)
	}
	if got, ok := m.Get("x", zoneB); !ok || got != "in-b" {
		t.Fatalf("Get(x, B) = (%q, %v)", got, ok)
	}
}

func TestMultiUnknownDestination(t *testing.T) {
	m := NewMulti[zone, int]([]zone{zoneA})
	if err := m.Add("x", zoneB, 1, Create); !errors.Is(err, ErrUnknownDestination) {
		t.Fatalf("expected ErrUnknownDestination, got %v", err)
	}
	if vs := m.Values(zoneB); vs != nil {
		t.Fatalf("Values(unknown) = %v, want nil", vs)
	}
	if _, ok := m.Get("x", zoneB); ok {
		t.Fatalf("Get on unknown destination reported ok")
	}
}

func TestMultiFreezeCascades(t *testing.T) {
	m := NewMulti[zone, int]([]zone{zoneA, zoneB})
	_ = m.Add("a1", zoneA, 1, Create)
	_ = m.Add("b1", zoneB, 2, Create)
	m.Freeze()
	if !m.Frozen() {
		t.Fatalf("Frozen() = false after Freeze")
	}
	for _, d := range []zone{zoneA, zoneB} {
		for _, mode := range []Mode{Create, Update, CreateOrUpdate} {
			if err := m.Add("a1", d, 9, mode); !errors.Is(err, ErrFrozen) {
				t.Errorf("Add after freeze in %v/%v: expected ErrFrozen, got %v", d, mode, err)
			}
		}
	}
	if got := m.Values(zoneA); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("A values changed after freeze: %v", got)
	}
	if got := m.Values(zoneB); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("B values changed after freeze: %v", got)
	}
}

func TestMultiLabelsErrorsWithDestination(t *testing.T) {
	m := NewMulti[zone, int]([]zone{zoneA})
	_ = m.Add("k", zoneA, 1, Create)
	err := m.Add("k", zoneA, 2, Create)
	if err == nil || err.Error() != `registry: duplicate name: zone-a: "k"` {
		t.Fatalf("unexpected error text: %v", err)
	}
}
