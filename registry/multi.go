package registry

import (
	"fmt"
)

// Multi holds one Registry per destination.  Name uniqueness is scoped to a
// destination: the same name may be stored once in each.
type Multi[D comparable, V any] struct {
	dests  []D
	regs   map[D]*Registry[V]
	frozen bool
}

// NewMulti creates a Multi with one empty registry for each of dests.
// Freeze and Debug visit the registries in the order of dests.
func NewMulti[D comparable, V any](dests []D, opts ...Option) *Multi[D, V] {
	m := &Multi[D, V]{
		dests: append([]D(nil), dests...),
		regs:  make(map[D]*Registry[V], len(dests)),
	}
	for _, d := range dests {
		sub := append([]Option(nil), opts...)
		sub = append(sub, WithLabel(fmt.Sprint(d)))
		m.regs[d] = New[V](sub...)
	}
	return m
}

// Add stores v under name in the registry for dest.
func (m *Multi[D, V]) Add(name string, dest D, v V, mode Mode) error {
	r, ok := m.regs[dest]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownDestination, dest)
	}
	return r.Add(name, v, mode)
}

// Check returns the error Add would return, without mutating anything.
func (m *Multi[D, V]) Check(name string, dest D, mode Mode) error {
	r, ok := m.regs[dest]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownDestination, dest)
	}
	return r.Check(name, mode)
}

// Get returns the value stored under name for dest.
func (m *Multi[D, V]) Get(name string, dest D) (V, bool) {
	r, ok := m.regs[dest]
	if !ok {
		var zero V
		return zero, false
	}
	return r.Get(name)
}

// Values returns the values of dest in first-insertion order, or nil for an
// unknown destination.
func (m *Multi[D, V]) Values(dest D) []V {
	r, ok := m.regs[dest]
	if !ok {
		return nil
	}
	return r.Values()
}

// Freeze freezes every destination.
func (m *Multi[D, V]) Freeze() {
	m.frozen = true
	for _, d := range m.dests {
		m.regs[d].Freeze()
	}
}

// Frozen reports whether the Multi has been frozen.
func (m *Multi[D, V]) Frozen() bool { return m.frozen }

// Debug enables debug reporting on every destination.
func (m *Multi[D, V]) Debug() {
	for _, d := range m.dests {
		m.regs[d].Debug()
	}
}
