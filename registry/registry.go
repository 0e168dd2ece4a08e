// Package registry provides the ordered, name-keyed collections that back the
// style container: a single [Registry] and a [Multi] registry holding one
// Registry per output destination.
//
// Iteration order is first-insertion order; an Update replaces a value in
// place without moving it.  A registry is frozen once, after which every Add
// fails with [ErrFrozen].  Registries are not safe for concurrent use.
package registry

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Mode selects the insertion semantics of Add.
type Mode int

const (
	// Create inserts only when the name is absent.
	Create Mode = iota
	// Update replaces only when the name is present.
	Update
	// CreateOrUpdate inserts or replaces; it never fails on an unfrozen
	// registry.
	CreateOrUpdate
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Create:
		return "create"
	case Update:
		return "update"
	case CreateOrUpdate:
		return "create-or-update"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

var (
	// ErrDuplicateName is returned by a Create against a present name.
	ErrDuplicateName = errors.New("registry: duplicate name")
	// ErrMissingName is returned by an Update against an absent name.
	ErrMissingName = errors.New("registry: missing name")
	// ErrFrozen is returned by every Add after Freeze.
	ErrFrozen = errors.New("registry: frozen")
	// ErrInvalidMode is returned for a Mode outside the three defined values.
	ErrInvalidMode = errors.New("registry: invalid mode")
	// ErrEmptyName is returned when Add is called with an empty name.
	ErrEmptyName = errors.New("registry: empty name")
	// ErrUnknownDestination is returned by Multi for a destination it was not
	// created with.
	ErrUnknownDestination = errors.New("registry: unknown destination")
)

// Option configures a Registry or a Multi.
type Option func(*options)

type options struct {
	label string
	log   zerolog.Logger
}

// WithLogger sets the logger used for debug reporting.
func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.log = l } }

// WithLabel names the registry in log lines and error messages.
func WithLabel(label string) Option { return func(o *options) { o.label = label } }

// Registry is an ordered collection of values keyed by name.
type Registry[V any] struct {
	index  map[string]int
	names  []string
	values []V
	frozen bool
	debug  bool
	opt    options
}

// New creates an empty registry.
func New[V any](opts ...Option) *Registry[V] {
	o := options{log: zerolog.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	return &Registry[V]{index: make(map[string]int), opt: o}
}

// Check returns the error Add would return for name and mode, without
// mutating the registry.
func (r *Registry[V]) Check(name string, mode Mode) error {
	if r.frozen {
		return r.wrap(ErrFrozen, name)
	}
	if name == "" {
		return r.wrap(ErrEmptyName, name)
	}
	_, present := r.index[name]
	switch mode {
	case Create:
		if present {
			return r.wrap(ErrDuplicateName, name)
		}
	case Update:
		if !present {
			return r.wrap(ErrMissingName, name)
		}
	case CreateOrUpdate:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
	return nil
}

// Add stores v under name according to mode.  A nil error means the
// registry was mutated; on error the registry is left untouched.
func (r *Registry[V]) Add(name string, v V, mode Mode) error {
	if err := r.Check(name, mode); err != nil {
		r.report(name, mode, err)
		return err
	}
	if i, present := r.index[name]; present {
		r.values[i] = v
		return nil
	}
	r.index[name] = len(r.values)
	r.names = append(r.names, name)
	r.values = append(r.values, v)
	return nil
}

// Get returns the value stored under name.
func (r *Registry[V]) Get(name string) (V, bool) {
	i, ok := r.index[name]
	if !ok {
		var zero V
		return zero, false
	}
	return r.values[i], true
}

// Values returns the stored values in first-insertion order.  The returned
// slice is a copy.
func (r *Registry[V]) Values() []V {
	out := make([]V, len(r.values))
	copy(out, r.values)
	return out
}

// Names returns the stored names in first-insertion order.
func (r *Registry[V]) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of stored values.
func (r *Registry[V]) Len() int { return len(r.values) }

// Freeze makes the registry read-only.  It is idempotent.
func (r *Registry[V]) Freeze() { r.frozen = true }

// Frozen reports whether Freeze has been called.
func (r *Registry[V]) Frozen() bool { return r.frozen }

// Debug enables reporting of rejected Add calls at debug level.
func (r *Registry[V]) Debug() { r.debug = true }

func (r *Registry[V]) wrap(err error, name string) error {
	if r.opt.label != "" {
		return fmt.Errorf("%w: %s: %q", err, r.opt.label, name)
	}
	return fmt.Errorf("%w: %q", err, name)
}

func (r *Registry[V]) report(name string, mode Mode, err error) {
	if !r.debug {
		return
	}
	r.opt.log.Debug().
		Str("registry", r.opt.label).
		Str("name", name).
		Stringer("mode", mode).
		Err(err).
		Msg("add rejected")
}
