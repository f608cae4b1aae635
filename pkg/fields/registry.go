// Package fields decodes payloads described by a list of field descriptors.
//
// Each descriptor names an encoder; a Registry maps encoder names to
// factories that build a bitstream.Unpacker for that descriptor. A Decoder
// resolves the unpackers once and reuses them for every payload.
package fields

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/blockberries/replaybits/pkg/bitstream"
)

// Sentinel errors for registry and descriptor problems.
var (
	// ErrUnknownEncoder indicates a descriptor names an unregistered encoder.
	ErrUnknownEncoder = errors.New("fields: unknown encoder")

	// ErrDuplicateEncoder indicates an encoder name was registered twice.
	ErrDuplicateEncoder = errors.New("fields: duplicate encoder registration")

	// ErrInvalidDescriptor indicates a descriptor is missing or has
	// out-of-range parameters.
	ErrInvalidDescriptor = errors.New("fields: invalid descriptor")
)

// Factory builds an unpacker for one descriptor.
type Factory func(d Descriptor) (bitstream.Unpacker[any], error)

// Registry maps encoder names to unpacker factories.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry holds the built-in encoders.
var DefaultRegistry = newDefaultRegistry()

// Register adds a factory under name.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("%w: empty name or nil factory", ErrInvalidDescriptor)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEncoder, name)
	}
	r.factories[name] = f
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered encoder names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Build resolves d to an unpacker.
func (r *Registry) Build(d Descriptor) (bitstream.Unpacker[any], error) {
	f, ok := r.Lookup(d.Encoder)
	if !ok {
		return nil, fmt.Errorf("%w: %q (field %s)", ErrUnknownEncoder, d.Encoder, d.Name)
	}
	u, err := f(d)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", d.Name, err)
	}
	return u, nil
}

// Erase adapts a typed unpacker to Unpacker[any].
func Erase[T any](u bitstream.Unpacker[T]) bitstream.Unpacker[any] {
	return bitstream.UnpackerFunc[any](func(r *bitstream.Reader) any {
		return u.Unpack(r)
	})
}
