package core

import (
	"fmt"
	"reflect"
	"sync"
)

// Go has no decorators, so injectability is declared through an explicit
// registry instead: RegisterInjectable marks a constructor function as
// injectable and records the dependency descriptor for each of its
// parameters. The registry is keyed by the constructor's produced type
// (its first return value), which is also the identifier used when the
// type itself is the service key.

var errType = reflect.TypeOf((*error)(nil)).Elem()

// ConstructorMetadata is what the planner consumes for a constructor: the
// injectable marker plus the ordered dependency descriptors.
type ConstructorMetadata struct {
	Injectable bool
	Targets    []*Target
}

// MetadataReader extracts constructor metadata. The default implementation
// consults the injectable registry and falls back to reflection over the
// constructor signature; custom readers can replace either source.
type MetadataReader interface {
	GetConstructorMetadata(ctor interface{}) (*ConstructorMetadata, error)
}

type injectableEntry struct {
	ctor    interface{}
	targets []*Target
}

// injectableRegistry holds process-wide injectable registrations
type injectableRegistry struct {
	entries map[reflect.Type]*injectableEntry
	mu      sync.RWMutex
}

var annotations = &injectableRegistry{
	entries: make(map[reflect.Type]*injectableEntry),
}

// validateConstructor checks that ctor is a function returning a value,
// optionally followed by an error, and returns its reflected type
func validateConstructor(ctor interface{}) (reflect.Type, error) {
	if ctor == nil {
		return nil, fmt.Errorf("constructor cannot be nil")
	}
	t := reflect.TypeOf(ctor)
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %v", t)
	}
	if t.NumOut() < 1 || t.NumOut() > 2 {
		return nil, fmt.Errorf("constructor must return (value) or (value, error), got %d return values", t.NumOut())
	}
	if t.NumOut() == 2 && !t.Out(1).Implements(errType) {
		return nil, fmt.Errorf("constructor second return value must be error, got %v", t.Out(1))
	}
	return t, nil
}

// constructorProducedType returns the service type a constructor produces
func constructorProducedType(ctor interface{}) (reflect.Type, error) {
	t, err := validateConstructor(ctor)
	if err != nil {
		return nil, err
	}
	return t.Out(0), nil
}

// deriveTargets builds one descriptor per constructor parameter, using the
// parameter's reflect.Type as its service identifier
func deriveTargets(fnType reflect.Type) []*Target {
	targets := make([]*Target, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		targets[i] = Inject(fnType.In(i))
	}
	return targets
}

// RegisterInjectable marks a constructor as injectable. When targets are
// omitted, a descriptor is derived per parameter with the parameter type as
// its identifier. Explicit targets must cover every parameter in order.
func RegisterInjectable(ctor interface{}, targets ...*Target) error {
	fnType, err := validateConstructor(ctor)
	if err != nil {
		return fmt.Errorf("cannot register injectable: %w", err)
	}

	if len(targets) == 0 {
		targets = deriveTargets(fnType)
	} else if len(targets) != fnType.NumIn() {
		return fmt.Errorf("cannot register injectable %v: %d dependency descriptors supplied for %d constructor parameters",
			fnType.Out(0), len(targets), fnType.NumIn())
	}

	annotations.mu.Lock()
	defer annotations.mu.Unlock()
	annotations.entries[fnType.Out(0)] = &injectableEntry{ctor: ctor, targets: targets}
	return nil
}

// MustRegisterInjectable registers a constructor and panics on failure,
// intended for package init blocks
func MustRegisterInjectable(ctor interface{}, targets ...*Target) {
	if err := RegisterInjectable(ctor, targets...); err != nil {
		panic(err)
	}
}

// IsInjectable reports whether a constructor producing the given type has
// been registered
func IsInjectable(produced reflect.Type) bool {
	annotations.mu.RLock()
	defer annotations.mu.RUnlock()
	_, ok := annotations.entries[produced]
	return ok
}

// RegisteredConstructor returns the injectable constructor producing the
// given type, if one is registered
func RegisteredConstructor(produced reflect.Type) (interface{}, bool) {
	annotations.mu.RLock()
	defer annotations.mu.RUnlock()
	entry, ok := annotations.entries[produced]
	if !ok {
		return nil, false
	}
	return entry.ctor, true
}

// RemoveInjectable drops a registration, mainly useful in tests
func RemoveInjectable(produced reflect.Type) {
	annotations.mu.Lock()
	defer annotations.mu.Unlock()
	delete(annotations.entries, produced)
}

// ClearInjectables resets the registry
func ClearInjectables() {
	annotations.mu.Lock()
	defer annotations.mu.Unlock()
	annotations.entries = make(map[reflect.Type]*injectableEntry)
}

// defaultMetadataReader resolves metadata from the injectable registry,
// deriving descriptors from the constructor signature when the constructor
// was never registered
type defaultMetadataReader struct{}

// NewMetadataReader returns the default registry-backed reader
func NewMetadataReader() MetadataReader {
	return &defaultMetadataReader{}
}

func (r *defaultMetadataReader) GetConstructorMetadata(ctor interface{}) (*ConstructorMetadata, error) {
	fnType, err := validateConstructor(ctor)
	if err != nil {
		return nil, err
	}

	annotations.mu.RLock()
	entry, ok := annotations.entries[fnType.Out(0)]
	annotations.mu.RUnlock()

	if ok && reflect.ValueOf(entry.ctor).Pointer() == reflect.ValueOf(ctor).Pointer() {
		return &ConstructorMetadata{Injectable: true, Targets: entry.targets}, nil
	}

	// Explicitly bound but unregistered constructors derive descriptors
	// from their signature; only auto-binding demands the marker.
	return &ConstructorMetadata{Injectable: false, Targets: deriveTargets(fnType)}, nil
}
