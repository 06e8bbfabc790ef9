package core

import (
	"context"
	"sync"
	"sync/atomic"
)

// BindingType identifies the production strategy of a binding. A binding
// has exactly one strategy once configured through the fluent syntax.
type BindingType int

const (
	// BindingInvalid is the state before the fluent syntax assigns a strategy
	BindingInvalid BindingType = iota
	// BindingInstance instantiates a constructor, recursively resolving its
	// declared dependencies
	BindingInstance
	// BindingConstantValue always returns the cached constant
	BindingConstantValue
	// BindingDynamicValue invokes a user function on each resolution
	BindingDynamicValue
	// BindingFactory resolves to a producer function invoked later by the
	// consumer
	BindingFactory
	// BindingProvider resolves to an asynchronous producer function
	BindingProvider
)

// FactoryFunc is the producer returned by a factory binding; the consumer
// calls it to obtain instances on demand.
type FactoryFunc func() (interface{}, error)

// NamedFactoryFunc is the producer returned by ToAutoNamedFactory.
type NamedFactoryFunc func(name interface{}) (interface{}, error)

// ProviderFunc is the asynchronous producer returned by a provider binding.
// The caller supplies the context and awaits the result.
type ProviderFunc func(ctx context.Context) (interface{}, error)

// DynamicValueFunc produces a value per resolution with access to the
// in-flight resolution context.
type DynamicValueFunc func(ctx *Context) (interface{}, error)

// FactoryCreator builds the producer a factory binding resolves to; the
// producer is typically a FactoryFunc or NamedFactoryFunc.
type FactoryCreator func(ctx *Context) interface{}

// ProviderCreator builds the producer a provider binding resolves to.
type ProviderCreator func(ctx *Context) ProviderFunc

// ConstraintFunc decides whether a binding is eligible for a request.
type ConstraintFunc func(request *Request) bool

// ActivationHandler post-processes a freshly produced value and may return
// a replacement.
type ActivationHandler func(ctx *Context, instance interface{}) (interface{}, error)

// DeactivationHandler is invoked with a cached value when its binding is
// removed from the container.
type DeactivationHandler func(instance interface{}) error

const noModule = ""

var bindingIDSeq int64

func nextBindingID() int64 {
	return atomic.AddInt64(&bindingIDSeq, 1)
}

// Binding describes how to satisfy one service identifier. It is mutated
// only through the fluent syntax before first use, then treated as
// read-only during resolution except for singleton cache population.
type Binding struct {
	// ID is the unique identity assigned at creation; request-scope caches
	// key on it
	ID int64

	// ServiceIdentifier is the key this binding satisfies
	ServiceIdentifier ServiceIdentifier

	// ModuleID is the owning module, or empty when bound directly
	ModuleID string

	// Type is the production strategy
	Type BindingType

	// ImplementationType is the constructor function for instance bindings
	ImplementationType interface{}

	// Cache holds the constant value, or the memoized singleton instance
	Cache interface{}

	// Activated reports whether Cache holds a resolved value
	Activated bool

	// Scope is the lifetime policy for resolved values
	Scope BindingScope

	// Constraint decides eligibility against a request; defaults to always
	// eligible
	Constraint ConstraintFunc

	DynamicValue    DynamicValueFunc
	FactoryCreator  FactoryCreator
	ProviderCreator ProviderCreator

	// OnActivation post-processes freshly produced values
	OnActivation ActivationHandler

	// OnDeactivation runs when the binding is removed while holding an
	// activated cache
	OnDeactivation DeactivationHandler

	// cacheMu serializes singleton cache population so concurrent
	// resolutions construct the value exactly once
	cacheMu sync.Mutex
}

// newBinding creates an unconfigured binding with the default constraint
func newBinding(id ServiceIdentifier, scope BindingScope) *Binding {
	return &Binding{
		ID:                nextBindingID(),
		ServiceIdentifier: id,
		ModuleID:          noModule,
		Type:              BindingInvalid,
		Scope:             scope,
		Constraint:        func(request *Request) bool { return true },
	}
}

// Clone returns a binding with a fresh identity and identical
// configuration, including any activated cache. Mutations to the clone
// never affect the original; this underlies snapshot/restore and merge.
func (b *Binding) Clone() *Binding {
	return &Binding{
		ID:                 nextBindingID(),
		ServiceIdentifier:  b.ServiceIdentifier,
		ModuleID:           b.ModuleID,
		Type:               b.Type,
		ImplementationType: b.ImplementationType,
		Cache:              b.Cache,
		Activated:          b.Activated,
		Scope:              b.Scope,
		Constraint:         b.Constraint,
		DynamicValue:       b.DynamicValue,
		FactoryCreator:     b.FactoryCreator,
		ProviderCreator:    b.ProviderCreator,
		OnActivation:       b.OnActivation,
		OnDeactivation:     b.OnDeactivation,
	}
}
