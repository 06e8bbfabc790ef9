package core

import (
	"reflect"
)

// The fluent binding syntax progressively narrows a binding-in-progress:
// Bind returns a BindingToSyntax whose To* methods assign the production
// strategy, and the returned BindingInWhenOnSyntax configures scope,
// constraints and lifecycle handlers. Misuse (a non-function constructor,
// ToSelf on a non-type identifier) is a programming error and panics with
// a typed error.

// BindingToSyntax assigns the production strategy of a new binding
type BindingToSyntax struct {
	binding   *Binding
	container *Container
}

func newBindingToSyntax(binding *Binding, container *Container) *BindingToSyntax {
	return &BindingToSyntax{binding: binding, container: container}
}

func (s *BindingToSyntax) whenOn() *BindingInWhenOnSyntax {
	return &BindingInWhenOnSyntax{binding: s.binding, container: s.container}
}

// To instantiates the identifier via a constructor function; its declared
// dependencies are resolved recursively and passed positionally
func (s *BindingToSyntax) To(ctor interface{}) *BindingInWhenOnSyntax {
	if _, err := validateConstructor(ctor); err != nil {
		panic(&InvalidBindingError{ServiceIdentifier: s.binding.ServiceIdentifier, Reason: err.Error()})
	}
	s.binding.Type = BindingInstance
	s.binding.ImplementationType = ctor
	return s.whenOn()
}

// ToSelf binds a reflect.Type identifier to its registered injectable
// constructor
func (s *BindingToSyntax) ToSelf() *BindingInWhenOnSyntax {
	produced, ok := s.binding.ServiceIdentifier.(reflect.Type)
	if !ok {
		panic(&InvalidBindingError{
			ServiceIdentifier: s.binding.ServiceIdentifier,
			Reason:            "ToSelf requires a reflect.Type service identifier",
		})
	}
	ctor, ok := RegisteredConstructor(produced)
	if !ok {
		panic(&MissingInjectableAnnotationError{ServiceIdentifier: s.binding.ServiceIdentifier})
	}
	return s.To(ctor)
}

// ToConstantValue always resolves to the given value; it behaves as an
// already-resolved singleton and scope configuration is irrelevant
func (s *BindingToSyntax) ToConstantValue(value interface{}) *BindingInWhenOnSyntax {
	s.binding.Type = BindingConstantValue
	s.binding.Cache = value
	s.binding.Scope = SingletonScope
	return s.whenOn()
}

// ToDynamicValue invokes fn on every resolution, unless cached by
// SingletonScope
func (s *BindingToSyntax) ToDynamicValue(fn DynamicValueFunc) *BindingInWhenOnSyntax {
	if fn == nil {
		panic(&InvalidBindingError{ServiceIdentifier: s.binding.ServiceIdentifier, Reason: "dynamic value function cannot be nil"})
	}
	s.binding.Type = BindingDynamicValue
	s.binding.DynamicValue = fn
	return s.whenOn()
}

// ToFactory resolves to a producer function built by fn; the consumer
// calls the producer later to obtain instances on demand
func (s *BindingToSyntax) ToFactory(fn func(ctx *Context) FactoryFunc) *BindingInWhenOnSyntax {
	if fn == nil {
		panic(&InvalidBindingError{ServiceIdentifier: s.binding.ServiceIdentifier, Reason: "factory creator cannot be nil"})
	}
	s.binding.Type = BindingFactory
	s.binding.FactoryCreator = func(ctx *Context) interface{} { return fn(ctx) }
	return s.whenOn()
}

// ToProvider resolves to an asynchronous producer; the caller supplies a
// context.Context and awaits the produced value
func (s *BindingToSyntax) ToProvider(fn ProviderCreator) *BindingInWhenOnSyntax {
	if fn == nil {
		panic(&InvalidBindingError{ServiceIdentifier: s.binding.ServiceIdentifier, Reason: "provider creator cannot be nil"})
	}
	s.binding.Type = BindingProvider
	s.binding.ProviderCreator = fn
	return s.whenOn()
}

// ToAutoFactory resolves to a producer that looks up another identifier on
// demand from the resolving container
func (s *BindingToSyntax) ToAutoFactory(of ServiceIdentifier) *BindingInWhenOnSyntax {
	s.binding.Type = BindingFactory
	s.binding.FactoryCreator = func(ctx *Context) interface{} {
		return FactoryFunc(func() (interface{}, error) {
			return ctx.Container.Get(of)
		})
	}
	return s.whenOn()
}

// ToAutoNamedFactory resolves to a producer keyed by name at call time
func (s *BindingToSyntax) ToAutoNamedFactory(of ServiceIdentifier) *BindingInWhenOnSyntax {
	s.binding.Type = BindingFactory
	s.binding.FactoryCreator = func(ctx *Context) interface{} {
		return NamedFactoryFunc(func(name interface{}) (interface{}, error) {
			return ctx.Container.GetNamed(of, name)
		})
	}
	return s.whenOn()
}

// BindingInWhenOnSyntax configures scope, constraints and lifecycle
// handlers of a binding
type BindingInWhenOnSyntax struct {
	binding   *Binding
	container *Container
}

// InSingletonScope caches the first resolved value for the container's
// lifetime
func (s *BindingInWhenOnSyntax) InSingletonScope() *BindingInWhenOnSyntax {
	s.binding.Scope = SingletonScope
	return s
}

// InTransientScope produces a new value on every resolution
func (s *BindingInWhenOnSyntax) InTransientScope() *BindingInWhenOnSyntax {
	s.binding.Scope = TransientScope
	return s
}

// InRequestScope shares one value within a single resolution call
func (s *BindingInWhenOnSyntax) InRequestScope() *BindingInWhenOnSyntax {
	s.binding.Scope = RequestScope
	return s
}

// When replaces the binding constraint with a custom predicate
func (s *BindingInWhenOnSyntax) When(constraint ConstraintFunc) *BindingInWhenOnSyntax {
	s.binding.Constraint = constraint
	return s
}

// WhenTargetNamed restricts the binding to requests named name
func (s *BindingInWhenOnSyntax) WhenTargetNamed(name interface{}) *BindingInWhenOnSyntax {
	return s.When(TargetNamed(name))
}

// WhenTargetTagged restricts the binding to requests tagged key=value
func (s *BindingInWhenOnSyntax) WhenTargetTagged(key string, value interface{}) *BindingInWhenOnSyntax {
	return s.When(TargetTagged(key, value))
}

// WhenInjectedInto restricts the binding to dependencies of the given
// identifier
func (s *BindingInWhenOnSyntax) WhenInjectedInto(id ServiceIdentifier) *BindingInWhenOnSyntax {
	return s.When(InjectedInto(id))
}

// WhenAnyAncestorIs restricts the binding to object graphs containing the
// identifier as an ancestor
func (s *BindingInWhenOnSyntax) WhenAnyAncestorIs(id ServiceIdentifier) *BindingInWhenOnSyntax {
	return s.When(AnyAncestorIs(id))
}

// OnActivation post-processes freshly produced values; the handler may
// return a replacement value
func (s *BindingInWhenOnSyntax) OnActivation(handler ActivationHandler) *BindingInWhenOnSyntax {
	s.binding.OnActivation = handler
	return s
}

// OnDeactivation runs when the binding is removed while holding an
// activated cached value
func (s *BindingInWhenOnSyntax) OnDeactivation(handler DeactivationHandler) *BindingInWhenOnSyntax {
	s.binding.OnDeactivation = handler
	return s
}
