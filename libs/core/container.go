package core

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Container is the dependency injection kernel: it owns the binding
// registry, plans and resolves object graphs, stacks snapshots and routes
// resolution through the installed middleware chain. Containers form a
// hierarchy; lookups walk from the requesting container toward the root
// and the nearest container owning any binding for an identifier wins
// entirely.
type Container struct {
	id      string
	options ContainerOptions
	parent  *Container

	bindingDictionary *Lookup
	snapshots         []*Snapshot
	middleware        Next

	planner        *planner
	metadataReader MetadataReader

	mu sync.RWMutex
}

// New creates a container with default options: transient default scope,
// no auto-binding
func New() *Container {
	c, err := NewWithOptions(ContainerOptions{DefaultScope: TransientScope})
	if err != nil {
		panic(err)
	}
	return c
}

// NewWithOptions creates a container with explicit options
func NewWithOptions(options ContainerOptions) (*Container, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}
	reader := NewMetadataReader()
	return &Container{
		id:                uuid.NewString(),
		options:           options,
		bindingDictionary: NewLookup(),
		planner:           newPlanner(reader),
		metadataReader:    reader,
	}, nil
}

// ID returns the container's unique identity
func (c *Container) ID() string {
	return c.id
}

// Parent returns the parent container, or nil for a root container
func (c *Container) Parent() *Container {
	return c.parent
}

// Options returns the options the container was created with
func (c *Container) Options() ContainerOptions {
	return c.options
}

// Bind starts registering a binding for an identifier; the returned syntax
// assigns the production strategy. Multiple bindings may share an
// identifier, which makes single lookups ambiguous unless constraints
// disambiguate.
func (c *Container) Bind(id ServiceIdentifier) *BindingToSyntax {
	if !isValidServiceIdentifier(id) {
		panic(&InvalidBindingError{
			ServiceIdentifier: id,
			Reason:            fmt.Sprintf("service identifier must be a string, Symbol or reflect.Type, got %T", id),
		})
	}
	binding := newBinding(id, c.options.DefaultScope)
	c.mu.Lock()
	c.bindingDictionary.Add(id, binding)
	c.mu.Unlock()
	return newBindingToSyntax(binding, c)
}

// Unbind removes every binding registered locally for an identifier and
// runs deactivation handlers on activated singletons among them
func (c *Container) Unbind(id ServiceIdentifier) error {
	c.mu.Lock()
	if !c.bindingDictionary.HasKey(id) {
		c.mu.Unlock()
		return &CannotUnbindError{ServiceIdentifier: id}
	}
	removed := c.bindingDictionary.RemoveByCondition(func(b *Binding) bool {
		return b.ServiceIdentifier == id
	})
	c.mu.Unlock()
	return deactivateBindings(removed)
}

// UnbindAll removes every binding in the container and runs deactivation
// handlers on activated singletons
func (c *Container) UnbindAll() error {
	c.mu.Lock()
	removed := c.bindingDictionary.RemoveByCondition(func(*Binding) bool { return true })
	c.mu.Unlock()
	return deactivateBindings(removed)
}

// Rebind atomically replaces all bindings for an identifier with a single
// fresh one; unlike Unbind it tolerates the identifier being unbound
func (c *Container) Rebind(id ServiceIdentifier) *BindingToSyntax {
	c.mu.Lock()
	removed := c.bindingDictionary.RemoveByCondition(func(b *Binding) bool {
		return b.ServiceIdentifier == id
	})
	c.mu.Unlock()
	// Replacement must not be blocked by a failing deactivation handler
	_ = deactivateBindings(removed)
	return c.Bind(id)
}

// Get resolves a single value for the identifier, planning and resolving
// its full dependency graph
func (c *Container) Get(id ServiceIdentifier) (interface{}, error) {
	return c.get(NextArgs{
		TargetType:        TargetVariable,
		ServiceIdentifier: id,
	})
}

// GetNamed resolves a single value among bindings constrained with
// WhenTargetNamed
func (c *Container) GetNamed(id ServiceIdentifier, name interface{}) (interface{}, error) {
	return c.get(NextArgs{
		TargetType:        TargetVariable,
		ServiceIdentifier: id,
		Key:               NamedTag,
		Value:             name,
	})
}

// GetTagged resolves a single value among bindings constrained with
// WhenTargetTagged
func (c *Container) GetTagged(id ServiceIdentifier, key string, value interface{}) (interface{}, error) {
	return c.get(NextArgs{
		TargetType:        TargetVariable,
		ServiceIdentifier: id,
		Key:               key,
		Value:             value,
	})
}

// GetAll resolves every binding for the identifier, ignoring constraints,
// in registration order
func (c *Container) GetAll(id ServiceIdentifier) ([]interface{}, error) {
	return c.getAll(NextArgs{
		AvoidConstraints:  true,
		IsMultiInject:     true,
		TargetType:        TargetVariable,
		ServiceIdentifier: id,
	})
}

// GetAllNamed resolves every binding matching the name constraint
func (c *Container) GetAllNamed(id ServiceIdentifier, name interface{}) ([]interface{}, error) {
	return c.getAll(NextArgs{
		IsMultiInject:     true,
		TargetType:        TargetVariable,
		ServiceIdentifier: id,
		Key:               NamedTag,
		Value:             name,
	})
}

// GetAllTagged resolves every binding matching the tag constraint
func (c *Container) GetAllTagged(id ServiceIdentifier, key string, value interface{}) ([]interface{}, error) {
	return c.getAll(NextArgs{
		IsMultiInject:     true,
		TargetType:        TargetVariable,
		ServiceIdentifier: id,
		Key:               key,
		Value:             value,
	})
}

// MustGet resolves like Get and panics on failure; intended for program
// startup wiring where a missing binding is unrecoverable
func (c *Container) MustGet(id ServiceIdentifier) interface{} {
	value, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return value
}

// GetInto resolves the identifier and assigns the result into out, which
// must be a non-nil pointer whose element type the resolved value is
// assignable to
func (c *Container) GetInto(id ServiceIdentifier, out interface{}) error {
	value, err := c.Get(id)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &ResolutionError{
			ServiceIdentifier: id,
			Cause:             fmt.Errorf("out argument must be a non-nil pointer, got %T", out),
		}
	}
	elem := rv.Elem()
	if value == nil {
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}
	vv := reflect.ValueOf(value)
	if !vv.Type().AssignableTo(elem.Type()) {
		return &ResolutionError{
			ServiceIdentifier: id,
			Cause:             fmt.Errorf("resolved value type %v is not assignable to %v", vv.Type(), elem.Type()),
		}
	}
	elem.Set(vv)
	return nil
}

// get routes a single-result resolution through the middleware chain when
// one is installed, otherwise plans and resolves directly
func (c *Container) get(args NextArgs) (interface{}, error) {
	c.mu.RLock()
	mw := c.middleware
	c.mu.RUnlock()

	if mw != nil {
		result, err := mw(args)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, &InvalidMiddlewareReturnError{ServiceIdentifier: args.ServiceIdentifier}
		}
		return result, nil
	}
	return c.planAndResolve(args)
}

// getAll routes a multi-result resolution and normalizes the result shape
func (c *Container) getAll(args NextArgs) ([]interface{}, error) {
	result, err := c.get(args)
	if err != nil {
		return nil, err
	}
	values, ok := result.([]interface{})
	if !ok {
		return nil, &InvalidMiddlewareReturnError{ServiceIdentifier: args.ServiceIdentifier}
	}
	return values, nil
}

// planAndResolve is the innermost resolution entry point every middleware
// ultimately wraps
func (c *Container) planAndResolve(args NextArgs) (interface{}, error) {
	ctx, err := c.planner.plan(c, args)
	if err != nil {
		return nil, err
	}
	return resolveContext(ctx)
}

// IsBound reports whether the identifier has any binding in the container
// chain, without evaluating constraints
func (c *Container) IsBound(id ServiceIdentifier) bool {
	for cur := c; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		bound := cur.bindingDictionary.HasKey(id)
		cur.mu.RUnlock()
		if bound {
			return true
		}
	}
	return false
}

// IsBoundNamed reports whether any binding for the identifier accepts a
// request named name
func (c *Container) IsBoundNamed(id ServiceIdentifier, name interface{}) bool {
	return c.IsBoundTagged(id, NamedTag, name)
}

// IsBoundTagged reports whether any binding for the identifier accepts a
// request tagged key=value. Like resolution lookups, the nearest container
// owning any binding for the identifier decides.
func (c *Container) IsBoundTagged(id ServiceIdentifier, key string, value interface{}) bool {
	bindings := lookupBindings(c, id)
	if len(bindings) == 0 {
		return false
	}

	ctx := newContext(c)
	target := &Target{
		Type:              TargetVariable,
		ServiceIdentifier: id,
		Metadata:          []Metadata{{Key: key, Value: value}},
	}
	req := newRequest(id, ctx, nil, target)

	for _, b := range bindings {
		if b.Constraint == nil || b.Constraint(req) {
			return true
		}
	}
	return false
}

// Snapshot pushes a point-in-time copy of the binding registry and the
// installed middleware onto the snapshot stack
func (c *Container) Snapshot() {
	c.mu.Lock()
	c.snapshots = append(c.snapshots, newSnapshot(c.bindingDictionary.Clone(), c.middleware))
	c.mu.Unlock()
}

// Restore pops the most recent snapshot and reinstates its bindings and
// middleware, discarding every change made since it was taken
func (c *Container) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.snapshots) == 0 {
		return &NoMoreSnapshotsError{}
	}
	last := len(c.snapshots) - 1
	snapshot := c.snapshots[last]
	c.snapshots = c.snapshots[:last]
	c.bindingDictionary = snapshot.Bindings
	c.middleware = snapshot.Middleware
	return nil
}

// ApplyMiddleware installs middlewares around the resolution entry point.
// Middlewares compose onto any chain already installed; the last
// middleware applied runs outermost.
func (c *Container) ApplyMiddleware(middlewares ...Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.middleware
	if next == nil {
		next = c.planAndResolve
	}
	for _, m := range middlewares {
		next = m(next)
	}
	c.middleware = next
}

// CreateChild creates a child container inheriting the parent's options.
// The child starts empty; lookups fall through to the parent only for
// identifiers the child does not bind itself.
func (c *Container) CreateChild() *Container {
	child, err := c.CreateChildWithOptions(c.options)
	if err != nil {
		panic(err)
	}
	return child
}

// CreateChildWithOptions creates a child container with explicit options
func (c *Container) CreateChildWithOptions(options ContainerOptions) (*Container, error) {
	child, err := NewWithOptions(options)
	if err != nil {
		return nil, err
	}
	child.parent = c
	return child, nil
}

// Load registers each module's bindings, stamped with the module id so
// Unload can remove them later. A failing module is rolled back before the
// error is returned, so loading is atomic per module.
func (c *Container) Load(modules ...*ContainerModule) error {
	for _, module := range modules {
		binder := &ModuleBinder{container: c, moduleID: module.ID}
		if err := module.registry(binder); err != nil {
			c.removeModuleBindings(module.ID)
			return err
		}
	}
	return nil
}

// LoadAsync registers asynchronous modules, passing the caller context to
// each registry
func (c *Container) LoadAsync(ctx context.Context, modules ...*AsyncContainerModule) error {
	for _, module := range modules {
		binder := &ModuleBinder{container: c, moduleID: module.ID}
		if err := module.registry(ctx, binder); err != nil {
			c.removeModuleBindings(module.ID)
			return err
		}
	}
	return nil
}

// Unload removes every binding owned by the given modules and runs
// deactivation handlers on activated singletons among them
func (c *Container) Unload(modules ...*ContainerModule) error {
	ids := make(map[string]bool, len(modules))
	for _, module := range modules {
		ids[module.ID] = true
	}
	c.mu.Lock()
	removed := c.bindingDictionary.RemoveByCondition(func(b *Binding) bool {
		return ids[b.ModuleID]
	})
	c.mu.Unlock()
	return deactivateBindings(removed)
}

func (c *Container) removeModuleBindings(moduleID string) {
	c.mu.Lock()
	removed := c.bindingDictionary.RemoveByCondition(func(b *Binding) bool {
		return b.ModuleID == moduleID
	})
	c.mu.Unlock()
	_ = deactivateBindings(removed)
}

// Resolve instantiates a constructor through a throwaway child container,
// so its dependencies come from this container without registering the
// constructor itself
func (c *Container) Resolve(ctor interface{}) (interface{}, error) {
	produced, err := constructorProducedType(ctor)
	if err != nil {
		return nil, err
	}
	child := c.CreateChild()
	child.Bind(produced).To(ctor)
	return child.Get(produced)
}

// localBindings returns a copy of the bindings this container itself
// registers for the identifier, ignoring the parent chain
func (c *Container) localBindings(id ServiceIdentifier) []*Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	bindings, err := c.bindingDictionary.Get(id)
	if err != nil {
		return nil
	}
	out := make([]*Binding, len(bindings))
	copy(out, bindings)
	return out
}

// Merge creates a new container holding cloned bindings from both inputs.
// The result takes the first container's options and no parent; bindings
// keep registration order, first container first.
func Merge(first, second *Container) (*Container, error) {
	merged, err := NewWithOptions(first.options)
	if err != nil {
		return nil, err
	}
	for _, source := range []*Container{first, second} {
		source.mu.RLock()
		clone := source.bindingDictionary.Clone()
		source.mu.RUnlock()
		clone.Traverse(func(key ServiceIdentifier, bindings []*Binding) {
			for _, b := range bindings {
				merged.bindingDictionary.Add(key, b)
			}
		})
	}
	return merged, nil
}

// Typed resolves an identifier and asserts the result to T
func Typed[T any](c *Container, id ServiceIdentifier) (T, error) {
	var zero T
	value, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, &ResolutionError{
			ServiceIdentifier: id,
			Cause:             fmt.Errorf("resolved value type %T does not satisfy %v", value, reflect.TypeOf((*T)(nil)).Elem()),
		}
	}
	return typed, nil
}

// deactivateBindings runs deactivation handlers for removed bindings that
// hold an activated cache; every handler runs, the first error wins
func deactivateBindings(removed []*Binding) error {
	var first error
	for _, b := range removed {
		if b.OnDeactivation == nil || !b.Activated {
			continue
		}
		if err := b.OnDeactivation(b.Cache); err != nil && first == nil {
			first = err
		}
	}
	return first
}
