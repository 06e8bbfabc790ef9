package core

import (
	"context"

	"github.com/google/uuid"
)

// ContainerModule is a named group of bindings registered and removed
// atomically. The registry callback receives a ModuleBinder whose helpers
// stamp every binding they create with the module id, so Unload can later
// remove exactly those bindings.
type ContainerModule struct {
	ID       string
	registry func(binder *ModuleBinder) error
}

// NewContainerModule creates a module from a registration callback
//
//	warriors := core.NewContainerModule(func(b *core.ModuleBinder) error {
//	    b.Bind("Ninja").To(NewNinja)
//	    b.Bind("Weapon").To(NewKatana)
//	    return nil
//	})
//	if err := container.Load(warriors); err != nil { ... }
func NewContainerModule(registry func(binder *ModuleBinder) error) *ContainerModule {
	return &ContainerModule{
		ID:       uuid.NewString(),
		registry: registry,
	}
}

// AsyncContainerModule is a module whose registration may suspend on
// external work; it is loaded through LoadAsync with a caller context.
type AsyncContainerModule struct {
	ID       string
	registry func(ctx context.Context, binder *ModuleBinder) error
}

// NewAsyncContainerModule creates an asynchronous module
func NewAsyncContainerModule(registry func(ctx context.Context, binder *ModuleBinder) error) *AsyncContainerModule {
	return &AsyncContainerModule{
		ID:       uuid.NewString(),
		registry: registry,
	}
}

// ModuleBinder exposes bind/unbind/isBound/rebind to a module registry,
// tagging every created binding with the owning module id
type ModuleBinder struct {
	container *Container
	moduleID  string
}

// Bind registers a binding owned by the module
func (b *ModuleBinder) Bind(id ServiceIdentifier) *BindingToSyntax {
	syntax := b.container.Bind(id)
	syntax.binding.ModuleID = b.moduleID
	return syntax
}

// Unbind removes every binding for the identifier
func (b *ModuleBinder) Unbind(id ServiceIdentifier) error {
	return b.container.Unbind(id)
}

// IsBound reports whether the identifier is bound in the container chain
func (b *ModuleBinder) IsBound(id ServiceIdentifier) bool {
	return b.container.IsBound(id)
}

// Rebind replaces all bindings for the identifier with a new module-owned
// binding
func (b *ModuleBinder) Rebind(id ServiceIdentifier) *BindingToSyntax {
	syntax := b.container.Rebind(id)
	syntax.binding.ModuleID = b.moduleID
	return syntax
}
