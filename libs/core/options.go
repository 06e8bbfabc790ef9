package core

import "fmt"

// ContainerOptions configures container construction
type ContainerOptions struct {
	// DefaultScope applies to bindings that never call a scope method;
	// defaults to TransientScope
	DefaultScope BindingScope

	// AutoBindInjectable lets Get on an unbound reflect.Type identifier
	// implicitly bind a registered injectable constructor for it
	AutoBindInjectable bool

	// SkipBaseClassChecks disables the planner check that dependency
	// descriptors cover every constructor parameter
	SkipBaseClassChecks bool
}

func (o ContainerOptions) validate() error {
	if !o.DefaultScope.isValid() {
		return &InvalidContainerOptionsError{
			Reason: fmt.Sprintf("defaultScope must be Transient, Singleton or Request, got %d", o.DefaultScope),
		}
	}
	return nil
}
