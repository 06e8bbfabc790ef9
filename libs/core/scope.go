package core

// BindingScope defines the lifetime of a resolved value
type BindingScope int

const (
	// TransientScope creates a new instance on every resolution
	TransientScope BindingScope = iota
	// SingletonScope caches the first resolved instance on the binding for
	// the lifetime of the container
	SingletonScope
	// RequestScope caches the instance once per top-level resolution call,
	// so a single object graph shares one instance
	RequestScope
)

// String returns the human-readable scope name
func (s BindingScope) String() string {
	switch s {
	case TransientScope:
		return "Transient"
	case SingletonScope:
		return "Singleton"
	case RequestScope:
		return "Request"
	default:
		return "Unknown"
	}
}

// isValid reports whether the scope is one of the three enumerated values
func (s BindingScope) isValid() bool {
	return s == TransientScope || s == SingletonScope || s == RequestScope
}
