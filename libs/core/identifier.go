package core

import (
	"fmt"
	"reflect"
)

// ServiceIdentifier is the opaque key a binding satisfies. Supported key
// kinds are string, Symbol and reflect.Type. Strings and Symbols compare
// structurally, reflect.Type keys compare by type identity.
type ServiceIdentifier interface{}

// Symbol is a string-based identifier kind kept distinct from plain strings,
// so libraries can export collision-free keys.
type Symbol string

// TypeKey returns the reflect.Type identifier for a value, unwrapping the
// (*Iface)(nil) idiom so interfaces can be used as service identifiers.
//
//	weaponKey := core.TypeKey((*Weapon)(nil))
//	container.Bind(weaponKey).To(NewKatana)
func TypeKey(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Interface {
		return t.Elem()
	}
	return t
}

// TypeKeyFor returns the reflect.Type identifier for a type parameter.
func TypeKeyFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// IdentifierString renders a service identifier for logs and diagnostics
func IdentifierString(id ServiceIdentifier) string {
	return serviceIdentifierString(id)
}

// serviceIdentifierString renders an identifier for error messages so
// failures stay debuggable without runtime introspection
func serviceIdentifierString(id ServiceIdentifier) string {
	switch v := id.(type) {
	case string:
		return v
	case Symbol:
		return fmt.Sprintf("Symbol(%s)", string(v))
	case reflect.Type:
		return v.String()
	default:
		return fmt.Sprintf("%v", id)
	}
}

// isValidServiceIdentifier reports whether the key kind is supported
func isValidServiceIdentifier(id ServiceIdentifier) bool {
	switch id.(type) {
	case string, Symbol, reflect.Type:
		return true
	default:
		return false
	}
}
