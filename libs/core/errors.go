package core

import (
	"fmt"
	"strings"
)

// NotRegisteredError is returned when an identifier has zero eligible
// bindings in the container chain.
type NotRegisteredError struct {
	ServiceIdentifier ServiceIdentifier
	Chain             []string
}

func (e *NotRegisteredError) Error() string {
	msg := fmt.Sprintf("no matching bindings found for service identifier '%s'", serviceIdentifierString(e.ServiceIdentifier))
	if len(e.Chain) > 0 {
		msg = fmt.Sprintf("%s (resolution chain: %s)", msg, strings.Join(e.Chain, " -> "))
	}
	return msg
}

// AmbiguousMatchError is returned when a single-result lookup matches more
// than one eligible binding.
type AmbiguousMatchError struct {
	ServiceIdentifier ServiceIdentifier
	Count             int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match: %d bindings registered for service identifier '%s'", e.Count, serviceIdentifierString(e.ServiceIdentifier))
}

// CircularDependencyError indicates an identifier reappeared in its own
// ancestor chain during planning.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Chain, " -> "))
}

// CannotUnbindError is returned by Unbind when the identifier is absent.
type CannotUnbindError struct {
	ServiceIdentifier ServiceIdentifier
}

func (e *CannotUnbindError) Error() string {
	return fmt.Sprintf("cannot unbind: no bindings registered for service identifier '%s'", serviceIdentifierString(e.ServiceIdentifier))
}

// NoMoreSnapshotsError is returned by Restore when the snapshot stack is
// empty.
type NoMoreSnapshotsError struct{}

func (e *NoMoreSnapshotsError) Error() string {
	return "no more snapshots available to restore"
}

// InvalidMiddlewareReturnError is returned when an installed middleware
// chain produced a nil result without an error.
type InvalidMiddlewareReturnError struct {
	ServiceIdentifier ServiceIdentifier
}

func (e *InvalidMiddlewareReturnError) Error() string {
	return fmt.Sprintf("invalid nil value returned from middleware while resolving '%s'", serviceIdentifierString(e.ServiceIdentifier))
}

// InvalidContainerOptionsError is returned when container construction
// options are malformed.
type InvalidContainerOptionsError struct {
	Reason string
}

func (e *InvalidContainerOptionsError) Error() string {
	return fmt.Sprintf("invalid container options: %s", e.Reason)
}

// MissingInjectableAnnotationError is returned when auto-binding a type
// that was never registered as injectable.
type MissingInjectableAnnotationError struct {
	ServiceIdentifier ServiceIdentifier
}

func (e *MissingInjectableAnnotationError) Error() string {
	return fmt.Sprintf("missing injectable registration for '%s'; register the constructor with RegisterInjectable before auto-binding", serviceIdentifierString(e.ServiceIdentifier))
}

// InvalidBindingError indicates a binding was misconfigured through the
// fluent syntax, or left without a production strategy.
type InvalidBindingError struct {
	ServiceIdentifier ServiceIdentifier
	Reason            string
}

func (e *InvalidBindingError) Error() string {
	return fmt.Sprintf("invalid binding for '%s': %s", serviceIdentifierString(e.ServiceIdentifier), e.Reason)
}

// ResolutionError wraps a producer failure with the identifier being
// resolved at the time.
type ResolutionError struct {
	ServiceIdentifier ServiceIdentifier
	Cause             error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve '%s': %v", serviceIdentifierString(e.ServiceIdentifier), e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}
