package core

// Constraint helpers for disambiguating bindings. Each returns a predicate
// over the resolution request; the fluent syntax wires them through
// WhenTargetNamed / WhenTargetTagged / When.

// TargetNamed accepts requests whose target carries the canonical named
// tag equal to name
func TargetNamed(name interface{}) ConstraintFunc {
	return func(request *Request) bool {
		return request != nil && request.Target != nil && request.Target.MatchesNamedTag(name)
	}
}

// TargetTagged accepts requests whose target carries tag key with exactly
// value
func TargetTagged(key string, value interface{}) ConstraintFunc {
	return func(request *Request) bool {
		return request != nil && request.Target != nil && request.Target.MatchesTag(key, value)
	}
}

// InjectedInto accepts requests whose direct parent resolves the given
// identifier; for constructor-produced types, pass the TypeKey
func InjectedInto(id ServiceIdentifier) ConstraintFunc {
	return func(request *Request) bool {
		if request == nil || request.ParentRequest == nil {
			return false
		}
		return request.ParentRequest.ServiceIdentifier == id
	}
}

// AnyAncestorIs accepts requests with the given identifier anywhere in the
// ancestor chain
func AnyAncestorIs(id ServiceIdentifier) ConstraintFunc {
	return func(request *Request) bool {
		if request == nil {
			return false
		}
		for cur := request.ParentRequest; cur != nil; cur = cur.ParentRequest {
			if cur.ServiceIdentifier == id {
				return true
			}
		}
		return false
	}
}

// NoAncestorIs is the negation of AnyAncestorIs
func NoAncestorIs(id ServiceIdentifier) ConstraintFunc {
	anyAncestor := AnyAncestorIs(id)
	return func(request *Request) bool {
		return request != nil && !anyAncestor(request)
	}
}
