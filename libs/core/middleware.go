package core

// NextArgs is the immutable arguments record describing one resolution
// entry. It is passed explicitly through the middleware chain so
// interceptors never share mutable state.
type NextArgs struct {
	AvoidConstraints  bool
	IsMultiInject     bool
	TargetType        TargetType
	ServiceIdentifier ServiceIdentifier

	// Key/Value carry the target tag; GetNamed uses Key == NamedTag
	Key   string
	Value interface{}
}

// Next is the plan-and-resolve entry point a middleware wraps.
type Next func(args NextArgs) (interface{}, error)

// Middleware intercepts resolution by wrapping the next entry point in the
// chain. Middlewares compose so the last one applied runs outermost.
type Middleware func(next Next) Next
