package core

// Plan is the resolved dependency tree for one top-level resolution call.
// It is immutable after planning; re-planning replaces it wholesale.
type Plan struct {
	ParentContext *Context
	RootRequest   *Request
}

func newPlan(ctx *Context, root *Request) *Plan {
	return &Plan{
		ParentContext: ctx,
		RootRequest:   root,
	}
}
