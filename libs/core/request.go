package core

import "sync/atomic"

var requestIDSeq int64

// Request is one node of a resolution plan: a service identifier, the
// injection target that asked for it, the bindings matched after
// constraint evaluation and the child requests for their dependencies.
type Request struct {
	ID                int64
	ServiceIdentifier ServiceIdentifier
	ParentContext     *Context
	ParentRequest     *Request
	ChildRequests     []*Request
	Target            *Target
	Bindings          []*Binding
}

func newRequest(id ServiceIdentifier, ctx *Context, parent *Request, target *Target, bindings ...*Binding) *Request {
	return &Request{
		ID:                atomic.AddInt64(&requestIDSeq, 1),
		ServiceIdentifier: id,
		ParentContext:     ctx,
		ParentRequest:     parent,
		Target:            target,
		Bindings:          bindings,
	}
}

// AddChildRequest appends a dependency node under this request
func (r *Request) AddChildRequest(id ServiceIdentifier, target *Target, bindings ...*Binding) *Request {
	child := newRequest(id, r.ParentContext, r, target, bindings...)
	r.ChildRequests = append(r.ChildRequests, child)
	return child
}

// isMultiGroup reports whether this node fans out into one sub-request per
// matched binding instead of carrying a single binding itself
func (r *Request) isMultiGroup() bool {
	return r.Target != nil && r.Target.IsMultiInject() && len(r.Bindings) == 0 && len(r.ChildRequests) > 0
}

// identifierChain renders the identifiers from the root request down to
// this node, for circular dependency and not-registered diagnostics
func (r *Request) identifierChain() []string {
	var reversed []string
	for cur := r; cur != nil; cur = cur.ParentRequest {
		reversed = append(reversed, serviceIdentifierString(cur.ServiceIdentifier))
	}
	chain := make([]string, len(reversed))
	for i, s := range reversed {
		chain[len(reversed)-1-i] = s
	}
	return chain
}

// hasAncestor reports whether the identifier already appears in this
// node's ancestor chain, including the node itself
func (r *Request) hasAncestor(id ServiceIdentifier) bool {
	for cur := r; cur != nil; cur = cur.ParentRequest {
		if cur.ServiceIdentifier == id {
			return true
		}
	}
	return false
}
