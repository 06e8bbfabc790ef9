package core

import "github.com/google/uuid"

// Context carries a single resolution call: its identity, the originating
// container, the plan being executed and the request-scope cache. It is
// created fresh per Get* call, handed to constraints, dynamic values and
// factories for introspection, and discarded when the call returns.
type Context struct {
	ID        string
	Container *Container
	Plan      *Plan

	// requestScope memoizes values per binding identity for the lifetime
	// of this context; keying on binding id (not identifier) keeps sharing
	// exactly as narrow as the matched binding
	requestScope map[int64]interface{}
}

func newContext(container *Container) *Context {
	return &Context{
		ID:        uuid.NewString(),
		Container: container,
	}
}

func (c *Context) addPlan(plan *Plan) {
	c.Plan = plan
}

func (c *Context) requestScopeGet(bindingID int64) (interface{}, bool) {
	if c.requestScope == nil {
		return nil, false
	}
	v, ok := c.requestScope[bindingID]
	return v, ok
}

func (c *Context) requestScopeSet(bindingID int64, value interface{}) {
	if c.requestScope == nil {
		c.requestScope = make(map[int64]interface{})
	}
	c.requestScope[bindingID] = value
}
