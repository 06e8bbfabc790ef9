package core

import (
	"reflect"
)

// planner builds a Plan for one top-level resolution call: it selects the
// owning container in the hierarchy, evaluates binding constraints and
// recursively expands constructor dependencies into a request tree,
// detecting invalid configurations before any value is produced.
type planner struct {
	reader MetadataReader
}

func newPlanner(reader MetadataReader) *planner {
	return &planner{reader: reader}
}

// plan produces the Context holding the request tree for args
func (p *planner) plan(container *Container, args NextArgs) (*Context, error) {
	ctx := newContext(container)

	target := &Target{
		Type:              args.TargetType,
		ServiceIdentifier: args.ServiceIdentifier,
	}
	if args.IsMultiInject {
		target.Metadata = append(target.Metadata, Metadata{Key: MultiInjectTag, Value: true})
	}
	if args.Key != "" {
		target.Metadata = append(target.Metadata, Metadata{Key: args.Key, Value: args.Value})
	}

	root := newRequest(args.ServiceIdentifier, ctx, nil, target)
	bindings, err := p.activeBindings(container, root, target, args.AvoidConstraints)
	if err != nil {
		return nil, err
	}

	// Zero eligible bindings is a failure even for multi-injection: a
	// silent empty result would hide a missing registration.
	if len(bindings) == 0 {
		return nil, &NotRegisteredError{
			ServiceIdentifier: args.ServiceIdentifier,
			Chain:             root.identifierChain(),
		}
	}
	if !args.IsMultiInject && len(bindings) > 1 {
		return nil, &AmbiguousMatchError{
			ServiceIdentifier: args.ServiceIdentifier,
			Count:             len(bindings),
		}
	}

	if args.IsMultiInject {
		for _, binding := range bindings {
			sub := root.AddChildRequest(args.ServiceIdentifier, target, binding)
			if err := p.planDependencies(container, sub, binding); err != nil {
				return nil, err
			}
		}
	} else {
		root.Bindings = bindings
		if err := p.planDependencies(container, root, bindings[0]); err != nil {
			return nil, err
		}
	}

	ctx.addPlan(newPlan(ctx, root))
	return ctx, nil
}

// planDependencies expands the constructor dependencies of an instance
// binding into child requests, depth-first
func (p *planner) planDependencies(container *Container, req *Request, binding *Binding) error {
	if binding.Type != BindingInstance {
		return nil
	}

	meta, err := p.reader.GetConstructorMetadata(binding.ImplementationType)
	if err != nil {
		return &InvalidBindingError{ServiceIdentifier: binding.ServiceIdentifier, Reason: err.Error()}
	}

	if !container.options.SkipBaseClassChecks {
		fnType := reflect.TypeOf(binding.ImplementationType)
		if len(meta.Targets) != fnType.NumIn() {
			return &InvalidBindingError{
				ServiceIdentifier: binding.ServiceIdentifier,
				Reason:            "registered dependency descriptors do not cover every constructor parameter",
			}
		}
	}

	for _, registered := range meta.Targets {
		target := registered.clone()
		depID := target.ServiceIdentifier

		if req.hasAncestor(depID) {
			return &CircularDependencyError{
				Chain: append(req.identifierChain(), serviceIdentifierString(depID)),
			}
		}

		child := req.AddChildRequest(depID, target)
		bindings, err := p.activeBindings(container, child, target, false)
		if err != nil {
			return err
		}

		if len(bindings) == 0 {
			if target.IsOptional() {
				// Placeholder node; the resolver injects the zero value
				continue
			}
			return &NotRegisteredError{ServiceIdentifier: depID, Chain: child.identifierChain()}
		}

		if target.IsMultiInject() {
			for _, b := range bindings {
				sub := child.AddChildRequest(depID, target, b)
				if err := p.planDependencies(container, sub, b); err != nil {
					return err
				}
			}
			continue
		}

		if len(bindings) > 1 {
			return &AmbiguousMatchError{ServiceIdentifier: depID, Count: len(bindings)}
		}
		child.Bindings = bindings
		if err := p.planDependencies(container, child, bindings[0]); err != nil {
			return err
		}
	}

	return nil
}

// activeBindings returns the eligible bindings for a request: the nearest
// container in the chain owning any binding for the identifier wins
// entirely, then constraints narrow the result unless avoidConstraints is
// set (plain GetAll)
func (p *planner) activeBindings(origin *Container, req *Request, target *Target, avoidConstraints bool) ([]*Binding, error) {
	bindings := lookupBindings(origin, target.ServiceIdentifier)

	if len(bindings) == 0 {
		autoBound, err := p.autoBind(origin, target.ServiceIdentifier)
		if err != nil {
			return nil, err
		}
		bindings = autoBound
	}

	if avoidConstraints {
		return bindings, nil
	}

	eligible := make([]*Binding, 0, len(bindings))
	for _, b := range bindings {
		if b.Constraint == nil || b.Constraint(req) {
			eligible = append(eligible, b)
		}
	}
	return eligible, nil
}

// lookupBindings walks the container chain from the originating container
// to the root ancestor; parent bindings are invisible once a closer
// container registers the identifier
func lookupBindings(origin *Container, id ServiceIdentifier) []*Binding {
	for c := origin; c != nil; c = c.parent {
		if bindings := c.localBindings(id); len(bindings) > 0 {
			return bindings
		}
	}
	return nil
}

// autoBind registers an implicit constructor binding for a type identifier
// when the container opts in; the type must carry the injectable marker
func (p *planner) autoBind(container *Container, id ServiceIdentifier) ([]*Binding, error) {
	if !container.options.AutoBindInjectable {
		return nil, nil
	}
	produced, ok := id.(reflect.Type)
	if !ok {
		return nil, nil
	}
	ctor, ok := RegisteredConstructor(produced)
	if !ok {
		return nil, &MissingInjectableAnnotationError{ServiceIdentifier: id}
	}
	container.Bind(id).To(ctor)
	return container.localBindings(id), nil
}
