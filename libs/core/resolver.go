package core

import (
	"fmt"
	"reflect"
)

// resolveContext walks a completed plan depth-first and materializes the
// root value, applying scope rules and activation hooks on the way up.
func resolveContext(ctx *Context) (interface{}, error) {
	return resolveRequest(ctx.Plan.RootRequest)
}

func resolveRequest(req *Request) (interface{}, error) {
	// Multi-injection nodes fan out into one sub-request per matched
	// binding; results keep the planner's match order.
	if req.Target != nil && req.Target.IsMultiInject() && len(req.Bindings) == 0 {
		results := make([]interface{}, 0, len(req.ChildRequests))
		for _, child := range req.ChildRequests {
			value, err := resolveRequest(child)
			if err != nil {
				return nil, err
			}
			results = append(results, value)
		}
		return results, nil
	}

	if len(req.Bindings) == 0 {
		if req.Target != nil && req.Target.IsOptional() {
			return nil, nil
		}
		return nil, &NotRegisteredError{ServiceIdentifier: req.ServiceIdentifier, Chain: req.identifierChain()}
	}

	return resolveBinding(req, req.Bindings[0])
}

func resolveBinding(req *Request, binding *Binding) (interface{}, error) {
	ctx := req.ParentContext

	// Scope check precedes construction. Singleton population holds the
	// binding's cache lock across construction so concurrent resolutions
	// agree on one instance; the planner's cycle detection guarantees a
	// binding never resolves itself, so the lock cannot re-enter.
	if binding.Scope == SingletonScope {
		binding.cacheMu.Lock()
		defer binding.cacheMu.Unlock()
		if binding.Activated {
			return binding.Cache, nil
		}
	}
	if binding.Scope == RequestScope {
		if cached, ok := ctx.requestScopeGet(binding.ID); ok {
			return cached, nil
		}
	}

	var result interface{}
	var err error

	switch binding.Type {
	case BindingConstantValue:
		result = binding.Cache
	case BindingDynamicValue:
		result, err = binding.DynamicValue(ctx)
	case BindingFactory:
		result = binding.FactoryCreator(ctx)
	case BindingProvider:
		result = binding.ProviderCreator(ctx)
	case BindingInstance:
		result, err = resolveInstance(req, binding)
	default:
		err = &InvalidBindingError{
			ServiceIdentifier: binding.ServiceIdentifier,
			Reason:            "binding was never assigned a production strategy",
		}
	}
	if err != nil {
		return nil, err
	}

	if binding.OnActivation != nil {
		result, err = binding.OnActivation(ctx, result)
		if err != nil {
			return nil, err
		}
	}

	// Factory and provider bindings resolve to producers that defer
	// construction to call time; the producer itself is never cached.
	if binding.Type == BindingFactory || binding.Type == BindingProvider {
		return result, nil
	}

	switch binding.Scope {
	case SingletonScope:
		binding.Cache = result
		binding.Activated = true
	case RequestScope:
		ctx.requestScopeSet(binding.ID, result)
	}

	return result, nil
}

// resolveInstance resolves every dependency of an instance binding, then
// invokes its constructor with the arguments in declared order
func resolveInstance(req *Request, binding *Binding) (interface{}, error) {
	args := make([]interface{}, 0, len(req.ChildRequests))
	for _, child := range req.ChildRequests {
		value, err := resolveRequest(child)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return invokeConstructor(binding.ServiceIdentifier, binding.ImplementationType, args)
}

func invokeConstructor(id ServiceIdentifier, ctor interface{}, args []interface{}) (interface{}, error) {
	fnValue := reflect.ValueOf(ctor)
	fnType := fnValue.Type()

	if len(args) != fnType.NumIn() {
		return nil, &InvalidBindingError{
			ServiceIdentifier: id,
			Reason:            fmt.Sprintf("constructor expects %d arguments, resolver produced %d", fnType.NumIn(), len(args)),
		}
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		value, err := constructorArg(fnType.In(i), arg)
		if err != nil {
			return nil, &ResolutionError{ServiceIdentifier: id, Cause: err}
		}
		in[i] = value
	}

	out := fnValue.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, &ResolutionError{ServiceIdentifier: id, Cause: out[1].Interface().(error)}
	}
	return out[0].Interface(), nil
}

// constructorArg adapts a resolved value to the declared parameter type;
// multi-injection results arrive as []interface{} and are rebuilt as the
// declared slice type
func constructorArg(paramType reflect.Type, value interface{}) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(paramType), nil
	}

	if values, ok := value.([]interface{}); ok && paramType.Kind() == reflect.Slice && paramType != reflect.TypeOf(values) {
		slice := reflect.MakeSlice(paramType, 0, len(values))
		for _, element := range values {
			if element == nil {
				slice = reflect.Append(slice, reflect.Zero(paramType.Elem()))
				continue
			}
			ev := reflect.ValueOf(element)
			if !ev.Type().AssignableTo(paramType.Elem()) {
				return reflect.Value{}, fmt.Errorf("resolved element type %v is not assignable to %v", ev.Type(), paramType.Elem())
			}
			slice = reflect.Append(slice, ev)
		}
		return slice, nil
	}

	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(paramType) {
		return reflect.Value{}, fmt.Errorf("resolved value type %v is not assignable to parameter type %v", rv.Type(), paramType)
	}
	return rv, nil
}
