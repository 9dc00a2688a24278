package typesystem

// ReturnFn maps an argument type to the result of applying a callee to it.
type ReturnFn func(arg Type) (Type, error)

// ParameterType returns the type an argument must satisfy to call t.
//
//   - a -> r: a
//   - union of functions: the intersection of their parameters, since the
//     caller cannot know which alternative will run
//   - intersection of functions: the union of their parameters, since one
//     matching alternative is enough
func ParameterType(t Type) (Type, error) {
	f, err := EnsureInvocable(t)
	if err != nil {
		return nil, err
	}
	switch typ := f.(type) {
	case *TFunc:
		return typ.Param, nil
	case *TUnion:
		return NewIntersection(params(typ.types)...), nil
	case *TIntersection:
		return NewUnion(params(typ.types)...), nil
	case TCon:
		// EnsureInvocable never yields a nominal type.
		return nil, newResolutionError(NotInvocable, t, nil)
	default:
		panic(unknownVariant(f))
	}
}

// ReturnTypeFn returns the function computing the result of applying t.
//
//   - a -> r: r when the argument is assignable to a
//   - union of functions: the union of all results, when the argument
//     satisfies every alternative
//   - intersection of functions: the union of the results of the members
//     that accept the argument (overload narrowing)
func ReturnTypeFn(t Type) (ReturnFn, error) {
	f, err := EnsureInvocable(t)
	if err != nil {
		return nil, err
	}
	switch typ := f.(type) {
	case *TFunc:
		return func(arg Type) (Type, error) {
			if !IsAssignable(arg, typ.Param) {
				return nil, newResolutionError(ArgumentMismatch, typ, arg)
			}
			return typ.Result, nil
		}, nil

	case *TUnion:
		param := NewIntersection(params(typ.types)...)
		result := NewUnion(results(typ.types)...)
		return func(arg Type) (Type, error) {
			if !IsAssignable(arg, param) {
				return nil, newResolutionError(ArgumentMismatch, typ, arg)
			}
			return result, nil
		}, nil

	case *TIntersection:
		funcs := asFuncs(typ.types)
		return func(arg Type) (Type, error) {
			var candidates []Type
			for _, fn := range funcs {
				if IsAssignable(arg, fn.Param) {
					candidates = append(candidates, fn.Result)
				}
			}
			if len(candidates) == 0 {
				return nil, newResolutionError(NoOverload, typ, arg)
			}
			return NewUnion(candidates...), nil
		}, nil

	case TCon:
		return nil, newResolutionError(NotInvocable, t, nil)
	default:
		panic(unknownVariant(f))
	}
}

// asFuncs narrows the members of an invocable algebraic type. Flattening
// guarantees such members are all functions.
func asFuncs(types []Type) []*TFunc {
	funcs := make([]*TFunc, 0, len(types))
	for _, t := range types {
		fn, ok := t.(*TFunc)
		if !ok {
			panic("typesystem: invocable algebraic member is not a function: " + t.String())
		}
		funcs = append(funcs, fn)
	}
	return funcs
}

func params(types []Type) []Type {
	funcs := asFuncs(types)
	out := make([]Type, len(funcs))
	for i, fn := range funcs {
		out[i] = fn.Param
	}
	return out
}

func results(types []Type) []Type {
	funcs := asFuncs(types)
	out := make([]Type, len(funcs))
	for i, fn := range funcs {
		out[i] = fn.Result
	}
	return out
}
