package typesystem

// IsAssignable reports whether a value of type value may be used where target
// is expected. The relation is directional. Rules are tried in order and the
// first that applies decides:
//
//  1. value is Any: true.
//  2. both invocable: target's parameter sequence is unwound (see
//     parameterChain) and value must resolve against it.
//  3. target is an intersection: value is assignable to every member.
//  4. target is a union: value is assignable to some member.
//  5. value is an intersection: some member is assignable to target.
//  6. value is a union: every member is assignable to target.
//  7. both nominal: names are equal.
//
// Any is only special as a value; as a target it is an ordinary nominal type.
func IsAssignable(value, target Type) bool {
	if IsAny(value) {
		return true
	}

	if IsInvocable(value) && IsInvocable(target) {
		_, err := Resolve(value, parameterChain(target))
		return err == nil
	}

	switch t := target.(type) {
	case *TIntersection:
		for _, member := range t.types {
			if !IsAssignable(value, member) {
				return false
			}
		}
		return true
	case *TUnion:
		for _, member := range t.types {
			if IsAssignable(value, member) {
				return true
			}
		}
		return false
	case TCon, *TFunc:
	default:
		panic(unknownVariant(target))
	}

	switch v := value.(type) {
	case *TIntersection:
		for _, member := range v.types {
			if IsAssignable(member, target) {
				return true
			}
		}
		return false
	case *TUnion:
		for _, member := range v.types {
			if !IsAssignable(member, target) {
				return false
			}
		}
		return true
	case TCon:
		t, ok := target.(TCon)
		return ok && v.Name == t.Name
	case *TFunc:
		// A function against a nominal target.
		return false
	default:
		panic(unknownVariant(value))
	}
}

// parameterChain lists the successive parameter types of an invocable by
// applying Any until the residual is no longer invocable. Any is accepted by
// every parameter, so the walk only stops at the end of the curry chain.
//
// An empty union or intersection has no parameters of its own and applying it
// yields another empty algebraic value, so the walk stops there instead of
// looping.
func parameterChain(t Type) []Type {
	var chain []Type
	for IsInvocable(t) {
		if ms, ok := members(t); ok && len(ms) == 0 {
			break
		}
		param, err := ParameterType(t)
		if err != nil {
			break
		}
		apply, err := ReturnTypeFn(t)
		if err != nil {
			break
		}
		chain = append(chain, param)
		if t, err = apply(Any); err != nil {
			break
		}
	}
	return chain
}
