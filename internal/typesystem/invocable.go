package typesystem

// IsInvocable reports whether t can act as a function: t is a TFunc, or a
// union or intersection all of whose members are invocable.
// An empty union or intersection is vacuously invocable.
func IsInvocable(t Type) bool {
	switch typ := t.(type) {
	case *TFunc:
		return true
	case TCon:
		return false
	case *TUnion:
		return allInvocable(typ.types)
	case *TIntersection:
		return allInvocable(typ.types)
	default:
		panic(unknownVariant(t))
	}
}

func allInvocable(types []Type) bool {
	for _, t := range types {
		if !IsInvocable(t) {
			return false
		}
	}
	return true
}

// EnsureInvocable returns t in canonical callable form, or a NotInvocable
// error. A union or intersection with exactly one member is unwrapped to that
// member.
func EnsureInvocable(t Type) (Type, error) {
	if !IsInvocable(t) {
		return nil, newResolutionError(NotInvocable, t, nil)
	}
	if ms, ok := members(t); ok && len(ms) == 1 {
		return ms[0], nil
	}
	return t, nil
}
