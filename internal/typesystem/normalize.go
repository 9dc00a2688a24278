package typesystem

// NewUnion creates a normalized union type.
// It flattens algebraic members (unions and intersections alike) one level
// and removes duplicates, keeping first occurrences in order.
func NewUnion(types ...Type) *TUnion {
	return &TUnion{types: normalizeMembers(types)}
}

// NewIntersection creates a normalized intersection type.
// Normalization is the same as for NewUnion.
func NewIntersection(types ...Type) *TIntersection {
	return &TIntersection{types: normalizeMembers(types)}
}

func normalizeMembers(types []Type) []Type {
	// Flatten nested algebraic types. Members were normalized when they were
	// built, so one level is enough for a transitively flat result.
	flat := make([]Type, 0, len(types))
	for _, t := range types {
		if inner, ok := members(t); ok {
			flat = append(flat, inner...)
		} else {
			flat = append(flat, t)
		}
	}

	unique := make([]Type, 0, len(flat))
	for _, t := range flat {
		dup := false
		for _, u := range unique {
			if sameMember(t, u) {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, t)
		}
	}
	return unique
}

// sameMember is the deduplication policy for algebraic members.
// Nominal types compare by name. Functions, unions and intersections compare
// by identity: two separately built a -> b values are both kept, while the
// same *TFunc listed twice collapses to one. Use Identical for structural
// equality.
func sameMember(x, y Type) bool {
	switch x := x.(type) {
	case TCon:
		y, ok := y.(TCon)
		return ok && x.Name == y.Name
	case *TFunc, *TUnion, *TIntersection:
		return x == y
	default:
		panic(unknownVariant(x))
	}
}

// Identical reports whether x and y are structurally identical types.
// Member order matters for unions and intersections.
func Identical(x, y Type) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	switch x := x.(type) {
	case TCon:
		if y, ok := y.(TCon); ok {
			return x.Name == y.Name
		}
	case *TFunc:
		if y, ok := y.(*TFunc); ok {
			return x == y || (Identical(x.Param, y.Param) && Identical(x.Result, y.Result))
		}
	case *TUnion:
		if y, ok := y.(*TUnion); ok {
			return identicalMembers(x.types, y.types)
		}
	case *TIntersection:
		if y, ok := y.(*TIntersection); ok {
			return identicalMembers(x.types, y.types)
		}
	default:
		panic(unknownVariant(x))
	}
	return false
}

func identicalMembers(xs, ys []Type) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Identical(xs[i], ys[i]) {
			return false
		}
	}
	return true
}
