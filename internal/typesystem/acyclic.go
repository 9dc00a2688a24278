package typesystem

import (
	"fmt"
	"strings"
)

// CycleError reports a type graph that refers back to itself.
type CycleError struct {
	Path []string // variant names from the root to the repeated node
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic type graph: %s", strings.Join(e.Path, " -> "))
}

// CheckAcyclic verifies the precondition that t is a finite acyclic graph.
// Shared (aliased) members are fine; only a node reachable from itself is an
// error. Values built with the constructors of this package cannot be cyclic
// unless a TFunc field was reassigned after construction.
func CheckAcyclic(t Type) error {
	return checkAcyclic(t, make(map[Type]bool), make(map[Type]bool), nil)
}

func checkAcyclic(t Type, onPath, done map[Type]bool, path []string) error {
	if _, ok := t.(TCon); ok {
		return nil
	}
	if t == nil {
		return fmt.Errorf("nil type at %s", strings.Join(path, " -> "))
	}
	path = append(path, variantName(t))
	if onPath[t] {
		return &CycleError{Path: path}
	}
	if done[t] {
		return nil
	}
	onPath[t] = true
	var children []Type
	switch typ := t.(type) {
	case *TFunc:
		children = []Type{typ.Param, typ.Result}
	case *TUnion:
		children = typ.types
	case *TIntersection:
		children = typ.types
	default:
		panic(unknownVariant(t))
	}
	for _, child := range children {
		if err := checkAcyclic(child, onPath, done, path); err != nil {
			return err
		}
	}
	delete(onPath, t)
	done[t] = true
	return nil
}

func variantName(t Type) string {
	switch t.(type) {
	case TCon:
		return "nominal"
	case *TFunc:
		return "func"
	case *TUnion:
		return "union"
	case *TIntersection:
		return "intersection"
	default:
		panic(unknownVariant(t))
	}
}
