package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/overload/internal/config"
)

// Type is the interface for all types in the algebra.
//
// The set of implementations is closed: TCon, *TUnion, *TIntersection and
// *TFunc. Every switch over a Type handles all four and panics on anything
// else, so a new variant cannot slip through a dispatch site unnoticed.
//
// Type graphs must be finite and acyclic. Nothing in this package detects
// cycles during assignability or resolution; use CheckAcyclic on values that
// come from untrusted construction.
type Type interface {
	String() string
	isType()
}

// TCon represents a nominal type (e.g. 'a', 'Int').
// Two nominal types are the same type iff their names match.
type TCon struct {
	Name string
}

func (t TCon) isType() {}

func (t TCon) String() string { return t.Name }

// Nominal returns the nominal type with the given name.
func Nominal(name string) TCon {
	return TCon{Name: name}
}

// Any is the dynamic marker. It is assignable to every target.
var Any = TCon{Name: config.AnyTypeName}

// IsAny reports whether t is the dynamic marker.
func IsAny(t Type) bool {
	c, ok := t.(TCon)
	return ok && c.Name == config.AnyTypeName
}

// TUnion represents a union type (e.g. a | b | c).
// Members are flattened and deduplicated at construction, see NewUnion.
type TUnion struct {
	types []Type
}

func (t *TUnion) isType() {}

// Members returns the flattened, deduplicated member list. The slice must not be modified.
func (t *TUnion) Members() []Type { return t.types }

func (t *TUnion) String() string { return joinMembers(t.types, " | ") }

// TIntersection represents an intersection type (e.g. a & b).
// Members are flattened and deduplicated at construction, see NewIntersection.
type TIntersection struct {
	types []Type
}

func (t *TIntersection) isType() {}

// Members returns the flattened, deduplicated member list. The slice must not be modified.
func (t *TIntersection) Members() []Type { return t.types }

func (t *TIntersection) String() string { return joinMembers(t.types, " & ") }

// TFunc represents a single-parameter function type (e.g. a -> b).
// Functions of higher arity are curried, see Curry.
type TFunc struct {
	Param  Type
	Result Type
}

func (t *TFunc) isType() {}

func (t *TFunc) String() string {
	return fmt.Sprintf("%s -> %s", operand(t.Param, true), operand(t.Result, false))
}

// NewFunc creates the function type param -> result.
func NewFunc(param, result Type) *TFunc {
	return &TFunc{Param: param, Result: result}
}

// Curry right-folds its arguments into a chain of single-parameter functions.
// The last argument is the final result type:
//
//	Curry(a, b, c) == a -> (b -> c)
//
// With a single argument that argument is returned unchanged.
func Curry(types ...Type) Type {
	if len(types) == 0 {
		panic("typesystem.Curry: at least a result type is required")
	}
	head := types[len(types)-1]
	for i := len(types) - 2; i >= 0; i-- {
		head = NewFunc(types[i], head)
	}
	return head
}

// members returns the members of an algebraic type, and false for anything else.
func members(t Type) ([]Type, bool) {
	switch typ := t.(type) {
	case *TUnion:
		return typ.types, true
	case *TIntersection:
		return typ.types, true
	case TCon, *TFunc:
		return nil, false
	default:
		panic(unknownVariant(t))
	}
}

func joinMembers(types []Type, sep string) string {
	if len(types) == 0 {
		if sep == " | " {
			return "never"
		}
		return "unknown"
	}
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, operand(t, true))
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// operand renders t for use inside a larger type expression.
// Functions need parentheses on the left of an arrow and inside unions/intersections.
func operand(t Type, parenFunc bool) string {
	if f, ok := t.(*TFunc); ok && parenFunc {
		return "(" + f.String() + ")"
	}
	return t.String()
}

func unknownVariant(t Type) string {
	return fmt.Sprintf("typesystem: unknown type variant %T", t)
}
