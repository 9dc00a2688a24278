package typesystem_test

import (
	"fmt"

	"github.com/funvibe/overload/internal/typesystem"
)

func ExampleResolve() {
	n := typesystem.Nominal
	// f: ((a, b, c | d | e) => f) & ((g, h) => i)
	f := typesystem.NewIntersection(
		typesystem.Curry(n("a"), n("b"), typesystem.NewUnion(n("c"), n("d"), n("e")), n("f")),
		typesystem.Curry(n("g"), n("h"), n("i")),
	)

	calls := [][]typesystem.Type{
		{n("a"), n("h")},
		{n("a"), typesystem.NewIntersection(n("b"), n("x")), n("d")},
		{typesystem.NewUnion(n("a"), n("g")), typesystem.NewUnion(n("b"), n("h"))},
	}
	for _, args := range calls {
		result, err := typesystem.Resolve(f, args)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(result)
	}
	// Output:
	// error: argument not assignable: cannot apply b -> (c | d | e) -> f to h
	// f
	// error: no overload matches: cannot apply ((a -> b -> (c | d | e) -> f) & (g -> h -> i)) to (a | g)
}

func ExampleIsAssignable() {
	a, b := typesystem.Nominal("a"), typesystem.Nominal("b")
	fmt.Println(typesystem.IsAssignable(a, a))
	fmt.Println(typesystem.IsAssignable(a, b))
	fmt.Println(typesystem.IsAssignable(typesystem.Any, b))
	fmt.Println(typesystem.IsAssignable(a, typesystem.Any))
	// Output:
	// true
	// false
	// true
	// false
}
