package typesystem

import (
	"errors"
	"testing"
)

func TestCheckAcyclic(t *testing.T) {
	shared := NewFunc(a, b)
	if err := CheckAcyclic(NewUnion(shared, NewFunc(shared, shared))); err != nil {
		t.Errorf("shared members reported as cycle: %v", err)
	}
	if err := CheckAcyclic(overloadedF()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	loop := NewFunc(a, b)
	loop.Result = NewUnion(c, loop)
	err := CheckAcyclic(loop)
	var cerr *CycleError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *CycleError", err)
	}
	if got := cerr.Error(); got != "cyclic type graph: func -> union -> func" {
		t.Errorf("Error() = %q", got)
	}
}
