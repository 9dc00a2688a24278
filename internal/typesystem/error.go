package typesystem

import "fmt"

// FailureReason classifies a ResolutionError.
type FailureReason int

const (
	NotInvocable     FailureReason = iota // callee cannot act as a function
	ArgumentMismatch                      // argument not assignable to the parameter
	NoOverload                            // no member of an intersection accepts the argument
)

func (r FailureReason) String() string {
	switch r {
	case NotInvocable:
		return "not invocable"
	case ArgumentMismatch:
		return "argument not assignable"
	case NoOverload:
		return "no overload matches"
	default:
		return fmt.Sprintf("FailureReason(%d)", int(r))
	}
}

// ResolutionError is the single failure kind of the resolution engine.
// Callee is the type being applied; Argument is nil for NotInvocable.
type ResolutionError struct {
	Reason   FailureReason
	Callee   Type
	Argument Type
}

func (e *ResolutionError) Error() string {
	if e.Argument == nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Callee)
	}
	return fmt.Sprintf("%s: cannot apply %s to %s", e.Reason, e.Callee, e.Argument)
}

func newResolutionError(reason FailureReason, callee, arg Type) *ResolutionError {
	return &ResolutionError{Reason: reason, Callee: callee, Argument: arg}
}
