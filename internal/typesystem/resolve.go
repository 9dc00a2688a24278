package typesystem

// Resolve applies args to t one at a time and returns the residual type.
// Any failure ends the fold; later arguments are not inspected. With no
// arguments t is returned unchanged, invocable or not. A residual that is
// still invocable means the call was under-saturated.
func Resolve(t Type, args []Type) (Type, error) {
	for _, arg := range args {
		apply, err := ReturnTypeFn(t)
		if err != nil {
			return nil, err
		}
		if t, err = apply(arg); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Step records one application performed by ResolveTrace.
type Step struct {
	Callee   Type
	Argument Type
	Result   Type // nil when Err is set
	Err      error
}

// ResolveTrace is Resolve keeping every intermediate application. The last
// step carries the error when resolution fails.
func ResolveTrace(t Type, args []Type) ([]Step, Type, error) {
	steps := make([]Step, 0, len(args))
	for _, arg := range args {
		step := Step{Callee: t, Argument: arg}
		apply, err := ReturnTypeFn(t)
		if err == nil {
			step.Result, err = apply(arg)
		}
		if err != nil {
			step.Err = err
			return append(steps, step), nil, err
		}
		steps = append(steps, step)
		t = step.Result
	}
	return steps, t, nil
}
