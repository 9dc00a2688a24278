package scenario

import (
	"github.com/funvibe/overload/internal/typesystem"
)

// Result is the outcome of evaluating one Case.
type Result struct {
	Case *Case

	// KindResolve
	Got   typesystem.Type // nil when resolution failed
	Err   error
	Steps []typesystem.Step

	// KindAssign
	Assignable bool

	// OK is true when the outcome matches the expectation.
	OK bool
}

// Outcome renders what happened, independent of the expectation.
func (r *Result) Outcome() string {
	if r.Case.Kind == KindAssign {
		if r.Assignable {
			return "assignable"
		}
		return "not assignable"
	}
	if r.Err != nil {
		return "fail: " + r.Err.Error()
	}
	return r.Got.String()
}

// Expected renders the expectation of the case.
func (c *Case) Expected() string {
	if c.Kind == KindAssign {
		if c.ExpectAssignable {
			return "assignable"
		}
		return "not assignable"
	}
	if c.ExpectFail {
		return "fail"
	}
	return c.Expect.String()
}

// Evaluate runs a single case.
func Evaluate(c *Case) Result {
	r := Result{Case: c}
	switch c.Kind {
	case KindAssign:
		r.Assignable = typesystem.IsAssignable(c.Value, c.Target)
		r.OK = r.Assignable == c.ExpectAssignable
	default:
		r.Steps, r.Got, r.Err = typesystem.ResolveTrace(c.Callee, c.Args)
		if c.ExpectFail {
			r.OK = r.Err != nil
		} else {
			r.OK = r.Err == nil && typesystem.Identical(r.Got, c.Expect)
		}
	}
	return r
}

// Run evaluates every case of the scenario in order.
func (s *Scenario) Run() []Result {
	results := make([]Result, 0, len(s.Cases))
	for i := range s.Cases {
		results = append(results, Evaluate(&s.Cases[i]))
	}
	return results
}

// Summary counts passed and failed results.
func Summary(results []Result) (passed, failed int) {
	for _, r := range results {
		if r.OK {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}
