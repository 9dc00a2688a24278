package report

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/funvibe/overload/internal/config"
	"github.com/funvibe/overload/internal/history"
	"github.com/funvibe/overload/internal/scenario"
	"github.com/funvibe/overload/internal/typesystem"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"", ColorAuto, false},
		{"auto", ColorAuto, false},
		{"always", ColorAlways, false},
		{"never", ColorNever, false},
		{"sometimes", ColorAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColorMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColorMode(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	if useColor(&buf, ColorAuto) {
		t.Error("a buffer is not a terminal")
	}
	if !useColor(&buf, ColorAlways) {
		t.Error("always should force color")
	}
	if useColor(os.Stdout, ColorNever) {
		t.Error("never should disable color")
	}

	t.Setenv(config.NoColorEnv, "1")
	if useColor(os.Stdout, ColorAuto) {
		t.Error("NO_COLOR should disable color")
	}
}

func TestCall(t *testing.T) {
	a, b := typesystem.Nominal("a"), typesystem.Nominal("b")
	tests := []struct {
		callee typesystem.Type
		args   []typesystem.Type
		want   string
	}{
		{a, nil, "a()"},
		{typesystem.NewFunc(a, b), []typesystem.Type{a}, "(a -> b)(a)"},
		{typesystem.NewFunc(typesystem.NewFunc(a, b), b), nil, "((a -> b) -> b)()"},
		{typesystem.NewIntersection(typesystem.NewFunc(a, b), typesystem.NewFunc(b, a)),
			[]typesystem.Type{typesystem.NewUnion(a, b), b},
			"((a -> b) & (b -> a))((a | b), b)"},
	}
	for _, tt := range tests {
		if got := Call(tt.callee, tt.args); got != tt.want {
			t.Errorf("Call() = %q, want %q", got, tt.want)
		}
	}
}

func TestResolution(t *testing.T) {
	a, b := typesystem.Nominal("a"), typesystem.Nominal("b")
	fn := typesystem.NewFunc(a, b)

	var out bytes.Buffer
	p := NewPrinter(&out, ColorNever)
	p.Resolution(fn, []typesystem.Type{a}, b, nil)
	p.Resolution(fn, []typesystem.Type{b}, nil, errors.New("boom"))

	want := "(a -> b)(a) => b\n(a -> b)(b) => error: boom\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestScenario(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
name: demo
checks:
  - name: ok
    resolve: {func: [a, b]}
    args: [a]
    expect: b
  - name: bad
    resolve: {func: [a, b]}
    args: [c]
    expect: b
`), "demo.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var out bytes.Buffer
	p := NewPrinter(&out, ColorNever)
	p.Scenario(sc, sc.Run())

	want := strings.Join([]string{
		"demo (demo.yaml)",
		"  PASS  ok",
		"        (a -> b)(a) => b",
		"  FAIL  bad",
		"        (a -> b)(c) => fail: argument not assignable: cannot apply a -> b to c",
		"        want b",
		"        step 1: a -> b applied to c => argument not assignable: cannot apply a -> b to c",
		"1 passed, 1 failed",
		"",
	}, "\n")
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestScenarioColor(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
checks:
  - assign: {value: a, target: a}
    expect: true
`), "c.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var out bytes.Buffer
	NewPrinter(&out, ColorAlways).Scenario(sc, sc.Run())
	if !strings.Contains(out.String(), "\033[32mPASS\033[39m") {
		t.Errorf("expected green PASS in %q", out.String())
	}
	if !strings.Contains(out.String(), "a := a => assignable") {
		t.Errorf("missing assign line in %q", out.String())
	}
}

func TestRuns(t *testing.T) {
	old := config.IsTestMode
	config.IsTestMode = true
	defer func() { config.IsTestMode = old }()

	var out bytes.Buffer
	p := NewPrinter(&out, ColorNever)
	p.Runs(nil)
	p.Runs([]history.Run{
		{ID: "x", Scenario: "s1", StartedAt: time.Now(), Passed: 2},
		{ID: "y", Scenario: "s2", StartedAt: time.Now(), Passed: 1, Failed: 1},
	})

	want := "no recorded runs\n" +
		"<id>  <time>  ok       2 passed   0 failed  s1\n" +
		"<id>  <time>  failed   1 passed   1 failed  s2\n"
	if out.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestEntries(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, ColorNever)
	p.Entries(nil)
	p.Entries([]history.Entry{
		{Index: 0, Name: "#1 resolve", Kind: "resolve", Outcome: "b", OK: true},
		{Index: 1, Name: "wrong", Kind: "assign", Outcome: "not assignable"},
	})

	want := "no recorded checks\n" +
		"  PASS  #1 resolve\n        resolve => b\n" +
		"  FAIL  wrong\n        assign => not assignable\n"
	if out.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", out.String(), want)
	}
}
