// Package report renders resolution and scenario results for a terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/funvibe/overload/internal/config"
	"github.com/funvibe/overload/internal/history"
	"github.com/funvibe/overload/internal/scenario"
	"github.com/funvibe/overload/internal/typesystem"
)

// Printer writes human-readable reports.
type Printer struct {
	w       io.Writer
	color   bool
	Verbose bool // print the resolution trace of every check, not only failing ones
}

// NewPrinter creates a printer for w. With ColorAuto, colors are used only
// when w is a terminal and NO_COLOR is unset.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	return &Printer{w: w, color: useColor(w, mode)}
}

// Call renders a call expression, e.g. f(a, (b | c)).
func Call(callee typesystem.Type, args []typesystem.Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	name := callee.String()
	if _, ok := callee.(*typesystem.TFunc); ok {
		name = "(" + name + ")"
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

// Resolution prints a single resolve outcome.
func (p *Printer) Resolution(callee typesystem.Type, args []typesystem.Type, result typesystem.Type, err error) {
	call := Call(callee, args)
	if err != nil {
		fmt.Fprintf(p.w, "%s => %s\n", call, p.fg(fgRed, "error: "+err.Error()))
		return
	}
	fmt.Fprintf(p.w, "%s => %s\n", call, p.fg(fgCyan, result.String()))
}

// Scenario prints the results of one scenario followed by its summary line.
func (p *Printer) Scenario(sc *scenario.Scenario, results []scenario.Result) {
	header := sc.Name
	if sc.Name != sc.Path {
		header += p.dim(" (" + sc.Path + ")")
	}
	fmt.Fprintln(p.w, p.bold(header))

	for i := range results {
		p.result(&results[i])
	}

	passed, failed := scenario.Summary(results)
	summary := fmt.Sprintf("%d passed, %d failed", passed, failed)
	if failed > 0 {
		summary = p.fg(fgRed, summary)
	} else {
		summary = p.fg(fgGreen, summary)
	}
	fmt.Fprintln(p.w, summary)
}

func (p *Printer) result(r *scenario.Result) {
	status := p.fg(fgGreen, "PASS")
	if !r.OK {
		status = p.fg(fgRed, "FAIL")
	}
	fmt.Fprintf(p.w, "  %s  %s\n", status, r.Case.DisplayName())

	c := r.Case
	var subject string
	if c.Kind == scenario.KindAssign {
		subject = fmt.Sprintf("%s := %s", c.Target, c.Value)
	} else {
		subject = Call(c.Callee, c.Args)
	}
	fmt.Fprintf(p.w, "        %s => %s\n", subject, r.Outcome())
	if !r.OK {
		fmt.Fprintf(p.w, "        %s\n", p.fg(fgRed, "want "+c.Expected()))
	}

	if c.Kind == scenario.KindResolve && (p.Verbose || !r.OK) {
		for i, s := range r.Steps {
			line := fmt.Sprintf("step %d: %s applied to %s => ", i+1, s.Callee, s.Argument)
			if s.Err != nil {
				line += s.Err.Error()
			} else {
				line += s.Result.String()
			}
			fmt.Fprintf(p.w, "        %s\n", p.dim(line))
		}
	}
}

// Runs prints recorded runs, one per line.
func (p *Printer) Runs(runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(p.w, "no recorded runs")
		return
	}
	for _, run := range runs {
		id, when := run.ID, run.StartedAt.Format(time.RFC3339)
		if config.IsTestMode {
			id, when = "<id>", "<time>"
		}
		status := p.fg(fgGreen, "ok")
		if run.Failed > 0 {
			status = p.fg(fgRed, "failed")
		}
		fmt.Fprintf(p.w, "%s  %s  %-6s %3d passed %3d failed  %s\n",
			p.dim(id), when, status, run.Passed, run.Failed, run.Scenario)
	}
}

// Entries prints the recorded checks of one run.
func (p *Printer) Entries(entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.w, "no recorded checks")
		return
	}
	for _, e := range entries {
		status := p.fg(fgGreen, "PASS")
		if !e.OK {
			status = p.fg(fgRed, "FAIL")
		}
		fmt.Fprintf(p.w, "  %s  %s\n        %s => %s\n", status, e.Name, e.Kind, e.Outcome)
	}
}
