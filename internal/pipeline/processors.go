package pipeline

import (
	"time"

	"github.com/funvibe/overload/internal/history"
	"github.com/funvibe/overload/internal/report"
	"github.com/funvibe/overload/internal/scenario"
)

// LoadProcessor parses every unit's scenario file.
type LoadProcessor struct{}

func (LoadProcessor) Process(ctx *PipelineContext) *PipelineContext {
	for _, u := range ctx.Units {
		sc, err := scenario.Load(u.Path)
		if err != nil {
			ctx.Errors = append(ctx.Errors, err)
			ctx.Logger.Error("load failed", "path", u.Path, "err", err)
			continue
		}
		u.Scenario = sc
		ctx.Logger.Debug("loaded scenario", "path", u.Path, "name", sc.Name, "types", len(sc.Order), "checks", len(sc.Cases))
	}
	return ctx
}

// CheckProcessor evaluates the checks of every loaded unit.
type CheckProcessor struct {
	// Now stamps units with their start time. Defaults to time.Now.
	Now func() time.Time
}

func (p CheckProcessor) Process(ctx *PipelineContext) *PipelineContext {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	for _, u := range ctx.Units {
		if u.Scenario == nil {
			continue
		}
		u.StartedAt = now()
		u.Results = u.Scenario.Run()
		passed, failed := scenario.Summary(u.Results)
		ctx.Logger.Debug("checked scenario", "name", u.Scenario.Name, "passed", passed, "failed", failed)
	}
	return ctx
}

// ReportProcessor prints the results of every evaluated unit.
type ReportProcessor struct {
	Printer *report.Printer
}

func (p ReportProcessor) Process(ctx *PipelineContext) *PipelineContext {
	for _, u := range ctx.Units {
		if u.Scenario == nil {
			continue
		}
		p.Printer.Scenario(u.Scenario, u.Results)
	}
	return ctx
}

// RecordProcessor stores every evaluated unit in the run history.
type RecordProcessor struct {
	Store *history.Store
}

func (p RecordProcessor) Process(ctx *PipelineContext) *PipelineContext {
	for _, u := range ctx.Units {
		if u.Scenario == nil {
			continue
		}
		run := history.NewRun(u.Scenario, u.Results, u.StartedAt)
		if err := p.Store.Record(ctx.Context, run); err != nil {
			ctx.Errors = append(ctx.Errors, err)
			ctx.Logger.Error("record failed", "scenario", u.Scenario.Name, "err", err)
			continue
		}
		u.RunID = run.ID
		ctx.Logger.Debug("recorded run", "scenario", u.Scenario.Name, "id", run.ID)
	}
	return ctx
}
