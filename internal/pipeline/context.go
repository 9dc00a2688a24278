package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/funvibe/overload/internal/scenario"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Unit is the state of one scenario file as it moves through the stages.
type Unit struct {
	Path      string
	Scenario  *scenario.Scenario // nil when loading failed
	Results   []scenario.Result
	StartedAt time.Time
	RunID     string // set once recorded
}

// Failed reports whether any check of the unit missed its expectation.
func (u *Unit) Failed() bool {
	_, failed := scenario.Summary(u.Results)
	return failed > 0
}

// PipelineContext carries data between stages.
type PipelineContext struct {
	Context context.Context
	Logger  *slog.Logger
	Units   []*Unit
	Errors  []error
}

// NewPipelineContext creates a context with one unit per scenario path.
func NewPipelineContext(ctx context.Context, logger *slog.Logger, paths ...string) *PipelineContext {
	pc := &PipelineContext{Context: ctx, Logger: logger}
	for _, p := range paths {
		pc.Units = append(pc.Units, &Unit{Path: p})
	}
	return pc
}

// Failed reports whether any stage reported an error or any check failed.
func (c *PipelineContext) Failed() bool {
	if len(c.Errors) > 0 {
		return true
	}
	for _, u := range c.Units {
		if u.Failed() {
			return true
		}
	}
	return false
}
