package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/forge-labs/forge/internal/logging"
)

// Pipeline is an ordered list of steps.
type Pipeline struct {
	steps []Step
	log   *logging.Logger
}

// New returns an empty pipeline. A nil logger discards output.
func New(log *logging.Logger) *Pipeline {
	if log == nil {
		log = logging.Discard()
	}
	return &Pipeline{log: log}
}

// AddStep appends steps unconditionally.
func (p *Pipeline) AddStep(steps ...Step) *Pipeline {
	p.steps = append(p.steps, steps...)
	return p
}

// AddStepIf appends steps only when cond holds. The flag must be known at
// assembly time; steps never check it themselves.
func (p *Pipeline) AddStepIf(cond bool, steps ...Step) *Pipeline {
	if cond {
		p.steps = append(p.steps, steps...)
	}
	return p
}

// Steps returns the names of the assembled steps in execution order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}
	return names
}

// Flow runs every step in order, replacing the working Context with each
// step's result. The first failing step stops the run; later steps never
// execute and nothing already done is undone.
func (p *Pipeline) Flow(ctx context.Context, c *Context) (*Context, error) {
	if c == nil {
		return nil, fmt.Errorf("pipeline: initial context is nil")
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("pipeline: invalid context: %w", err)
	}

	current := c
	for i, step := range p.steps {
		if step == nil {
			return current, &StepError{Step: "<nil>", Index: i, Err: fmt.Errorf("step is nil")}
		}

		p.log.Trace("Running step", "step", step.Name(), "index", i+1, "of", len(p.steps))
		started := time.Now()

		next, err := step.Flow(ctx, current)
		if err != nil {
			p.log.Error("Step failed", "step", step.Name(), "error", err)
			return current, &StepError{Step: step.Name(), Index: i, Err: err}
		}
		if next == nil {
			return current, &StepError{Step: step.Name(), Index: i, Err: fmt.Errorf("step returned a nil context")}
		}

		p.log.Debug("Step finished", "step", step.Name(), "duration", time.Since(started).Round(time.Millisecond))
		current = next
	}
	return current, nil
}
