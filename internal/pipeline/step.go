package pipeline

import "context"

// Step is one unit of work. Flow performs the step's side effect and returns
// the Context for the next step, usually the same pointer with derived
// fields filled in. A returned error aborts the pipeline.
type Step interface {
	Name() string
	Flow(ctx context.Context, c *Context) (*Context, error)
}

// StepFunc adapts a function to the Step interface.
type StepFunc struct {
	StepName string
	Fn       func(ctx context.Context, c *Context) (*Context, error)
}

func (s StepFunc) Name() string { return s.StepName }

func (s StepFunc) Flow(ctx context.Context, c *Context) (*Context, error) {
	return s.Fn(ctx, c)
}
