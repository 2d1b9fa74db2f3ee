package janitor

import (
	"context"
	"fmt"
)

// Transform is a stage applied to a Frame. Implementations must not mutate
// their input; they return a new Frame (Clone or Filter first).
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// StageHook observes the frame produced by each stage.
type StageHook func(stage string, out *Frame)

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps []Transform
	hooks []StageHook
}

func NewPipeline() *Pipeline { return &Pipeline{} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Observe registers a hook called after every stage.
func (p *Pipeline) Observe(h StageHook) *Pipeline {
	p.hooks = append(p.hooks, h)
	return p
}

// Steps returns the stage names in execution order.
func (p *Pipeline) Steps() []string {
	out := make([]string, len(p.steps))
	for i, t := range p.steps {
		out[i] = t.Name()
	}
	return out
}

func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	var err error
	cur := f
	for _, t := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur, err = t.Apply(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
		for _, h := range p.hooks {
			h(t.Name(), cur)
		}
	}
	return cur, nil
}
