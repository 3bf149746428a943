package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

// Step is one filter invocation.
type Step struct {
	Filter   string    `json:"filter"`
	Args     Arguments `json:"args,omitempty"`
	Disabled bool      `json:"disabled,omitempty"`
}

// Pipeline is an ordered list of steps resolved against a registry.
type Pipeline struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`

	reg *Registry
}

// New returns an empty pipeline whose filters come from reg.
func New(name string, reg *Registry) *Pipeline {
	return &Pipeline{Name: name, reg: reg}
}

// Parse decodes a pipeline from JSON. Every step must name a filter in reg.
func Parse(data []byte, reg *Registry) (*Pipeline, error) {
	p := New("", reg)
	if err := json.Unmarshal(data, p); err != nil {
		return nil, result.Wrap(CodeParse, err, "parsing pipeline")
	}
	for i, s := range p.Steps {
		if _, ok := reg.Lookup(s.Filter); !ok {
			return nil, result.New(CodeUnknownFilter, "step %d: unknown filter %q", i, s.Filter)
		}
	}
	return p, nil
}

// Add appends a step.
func (p *Pipeline) Add(filter string, args Arguments) error {
	if _, ok := p.reg.Lookup(filter); !ok {
		return result.New(CodeUnknownFilter, "unknown filter %q", filter)
	}
	p.Steps = append(p.Steps, Step{Filter: filter, Args: args})
	return nil
}

// JSON encodes the pipeline.
func (p *Pipeline) JSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Option configures Preflight and Execute.
type Option func(*options)

type options struct {
	logger logr.Logger
}

// WithLogger sets the logger handed to filters through their context.
func WithLogger(l logr.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

type pipelineKey struct{}

// FromContext returns the pipeline running the calling filter.
func FromContext(ctx context.Context) (*Pipeline, bool) {
	p, ok := ctx.Value(pipelineKey{}).(*Pipeline)
	return p, ok
}

func (p *Pipeline) context(ctx context.Context, opts []Option) context.Context {
	o := &options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	ctx = logr.NewContext(ctx, o.logger.WithValues("pipeline", p.Name))
	return context.WithValue(ctx, pipelineKey{}, p)
}

// Preflight runs every enabled step's preflight against a clone of g,
// applying each step's actions before the next step sees the clone. It
// returns the clone, which shows the structure Execute would produce.
func (p *Pipeline) Preflight(ctx context.Context, g *graph.Graph, opts ...Option) (*graph.Graph, result.Warnings, error) {
	ctx = p.context(ctx, opts)
	return p.preflight(ctx, g)
}

func (p *Pipeline) preflight(ctx context.Context, g *graph.Graph) (*graph.Graph, result.Warnings, error) {
	log := logr.FromContextOrDiscard(ctx)
	clone := g.Clone()
	var warnings result.Warnings
	for i, s := range p.Steps {
		if s.Disabled {
			continue
		}
		if err := result.Canceled(ctx); err != nil {
			return nil, warnings, err
		}
		f, ok := p.reg.Lookup(s.Filter)
		if !ok {
			return nil, warnings, result.New(CodeUnknownFilter, "step %d: unknown filter %q", i, s.Filter)
		}
		acts, err := f.Preflight(ctx, clone, s.Args)
		if err != nil {
			return nil, warnings, fmt.Errorf("preflight step %d (%s): %w", i, s.Filter, err)
		}
		warnings.Merge(acts.Warnings)
		if err := acts.Apply(ctx, clone, ModePreflight); err != nil {
			return nil, warnings, fmt.Errorf("preflight step %d (%s): %w", i, s.Filter, err)
		}
		log.V(1).Info("preflighted step", "step", i, "filter", s.Filter, "actions", len(acts.Actions))
	}
	return clone, warnings, nil
}

// Execute preflights the whole pipeline, then runs every enabled step
// against g. A failed preflight leaves g untouched.
func (p *Pipeline) Execute(ctx context.Context, g *graph.Graph, opts ...Option) (result.Warnings, error) {
	ctx = p.context(ctx, opts)
	log := logr.FromContextOrDiscard(ctx)
	_, warnings, err := p.preflight(ctx, g)
	if err != nil {
		return warnings, err
	}
	for i, s := range p.Steps {
		if s.Disabled {
			continue
		}
		if err := result.Canceled(ctx); err != nil {
			return warnings, err
		}
		f, _ := p.reg.Lookup(s.Filter)
		if err := f.Execute(ctx, g, s.Args); err != nil {
			return warnings, fmt.Errorf("step %d (%s): %w", i, s.Filter, err)
		}
		log.Info("executed step", "step", i, "filter", s.Filter)
	}
	return warnings, nil
}
