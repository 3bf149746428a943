// Package pipeline runs ordered filters over a graph.
//
// A filter is called twice. Preflight describes the structural changes the
// filter intends as OutputActions without touching the graph's data;
// Execute performs the work on the live graph. A Pipeline preflights every
// step against a clone of the graph before executing any of them, so a
// pipeline that would fail structurally fails before data is changed.
package pipeline

import (
	"context"

	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

// Error codes.
const (
	CodeUnknownFilter result.Code = -9001
	CodeArgument      result.Code = -9002
	CodeAction        result.Code = -9003
	CodeParse         result.Code = -9004
)

// Filter is one step of a pipeline.
type Filter interface {
	// Name is the identifier the filter is registered and serialized
	// under.
	Name() string

	// Preflight reports what Execute would change. It must not modify g.
	Preflight(ctx context.Context, g *graph.Graph, args Arguments) (*OutputActions, error)

	// Execute runs the filter against g.
	Execute(ctx context.Context, g *graph.Graph, args Arguments) error
}

// actionFilter is a filter whose whole effect is its actions.
type actionFilter struct {
	name    string
	actions func(ctx context.Context, g *graph.Graph, args Arguments) (*OutputActions, error)
}

func (f *actionFilter) Name() string { return f.name }

func (f *actionFilter) Preflight(ctx context.Context, g *graph.Graph, args Arguments) (*OutputActions, error) {
	return f.actions(ctx, g, args)
}

func (f *actionFilter) Execute(ctx context.Context, g *graph.Graph, args Arguments) error {
	acts, err := f.actions(ctx, g, args)
	if err != nil {
		return err
	}
	return acts.Apply(ctx, g, ModeExecute)
}
