package dataio

import (
	"github.com/go-logr/logr"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/graph"
)

// Option configures Read and Write.
type Option func(*options)

type options struct {
	logger        logr.Logger
	skipInvalid   bool
	datasetOpts   []container.DatasetOption
	nonImportable map[graph.ID]struct{}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:        logr.Discard(),
		nonImportable: make(map[graph.ID]struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger. Per-node progress is logged at V(1).
func WithLogger(l logr.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSkipInvalid makes Read drop a node that fails to load, reserve its
// id and record a warning, instead of failing the whole load.
func WithSkipInvalid() Option {
	return func(o *options) {
		o.skipInvalid = true
	}
}

// WithDatasetOptions sets the storage options of every dataset Write
// creates.
func WithDatasetOptions(opts ...container.DatasetOption) Option {
	return func(o *options) {
		o.datasetOpts = append(o.datasetOpts, opts...)
	}
}

// WithNonImportable makes Write mark the given nodes so Read skips them.
// References to a skipped node load as absent slots with a warning.
func WithNonImportable(ids ...graph.ID) Option {
	return func(o *options) {
		for _, id := range ids {
			o.nonImportable[id] = struct{}{}
		}
	}
}
