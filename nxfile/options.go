package nxfile

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/dataio"
)

// Option configures Read and Write.
type Option func(*options)

type options struct {
	logger       logr.Logger
	skipInvalid  bool
	datasetOpts  []container.DatasetOption
	pipelineName string
	pipeline     []byte
}

func newOptions(opts []Option) *options {
	o := &options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) fileOptions() []container.FileOption {
	return []container.FileOption{
		container.WithLogger(o.logger.WithName("container")),
		container.WithDefaultDatasetOptions(o.datasetOpts...),
	}
}

func (o *options) dataOptions() []dataio.Option {
	opts := []dataio.Option{dataio.WithLogger(o.logger)}
	if o.skipInvalid {
		opts = append(opts, dataio.WithSkipInvalid())
	}
	return opts
}

// WithLogger sets the logger passed down to the container and the graph
// reader and writer.
func WithLogger(l logr.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSkipInvalid loads what can be loaded, dropping nodes that fail.
func WithSkipInvalid() Option {
	return func(o *options) {
		o.skipInvalid = true
	}
}

// WithDatasetOptions sets the storage options of every dataset written.
func WithDatasetOptions(opts ...container.DatasetOption) Option {
	return func(o *options) {
		o.datasetOpts = append(o.datasetOpts, opts...)
	}
}

// WithPipeline stores the named pipeline JSON alongside the graph.
func WithPipeline(name string, js []byte) Option {
	return func(o *options) {
		o.pipelineName = name
		o.pipeline = js
	}
}

// Compression returns the dataset options for a compression name: "none",
// "deflate" at level, or "lz4". shuffle adds byte shuffling before either.
func Compression(name string, level int, shuffle bool) ([]container.DatasetOption, error) {
	opts := []container.DatasetOption{container.WithoutFilters()}
	if shuffle {
		opts = append(opts, container.WithShuffle())
	}
	switch name {
	case "none", "":
	case "deflate":
		if level < 1 || level > 9 {
			return nil, fmt.Errorf("deflate level %d out of range 1-9", level)
		}
		opts = append(opts, container.WithDeflate(level))
	case "lz4":
		opts = append(opts, container.WithLZ4())
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
	return opts, nil
}
