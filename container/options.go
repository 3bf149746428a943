package container

import (
	"github.com/go-logr/logr"

	"github.com/robert-malhotra/go-nxgraph/internal/dtype"
	"github.com/robert-malhotra/go-nxgraph/internal/filter"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

// FileOption configures Create and Open.
type FileOption func(*fileOptions)

type fileOptions struct {
	logger          logr.Logger
	datasetDefaults []DatasetOption
}

func defaultFileOptions() *fileOptions {
	return &fileOptions{
		logger: logr.Discard(),
	}
}

// WithLogger sets the logger used for open and flush diagnostics.
func WithLogger(l logr.Logger) FileOption {
	return func(o *fileOptions) {
		o.logger = l
	}
}

// WithDefaultDatasetOptions applies opts to every dataset created in the
// file before any per-dataset options.
func WithDefaultDatasetOptions(opts ...DatasetOption) FileOption {
	return func(o *fileOptions) {
		o.datasetDefaults = append(o.datasetDefaults, opts...)
	}
}

// DatasetOption configures dataset storage.
type DatasetOption func(*datasetOptions)

type datasetOptions struct {
	compressionLvl int
	lz4            bool
	shuffle        bool
	checksum       bool
}

func defaultDatasetOptions() *datasetOptions {
	return &datasetOptions{
		compressionLvl: 0,
	}
}

// WithDeflate enables zlib compression at the given level (1-9, 0 = none).
func WithDeflate(level int) DatasetOption {
	return func(o *datasetOptions) {
		if level >= 0 && level <= 9 {
			o.compressionLvl = level
		}
	}
}

// WithLZ4 enables lz4 compression. It is applied after deflate if both are set.
func WithLZ4() DatasetOption {
	return func(o *datasetOptions) {
		o.lz4 = true
	}
}

// WithShuffle enables the shuffle filter (improves compression).
func WithShuffle() DatasetOption {
	return func(o *datasetOptions) {
		o.shuffle = true
	}
}

// WithChecksum appends a checksum to the stored data and verifies it on read.
func WithChecksum() DatasetOption {
	return func(o *datasetOptions) {
		o.checksum = true
	}
}

// WithoutFilters clears any filters set by earlier options.
func WithoutFilters() DatasetOption {
	return func(o *datasetOptions) {
		*o = *defaultDatasetOptions()
	}
}

// pipeline builds the filter pipeline message for data of type dt.
// It returns nil when no filters apply.
func (o *datasetOptions) pipeline(dt dtype.Datatype) *message.FilterPipeline {
	var filters []message.FilterInfo
	if o.shuffle && dt.Size > 1 {
		filters = append(filters, filter.ShuffleInfo(int(dt.Size)))
	}
	if o.compressionLvl > 0 {
		filters = append(filters, filter.DeflateInfo(o.compressionLvl))
	}
	if o.lz4 {
		filters = append(filters, filter.LZ4Info())
	}
	if o.checksum {
		filters = append(filters, filter.ChecksumInfo())
	}
	if len(filters) == 0 {
		return nil
	}
	return &message.FilterPipeline{Filters: filters}
}
