// Package nxfile reads and writes complete graph files: a file version
// tag, the DataStructure group holding the graph, and optionally the
// pipeline that produced it.
//
//	err := nxfile.Write(ctx, "out.nxg", g, nxfile.WithPipeline("Segment", js))
//	f, err := nxfile.Read(ctx, "out.nxg")
//	fmt.Println(f.Graph.Len(), len(f.Warnings))
package nxfile

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/dataio"
	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

// Layout names.
const (
	FileVersion     = "8.0"
	PipelineVersion = int32(3)

	AttrFileVersion     = "FileVersion"
	AttrPipelineVersion = "Pipeline Version"
	AttrPipelineName    = "Current Pipeline"

	DataStructureGroup = "DataStructure"
	PipelineGroup      = "Pipeline"
	PipelineDataset    = "Pipeline"
)

// Error codes.
const (
	CodeFileVersion      result.Code = -8052
	CodeNoDataStructure  result.Code = -8053
	CodeCreate           result.Code = -8054
	CodePipeline         result.Code = -8055
	CodeFileVersionWrite result.Code = -8056
)

// File is the content of a graph file.
type File struct {
	Path    string
	UUID    uuid.UUID
	Version string
	Graph   *graph.Graph

	// PipelineName and Pipeline are empty when the file stores no pipeline.
	PipelineName string
	Pipeline     []byte

	Warnings result.Warnings
}

// HasPipeline reports whether the file stored a pipeline.
func (f *File) HasPipeline() bool {
	return len(f.Pipeline) > 0
}

// Write creates the file at path holding g. An existing file is
// replaced. If writing fails the partial file is removed.
func Write(ctx context.Context, path string, g *graph.Graph, opts ...Option) (err error) {
	o := newOptions(opts)
	log := o.logger.WithValues("path", path)

	f, err := container.Create(path, o.fileOptions()...)
	if err != nil {
		return result.Wrap(CodeCreate, err, "failed to create %s", path)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
		if err != nil {
			if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				log.Error(rmErr, "removing partial file")
			}
		}
	}()

	root := f.Root()
	if err := container.SetAttrString(root, AttrFileVersion, FileVersion); err != nil {
		return result.Wrap(CodeFileVersionWrite, err, "writing file version of %s", path)
	}
	if o.pipeline != nil {
		if err := writePipeline(root, o.pipelineName, o.pipeline); err != nil {
			return err
		}
	}
	ds, err := root.CreateGroup(DataStructureGroup)
	if err != nil {
		return result.Wrap(CodeCreate, err, "creating %s in %s", DataStructureGroup, path)
	}
	if err := dataio.Write(ctx, g, ds, o.dataOptions()...); err != nil {
		return err
	}
	log.V(1).Info("wrote graph file", "nodes", g.Len(), "pipeline", o.pipelineName)
	return nil
}

func writePipeline(root *container.Group, name string, js []byte) error {
	grp, err := root.CreateGroup(PipelineGroup)
	if err != nil {
		return result.Wrap(CodePipeline, err, "creating pipeline group")
	}
	ds, err := grp.CreateDataset(PipelineDataset)
	if err != nil {
		return result.Wrap(CodePipeline, err, "creating pipeline dataset")
	}
	err = multierr.Combine(
		container.SetAttrValue(grp, AttrPipelineVersion, PipelineVersion),
		container.SetAttrString(grp, AttrPipelineName, name),
		container.WriteStrings(ds, []string{string(js)}),
	)
	if err != nil {
		return result.Wrap(CodePipeline, err, "writing pipeline")
	}
	return nil
}

// Read loads the file at path. Links that fail to resolve are reported in
// the returned File's Warnings.
func Read(ctx context.Context, path string, opts ...Option) (_ *File, err error) {
	o := newOptions(opts)

	f, err := container.Open(path, o.fileOptions()...)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	out := &File{Path: path, UUID: f.UUID()}
	root := f.Root()
	out.Version, err = container.AttrString(root, AttrFileVersion)
	if err != nil {
		return nil, result.Wrap(CodeFileVersion, err, "reading file version of %s", path)
	}
	if out.Version != FileVersion {
		return nil, result.New(CodeFileVersion, "%s has file version %q, expected %q", path, out.Version, FileVersion)
	}

	if root.Has(PipelineGroup) {
		out.PipelineName, out.Pipeline, err = readPipeline(root)
		if err != nil {
			return nil, err
		}
	}

	ds, err := root.OpenGroup(DataStructureGroup)
	if err != nil {
		return nil, result.Wrap(CodeNoDataStructure, err, "%s has no %s group", path, DataStructureGroup)
	}
	out.Graph, out.Warnings, err = dataio.Read(ctx, ds, o.dataOptions()...)
	if err != nil {
		return nil, err
	}
	o.logger.V(1).Info("read graph file", "path", path, "nodes", out.Graph.Len(), "warnings", len(out.Warnings))
	return out, nil
}

func readPipeline(root *container.Group) (string, []byte, error) {
	grp, err := root.OpenGroup(PipelineGroup)
	if err != nil {
		return "", nil, result.Wrap(CodePipeline, err, "opening pipeline group")
	}
	version, err := container.AttrValue[int32](grp, AttrPipelineVersion)
	if err != nil {
		return "", nil, result.Wrap(CodePipeline, err, "reading pipeline version")
	}
	if version != PipelineVersion {
		return "", nil, result.New(CodePipeline, "pipeline version %d, expected %d", version, PipelineVersion)
	}
	name, err := container.AttrString(grp, AttrPipelineName)
	if err != nil && !errors.Is(err, container.ErrAttrNotFound) {
		return "", nil, result.Wrap(CodePipeline, err, "reading pipeline name")
	}
	ds, err := grp.OpenDataset(PipelineDataset)
	if err != nil {
		return "", nil, result.Wrap(CodePipeline, err, "opening pipeline dataset")
	}
	values, err := container.ReadStrings(ds)
	if err != nil {
		return "", nil, result.Wrap(CodePipeline, err, "reading pipeline dataset")
	}
	if len(values) != 1 {
		return "", nil, result.New(CodePipeline, "pipeline dataset holds %d strings, expected 1", len(values))
	}
	return name, []byte(values[0]), nil
}
