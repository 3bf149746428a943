package pipeline

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/nxfile"
	"github.com/robert-malhotra/go-nxgraph/result"
)

// Built-in filter names.
const (
	FilterCreateDataGroup = "create_data_group"
	FilterCreateDataArray = "create_data_array"
	FilterCreateScalar    = "create_scalar"
	FilterDeleteData      = "delete_data"
	FilterWriteFile       = "write_file"
	FilterReadFile        = "read_file"
)

func builtins() []Filter {
	return []Filter{
		&actionFilter{name: FilterCreateDataGroup, actions: createDataGroupActions},
		&actionFilter{name: FilterCreateDataArray, actions: createDataArrayActions},
		&actionFilter{name: FilterCreateScalar, actions: createScalarActions},
		&actionFilter{name: FilterDeleteData, actions: deleteDataActions},
		&actionFilter{name: FilterReadFile, actions: readFileActions},
		writeFile{},
	}
}

func createDataGroupActions(_ context.Context, _ *graph.Graph, args Arguments) (*OutputActions, error) {
	path, err := Arg[string](args, "path")
	if err != nil {
		return nil, err
	}
	return &OutputActions{Actions: []Action{CreateDataGroup{Path: path}}}, nil
}

func createDataArrayActions(_ context.Context, _ *graph.Graph, args Arguments) (*OutputActions, error) {
	var a CreateArray
	var err error
	if a.Path, err = Arg[string](args, "path"); err != nil {
		return nil, err
	}
	if a.Type, err = Arg[graph.DataType](args, "type"); err != nil {
		return nil, err
	}
	if a.TupleShape, err = Arg[[]uint64](args, "tuple_shape"); err != nil {
		return nil, err
	}
	if a.ComponentShape, err = ArgOr(args, "component_shape", []uint64{1}); err != nil {
		return nil, err
	}
	if a.Fill, err = ArgOr(args, "fill", 0.0); err != nil {
		return nil, err
	}
	return &OutputActions{Actions: []Action{a}}, nil
}

func createScalarActions(_ context.Context, _ *graph.Graph, args Arguments) (*OutputActions, error) {
	var a CreateScalar
	var err error
	if a.Path, err = Arg[string](args, "path"); err != nil {
		return nil, err
	}
	if a.Type, err = Arg[graph.DataType](args, "type"); err != nil {
		return nil, err
	}
	if a.Value, err = Arg[float64](args, "value"); err != nil {
		return nil, err
	}
	return &OutputActions{Actions: []Action{a}}, nil
}

func deleteDataActions(_ context.Context, _ *graph.Graph, args Arguments) (*OutputActions, error) {
	path, err := Arg[string](args, "path")
	if err != nil {
		return nil, err
	}
	return &OutputActions{Actions: []Action{DeleteData{Path: path}}}, nil
}

// importGraph merges a graph read from a file below Parent.
type importGraph struct {
	File   string
	Parent string
	src    *graph.Graph
}

func (a importGraph) String() string { return fmt.Sprintf("import %s into %q", a.File, a.Parent) }

func (a importGraph) Apply(_ context.Context, g *graph.Graph, _ Mode) error {
	parent := graph.None
	if a.Parent != "" {
		n, err := g.FindByPath(a.Parent)
		if err != nil {
			return err
		}
		parent = graph.Some(n.ID())
	}
	_, err := g.Merge(a.src, parent)
	return err
}

func readFileActions(ctx context.Context, _ *graph.Graph, args Arguments) (*OutputActions, error) {
	path, err := Arg[string](args, "path")
	if err != nil {
		return nil, err
	}
	parent, err := ArgOr(args, "parent", "")
	if err != nil {
		return nil, err
	}
	skip, err := ArgOr(args, "skip_invalid", false)
	if err != nil {
		return nil, err
	}
	opts := []nxfile.Option{nxfile.WithLogger(logr.FromContextOrDiscard(ctx))}
	if skip {
		opts = append(opts, nxfile.WithSkipInvalid())
	}
	f, err := nxfile.Read(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return &OutputActions{
		Actions:  []Action{importGraph{File: path, Parent: parent, src: f.Graph}},
		Warnings: f.Warnings,
	}, nil
}

// writeFile saves the graph, and the running pipeline when there is one.
type writeFile struct{}

func (writeFile) Name() string { return FilterWriteFile }

type writeFileArgs struct {
	path      string
	storePipe bool
	dsOpts    []container.DatasetOption
}

func parseWriteFileArgs(args Arguments) (w writeFileArgs, err error) {
	if w.path, err = Arg[string](args, "path"); err != nil {
		return w, err
	}
	if w.path == "" {
		return w, result.New(CodeArgument, "argument %q is empty", "path")
	}
	if w.storePipe, err = ArgOr(args, "store_pipeline", true); err != nil {
		return w, err
	}
	compress, err := ArgOr(args, "compression", "none")
	if err != nil {
		return w, err
	}
	level, err := ArgOr(args, "level", 6)
	if err != nil {
		return w, err
	}
	shuffle, err := ArgOr(args, "shuffle", false)
	if err != nil {
		return w, err
	}
	if w.dsOpts, err = nxfile.Compression(compress, level, shuffle); err != nil {
		return w, result.Wrap(CodeArgument, err, "write_file")
	}
	return w, nil
}

func (writeFile) Preflight(_ context.Context, _ *graph.Graph, args Arguments) (*OutputActions, error) {
	if _, err := parseWriteFileArgs(args); err != nil {
		return nil, err
	}
	return &OutputActions{}, nil
}

func (writeFile) Execute(ctx context.Context, g *graph.Graph, args Arguments) error {
	w, err := parseWriteFileArgs(args)
	if err != nil {
		return err
	}
	opts := []nxfile.Option{
		nxfile.WithLogger(logr.FromContextOrDiscard(ctx)),
		nxfile.WithDatasetOptions(w.dsOpts...),
	}
	if p, ok := FromContext(ctx); ok && w.storePipe {
		js, err := p.JSON()
		if err != nil {
			return err
		}
		opts = append(opts, nxfile.WithPipeline(p.Name, js))
	}
	return nxfile.Write(ctx, w.path, g, opts...)
}
