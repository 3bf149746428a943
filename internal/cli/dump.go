package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/internal/dtype"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

var filterNames = map[uint16]string{
	message.FilterDeflate:  "deflate",
	message.FilterShuffle:  "shuffle",
	message.FilterChecksum: "checksum",
	message.FilterLZ4:      "lz4",
}

func (c *CLI) dumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the raw container hierarchy of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := container.Open(args[0], container.WithLogger(c.logr()))
			if err != nil {
				return err
			}
			defer f.Close()

			w := cmd.OutOrStdout()
			printTitle(w, "%s", f.Path())
			printDetail(w, "id %s", f.UUID())
			return container.Walk(f.Root(), func(path string, obj container.Object, err error) error {
				depth := len(container.SplitPath(path))
				indent := strings.Repeat("  ", depth)
				if err != nil {
					printError(w, "%s%s: %v", indent, path, err)
					return nil
				}
				dumpObject(w, indent, obj)
				return nil
			})
		},
	}
}

func dumpObject(w io.Writer, indent string, obj container.Object) {
	name := obj.Name()
	if name == "" {
		name = "/"
	}
	switch o := obj.(type) {
	case *container.Group:
		fmt.Fprintf(w, "%s%s %s\n", indent, name, styleDim.Render(fmt.Sprintf("group, %d members", o.NumMembers())))
	case *container.Dataset:
		var filters []string
		for _, id := range o.Filters() {
			if n, ok := filterNames[id]; ok {
				filters = append(filters, n)
			} else {
				filters = append(filters, fmt.Sprintf("filter(%d)", id))
			}
		}
		info := fmt.Sprintf("%s %v, %d bytes stored", o.Datatype(), o.Shape(), o.StoredSize())
		if len(filters) > 0 {
			info += ", " + strings.Join(filters, "+")
		}
		fmt.Fprintf(w, "%s%s %s\n", indent, name, styleType.Render(info))
	}
	for _, a := range obj.Attrs() {
		fmt.Fprintf(w, "%s  @%s = %s\n", indent, a.Name(), attrValue(obj, a))
	}
}

func attrValue(obj container.Object, a *container.Attribute) string {
	if a.Datatype().IsString() {
		if vs, err := container.AttrStrings(obj, a.Name()); err == nil {
			if len(vs) == 1 {
				return fmt.Sprintf("%q", vs[0])
			}
			return fmt.Sprintf("%q", vs)
		}
	}
	if format, ok := attrFormatters[a.Datatype()]; ok {
		if s, err := format(obj, a.Name()); err == nil {
			return s
		}
	}
	return fmt.Sprintf("%s %v", a.Datatype(), a.Shape())
}

type attrFormatter func(obj container.Object, name string) (string, error)

var attrFormatters = map[dtype.Datatype]attrFormatter{
	dtype.Int8:    formatAttr[int8],
	dtype.Int16:   formatAttr[int16],
	dtype.Int32:   formatAttr[int32],
	dtype.Int64:   formatAttr[int64],
	dtype.Uint8:   formatAttr[uint8],
	dtype.Uint16:  formatAttr[uint16],
	dtype.Uint32:  formatAttr[uint32],
	dtype.Uint64:  formatAttr[uint64],
	dtype.Float32: formatAttr[float32],
	dtype.Float64: formatAttr[float64],
	dtype.Bool:    formatAttr[bool],
}

func formatAttr[T container.Element](obj container.Object, name string) (string, error) {
	vs, err := container.AttrSlice[T](obj, name)
	if err != nil {
		return "", err
	}
	if len(vs) == 1 {
		return fmt.Sprint(vs[0]), nil
	}
	return fmt.Sprint(vs), nil
}
