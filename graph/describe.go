package graph

import "fmt"

// Describe returns a one-line summary of n's content, such as its shape
// or value. Nodes with no content of their own describe as "".
func Describe(n Node) string {
	if d, ok := n.(interface{ describe() string }); ok {
		return d.describe()
	}
	return ""
}

func (n *AttributeMatrix) describe() string {
	return fmt.Sprintf("tuples %v", n.TupleShape)
}

func (a *DataArray[T]) describe() string {
	return fmt.Sprintf("tuples %v components %v", a.TupleShape, a.ComponentShape)
}

func (s *ScalarData[T]) describe() string {
	return fmt.Sprintf("value %v", s.Value)
}

func (s *StringArray) describe() string {
	return fmt.Sprintf("%d strings", len(s.Values))
}

func (l *NeighborList[T]) describe() string {
	total := 0
	for _, list := range l.Lists {
		total += len(list)
	}
	return fmt.Sprintf("%d lists, %d neighbors", len(l.Lists), total)
}

func (n *ImageGeom) describe() string {
	return fmt.Sprintf("dims %v origin %v spacing %v", n.Dimensions, n.Origin, n.Spacing)
}

func (n *RectGridGeom) describe() string {
	return fmt.Sprintf("dims %v", n.Dimensions)
}
