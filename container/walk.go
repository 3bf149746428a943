package container

// WalkFunc is called for each object during traversal.
// obj is either *Group or *Dataset, and is nil when err is set.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(path string, obj Object, err error) error

// Walk traverses all objects in the hierarchy starting from g, parents
// before children, members in link order. The callback is called for g
// itself first.
func Walk(g *Group, fn WalkFunc) error {
	if err := fn(g.Path(), g, nil); err != nil {
		return err
	}
	return walkMembers(g, fn)
}

func walkMembers(g *Group, fn WalkFunc) error {
	members, err := g.Members()
	if err != nil {
		return err
	}
	for _, name := range members {
		obj, err := g.Open(name)
		if err != nil {
			if err := fn(JoinPath(g.Path(), name), nil, err); err != nil {
				return err
			}
			continue
		}
		if err := fn(obj.Path(), obj, nil); err != nil {
			return err
		}
		if sub, ok := obj.(*Group); ok {
			if err := walkMembers(sub, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
