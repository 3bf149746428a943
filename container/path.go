package container

import (
	"strings"
)

// SplitPath splits a path into its components.
// Leading and trailing slashes are handled, empty components are removed.
//
// Examples:
//   - "/" -> []string{}
//   - "/foo" -> []string{"foo"}
//   - "/foo/bar" -> []string{"foo", "bar"}
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinPath joins a parent path and a child name.
func JoinPath(parent, name string) string {
	if parent == "/" || parent == "" {
		return "/" + name
	}
	return parent + "/" + name
}

// CleanPath normalizes a path, ensuring it starts with "/" and has no
// trailing or repeated slashes.
func CleanPath(path string) string {
	return "/" + strings.Join(SplitPath(path), "/")
}

// ValidateName checks that name can be used as a link or attribute name.
func ValidateName(name string) error {
	switch {
	case name == "":
		return newErr(ErrInvalidName, "empty name")
	case name == "." || name == "..":
		return newErr(ErrInvalidName, "name %q", name)
	case strings.Contains(name, "/"):
		return newErr(ErrInvalidName, "name %q contains '/'", name)
	case len(name) > 0xFFFF:
		return newErr(ErrInvalidName, "name of %d bytes", len(name))
	}
	return nil
}
