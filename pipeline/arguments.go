package pipeline

import (
	"encoding/json"

	"github.com/robert-malhotra/go-nxgraph/result"
)

// Arguments are a filter's parameters, kept as raw JSON until a filter
// asks for them with a concrete type.
type Arguments map[string]json.RawMessage

// Arg decodes the named argument into T.
func Arg[T any](args Arguments, key string) (T, error) {
	var v T
	raw, ok := args[key]
	if !ok {
		return v, result.New(CodeArgument, "missing argument %q", key)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, result.Wrap(CodeArgument, err, "argument %q", key)
	}
	return v, nil
}

// ArgOr is Arg with a default for a missing argument.
func ArgOr[T any](args Arguments, key string, def T) (T, error) {
	if _, ok := args[key]; !ok {
		return def, nil
	}
	return Arg[T](args, key)
}

// Set stores v as the named argument.
func (a Arguments) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return result.Wrap(CodeArgument, err, "argument %q", key)
	}
	a[key] = raw
	return nil
}

// Args builds Arguments from plain values.
func Args(kv map[string]any) (Arguments, error) {
	a := make(Arguments, len(kv))
	for k, v := range kv {
		if err := a.Set(k, v); err != nil {
			return nil, err
		}
	}
	return a, nil
}
