package result

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
	"go.uber.org/multierr"
)

func TestErrorFormatting(t *testing.T) {
	err := New(-458, "scalar %q holds no value", "Count")
	assert.Equal(t, `[-458] scalar "Count" holds no value`, err.Error())

	wrapped := Wrap(-400, errors.New("short read"), "reading %s", "Phases")
	assert.Equal(t, "[-400] reading Phases: short read", wrapped.Error())
}

func TestCodeLookup(t *testing.T) {
	inner := New(-458, "scalar")
	err := fmt.Errorf("loading node 7: %w", inner)

	assert.True(t, Is(err, -458))
	assert.False(t, Is(err, -459))
	assert.Equal(t, Code(-458), GetCode(err))
	assert.Equal(t, Code(0), GetCode(errors.New("plain")))

	outer := Wrap(-1, err, "reading file")
	assert.Equal(t, Code(-1), GetCode(outer))
	assert.True(t, Is(outer, -458), "inner code should stay reachable")
}

func TestSentinelMatchesByCode(t *testing.T) {
	sentinel := &Error{Code: -101, Message: "object not found"}
	err := fmt.Errorf("group %q: %w", "Edges", New(-101, "missing"))
	assert.True(t, errors.Is(err, sentinel))
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.NoError(t, Canceled(ctx))

	cancel()
	err := Canceled(ctx)
	assert.Error(t, err)
	assert.True(t, IsCanceled(err))
	assert.True(t, errors.Is(err, ErrCanceled))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, IsCanceled(New(-458, "scalar")))
}

func TestWarnings(t *testing.T) {
	var ws Warnings
	assert.NoError(t, ws.Err())

	ws.Add(-2, "role %s of node %d unresolved", "Shared Edge List ID", 12)
	ws.Merge(Warnings{{Code: -4, Message: "skipped"}})

	assert.Equal(t, 2, len(ws))
	assert.True(t, ws.HasCode(-4))
	assert.False(t, ws.HasCode(-1))
	assert.Equal(t, "[-2] role Shared Edge List ID of node 12 unresolved\n[-4] skipped", ws.String())

	errs := multierr.Errors(ws.Err())
	assert.Equal(t, 2, len(errs))
	assert.True(t, Is(errs[1], -4))
}
