package result

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Warning is a non-fatal problem found while reading or validating.
type Warning struct {
	Code    Code
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%d] %s", w.Code, w.Message)
}

// Warnings accumulates warnings in the order they were raised.
type Warnings []Warning

// Add appends a formatted warning.
func (ws *Warnings) Add(code Code, format string, args ...any) {
	*ws = append(*ws, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Merge appends all of other.
func (ws *Warnings) Merge(other Warnings) {
	*ws = append(*ws, other...)
}

// HasCode reports whether any warning carries code.
func (ws Warnings) HasCode(code Code) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Err combines the warnings into a single error, for callers that treat
// warnings as failures. It returns nil when there are no warnings.
func (ws Warnings) Err() error {
	var err error
	for _, w := range ws {
		err = multierr.Append(err, &Error{Code: w.Code, Message: w.Message})
	}
	return err
}

func (ws Warnings) String() string {
	lines := make([]string, len(ws))
	for i, w := range ws {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
