package meta

import (
	"fmt"

	"github.com/viant/structology/conv"
)

// ApplyOverrides copies a loosely-typed override map (for example decoded
// from YAML or assembled from flags) onto a typed configuration struct,
// converting scalar types as needed.
func ApplyOverrides(target interface{}, overrides map[string]interface{}) error {
	if len(overrides) == 0 {
		return nil
	}
	converter := conv.NewConverter(conv.DefaultOptions())
	if err := converter.Convert(overrides, target); err != nil {
		return fmt.Errorf("failed to apply overrides: %w", err)
	}
	return nil
}
