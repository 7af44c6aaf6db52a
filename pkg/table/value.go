package table

import (
	"fmt"

	"github.com/happy-sdk/happy/pkg/vars"
)

// Value returns the field at the specified index as a vars.Value for
// typed access (Int, Float64, Bool and friends).
func (r Row) Value(index int) (vars.Value, error) {
	raw, ok := r.Get(index)
	if !ok {
		return vars.EmptyValue, fmt.Errorf("table: no field at index %d", index)
	}
	return vars.NewValue(raw)
}

// ValueByName returns the field in the named column as a vars.Value.
func (r Row) ValueByName(name string) (vars.Value, error) {
	raw, ok := r.GetByName(name)
	if !ok {
		return vars.EmptyValue, fmt.Errorf("table: no field in column %q", name)
	}
	return vars.NewValue(raw)
}
