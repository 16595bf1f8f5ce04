package providers

import "fmt"

// Header maps column names to their index in a csv snapshot. Both source
// loaders resolve fields by name so a column reorder in the upstream files
// does not silently shift values.
type Header map[string]int

func NewHeader(cols []string) Header {
	h := make(Header, len(cols))
	for i, c := range cols {
		h[c] = i
	}
	return h
}

// Require fails if any of the named columns is missing, so a schema change
// upstream aborts the load instead of producing a half-parsed dataset.
func (h Header) Require(names ...string) error {
	for _, name := range names {
		if _, ok := h[name]; !ok {
			return fmt.Errorf("providers: missing column %q", name)
		}
	}
	return nil
}

// Field returns the named column's value from a row.
func (h Header) Field(row []string, name string) (string, error) {
	i, ok := h[name]
	if !ok {
		return "", fmt.Errorf("providers: missing column %q", name)
	}
	if i >= len(row) {
		return "", fmt.Errorf("providers: row too short for column %q", name)
	}
	return row[i], nil
}
