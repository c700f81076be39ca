package warpscript

import (
	"fmt"
	"strings"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/store"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/value"
)

// ImportMarker starts a first line listing store entries to import.
const ImportMarker = "//import"

// ImportNames returns the names listed on an import line, left to right.
// Programs without one import nothing.
func ImportNames(program string) []string {
	first, _, _ := strings.Cut(program, "\n")
	first = strings.TrimSuffix(first, "\r")
	if !strings.HasPrefix(first, ImportMarker) {
		return nil
	}
	fields := strings.Fields(first)
	if fields[0] != ImportMarker {
		return nil
	}
	return fields[1:]
}

// Preamble stores every found import under its own name ahead of the
// program. Names missing from the store are skipped.
func Preamble(names []string, resources store.Store) (string, int, error) {
	if resources == nil || len(names) == 0 {
		return "", 0, nil
	}

	var b strings.Builder
	count := 0
	for _, name := range names {
		v, ok := resources.Get(name)
		if !ok {
			continue
		}
		lit, err := value.EncodeLiteral(v)
		if err != nil {
			return "", 0, fmt.Errorf("import %q: %w", name, err)
		}
		b.WriteString(lit)
		b.WriteString(" '")
		b.WriteString(name)
		b.WriteString("' STORE\n")
		count++
	}
	return b.String(), count, nil
}
