// Package options validates the input sources accepted by functional options
// and tool inputs.
package options

import (
	"fmt"
	"strings"
)

// Source names one way of supplying an input and whether it was used.
type Source struct {
	Name string
	Set  bool
}

// CountSet returns how many sources are set.
func CountSet(sources ...Source) int {
	n := 0
	for _, s := range sources {
		if s.Set {
			n++
		}
	}
	return n
}

// ValidateSingleSource returns an error unless exactly one source is set.
// input names what the sources supply, such as "document".
func ValidateSingleSource(input string, sources ...Source) error {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}

	switch n := CountSet(sources...); {
	case n == 0:
		return fmt.Errorf("must specify a %s source (use %s)", input, JoinOr(names))
	case n > 1:
		return fmt.Errorf("must specify exactly one %s source (got %d of %s)", input, n, JoinOr(names))
	}
	return nil
}

// JoinOr joins names as "a", "a or b", or "a, b, or c".
func JoinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
