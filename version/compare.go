package version

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Compare compares two major.minor.patch versions, with or without a "v" prefix.
// The result is 1 if a > b, -1 if a < b and 0 otherwise.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}
	bv, err := parse(b)
	if err != nil {
		return 0, err
	}
	return slices.Compare(av, bv), nil
}

func parse(s string) ([]int, error) {
	v := make([]int, 3)
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &v[0], &v[1], &v[2]); err != nil {
		return nil, fmt.Errorf("version %q: %w", s, err)
	}
	return v, nil
}
