package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePoint parses "x,y" screen coordinates. Whitespace around either
// number is ignored.
func ParsePoint(input string) (x, y int, err error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid point %q: expected x,y", input)
	}
	if x, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate in %q: %w", input, err)
	}
	if y, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return 0, 0, fmt.Errorf("invalid y coordinate in %q: %w", input, err)
	}
	return x, y, nil
}
