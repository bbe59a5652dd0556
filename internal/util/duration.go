package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration accepts a Go duration string ("150ms", "1.5s") or a bare
// number, which is taken as milliseconds.
func ParseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if ms, err := strconv.ParseFloat(input, 64); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("invalid duration %q: must not be negative", input)
		}
		return time.Duration(ms * float64(time.Millisecond)), nil
	}

	duration, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %q\n\nValid formats: 150 (milliseconds), 150ms, 1.5s, 2m", input)
	}
	if duration < 0 {
		return 0, fmt.Errorf("invalid duration %q: must not be negative", input)
	}
	return duration, nil
}
