package picker

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidTime is returned for drop times ParseDropTime cannot read.
var ErrInvalidTime = errors.New("invalid drop time")

// ParseDropTime reads "83.5", "1:23.5" or "01:02:03.250" into seconds.
func ParseDropTime(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidTime)
	}

	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}

	var total float64
	for i, part := range parts {
		n, err := strconv.ParseFloat(part, 64)
		if err != nil || n < 0 || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
		}
		last := i == len(parts)-1
		if !last && n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("%w: %q: field out of range", ErrInvalidTime, value)
		}
		total = total*60 + n
	}
	return total, nil
}
