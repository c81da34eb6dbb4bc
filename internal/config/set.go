package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// ParseSetFlags turns repeated field=value arguments into overrides. Field
// names may be snake_case or camelCase; later arguments win.
func ParseSetFlags(args []string) (domain.Overrides, error) {
	var overrides domain.Overrides
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return domain.Overrides{}, fmt.Errorf("invalid override %q: expected field=value", arg)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return domain.Overrides{}, fmt.Errorf("invalid override %q: %s is not a number", arg, strings.TrimSpace(raw))
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return domain.Overrides{}, fmt.Errorf("invalid override %q: %s is not a finite number", arg, strings.TrimSpace(raw))
		}
		overrides, err = overrides.Set(strings.TrimSpace(name), v)
		if err != nil {
			return domain.Overrides{}, fmt.Errorf("invalid override %q: %w", arg, err)
		}
	}
	return overrides, nil
}
