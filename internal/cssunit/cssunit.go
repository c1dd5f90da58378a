// Package cssunit converts CSS length values to pixels at 96 DPI.
package cssunit

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Sentinel errors for dimension parsing.
var (
	ErrInvalidDimension = errors.New("cssunit: invalid dimension")
	ErrUnsupportedUnit  = errors.New("cssunit: unsupported unit")
)

// Pixels per unit at the CSS reference DPI of 96.
const (
	PxPerInch       = 96.0
	PxPerPoint      = 96.0 / 72.0 // ~1.3333
	PxPerMillimeter = 96.0 / 25.4 // ~3.77953
	PxPerCentimeter = 960.0 / 25.4
)

var dimensionRe = regexp.MustCompile(`^(\d+\.?\d*)([a-z]+)$`)

// ToPixels parses a CSS length like "210mm", "595.44pt", or "1920px" and
// returns its value in pixels. Supported units: px, pt, mm, cm, in.
func ToPixels(value string) (float64, error) {
	m := dimensionRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(value)))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDimension, value)
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDimension, value)
	}

	switch m[2] {
	case "px":
		return n, nil
	case "pt":
		return n * PxPerPoint, nil
	case "mm":
		return n * PxPerMillimeter, nil
	case "cm":
		return n * PxPerCentimeter, nil
	case "in":
		return n * PxPerInch, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, m[2])
}
