// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// maxTitleLength bounds board titles so export names stay readable.
const maxTitleLength = 120

var elementIDPattern = regexp.MustCompile(`^id_[a-z0-9]{9}$`)

// Title validates a board title is non-empty after trimming whitespace.
func Title(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fmt.Errorf("title is required")
	}
	if len(trimmed) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTitleLength)
	}
	return nil
}

// ElementID validates a board element ID ("id_" followed by 9 lowercase
// alphanumerics).
func ElementID(id string) error {
	if !elementIDPattern.MatchString(id) {
		return fmt.Errorf("invalid element id %q", id)
	}
	return nil
}

// Opacity validates an opacity is within (0, 1].
func Opacity(v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("opacity must be in (0, 1], got %g", v)
	}
	return nil
}
