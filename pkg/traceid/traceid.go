// Package traceid issues correlation ids that tie together every log line of
// one batch run.
package traceid

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh id: a random UUID without dashes.
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Resolve returns the first non-blank candidate, or a fresh id when every
// candidate is blank. Callers pass an inherited id first.
func Resolve(candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return New()
}
