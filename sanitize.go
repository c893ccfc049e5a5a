package glspgen

import (
	"regexp"
	"strings"
)

var nonSlugRuns = regexp.MustCompile(`[^a-z0-9-]+`)
var dashRuns = regexp.MustCompile(`-{2,}`)

// Sanitize converts a raw grammar name into a package-safe project name:
// lowercase, runs of anything outside [a-z0-9-] collapse to a single
// dash, leading/trailing dashes stripped. The result may be empty when
// the input holds no usable characters; callers substitute their own
// fallback.
func Sanitize(name string) string {
	s := strings.ToLower(name)
	s = nonSlugRuns.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
