package session

import (
	"strings"

	"golang.org/x/text/cases"
)

// Judge compares a user answer against the expected answer. Comparison
// trims surrounding whitespace and applies Unicode case folding, so
// " Paris " matches "paris" and "STRASSE" matches "straße".
func Judge(got, want string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(got)) == fold.String(strings.TrimSpace(want))
}
