package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// maxCleanPasses bounds how many levels of entity encoding cleanText unwraps.
const maxCleanPasses = 8

// cleanText strips all markup from user-supplied text and stores plain
// characters. Unescaping can expose markup that was entity-encoded, so the
// policy runs again until the text stops changing. If it never settles the
// escaped policy output is kept.
func cleanText(s string) string {
	out := s
	for i := 0; i < maxCleanPasses; i++ {
		next := html.UnescapeString(textPolicy.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	return strings.TrimSpace(textPolicy.Sanitize(out))
}
