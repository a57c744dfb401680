package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict is a cached bluemonday policy that removes all HTML tags and
// attributes. bluemonday.Policy is read-only after build, so sharing the
// instance across requests is safe as long as nothing mutates it later.
var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true) // prevents word concatenation
	return p
}()

// Clean strips all HTML from user input and normalizes whitespace.
// Task titles and descriptions must pass through Clean before they hit the
// store; the repository assumes already-sanitized input.
//
// Examples:
//   - "<script>alert('x')</script>buy milk" -> "buy milk"
//   - "  <p>2% or whole</p>  " -> "2% or whole"
func Clean(s string) string {
	cleaned := strict.Sanitize(s)
	cleaned = strings.TrimSpace(cleaned)

	// Unescape entities so "&amp;" and friends come back as plain text.
	cleaned = html.UnescapeString(cleaned)

	// Normalize non-breaking spaces, then collapse runs of spaces per line.
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", " ")
	lines := strings.Split(cleaned, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
