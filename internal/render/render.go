// Package render substitutes {{token}} placeholders in template bodies.
package render

import (
	"regexp"
	"strings"
)

// tokenRe matches {{ name }} with optional whitespace inside the braces.
// Token names are word characters or hyphens.
var tokenRe = regexp.MustCompile(`\{\{\s*([\w-]+)\s*\}\}`)

// Render replaces every {{name}} occurrence whose lower-cased name exists in
// tokens with the mapped value, verbatim. Substitution is not recursive.
// Unknown tokens are left in place so the author can see what is still
// unresolved rather than having it silently disappear.
func Render(template string, tokens map[string]string) string {
	if template == "" {
		return ""
	}
	return tokenRe.ReplaceAllStringFunc(template, func(match string) string {
		name := tokenRe.FindStringSubmatch(match)[1]
		if value, ok := tokens[strings.ToLower(name)]; ok {
			return value
		}
		return match
	})
}
