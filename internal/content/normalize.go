package content

import (
	"regexp"
	"strings"
)

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize trims, lowercases and collapses internal whitespace so that
// user-typed category names can be matched against the vocabulary.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// CanonicalCategory maps a loosely typed category name to its vocabulary spelling.
func (c *Catalog) CanonicalCategory(name string) (string, bool) {
	want := Normalize(name)
	if want == "" {
		return "", false
	}
	for _, cat := range c.site.Categories {
		if Normalize(cat) == want {
			return cat, true
		}
	}
	return "", false
}
