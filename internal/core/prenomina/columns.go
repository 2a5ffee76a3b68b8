package prenomina

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumericRegex = regexp.MustCompile(`[^0-9a-z]+`)
var underscoreRunRegex = regexp.MustCompile(`_+`)

// normalizeColumn canonicalizes one raw header string into a stable
// identifier: accents folded, lowercased, every run of non-alphanumeric
// characters collapsed to a single underscore, leading/trailing
// underscores stripped. The function is idempotent.
func normalizeColumn(raw string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, raw)
	result = strings.ToLower(strings.TrimSpace(result))
	result = nonAlphanumericRegex.ReplaceAllString(result, "_")
	result = underscoreRunRegex.ReplaceAllString(result, "_")
	return strings.Trim(result, "_")
}

// normalizeColumns canonicalizes a header row, preserving length and order.
// Two distinct raw headers collapsing to one identifier is a schema defect;
// the colliding raw headers are returned so loaders can build a SchemaError.
func normalizeColumns(raw []string) ([]string, []string) {
	normalized := make([]string, len(raw))
	seen := make(map[string]string, len(raw))
	var collision []string

	for i, r := range raw {
		n := normalizeColumn(r)
		normalized[i] = n
		if n == "" {
			continue
		}
		if prev, ok := seen[n]; ok {
			collision = append(collision, prev, r)
			continue
		}
		seen[n] = r
	}
	return normalized, collision
}
