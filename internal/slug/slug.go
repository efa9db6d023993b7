// Package slug derives URL-safe unique keys from product titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// stripMarks removes combining marks after NFD decomposition so that
// accented letters fold to their base form.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts a display title into a normalized lowercase token:
// diacritics are stripped, non-alphanumeric runs collapse to a single "-"
// and leading/trailing separators are trimmed. Make is deterministic and
// idempotent: Make(Make(s)) == Make(s).
func Make(title string) string {
	folded, _, err := transform.String(stripMarks, title)
	if err != nil {
		folded = title
	}
	// Vietnamese đ/Đ are letters, not marks, so NFD leaves them intact.
	folded = strings.NewReplacer("đ", "d", "Đ", "d").Replace(folded)
	folded = strings.ToLower(folded)
	folded = nonAlphaNum.ReplaceAllString(folded, "-")
	return strings.Trim(folded, "-")
}
