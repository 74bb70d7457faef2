package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const MaxLength = 50

var (
	nonSlug    = regexp.MustCompile(`[^a-z0-9_-]+`)
	multiDash  = regexp.MustCompile(`-{2,}`)
	stripMarks = transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
)

// From turns a display name into a slug: "Science Fiction" -> "science-fiction".
// Letters without a latin decomposition are dropped.
func From(s string) string {
	result, _, _ := transform.String(stripMarks, s)
	result = strings.ToLower(result)
	result = nonSlug.ReplaceAllString(result, "-")
	result = multiDash.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	return result
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
