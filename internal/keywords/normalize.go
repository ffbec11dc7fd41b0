package keywords

import (
	"regexp"
	"strings"
)

// AllowedChars is the character class kept by Normalize: lowercase Latin
// letters, Spanish accented vowels, ñ, ü, digits and the space.
const AllowedChars = `a-záéíóúüñ0-9 `

var (
	// RE2's \s is ASCII only; \p{Z} adds no-break and other Unicode spaces.
	whitespaceRun = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)
	disallowed    = regexp.MustCompile(`[^` + AllowedChars + `]`)
	spaceRun      = regexp.MustCompile(` {2,}`)
)

// Normalize lowercases text, collapses whitespace runs into one space and drops
// every character outside AllowedChars. Spaces left adjacent by a dropped
// character are collapsed as well, so Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = whitespaceRun.ReplaceAllString(strings.ToLower(text), " ")
	text = disallowed.ReplaceAllString(text, "")
	return spaceRun.ReplaceAllString(text, " ")
}
