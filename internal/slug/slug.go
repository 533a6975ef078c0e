// Package slug derives the canonical URL identifier of a post from its title.
package slug

import "strings"

// Make converts a title into a slug: surrounding whitespace is trimmed, every
// run of characters that are not ASCII letters becomes a single hyphen, edge
// hyphens are dropped and the result is lowercased.
//
// Distinct titles may produce the same slug.
func Make(title string) string {
	title = strings.TrimSpace(title)

	var b strings.Builder
	b.Grow(len(title))
	inRun := false
	for i := 0; i < len(title); i++ {
		c := title[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c)
			inRun = false
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
			inRun = false
		default:
			// Multi-byte runes are consumed byte by byte and fold into the same run.
			if !inRun {
				b.WriteByte('-')
				inRun = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
