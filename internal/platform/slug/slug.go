package slug

import (
	"strings"
	"unicode"
)

const maxRunes = 48

// Make turns a title into a filename fragment: letters and digits are kept
// (lowercased, any script), every other run becomes one dash. The result is
// capped on a rune boundary and never starts or ends with a dash.
func Make(input string) string {
	var b strings.Builder
	n := 0
	pendingDash := false
	for _, r := range input {
		if n >= maxRunes {
			break
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			if n+1 >= maxRunes {
				break
			}
			b.WriteByte('-')
			n++
			pendingDash = false
		}
		b.WriteRune(unicode.ToLower(r))
		n++
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
