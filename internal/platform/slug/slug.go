package slug

import (
	"strings"
	"unicode"
)

// MaxLen bounds slugs so exported note names stay readable.
const MaxLen = 48

// Make turns input into a lowercase, hyphen-separated file name fragment.
// Runs of anything other than ASCII letters and digits collapse into one
// hyphen. An input with nothing usable becomes "untitled".
func Make(input string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(input) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	s := b.String()
	if len(s) > MaxLen {
		s = strings.TrimRight(s[:MaxLen], "-")
	}
	if s == "" {
		return "untitled"
	}
	return s
}
