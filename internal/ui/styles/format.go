package styles

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// TruncateString cuts s to maxWidth cells, ending in "..." when cut.
// Escape sequences are preserved and not counted.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return ansi.Truncate("...", maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// FormatEntryCount renders "1 entry" / "n entries".
func FormatEntryCount(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}
