package quote

import (
	"fmt"
	"strings"
	"time"
)

const fallbackStem = "견적서"

// DateLabel formats the quote date for display inside the document.
func DateLabel(d time.Time) string { return d.Format("2006.01.02") }

// FileDateLabel formats the quote date for filenames, e.g. 08월05일.
func FileDateLabel(d time.Time) string {
	if d.IsZero() {
		d = time.Now()
	}
	return fmt.Sprintf("%02d월%02d일", int(d.Month()), d.Day())
}

// BuildFileStem derives the artifact filename stem from the raw recipient
// name and the quote date.
func BuildFileStem(recipient string, d time.Time) string {
	base := fallbackStem
	if label := strings.TrimSpace(recipient); label != "" {
		base = label + "귀하"
	}
	return SanitizeFilename(base + FileDateLabel(d))
}

var illegalChars = strings.NewReplacer(
	`\`, "_", "/", "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// SanitizeFilename strips filesystem-illegal characters and all whitespace.
func SanitizeFilename(s string) string {
	s = illegalChars.Replace(s)
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return fallbackStem
	}
	return s
}
