package engine

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/anatolykoptev/go-kit/strutil"
)

// UserAgentChrome is the realistic browser user-agent sent with page fetches.
const UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// LogTitle caps a title for log output. Safe for UTF-8.
func LogTitle(s string) string {
	return strutil.TruncateWith(s, 80, "…")
}

// SlugFilename converts a video title into a filesystem-safe file stem:
// lowercased, runs of non-letter-digit characters collapsed to single
// underscores.
func SlugFilename(title string) string {
	var b strings.Builder
	prevSep := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSep = false
		} else if !prevSep {
			b.WriteByte('_')
			prevSep = true
		}
	}
	slug := strings.TrimRight(b.String(), "_")
	if slug == "" {
		return "transcricao"
	}
	return slug
}

// FormatTimestamp renders whole seconds as zero-padded MM:SS, switching
// to HH:MM:SS only when the mark reaches an hour.
func FormatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
