package extract

import (
	"regexp"
	"strings"
)

var (
	fenceRe     = regexp.MustCompile("(?s)```.*?```")
	lineSplitRe = regexp.MustCompile(`\r?\n`)
	blockTagRe  = regexp.MustCompile(`(?i)^<(?:img|p|div|center|h\d|br|hr)\b`)
	imgTagRe    = regexp.MustCompile(`(?i)<img[^>]*>`)
	anyTagRe    = regexp.MustCompile(`<[^>]+>`)
	mdLinkRe    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	codeSpanRe  = regexp.MustCompile("`([^`]+)`")
	spaceRe     = regexp.MustCompile(`\s+`)
)

// Excerpt returns the first line of README prose with markup removed, or "".
func Excerpt(text string) string {
	text = fenceRe.ReplaceAllString(text, "\n")

	for _, raw := range lineSplitRe.Split(text, -1) {
		s := strings.TrimSpace(raw)
		if s == "" || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "![") || blockTagRe.MatchString(s) {
			continue
		}

		s = Clean(s)
		if IsBadge(raw) || IsBadge(s) {
			continue
		}
		if s != "" {
			return truncate(s, MaxExcerpt)
		}
	}
	return ""
}

// Clean strips HTML tags, Markdown images, link targets and code ticks from
// one line and collapses whitespace.
func Clean(s string) string {
	s = imgTagRe.ReplaceAllString(s, "")
	s = anyTagRe.ReplaceAllString(s, "")
	s = mdImageRe.ReplaceAllString(s, "")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = codeSpanRe.ReplaceAllString(s, "$1")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "…"
}
