// Package extract pulls a preview image and a one-line excerpt out of README
// text. It is best effort: anything it cannot read is skipped, never an error.
package extract

import "regexp"

// Result is what a card shows from its README.
type Result struct {
	Image   string `json:"img,omitempty"`
	Excerpt string `json:"excerpt"`
}

// MaxExcerpt is the longest excerpt in runes.
const MaxExcerpt = 220

var (
	badgeRe = regexp.MustCompile(`(?i)shields\.io|badgen\.net|badge|coveralls|travis|circleci|codecov|sonarcloud`)
	imageRe = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|webp|svg)(\?|#|$)`)
	assetRe = regexp.MustCompile(`(?i)user-attachments/assets/|/assets/|user-images\.githubusercontent\.com`)
)

// IsBadge reports whether u looks like a status badge.
func IsBadge(u string) bool {
	return badgeRe.MatchString(u)
}

// IsImageish reports whether u looks like an image worth showing.
func IsImageish(u string) bool {
	return imageRe.MatchString(u) || assetRe.MatchString(u)
}

// Extract runs both extractors over text.
func Extract(text, base string) Result {
	return Result{
		Image:   FirstImage(text, base),
		Excerpt: Excerpt(text),
	}
}
