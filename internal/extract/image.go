package extract

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	mdImageRe = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
	schemeRe  = regexp.MustCompile(`(?i)^https?://`)
	imgElemRe = regexp.MustCompile(`(?i)<img\b[^>]*>`)
)

// FirstImage returns the first acceptable image, Markdown syntax first and
// then HTML <img> tags, or "" when there is none.
func FirstImage(text, base string) string {
	for _, m := range mdImageRe.FindAllStringSubmatch(text, -1) {
		if u := accept(m[1], base); u != "" {
			return u
		}
	}
	for _, src := range htmlImageSources(text) {
		if u := accept(src, base); u != "" {
			return u
		}
	}
	return ""
}

func accept(raw, base string) string {
	u := Normalize(raw, base)
	if u == "" || IsBadge(u) || !IsImageish(u) {
		return ""
	}
	return u
}

// htmlImageSources lists src attributes of <img> tags in document order.
// Each tag is tokenized on its own so raw-text elements mentioned in prose,
// such as an unclosed <textarea>, cannot hide later images.
func htmlImageSources(text string) []string {
	var out []string
	for _, tag := range imgElemRe.FindAllString(text, -1) {
		if src := imgSource(tag); src != "" {
			out = append(out, src)
		}
	}
	return out
}

func imgSource(tag string) string {
	z := html.NewTokenizer(strings.NewReader(tag))
	tt := z.Next()
	if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
		return ""
	}
	name, hasAttr := z.TagName()
	if atom.Lookup(name) != atom.Img || !hasAttr {
		return ""
	}
	for {
		key, val, more := z.TagAttr()
		if string(key) == "src" && len(val) > 0 {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}

// Normalize turns an image reference into an absolute URL. Relative paths
// resolve against base, GitHub blob views become raw links and GitHub asset
// links get the raw marker.
func Normalize(raw, base string) string {
	u := strings.TrimSpace(raw)
	if strings.HasPrefix(u, "<") {
		u = strings.TrimPrefix(u, "<")
		if i := strings.Index(u, ">"); i >= 0 {
			u = u[:i]
		}
	} else if fields := strings.Fields(u); len(fields) > 0 {
		// ![alt](path "title")
		u = fields[0]
	}
	if u == "" {
		return ""
	}

	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}
	if !schemeRe.MatchString(u) {
		return resolveRelative(u, base)
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return u
	}
	if strings.EqualFold(parsed.Hostname(), "github.com") {
		switch {
		case strings.Contains(parsed.Path, "/blob/"):
			parsed.Path = strings.Replace(parsed.Path, "/blob/", "/raw/", 1)
			parsed.RawPath = ""
			parsed.RawQuery = ""
		case strings.Contains(parsed.Path, "/assets/"):
			q := parsed.Query()
			if !q.Has("raw") {
				q.Set("raw", "1")
				parsed.RawQuery = q.Encode()
			}
		}
	}
	return parsed.String()
}

// resolveRelative treats both "./x" and "/x" as relative to the README folder.
func resolveRelative(ref, base string) string {
	ref = strings.TrimLeft(strings.TrimPrefix(ref, "./"), "/")
	baseURL, err := url.Parse(base)
	if err != nil || base == "" {
		return base + ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return base + ref
	}
	return baseURL.ResolveReference(refURL).String()
}
