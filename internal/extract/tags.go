package extract

import (
	"regexp"
	"strings"
)

var (
	bracketTagRe = regexp.MustCompile(`\[([^\]]{1,24})\]`)
	hashTagRe    = regexp.MustCompile(`(^|\s)#([A-Za-z0-9][A-Za-z0-9+_.-]{0,23})\b`)
	alnumRe      = regexp.MustCompile(`[A-Za-z0-9]`)

	notTags = map[string]bool{"wip": true, "archived": true, "deprecated": true, "beta": true, "alpha": true}
)

// DescriptionTags finds [tag] and #tag markers in a repository description.
func DescriptionTags(desc string) []string {
	if desc == "" {
		return nil
	}
	var out []string
	for _, m := range bracketTagRe.FindAllStringSubmatch(desc, -1) {
		tag := strings.TrimSpace(m[1])
		if !notTags[strings.ToLower(tag)] && alnumRe.MatchString(tag) {
			out = append(out, tag)
		}
	}
	for _, m := range hashTagRe.FindAllStringSubmatch(desc, -1) {
		out = append(out, m[2])
	}
	return out
}

// Tags merges description tags and topics, description first, dropping
// case-insensitive duplicates, up to limit entries.
func Tags(desc string, topics []string, limit int) []string {
	if len(topics) > limit+5 {
		topics = topics[:limit+5]
	}
	seen := make(map[string]bool)
	merged := make([]string, 0, limit)
	for _, t := range append(DescriptionTags(desc), topics...) {
		if len(merged) >= limit {
			break
		}
		k := strings.ToLower(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		merged = append(merged, t)
	}
	return merged
}
