package showcase

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/thep200/github-showcase/internal/extract"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
)

const (
	noDescription = "No description."
	maxTags       = 5
)

// Card is one rendered repository.
type Card struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Homepage    string   `json:"homepage,omitempty"`
	Image       string   `json:"img,omitempty"`
	Text        string   `json:"text"`
	Meta        string   `json:"meta"`
	Stars       int      `json:"stars"`
	Language    string   `json:"language,omitempty"`
	Tags        []string `json:"tags"`
	Placeholder bool     `json:"placeholder"`
}

// NewCard builds the populated card for repo from its README extraction.
func NewCard(repo githubapi.Repository, ext extract.Result, now time.Time) Card {
	c := baseCard(repo, now)
	c.Image = ext.Image
	switch {
	case ext.Excerpt != "":
		c.Text = ext.Excerpt
	case repo.Description != "":
		c.Text = repo.Description
	default:
		c.Text = noDescription
	}
	return c
}

// Placeholder is the card shown before the README arrives.
func Placeholder(repo githubapi.Repository, now time.Time) Card {
	c := baseCard(repo, now)
	c.Text = repo.Description
	c.Placeholder = true
	return c
}

func baseCard(repo githubapi.Repository, now time.Time) Card {
	return Card{
		Name:     repo.Name,
		URL:      repo.HTMLURL,
		Homepage: repo.Homepage,
		Stars:    repo.StargazersCount,
		Language: repo.Language,
		Meta:     MetaLine(repo, now),
		Tags:     extract.Tags(repo.Description, repo.Topics, maxTags),
	}
}

// MetaLine renders "★ 1.2k · Go · Updated 3d ago".
func MetaLine(repo githubapi.Repository, now time.Time) string {
	parts := []string{"★ " + FormatNum(repo.StargazersCount)}
	if repo.Language != "" {
		parts = append(parts, repo.Language)
	}
	parts = append(parts, "Updated "+TimeAgo(repo.PushedTime(), now))
	return strings.Join(parts, " · ")
}

// FormatNum abbreviates n with one decimal, e.g. 1.2k or 3M.
func FormatNum(n int) string {
	switch {
	case n >= 1_000_000:
		return compact(float64(n)/1e6) + "M"
	case n >= 1_000:
		return compact(float64(n)/1e3) + "k"
	default:
		return strconv.Itoa(n)
	}
}

func compact(v float64) string {
	s := strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

var ageUnits = []struct {
	seconds int64
	suffix  string
}{
	{31536000, "yr"},
	{2592000, "mo"},
	{604800, "w"},
	{86400, "d"},
	{3600, "h"},
	{60, "m"},
	{1, "s"},
}

// TimeAgo renders the age of t in its largest whole unit.
func TimeAgo(t, now time.Time) string {
	secs := int64(now.Sub(t) / time.Second)
	for _, u := range ageUnits {
		if v := secs / u.seconds; v >= 1 {
			return fmt.Sprintf("%d%s ago", v, u.suffix)
		}
	}
	return "just now"
}
