// Package catalog implements search, language filtering and sorting over the
// full repository grid.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	githubapi "github.com/thep200/github-showcase/internal/github_api"
)

const (
	SortStars   = "stars"
	SortUpdated = "updated"
	SortName    = "name"
)

// Query is what the grid controls send. Zero values do not filter.
type Query struct {
	Text     string
	Language string
	Sort     string
}

// Terms splits the search text into lower-cased terms.
func (q Query) Terms() []string {
	return strings.Fields(strings.ToLower(q.Text))
}

// Matches reports whether repo passes the text and language parts of q.
func Matches(q Query, repo githubapi.Repository) bool {
	if q.Language != "" && repo.Language != q.Language {
		return false
	}
	name := strings.ToLower(repo.Name)
	desc := strings.ToLower(repo.Description)
	for _, term := range q.Terms() {
		if !strings.Contains(name, term) && !strings.Contains(desc, term) {
			return false
		}
	}
	return true
}

// Apply returns a new slice with the repositories matching q, sorted by
// q.Sort. Unknown sort keys sort by stars.
func Apply(repos []githubapi.Repository, q Query) []githubapi.Repository {
	out := make([]githubapi.Repository, 0, len(repos))
	for _, repo := range repos {
		if Matches(q, repo) {
			out = append(out, repo)
		}
	}
	Sort(out, q.Sort)
	return out
}

// Sort orders repos in place.
// Names always compare by collation, including as a tie-break.
func Sort(repos []githubapi.Repository, mode string) {
	c := collate.New(language.Und)
	byName := func(a, b githubapi.Repository) bool {
		return c.CompareString(a.Name, b.Name) < 0
	}

	switch mode {
	case SortName:
		sort.SliceStable(repos, func(i, j int) bool {
			return byName(repos[i], repos[j])
		})
	case SortUpdated:
		sort.SliceStable(repos, func(i, j int) bool {
			a, b := repos[i], repos[j]
			if pa, pb := a.PushedTime(), b.PushedTime(); !pa.Equal(pb) {
				return pa.After(pb)
			}
			if a.StargazersCount != b.StargazersCount {
				return a.StargazersCount > b.StargazersCount
			}
			return byName(a, b)
		})
	default:
		sort.SliceStable(repos, func(i, j int) bool {
			a, b := repos[i], repos[j]
			if a.StargazersCount != b.StargazersCount {
				return a.StargazersCount > b.StargazersCount
			}
			if pa, pb := a.PushedTime(), b.PushedTime(); !pa.Equal(pb) {
				return pa.After(pb)
			}
			return byName(a, b)
		})
	}
}

// Languages lists the distinct primary languages in repos, sorted.
func Languages(repos []githubapi.Repository) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, repo := range repos {
		if repo.Language == "" || seen[repo.Language] {
			continue
		}
		seen[repo.Language] = true
		out = append(out, repo.Language)
	}
	sort.Strings(out)
	return out
}

type Stats struct {
	Repositories int `json:"repositories"`
	Stars        int `json:"stars"`
}

func Summarize(repos []githubapi.Repository) Stats {
	s := Stats{Repositories: len(repos)}
	for _, repo := range repos {
		s.Stars += repo.StargazersCount
	}
	return s
}
