// Package spotlight resolves declarative rail selections against the live
// repository set.
package spotlight

import (
	"sort"
	"strings"

	"github.com/thep200/github-showcase/cfg"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
)

// Resolve returns the repositories selected by spec: the union of the named
// ones that still exist and the ones matching the filter, newest push first,
// capped at spec.Limit when positive. A spec with neither part selects
// nothing.
func Resolve(spec cfg.Spotlight, repos []githubapi.Repository) []githubapi.Repository {
	names := explicitNames(spec.Repos)
	hasFilter := !spec.Filter.IsEmpty()
	if len(names) == 0 && !hasFilter {
		return []githubapi.Repository{}
	}

	seen := make(map[string]bool, len(repos))
	out := make([]githubapi.Repository, 0)
	for _, repo := range repos {
		if seen[repo.Name] {
			continue
		}
		if names[repo.Name] || (hasFilter && Matches(spec.Filter, repo)) {
			seen[repo.Name] = true
			out = append(out, repo)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PushedTime().After(out[j].PushedTime())
	})
	if spec.Limit > 0 && len(out) > spec.Limit {
		out = out[:spec.Limit]
	}
	return out
}

// Featured returns the explicitly named repositories in catalog order.
// Names that no longer exist are dropped.
func Featured(spec cfg.Spotlight, repos []githubapi.Repository) []githubapi.Repository {
	names := explicitNames(spec.Repos)
	out := make([]githubapi.Repository, 0, len(names))
	for _, repo := range repos {
		if names[repo.Name] {
			out = append(out, repo)
			delete(names, repo.Name)
		}
	}
	return out
}

// Matches reports whether repo satisfies every set field of f and is not
// vetoed by its exclusion rules. A nil filter matches everything.
func Matches(f *cfg.Filter, repo githubapi.Repository) bool {
	if f == nil {
		return true
	}
	if len(f.Language) > 0 && !contains(f.Language, repo.Language) {
		return false
	}
	if f.StarsMin != nil && repo.StargazersCount < *f.StarsMin {
		return false
	}
	if len(f.Topics) > 0 && !overlaps(f.Topics, repo.Topics) {
		return false
	}
	if f.Exclude != nil {
		if contains(f.Exclude.Names, repo.Name) || overlaps(f.Exclude.Topics, repo.Topics) {
			return false
		}
	}
	return true
}

func explicitNames(list []string) map[string]bool {
	names := make(map[string]bool, len(list))
	for _, n := range list {
		if n = strings.TrimSpace(n); n != "" {
			names[n] = true
		}
	}
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	for _, v := range b {
		if contains(a, v) {
			return true
		}
	}
	return false
}
