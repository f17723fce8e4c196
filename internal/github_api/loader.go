package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/pkg/log"
)

// Cache is the subset of the cache layer the loader needs.
type Cache interface {
	Get(ctx context.Context, key string, out any) bool
	Put(ctx context.Context, key string, value any)
}

const reposPerPage = 100

type Loader struct {
	Logger  log.Logger
	Config  *cfg.Config
	Fetcher *Fetcher
	Cache   Cache
}

func NewLoader(logger log.Logger, config *cfg.Config, fetcher *Fetcher, cache Cache) *Loader {
	return &Loader{
		Logger:  logger,
		Config:  config,
		Fetcher: fetcher,
		Cache:   cache,
	}
}

func (l *Loader) apiURL(path string) string {
	return strings.TrimRight(l.Config.GithubApi.ApiUrl, "/") + path
}

// LoadAccount returns the profile of name, from cache when fresh.
func (l *Loader) LoadAccount(ctx context.Context, name string) (*Account, error) {
	key := "user:" + name
	account := &Account{}
	if l.Cache.Get(ctx, key, account) {
		return account, nil
	}
	account = &Account{}

	resp, err := l.Fetcher.Request(ctx, l.apiURL("/users/"+url.PathEscape(name)), RequestOptions{}, l.Config.MetadataTimeout())
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resp.Body, account); err != nil {
		return nil, fmt.Errorf("cannot decode account %s: %w", name, err)
	}

	l.Cache.Put(ctx, key, account)
	return account, nil
}

// LoadRepositories returns up to 100 owned repositories ordered by stars,
// highest first. Ties keep the server order.
func (l *Loader) LoadRepositories(ctx context.Context, name string) ([]Repository, error) {
	key := "repos:" + name
	var repos []Repository
	if l.Cache.Get(ctx, key, &repos) {
		return repos, nil
	}

	path := fmt.Sprintf("/users/%s/repos?per_page=%d&type=owner&sort=updated", url.PathEscape(name), reposPerPage)
	resp, err := l.Fetcher.Request(ctx, l.apiURL(path), RequestOptions{}, l.Config.MetadataTimeout())
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resp.Body, &repos); err != nil {
		return nil, fmt.Errorf("cannot decode repositories of %s: %w", name, err)
	}

	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].StargazersCount > repos[j].StargazersCount
	})
	l.Logger.Info(ctx, "Loaded %d repositories of %s", len(repos), name)

	l.Cache.Put(ctx, key, repos)
	return repos, nil
}
