package readme

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/thep200/github-showcase/cfg"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
	"github.com/thep200/github-showcase/pkg/log"
)

// FastResolver probes the raw content host directly, anonymously.
type FastResolver struct {
	Logger  log.Logger
	Config  *cfg.Config
	Fetcher *githubapi.Fetcher
}

func NewFastResolver(logger log.Logger, config *cfg.Config, fetcher *githubapi.Fetcher) *FastResolver {
	return &FastResolver{Logger: logger, Config: config, Fetcher: fetcher}
}

func (r *FastResolver) Resolve(ctx context.Context, owner string, repo githubapi.Repository) (*Readme, error) {
	attempts := make([]attempt, 0, len(Filenames)*2)
	for _, branch := range branches(repo) {
		for _, name := range Filenames {
			attempts = append(attempts, r.rawAttempt(owner, repo.Name, branch, name))
		}
	}
	return firstOf(ctx, r.Logger, attempts)
}

func (r *FastResolver) rawAttempt(owner, repo, branch, name string) attempt {
	base := fmt.Sprintf("%s/%s/%s/%s/",
		strings.TrimRight(r.Config.GithubApi.RawUrl, "/"),
		url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(branch))
	rawURL := base + url.PathEscape(name)

	return func(ctx context.Context) (*Readme, error) {
		resp, err := r.Fetcher.Request(ctx, rawURL, githubapi.RequestOptions{}, r.Config.ContentTimeout())
		if err != nil {
			return nil, err
		}
		return &Readme{Text: string(resp.Body), Base: base}, nil
	}
}
