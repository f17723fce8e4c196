package readme

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/thep200/github-showcase/cfg"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
	"github.com/thep200/github-showcase/pkg/log"
)

// ApiResolver asks the contents endpoint, which already knows the README name
// on the default branch. Only the master fallback needs an explicit ref.
type ApiResolver struct {
	Logger  log.Logger
	Config  *cfg.Config
	Fetcher *githubapi.Fetcher
}

func NewApiResolver(logger log.Logger, config *cfg.Config, fetcher *githubapi.Fetcher) *ApiResolver {
	return &ApiResolver{Logger: logger, Config: config, Fetcher: fetcher}
}

func (r *ApiResolver) Resolve(ctx context.Context, owner string, repo githubapi.Repository) (*Readme, error) {
	attempts := make([]attempt, 0, 2)
	for i, branch := range branches(repo) {
		ref := branch
		if i == 0 && repo.DefaultBranch == "" {
			ref = ""
		}
		attempts = append(attempts, r.contentsAttempt(owner, repo.Name, ref))
	}
	return firstOf(ctx, r.Logger, attempts)
}

func (r *ApiResolver) contentsAttempt(owner, repo, ref string) attempt {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/readme",
		strings.TrimRight(r.Config.GithubApi.ApiUrl, "/"), url.PathEscape(owner), url.PathEscape(repo))
	if ref != "" {
		endpoint += "?ref=" + url.QueryEscape(ref)
	}

	return func(ctx context.Context) (*Readme, error) {
		resp, err := r.Fetcher.Request(ctx, endpoint, githubapi.RequestOptions{}, r.Config.ContentTimeout())
		if err != nil {
			return nil, err
		}
		content, err := githubapi.DecodeReadme(resp.Body)
		if err != nil {
			return nil, err
		}
		if content.Encoding != "base64" {
			return nil, fmt.Errorf("unsupported readme encoding %q", content.Encoding)
		}
		text, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("cannot decode readme of %s/%s: %w", owner, repo, err)
		}
		base := content.DownloadURL
		if i := strings.LastIndex(base, "/"); i >= 0 {
			base = base[:i+1]
		}
		return &Readme{Text: string(text), Base: base}, nil
	}
}
