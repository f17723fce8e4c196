// Package readme finds a repository's README by trying conventional filenames
// on the default branch and then on master. Attempts run one at a time and the
// first success wins.
package readme

import (
	"context"
	"errors"

	githubapi "github.com/thep200/github-showcase/internal/github_api"
	"github.com/thep200/github-showcase/pkg/log"
)

// Filenames is the probe order.
var Filenames = []string{"README.md", "Readme.md", "README.MD", "README", "index.md"}

const (
	defaultBranch  = "main"
	fallbackBranch = "master"
)

// Readme is the raw document and the URL relative links resolve against.
type Readme struct {
	Text string
	Base string
}

// Resolver returns (nil, nil) when the repository has no reachable README.
type Resolver interface {
	Resolve(ctx context.Context, owner string, repo githubapi.Repository) (*Readme, error)
}

// attempt fetches one candidate. A nil Readme with nil error means "not here".
type attempt func(ctx context.Context) (*Readme, error)

// firstOf runs attempts in order and stops at the first README. When nothing
// is found it returns the last transport failure, if any, so callers can tell
// a real absence from a flaky network.
func firstOf(ctx context.Context, logger log.Logger, attempts []attempt) (*Readme, error) {
	var transportErr error
	for _, try := range attempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := try(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			var remoteErr *githubapi.RemoteError
			if !errors.As(err, &remoteErr) {
				transportErr = err
			}
			logger.Debug(ctx, "readme attempt failed: %v", err)
			continue
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, transportErr
}

// branches lists the branches to probe for repo, default branch first.
func branches(repo githubapi.Repository) []string {
	branch := repo.DefaultBranch
	if branch == "" {
		branch = defaultBranch
	}
	if branch == fallbackBranch {
		return []string{branch}
	}
	return []string{branch, fallbackBranch}
}
