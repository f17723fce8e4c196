package readme

import (
	"fmt"

	"github.com/thep200/github-showcase/cfg"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
	"github.com/thep200/github-showcase/pkg/log"
)

// FactoryResolver picks the resolver named by the readme strategy flag.
func FactoryResolver(strategy string, logger log.Logger, config *cfg.Config, fetcher *githubapi.Fetcher) (Resolver, error) {
	switch strategy {
	case "", cfg.ReadmeStrategyFast:
		return NewFastResolver(logger, config, fetcher), nil
	case cfg.ReadmeStrategyApi:
		return NewApiResolver(logger, config, fetcher), nil
	default:
		return nil, fmt.Errorf("[ERROR] Unsupported readme strategy: %s", strategy)
	}
}
