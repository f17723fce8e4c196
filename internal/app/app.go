// Package app assembles the pipeline from a loaded config. Commands share it.
package app

import (
	"errors"
	"fmt"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/cache"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
	"github.com/thep200/github-showcase/internal/readme"
	"github.com/thep200/github-showcase/internal/showcase"
	"github.com/thep200/github-showcase/pkg/log"
)

type App struct {
	Logger   log.Logger
	Config   *cfg.Config
	Cache    *cache.Cache
	Fetcher  *githubapi.Fetcher
	Loader   *githubapi.Loader
	Resolver readme.Resolver
	Showcase *showcase.Showcase
	closers  []func() error
}

func New(logger log.Logger, config *cfg.Config) (*App, error) {
	store, closeStore, err := cache.OpenStore(config)
	if err != nil {
		return nil, fmt.Errorf("cannot open cache store: %w", err)
	}
	c := cache.New(store, config.CacheTTL(), logger)

	fetcher := githubapi.NewFetcher(logger, config, nil)
	resolver, err := readme.FactoryResolver(config.Showcase.ReadmeStrategy, logger, config, fetcher)
	if err != nil {
		closeStore()
		return nil, err
	}
	loader := githubapi.NewLoader(logger, config, fetcher, c)

	return &App{
		Logger:   logger,
		Config:   config,
		Cache:    c,
		Fetcher:  fetcher,
		Loader:   loader,
		Resolver: resolver,
		Showcase: showcase.NewShowcase(logger, config, loader, resolver, c),
		closers:  []func() error{closeStore},
	}, nil
}

// OnClose registers f to run on Close, last registered first.
func (a *App) OnClose(f func() error) {
	a.closers = append(a.closers, f)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
