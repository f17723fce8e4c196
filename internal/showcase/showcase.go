// Package showcase wires the loader, README resolver and extractor into the
// rails and cards a presentation layer renders.
package showcase

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/catalog"
	"github.com/thep200/github-showcase/internal/extract"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
	"github.com/thep200/github-showcase/internal/readme"
	"github.com/thep200/github-showcase/internal/spotlight"
	"github.com/thep200/github-showcase/pkg/log"
)

// LoadFailedMessage is the single user-facing message when the catalog
// cannot be built.
const LoadFailedMessage = "Failed to load GitHub data."

const (
	defaultFeaturedTitle  = "Featured"
	defaultSpotlightTitle = "Spotlight"
)

// Data is everything the account and repository calls return.
type Data struct {
	Account *githubapi.Account     `json:"account"`
	Repos   []githubapi.Repository `json:"repos"`
}

// Stats counts repositories and stars.
func (d *Data) Stats() catalog.Stats {
	return catalog.Summarize(d.Repos)
}

// Rail is one titled row of cards.
type Rail struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Featured    bool                   `json:"featured"`
	Repos       []githubapi.Repository `json:"-"`
}

// Update replaces the card at Index of a rail.
type Update struct {
	Index int
	Card  Card
}

type Showcase struct {
	Logger   log.Logger
	Config   *cfg.Config
	Loader   *githubapi.Loader
	Resolver readme.Resolver
	Cache    githubapi.Cache
	now      func() time.Time
}

func NewShowcase(logger log.Logger, config *cfg.Config, loader *githubapi.Loader, resolver readme.Resolver, cache githubapi.Cache) *Showcase {
	return &Showcase{
		Logger:   logger,
		Config:   config,
		Loader:   loader,
		Resolver: resolver,
		Cache:    cache,
		now:      time.Now,
	}
}

func (s *Showcase) account() string {
	return s.Config.Showcase.Username
}

// Load fetches the account and its repositories together. Either failure
// fails the whole load.
func (s *Showcase) Load(ctx context.Context) (*Data, error) {
	ctx = log.WithComponent(ctx, "showcase")
	data := &Data{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		account, err := s.Loader.LoadAccount(gctx, s.account())
		data.Account = account
		return err
	})
	g.Go(func() error {
		repos, err := s.Loader.LoadRepositories(gctx, s.account())
		data.Repos = repos
		return err
	})
	if err := g.Wait(); err != nil {
		s.Logger.Error(ctx, "Cannot load %s: %v", s.account(), err)
		return nil, err
	}
	return data, nil
}

// Rails returns the featured rail followed by every spotlight that selects
// at least one repository.
func (s *Showcase) Rails(data *Data) []Rail {
	featured := s.Config.Showcase.Featured
	rails := []Rail{{
		Title:       titleOr(featured.Title, defaultFeaturedTitle),
		Description: featured.Description,
		Featured:    true,
		Repos:       spotlight.Featured(featured, data.Repos),
	}}

	for _, spec := range s.Config.Showcase.Spotlights {
		repos := spotlight.Resolve(spec, data.Repos)
		if len(repos) == 0 {
			continue
		}
		rails = append(rails, Rail{
			Title:       titleOr(spec.Title, defaultSpotlightTitle),
			Description: spec.Description,
			Repos:       repos,
		})
	}
	return rails
}

func titleOr(title, fallback string) string {
	if title == "" {
		return fallback
	}
	return title
}

// Enrich returns the preview image and excerpt of repo. It never fails: a
// repository whose README cannot be read gets an empty result. Results are
// cached, except when the README could not be reached at all.
func (s *Showcase) Enrich(ctx context.Context, repo githubapi.Repository) extract.Result {
	key := "readme_fast:" + s.account() + "/" + repo.Name
	var result extract.Result
	if s.Cache.Get(ctx, key, &result) {
		return result
	}

	doc, err := s.Resolver.Resolve(ctx, s.account(), repo)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.Logger.Warn(ctx, "No README for %s: %v", repo.Name, err)
		}
		return extract.Result{}
	}
	if doc != nil {
		result = extract.Extract(doc.Text, doc.Base)
	}
	s.Cache.Put(ctx, key, result)
	return result
}

// Card enriches repo and renders it.
func (s *Showcase) Card(ctx context.Context, repo githubapi.Repository) Card {
	return NewCard(repo, s.Enrich(ctx, repo), s.now())
}

// Stream emits a placeholder for every repository first, then one populated
// card per repository as soon as its own README is processed. Populated
// cards arrive in completion order. The channel is closed when all are done.
func (s *Showcase) Stream(ctx context.Context, repos []githubapi.Repository) <-chan Update {
	updates := make(chan Update, 2*len(repos))
	now := s.now()
	for i, repo := range repos {
		updates <- Update{Index: i, Card: Placeholder(repo, now)}
	}

	var wg sync.WaitGroup
	for i, repo := range repos {
		wg.Add(1)
		go func(i int, repo githubapi.Repository) {
			defer wg.Done()
			updates <- Update{Index: i, Card: s.Card(ctx, repo)}
		}(i, repo)
	}
	go func() {
		wg.Wait()
		close(updates)
	}()
	return updates
}

// Cards renders every repository of a rail and returns them in rail order.
func (s *Showcase) Cards(ctx context.Context, repos []githubapi.Repository) []Card {
	cards := make([]Card, len(repos))
	for u := range s.Stream(ctx, repos) {
		cards[u.Index] = u.Card
	}
	return cards
}
