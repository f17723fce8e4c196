package showcase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/cache"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
	"github.com/thep200/github-showcase/internal/readme"
	"github.com/thep200/github-showcase/pkg/log"
)

const reposJSON = `[
	{"name":"gopher-tool","language":"Go","stargazers_count":3,"pushed_at":"2024-05-01T00:00:00Z","default_branch":"main","description":"[cli] small tool"},
	{"name":"Spoon-Knife","language":"HTML","stargazers_count":12,"pushed_at":"2024-01-01T00:00:00Z","description":"Fork me"},
	{"name":"Hello-World","language":"Go","stargazers_count":2500,"pushed_at":"2023-01-01T00:00:00Z","html_url":"https://github.com/octocat/Hello-World"},
	{"name":"flaky","language":"Go","stargazers_count":0,"pushed_at":"2024-02-01T00:00:00Z","default_branch":"master"}
]`

type fakeGitHub struct {
	mu       sync.Mutex
	hits     map[string]int
	failRepo bool
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.mu.Unlock()

	switch r.URL.Path {
	case "/users/octocat":
		w.Write([]byte(`{"login":"octocat","name":"The Octocat"}`))
	case "/users/octocat/repos":
		if f.failRepo {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(reposJSON))
	case "/octocat/Hello-World/main/README.md":
		w.Write([]byte("# Hello\n![ci](https://img.shields.io/badge/ok.svg)\n![shot](docs/shot.png)\nMy first repository."))
	case "/octocat/flaky/master/README.md":
		<-r.Context().Done()
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeGitHub) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for path, c := range f.hits {
		if strings.HasPrefix(path, prefix) {
			n += c
		}
	}
	return n
}

func newShowcase(t *testing.T, fake *fakeGitHub) (*Showcase, *httptest.Server) {
	t.Helper()
	fake.hits = map[string]int{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	config, err := (&cfg.MockLoader{ApiUrl: srv.URL, RawUrl: srv.URL}).Load()
	require.NoError(t, err)
	config.GithubApi.ContentTimeoutMs = 50

	c := cache.New(cache.NewMemoryStore(), config.CacheTTL(), log.Nop{})
	fetcher := githubapi.NewFetcher(log.Nop{}, config, nil)
	loader := githubapi.NewLoader(log.Nop{}, config, fetcher, c)
	resolver, err := readme.FactoryResolver(config.Showcase.ReadmeStrategy, log.Nop{}, config, fetcher)
	require.NoError(t, err)

	s := NewShowcase(log.Nop{}, config, loader, resolver, c)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return s, srv
}

func railNames(r Rail) []string {
	out := make([]string, 0, len(r.Repos))
	for _, repo := range r.Repos {
		out = append(out, repo.Name)
	}
	return out
}

func TestShowcase_LoadAndRails(t *testing.T) {
	s, _ := newShowcase(t, &fakeGitHub{})
	data, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "The Octocat", data.Account.DisplayName())
	assert.Len(t, data.Repos, 4)
	assert.Equal(t, 2515, data.Stats().Stars)

	rails := s.Rails(data)
	require.Len(t, rails, 2)
	assert.True(t, rails[0].Featured)
	assert.Equal(t, []string{"Hello-World", "Spoon-Knife"}, railNames(rails[0]), "featured keeps star order")
	assert.Equal(t, "Go", rails[1].Title)
	assert.Equal(t, []string{"gopher-tool", "Hello-World"}, railNames(rails[1]))
}

func TestShowcase_RailsSkipEmptySpotlights(t *testing.T) {
	s, _ := newShowcase(t, &fakeGitHub{})
	s.Config.Showcase.Featured = cfg.Spotlight{}
	s.Config.Showcase.Spotlights = []cfg.Spotlight{
		{Title: "Nothing"},
		{Repos: []string{"gone"}},
		{Repos: []string{"flaky"}},
	}
	data, err := s.Load(context.Background())
	require.NoError(t, err)

	rails := s.Rails(data)
	require.Len(t, rails, 2)
	assert.Equal(t, "Featured", rails[0].Title)
	assert.Empty(t, rails[0].Repos)
	assert.Equal(t, "Spotlight", rails[1].Title)
}

func TestShowcase_LoadFailure(t *testing.T) {
	s, _ := newShowcase(t, &fakeGitHub{failRepo: true})
	data, err := s.Load(context.Background())
	assert.Nil(t, data)
	var remoteErr *githubapi.RemoteError
	assert.ErrorAs(t, err, &remoteErr)
}

func TestShowcase_EnrichCaches(t *testing.T) {
	fake := &fakeGitHub{}
	s, srv := newShowcase(t, fake)
	ctx := context.Background()
	repo := githubapi.Repository{Name: "Hello-World"}

	got := s.Enrich(ctx, repo)
	assert.Equal(t, srv.URL+"/octocat/Hello-World/main/docs/shot.png", got.Image)
	assert.Equal(t, "My first repository.", got.Excerpt)

	before := fake.count("/octocat/")
	assert.Equal(t, got, s.Enrich(ctx, repo))
	assert.Equal(t, before, fake.count("/octocat/"))
}

func TestShowcase_EnrichMissingReadmeIsCached(t *testing.T) {
	fake := &fakeGitHub{}
	s, _ := newShowcase(t, fake)
	ctx := context.Background()
	repo := githubapi.Repository{Name: "Spoon-Knife"}

	assert.Zero(t, s.Enrich(ctx, repo))
	probes := fake.count("/octocat/Spoon-Knife/")
	assert.Equal(t, 2*len(readme.Filenames), probes)

	s.Enrich(ctx, repo)
	assert.Equal(t, probes, fake.count("/octocat/Spoon-Knife/"))
}

func TestShowcase_EnrichTimeoutIsNotCached(t *testing.T) {
	fake := &fakeGitHub{}
	s, _ := newShowcase(t, fake)
	ctx := context.Background()
	repo := githubapi.Repository{Name: "flaky", DefaultBranch: "master"}

	assert.Zero(t, s.Enrich(ctx, repo))
	first := fake.count("/octocat/flaky/")
	s.Enrich(ctx, repo)
	assert.Greater(t, fake.count("/octocat/flaky/"), first)
}

func TestShowcase_Stream(t *testing.T) {
	s, _ := newShowcase(t, &fakeGitHub{})
	data, err := s.Load(context.Background())
	require.NoError(t, err)

	var updates []Update
	for u := range s.Stream(context.Background(), data.Repos) {
		updates = append(updates, u)
	}
	require.Len(t, updates, 2*len(data.Repos))

	for i, u := range updates[:len(data.Repos)] {
		assert.True(t, u.Card.Placeholder)
		assert.Equal(t, i, u.Index)
	}
	seen := map[int]bool{}
	for _, u := range updates[len(data.Repos):] {
		assert.False(t, u.Card.Placeholder)
		seen[u.Index] = true
	}
	assert.Len(t, seen, len(data.Repos))
}

func TestShowcase_Cards(t *testing.T) {
	s, srv := newShowcase(t, &fakeGitHub{})
	data, err := s.Load(context.Background())
	require.NoError(t, err)

	cards := s.Cards(context.Background(), data.Repos)
	require.Len(t, cards, 4)
	assert.Equal(t, "Hello-World", cards[0].Name)
	assert.Equal(t, srv.URL+"/octocat/Hello-World/main/docs/shot.png", cards[0].Image)
	assert.Equal(t, "My first repository.", cards[0].Text)
	assert.Equal(t, "Fork me", cards[1].Text, "description when README is missing")
	assert.Equal(t, "No description.", cards[3].Text)
	assert.Equal(t, []string{"cli"}, cards[2].Tags)
}
