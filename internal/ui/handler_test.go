package ui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/cache"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
	"github.com/thep200/github-showcase/internal/model"
	"github.com/thep200/github-showcase/internal/readme"
	"github.com/thep200/github-showcase/internal/showcase"
	"github.com/thep200/github-showcase/pkg/log"
)

func fakeGitHub(failRepos bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/octocat":
			w.Write([]byte(`{"login":"octocat","name":"The Octocat"}`))
		case "/users/octocat/repos":
			if failRepos {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`[
				{"name":"Ad-Recommender","description":"LLM CTR scoring","language":"Python","stargazers_count":4,"pushed_at":"2024-03-01T00:00:00Z"},
				{"name":"Hello-World","language":"Go","stargazers_count":9,"pushed_at":"2023-01-01T00:00:00Z"},
				{"name":"go-kit","language":"Go","stargazers_count":2,"pushed_at":"2024-05-01T00:00:00Z"}
			]`))
		case "/octocat/Hello-World/main/README.md":
			w.Write([]byte("# Hello\nA greeting."))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

type fakeArchive struct {
	rows []model.RepoCard
	err  error
	args []interface{}
}

func (a *fakeArchive) Page(_ context.Context, account, search string, page, pageSize int) ([]model.RepoCard, int64, error) {
	a.args = []interface{}{account, search, page, pageSize}
	return a.rows, int64(len(a.rows)), a.err
}

func newTestHandler(t *testing.T, failRepos bool, archive CardArchive) http.Handler {
	t.Helper()
	srv := httptest.NewServer(fakeGitHub(failRepos))
	t.Cleanup(srv.Close)

	config, err := (&cfg.MockLoader{ApiUrl: srv.URL, RawUrl: srv.URL}).Load()
	require.NoError(t, err)
	c := cache.New(cache.NewMemoryStore(), time.Minute, log.Nop{})
	fetcher := githubapi.NewFetcher(log.Nop{}, config, nil)
	resolver, err := readme.FactoryResolver(config.Showcase.ReadmeStrategy, log.Nop{}, config, fetcher)
	require.NoError(t, err)
	sc := showcase.NewShowcase(log.Nop{}, config, githubapi.NewLoader(log.Nop{}, config, fetcher, c), resolver, c)

	return NewHandler(log.Nop{}, config, sc, archive).Routes()
}

func get(t *testing.T, h http.Handler, target string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

func TestHandler_Health(t *testing.T) {
	rec := get(t, newTestHandler(t, false, nil), "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestHandler_Account(t *testing.T) {
	var body struct {
		Account githubapi.Account `json:"account"`
		Stats   struct {
			Repositories int `json:"repositories"`
			Stars        int `json:"stars"`
		} `json:"stats"`
	}
	rec := get(t, newTestHandler(t, false, nil), "/api/account", &body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "octocat", body.Account.Login)
	assert.Equal(t, 3, body.Stats.Repositories)
	assert.Equal(t, 15, body.Stats.Stars)
}

func TestHandler_Repos(t *testing.T) {
	h := newTestHandler(t, false, nil)
	tests := []struct {
		target string
		want   []string
	}{
		{"/api/repos", []string{"Hello-World", "Ad-Recommender", "go-kit"}},
		{"/api/repos?sort=updated", []string{"go-kit", "Ad-Recommender", "Hello-World"}},
		{"/api/repos?lang=Go&sort=name", []string{"go-kit", "Hello-World"}},
		{"/api/repos?q=llm+ctr", []string{"Ad-Recommender"}},
		{"/api/repos?q=llm+xyz", []string{}},
	}
	for _, tt := range tests {
		var repos []githubapi.Repository
		rec := get(t, h, tt.target, &repos)
		assert.Equal(t, http.StatusOK, rec.Code)
		got := make([]string, 0, len(repos))
		for _, r := range repos {
			got = append(got, r.Name)
		}
		assert.Equal(t, tt.want, got, tt.target)
	}
}

func TestHandler_Languages(t *testing.T) {
	var langs []string
	get(t, newTestHandler(t, false, nil), "/api/languages", &langs)
	assert.Equal(t, []string{"Go", "Python"}, langs)
}

func TestHandler_Rails(t *testing.T) {
	var rails []struct {
		Title    string          `json:"title"`
		Featured bool            `json:"featured"`
		Cards    []showcase.Card `json:"cards"`
	}
	rec := get(t, newTestHandler(t, false, nil), "/api/rails", &rails)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rails, 2)

	assert.True(t, rails[0].Featured)
	require.Len(t, rails[0].Cards, 1)
	assert.Equal(t, "A greeting.", rails[0].Cards[0].Text)
	assert.False(t, rails[0].Cards[0].Placeholder)

	assert.Equal(t, "Go", rails[1].Title)
	require.Len(t, rails[1].Cards, 2)
	assert.Equal(t, "go-kit", rails[1].Cards[0].Name)
}

func TestHandler_Card(t *testing.T) {
	h := newTestHandler(t, false, nil)

	var card showcase.Card
	rec := get(t, h, "/api/cards/Ad-Recommender", &card)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "LLM CTR scoring", card.Text)

	rec = get(t, h, "/api/cards/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_LoadFailure(t *testing.T) {
	h := newTestHandler(t, true, nil)
	for _, target := range []string{"/api/account", "/api/repos", "/api/rails", "/api/languages", "/api/cards/x"} {
		var body map[string]string
		rec := get(t, h, target, &body)
		assert.Equal(t, http.StatusBadGateway, rec.Code, target)
		assert.Equal(t, "Failed to load GitHub data.", body["error"])
	}
}

func TestHandler_Archive(t *testing.T) {
	rec := get(t, newTestHandler(t, false, nil), "/api/archive", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "no route without a database")

	archive := &fakeArchive{rows: []model.RepoCard{{Name: "proj", Stars: 3, Tags: "cli,go"}}}
	h := newTestHandler(t, false, archive)

	var body struct {
		Cards []struct {
			Name string   `json:"name"`
			Tags []string `json:"tags"`
		} `json:"cards"`
		Pagination map[string]int `json:"pagination"`
	}
	rec = get(t, h, "/api/archive?page=0&pageSize=500&search=pro", &body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{"octocat", "pro", 1, 25}, archive.args)
	require.Len(t, body.Cards, 1)
	assert.Equal(t, []string{"cli", "go"}, body.Cards[0].Tags)
	assert.Equal(t, 1, body.Pagination["totalPages"])

	archive.err = errors.New("db down")
	rec = get(t, h, "/api/archive", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
