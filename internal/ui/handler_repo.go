package ui

import (
	"net/http"

	"github.com/thep200/github-showcase/internal/catalog"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
)

type accountResponse struct {
	Account *githubapi.Account `json:"account"`
	Stats   catalog.Stats      `json:"stats"`
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, accountResponse{Account: data.Account, Stats: data.Stats()})
}

// getRepos serves the grid: ?q= search terms, ?lang= exact language,
// ?sort= stars|updated|name.
func (h *Handler) getRepos(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	params := r.URL.Query()
	query := catalog.Query{
		Text:     params.Get("q"),
		Language: params.Get("lang"),
		Sort:     params.Get("sort"),
	}
	h.writeJSON(w, r, http.StatusOK, catalog.Apply(data.Repos, query))
}

func (h *Handler) getLanguages(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, catalog.Languages(data.Repos))
}
