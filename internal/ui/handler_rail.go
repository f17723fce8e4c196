package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thep200/github-showcase/internal/showcase"
)

type railResponse struct {
	showcase.Rail
	Cards []showcase.Card `json:"cards"`
}

func (h *Handler) getRails(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}

	rails := h.Showcase.Rails(data)
	out := make([]railResponse, 0, len(rails))
	for _, rail := range rails {
		out = append(out, railResponse{
			Rail:  rail,
			Cards: h.Showcase.Cards(r.Context(), rail.Repos),
		})
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

func (h *Handler) getCard(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "repo")
	for _, repo := range data.Repos {
		if repo.Name == name {
			h.writeJSON(w, r, http.StatusOK, h.Showcase.Card(r.Context(), repo))
			return
		}
	}
	h.writeError(w, r, http.StatusNotFound, "Repository not found")
}
