package ui

import (
	"net/http"
	"strconv"
)

type archivedCard struct {
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	Image     string   `json:"img,omitempty"`
	Text      string   `json:"text"`
	Meta      string   `json:"meta"`
	Stars     int      `json:"stars"`
	Language  string   `json:"language,omitempty"`
	Tags      []string `json:"tags"`
	UpdatedAt string   `json:"updatedAt"`
}

// getArchive lists cards stored by the consumer, paginated.
func (h *Handler) getArchive(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}
	search := r.URL.Query().Get("search")

	rows, total, err := h.Archive.Page(r.Context(), h.Config.Showcase.Username, search, page, pageSize)
	if err != nil {
		h.Logger.Error(r.Context(), "Failed to fetch stored cards: %v", err)
		h.writeError(w, r, http.StatusInternalServerError, "Failed to fetch stored cards")
		return
	}

	cards := make([]archivedCard, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		cards = append(cards, archivedCard{
			Name:      row.Name,
			URL:       row.URL,
			Image:     row.Image,
			Text:      row.Text,
			Meta:      row.Meta,
			Stars:     row.Stars,
			Language:  row.Language,
			Tags:      row.TagList(),
			UpdatedAt: row.UpdatedAt.Format("2006-01-02"),
		})
	}

	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"cards": cards,
		"pagination": map[string]interface{}{
			"page":       page,
			"pageSize":   pageSize,
			"totalCount": total,
			"totalPages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}
