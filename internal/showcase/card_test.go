package showcase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thep200/github-showcase/internal/extract"
	githubapi "github.com/thep200/github-showcase/internal/github_api"
)

func TestFormatNum(t *testing.T) {
	tests := map[int]string{
		0:         "0",
		999:       "999",
		1000:      "1k",
		1200:      "1.2k",
		15_300:    "15.3k",
		1_500_000: "1.5M",
		2_000_000: "2M",
	}
	for n, want := range tests {
		assert.Equal(t, want, FormatNum(n), n)
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "just now"},
		{-time.Hour, "just now"},
		{30 * time.Second, "30s ago"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{15 * 24 * time.Hour, "2w ago"},
		{70 * 24 * time.Hour, "2mo ago"},
		{800 * 24 * time.Hour, "2yr ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeAgo(now.Add(-tt.ago), now))
	}
}

func TestNewCard(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := githubapi.Repository{
		Name:            "proj",
		Description:     "A tool #golang",
		Language:        "Go",
		StargazersCount: 1234,
		PushedAt:        "2024-05-29T00:00:00Z",
		Topics:          []string{"cli"},
	}

	c := NewCard(repo, extract.Result{Image: "https://x/y.png", Excerpt: "From README."}, now)
	assert.Equal(t, "From README.", c.Text)
	assert.Equal(t, "https://x/y.png", c.Image)
	assert.Equal(t, "★ 1.2k · Go · Updated 3d ago", c.Meta)
	assert.Equal(t, []string{"golang", "cli"}, c.Tags)
	assert.False(t, c.Placeholder)

	assert.Equal(t, "A tool #golang", NewCard(repo, extract.Result{}, now).Text)

	repo.Description = ""
	repo.Language = ""
	c = NewCard(repo, extract.Result{}, now)
	assert.Equal(t, "No description.", c.Text)
	assert.Equal(t, "★ 1.2k · Updated 3d ago", c.Meta)

	p := Placeholder(repo, now)
	assert.True(t, p.Placeholder)
	assert.Empty(t, p.Text)
}
