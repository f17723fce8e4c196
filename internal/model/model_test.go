package model

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thep200/github-showcase/internal/showcase"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 5))
	assert.Equal(t, "ab", TruncateString("abc", 2))
	assert.Equal(t, "a", TruncateString("aé", 2), "never splits a rune")
}

func TestNewCardMessage(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.FixedZone("x", 3600))
	msg := NewCardMessage("octocat", showcase.Card{Name: "proj"}, now)

	_, err := uuid.Parse(msg.EventID)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, msg.PublishedAt.Location())
	assert.NotEqual(t, msg.EventID, NewCardMessage("octocat", showcase.Card{}, now).EventID)
}

func TestFromMessage(t *testing.T) {
	msg := CardMessage{
		EventID: "id-1",
		Account: "octocat",
		Card: showcase.Card{
			Name:     "proj",
			Text:     "hello",
			Stars:    7,
			Language: "Go",
			Tags:     []string{"cli", "go"},
			Meta:     strings.Repeat("m", 300),
		},
	}
	row := FromMessage(msg)
	assert.Equal(t, "octocat", row.Account)
	assert.Equal(t, "proj", row.Name)
	assert.Equal(t, "cli,go", row.Tags)
	assert.Equal(t, []string{"cli", "go"}, row.TagList())
	assert.Len(t, row.Meta, 255)
	assert.Equal(t, "id-1", row.EventID)

	assert.Equal(t, []string{}, (&RepoCard{}).TagList())
	assert.Equal(t, "repo_cards", (&RepoCard{}).TableName())
}
