package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/thep200/github-showcase/internal/showcase"
)

// CardMessage is one rendered card sent to Kafka, keyed by repository name.
type CardMessage struct {
	EventID     string        `json:"event_id"`
	Account     string        `json:"account"`
	Card        showcase.Card `json:"card"`
	PublishedAt time.Time     `json:"published_at"`
}

func NewCardMessage(account string, card showcase.Card, now time.Time) CardMessage {
	return CardMessage{
		EventID:     uuid.NewString(),
		Account:     account,
		Card:        card,
		PublishedAt: now.UTC(),
	}
}
