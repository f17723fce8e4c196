package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/pkg/db"
	"github.com/thep200/github-showcase/pkg/log"
)

// RepoCard is the last published card of a repository.
type RepoCard struct {
	Model
	Account  string `json:"account" gorm:"column:account;type:varchar(191);not null;uniqueIndex:idx_account_name"`
	Name     string `json:"name" gorm:"column:name;type:varchar(191);not null;uniqueIndex:idx_account_name"`
	URL      string `json:"url" gorm:"column:url;type:varchar(512)"`
	Homepage string `json:"homepage" gorm:"column:homepage;type:varchar(512)"`
	Image    string `json:"img" gorm:"column:image;type:varchar(1024)"`
	Text     string `json:"text" gorm:"column:text;type:text"`
	Meta     string `json:"meta" gorm:"column:meta;type:varchar(255)"`
	Stars    int    `json:"stars" gorm:"column:stars;default:0"`
	Language string `json:"language" gorm:"column:language;type:varchar(64)"`
	Tags     string `json:"tags" gorm:"column:tags;type:varchar(255)"`
	EventID  string `json:"event_id" gorm:"column:event_id;type:char(36)"`
}

func NewRepoCard(config *cfg.Config, logger log.Logger, db *db.Mysql) *RepoCard {
	card := &RepoCard{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}
	return card
}

func (r *RepoCard) TableName() string {
	return "repo_cards"
}

// FromMessage maps a card event onto a row.
func FromMessage(msg CardMessage) RepoCard {
	c := msg.Card
	return RepoCard{
		Account:  TruncateString(msg.Account, 191),
		Name:     TruncateString(c.Name, 191),
		URL:      TruncateString(c.URL, 512),
		Homepage: TruncateString(c.Homepage, 512),
		Image:    TruncateString(c.Image, 1024),
		Text:     c.Text,
		Meta:     TruncateString(c.Meta, 255),
		Stars:    c.Stars,
		Language: TruncateString(c.Language, 64),
		Tags:     TruncateString(strings.Join(c.Tags, ","), 255),
		EventID:  msg.EventID,
	}
}

// TagList splits the stored tags.
func (r *RepoCard) TagList() []string {
	if r.Tags == "" {
		return []string{}
	}
	return strings.Split(r.Tags, ",")
}

var upsertColumns = []string{"url", "homepage", "image", "text", "meta", "stars", "language", "tags", "event_id", "updated_at"}

// Upsert stores the card of msg, replacing the previous card of the same
// repository.
func (r *RepoCard) Upsert(ctx context.Context, msg CardMessage) error {
	db, err := r.Mysql.Db()
	if err != nil {
		r.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return err
	}

	row := FromMessage(msg)
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now

	if err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(&row).Error; err != nil {
		r.Logger.Error(ctx, "Failed to upsert card %s/%s: %v", row.Account, row.Name, err)
		return err
	}

	r.Logger.Info(ctx, "Stored card %s/%s", row.Account, row.Name)
	return nil
}

// UpsertBatch stores many cards in one transaction.
func (r *RepoCard) UpsertBatch(ctx context.Context, msgs []CardMessage) error {
	db, err := r.Mysql.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	rows := make([]RepoCard, 0, len(msgs))
	now := time.Now()
	for _, msg := range msgs {
		row := FromMessage(msg)
		row.CreatedAt = now
		row.UpdatedAt = now
		rows = append(rows, row)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).CreateInBatches(rows, 100)
		if result.Error != nil {
			return fmt.Errorf("failed to batch upsert cards: %w", result.Error)
		}
		return nil
	})
}

// Page lists stored cards of account by stars, with the total count.
func (r *RepoCard) Page(ctx context.Context, account, search string, page, pageSize int) ([]RepoCard, int64, error) {
	db, err := r.Mysql.Db()
	if err != nil {
		return nil, 0, err
	}

	query := db.WithContext(ctx).Model(&RepoCard{}).Where("account = ?", account)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR text LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cards []RepoCard
	err = query.Order("stars DESC").Order("name").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&cards).Error
	return cards, total, err
}
