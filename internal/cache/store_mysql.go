package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thep200/github-showcase/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheEntry is the MySQL row behind MysqlStore.
type CacheEntry struct {
	Key       string    `gorm:"column:cache_key;primaryKey;size:191"`
	Value     []byte    `gorm:"column:value;type:mediumblob;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}

// MysqlStore shares one cache between several showcase processes.
type MysqlStore struct {
	Mysql *db.Mysql
}

// OpenMysql migrates the cache table before returning.
func OpenMysql(mysql *db.Mysql) (*MysqlStore, error) {
	if err := mysql.Migrate(&CacheEntry{}); err != nil {
		return nil, fmt.Errorf("migrating cache table: %w", err)
	}
	return &MysqlStore{Mysql: mysql}, nil
}

func (s *MysqlStore) Get(ctx context.Context, key string) ([]byte, error) {
	gdb, err := s.Mysql.Db()
	if err != nil {
		return nil, err
	}
	var e CacheEntry
	err = gdb.WithContext(ctx).Where("cache_key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return e.Value, nil
}

func (s *MysqlStore) Set(ctx context.Context, key string, value []byte) error {
	gdb, err := s.Mysql.Db()
	if err != nil {
		return err
	}
	e := &CacheEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return gdb.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(e).Error
}

func (s *MysqlStore) Close() error {
	return s.Mysql.Close()
}
