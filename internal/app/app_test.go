package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/readme"
	"github.com/thep200/github-showcase/pkg/log"
)

func mockConfig(t *testing.T) *cfg.Config {
	t.Helper()
	config, err := (&cfg.MockLoader{}).Load()
	require.NoError(t, err)
	return config
}

func TestNew_Memory(t *testing.T) {
	a, err := New(log.Nop{}, mockConfig(t))
	require.NoError(t, err)
	assert.IsType(t, &readme.FastResolver{}, a.Resolver)
	assert.NotNil(t, a.Showcase)
	assert.NoError(t, a.Close())
}

func TestNew_SqliteAndApiStrategy(t *testing.T) {
	config := mockConfig(t)
	config.Cache.Driver = cfg.CacheDriverSqlite
	config.Cache.Path = filepath.Join(t.TempDir(), "cache.db")
	config.Showcase.ReadmeStrategy = cfg.ReadmeStrategyApi

	a, err := New(log.Nop{}, config)
	require.NoError(t, err)
	assert.IsType(t, &readme.ApiResolver{}, a.Resolver)
	assert.FileExists(t, config.Cache.Path)
	assert.NoError(t, a.Close())
}

func TestNew_Errors(t *testing.T) {
	config := mockConfig(t)
	config.Cache.Driver = "redis"
	_, err := New(log.Nop{}, config)
	assert.ErrorIs(t, err, cfg.ErrInvalidDriver)

	config = mockConfig(t)
	config.Showcase.ReadmeStrategy = "slow"
	_, err = New(log.Nop{}, config)
	assert.Error(t, err)
}

func TestClose_ReverseOrderAndJoin(t *testing.T) {
	a, err := New(log.Nop{}, mockConfig(t))
	require.NoError(t, err)

	var order []int
	a.OnClose(func() error { order = append(order, 1); return errors.New("first") })
	a.OnClose(func() error { order = append(order, 2); return nil })

	err = a.Close()
	assert.Equal(t, []int{2, 1}, order)
	assert.ErrorContains(t, err, "first")
}
