package cfg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mode.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestViperLoader_ReadsSpotlights(t *testing.T) {
	path := writeConfig(t, `
showcase:
  username: someone
  cacheTtlMs: 60000
  featured:
    title: Top
    repos: [a, b]
  spotlights:
    - title: Go
      filter:
        language: [Go]
        starsMin: 3
        topics: [cli]
        exclude:
          names: [old]
      limit: 4
`)
	config, err := NewViperLoader(path).DisableWatch().Load()
	require.NoError(t, err)

	assert.Equal(t, "someone", config.Showcase.Username)
	assert.Equal(t, time.Minute, config.CacheTTL())
	assert.Equal(t, []string{"a", "b"}, config.Showcase.Featured.Repos)
	require.Len(t, config.Showcase.Spotlights, 1)

	spot := config.Showcase.Spotlights[0]
	require.NotNil(t, spot.Filter)
	require.NotNil(t, spot.Filter.StarsMin)
	assert.Equal(t, 3, *spot.Filter.StarsMin)
	assert.Equal(t, []string{"Go"}, spot.Filter.Language)
	assert.Equal(t, []string{"old"}, spot.Filter.Exclude.Names)
	assert.Equal(t, 4, spot.Limit)
}

func TestViperLoader_Defaults(t *testing.T) {
	path := writeConfig(t, "showcase:\n  username: someone\n")
	loader := NewViperLoader(path)

	config, err := loader.DisableWatch().Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.github.com", config.GithubApi.ApiUrl)
	assert.Equal(t, "https://raw.githubusercontent.com", config.GithubApi.RawUrl)
	assert.Equal(t, ReadmeStrategyFast, config.Showcase.ReadmeStrategy)
	assert.Equal(t, CacheDriverMemory, config.Cache.Driver)
	assert.Equal(t, 15*time.Second, config.MetadataTimeout())
	assert.Equal(t, 10*time.Second, config.ContentTimeout())
	assert.Equal(t, 30*time.Minute, config.CacheTTL())
}

func TestViperLoader_TokenFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "  secret  ")
	path := writeConfig(t, "showcase:\n  username: someone\n")
	loader := NewViperLoader(path)

	config, err := loader.DisableWatch().Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", config.Token())
}

func TestViperLoader_MissingFile(t *testing.T) {
	loader := NewViperLoader(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := loader.DisableWatch().Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c, _ := (&MockLoader{}).Load()
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(*Config) {}, nil},
		{"no username", func(c *Config) { c.Showcase.Username = " " }, ErrMissingUsername},
		{"bad strategy", func(c *Config) { c.Showcase.ReadmeStrategy = "slow" }, ErrInvalidStrategy},
		{"bad driver", func(c *Config) { c.Cache.Driver = "redis" }, ErrInvalidDriver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := Validate(c)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	c := base()
	c.GithubApi.ApiUrl = "ftp://example.com"
	assert.Error(t, Validate(c))
}

func TestFilterIsEmpty(t *testing.T) {
	var nilFilter *Filter
	assert.True(t, nilFilter.IsEmpty())
	assert.True(t, (&Filter{}).IsEmpty())
	assert.True(t, (&Filter{Language: []string{}, Topics: []string{}}).IsEmpty())
	assert.False(t, (&Filter{Topics: []string{"x"}}).IsEmpty())
	min := 0
	assert.False(t, (&Filter{StarsMin: &min}).IsEmpty())
}
