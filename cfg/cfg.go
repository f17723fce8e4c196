package cfg

import (
	"strings"
	"time"
)

type (
	App struct {
		Name    string
		Version string
		Debug   bool
	}

	Mysql struct {
		Host                  string
		Port                  string
		Username              string
		Password              string
		Database              string
		MaxIdleConnection     int
		MaxOpenConnection     int
		MaxLifeTimeConnection int
	}

	GithubApi struct {
		AccessToken       string
		ApiUrl            string
		RawUrl            string
		ApiVersion        string
		UserAgent         string
		MetadataTimeoutMs int
		ContentTimeoutMs  int
		RequestsPerSecond int
		ThrottleDelay     int
	}

	// Exclude vetoes repositories that would otherwise match a filter.
	Exclude struct {
		Names  []string
		Topics []string
	}

	// Filter is the attribute part of a spotlight. Unset fields do not constrain.
	Filter struct {
		Language []string
		StarsMin *int
		Topics   []string
		Exclude  *Exclude
	}

	Spotlight struct {
		Title       string
		Description string
		Repos       []string
		Filter      *Filter
		Limit       int
	}

	Showcase struct {
		Username       string
		CacheTtlMs     int64
		ReadmeStrategy string
		Featured       Spotlight
		Spotlights     []Spotlight
	}

	Cache struct {
		Driver string
		Path   string
	}

	Kafka struct {
		Brokers   []string
		TopicCard string
		GroupID   string
	}

	Server struct {
		Port int
	}
)

type Config struct {
	App       App
	Mysql     Mysql
	GithubApi GithubApi
	Showcase  Showcase
	Cache     Cache
	Kafka     Kafka
	Server    Server
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Showcase.CacheTtlMs) * time.Millisecond
}

func (c *Config) MetadataTimeout() time.Duration {
	if c.GithubApi.MetadataTimeoutMs <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.GithubApi.MetadataTimeoutMs) * time.Millisecond
}

func (c *Config) ContentTimeout() time.Duration {
	if c.GithubApi.ContentTimeoutMs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.GithubApi.ContentTimeoutMs) * time.Millisecond
}

// Token returns the configured credential with surrounding whitespace removed.
func (c *Config) Token() string {
	return strings.TrimSpace(c.GithubApi.AccessToken)
}

// IsEmpty reports whether no field of the filter is set. Empty lists count
// as unset.
func (f *Filter) IsEmpty() bool {
	if f == nil {
		return true
	}
	return len(f.Language) == 0 && f.StarsMin == nil && len(f.Topics) == 0 && f.Exclude == nil
}
