package cfg

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ReadmeStrategyFast = "fast"
	ReadmeStrategyApi  = "api"

	CacheDriverMemory = "memory"
	CacheDriverSqlite = "sqlite"
	CacheDriverMysql  = "mysql"
)

var (
	ErrMissingUsername = errors.New("showcase.username is required")
	ErrInvalidStrategy = errors.New("unknown readme strategy")
	ErrInvalidDriver   = errors.New("unknown cache driver")
)

type ViperLoader struct {
	path                  string
	watch                 bool
	v                     *viper.Viper
	once                  sync.Once
	mu                    sync.RWMutex
	cfg                   *Config
	configChangeCallbacks []func(*Config)
}

// NewViperLoader reads path when given, otherwise mode.yaml from cfg/yaml or
// the XDG config directory.
func NewViperLoader(path string) *ViperLoader {
	return &ViperLoader{
		path:                  path,
		watch:                 true,
		v:                     viper.New(),
		configChangeCallbacks: make([]func(*Config), 0),
	}
}

// DisableWatch turns off live reload. Used by one-shot commands.
func (yl *ViperLoader) DisableWatch() *ViperLoader {
	yl.watch = false
	return yl
}

func (yl *ViperLoader) Load() (*Config, error) {
	var err error
	yl.once.Do(func() {
		err = yl.loadConfig()
		if err == nil && yl.IsWatchChange() {
			yl.v.OnConfigChange(func(e fsnotify.Event) {
				fmt.Printf("[INFO][CONFIG] Config file changed: %s\n", e.Name)
				if errReload := yl.reloadConfig(); errReload != nil {
					fmt.Printf("[ERROR][CONFIG] Failed to reload config: %v\n", errReload)
				}
			})
			yl.v.WatchConfig()
		}
	})

	if err != nil {
		return nil, err
	}

	yl.mu.RLock()
	defer yl.mu.RUnlock()
	return yl.cfg, nil
}

func (yl *ViperLoader) IsWatchChange() bool {
	return yl.watch
}

func (yl *ViperLoader) RegisterConfigChangeCallback(callback func(*Config)) {
	yl.mu.Lock()
	yl.configChangeCallbacks = append(yl.configChangeCallbacks, callback)
	yl.mu.Unlock()
}

func (yl *ViperLoader) loadConfig() error {
	// A missing .env is fine
	_ = godotenv.Load()

	setDefaults(yl.v)
	if yl.path != "" {
		yl.v.SetConfigFile(yl.path)
	} else {
		yl.v.AddConfigPath("cfg/yaml")
		yl.v.AddConfigPath(filepath.Join(xdg.ConfigHome, "github-showcase"))
		yl.v.SetConfigName("mode")
		yl.v.SetConfigType("yaml")
	}

	yl.v.SetEnvPrefix("SHOWCASE")
	yl.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	yl.v.AutomaticEnv()
	_ = yl.v.BindEnv("githubApi.accessToken", "SHOWCASE_GITHUBAPI_ACCESSTOKEN", "GITHUB_TOKEN")

	if err := yl.v.ReadInConfig(); err != nil {
		return fmt.Errorf("[ERROR][CONFIG] failed to read config file: %w", err)
	}

	cfg, err := yl.decode()
	if err != nil {
		return err
	}

	yl.mu.Lock()
	yl.cfg = cfg
	yl.mu.Unlock()

	return nil
}

func (yl *ViperLoader) reloadConfig() error {
	cfg, err := yl.decode()
	if err != nil {
		return fmt.Errorf("[ERROR][CONFIG] failed to reload config: %w", err)
	}

	yl.mu.Lock()
	yl.cfg = cfg
	callbacks := make([]func(*Config), len(yl.configChangeCallbacks))
	copy(callbacks, yl.configChangeCallbacks)
	yl.mu.Unlock()

	for _, callback := range callbacks {
		go callback(cfg)
	}

	fmt.Println("[INFO][CONFIG] Configuration reloaded successfully")
	return nil
}

func (yl *ViperLoader) decode() (*Config, error) {
	cfg := &Config{}
	if err := yl.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("[ERROR][CONFIG] failed to unmarshal config: %w", err)
	}
	if cfg.Cache.Driver == CacheDriverSqlite && cfg.Cache.Path == "" {
		cfg.Cache.Path = filepath.Join(xdg.CacheHome, "github-showcase", "cache.db")
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("[ERROR][CONFIG] %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "github-showcase")
	v.SetDefault("githubApi.apiUrl", "https://api.github.com")
	v.SetDefault("githubApi.rawUrl", "https://raw.githubusercontent.com")
	v.SetDefault("githubApi.apiVersion", "2022-11-28")
	v.SetDefault("githubApi.userAgent", "github-showcase")
	v.SetDefault("githubApi.metadataTimeoutMs", 15000)
	v.SetDefault("githubApi.contentTimeoutMs", 10000)
	v.SetDefault("githubApi.throttleDelay", 50)
	v.SetDefault("showcase.cacheTtlMs", 30*60*1000)
	v.SetDefault("showcase.readmeStrategy", ReadmeStrategyFast)
	v.SetDefault("showcase.featured.title", "Featured")
	v.SetDefault("cache.driver", CacheDriverMemory)
	v.SetDefault("kafka.topicCard", "showcase.cards")
	v.SetDefault("kafka.groupId", "showcase-consumer")
	v.SetDefault("server.port", 8080)
}

// Validate checks the fields the pipeline cannot run without.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Showcase.Username) == "" {
		return ErrMissingUsername
	}
	for name, raw := range map[string]string{"githubApi.apiUrl": cfg.GithubApi.ApiUrl, "githubApi.rawUrl": cfg.GithubApi.RawUrl} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid url: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: url scheme must be http or https, got %q", name, u.Scheme)
		}
	}
	switch cfg.Showcase.ReadmeStrategy {
	case ReadmeStrategyFast, ReadmeStrategyApi:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, cfg.Showcase.ReadmeStrategy)
	}
	switch cfg.Cache.Driver {
	case CacheDriverMemory, CacheDriverSqlite, CacheDriverMysql:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDriver, cfg.Cache.Driver)
	}
	return nil
}
