package cfg

type MockLoader struct {
	ApiUrl string
	RawUrl string
}

func (ml *MockLoader) Load() (*Config, error) {
	starsMin := 1
	config := &Config{
		// App
		App: App{
			Name:    "github-showcase",
			Version: "0.0.1",
		},

		// GithubApi
		GithubApi: GithubApi{
			AccessToken:       "",
			ApiUrl:            "https://api.github.com",
			RawUrl:            "https://raw.githubusercontent.com",
			ApiVersion:        "2022-11-28",
			UserAgent:         "github-showcase",
			MetadataTimeoutMs: 15000,
			ContentTimeoutMs:  10000,
		},

		// Showcase
		Showcase: Showcase{
			Username:       "octocat",
			CacheTtlMs:     30 * 60 * 1000,
			ReadmeStrategy: ReadmeStrategyFast,
			Featured: Spotlight{
				Title:       "Featured",
				Description: "Flagship projects front and center.",
				Repos:       []string{"Hello-World", "Spoon-Knife"},
			},
			Spotlights: []Spotlight{
				{
					Title:       "Go",
					Description: "Services and tooling.",
					Filter:      &Filter{Language: []string{"Go"}, StarsMin: &starsMin},
					Limit:       6,
				},
			},
		},

		// Cache
		Cache: Cache{Driver: CacheDriverMemory},

		// Mysql
		Mysql: Mysql{
			Host:                  "127.0.0.1",
			Password:              "root",
			Username:              "root",
			Port:                  "3306",
			Database:              "github_showcase",
			MaxIdleConnection:     10,
			MaxOpenConnection:     100,
			MaxLifeTimeConnection: 3600,
		},

		// Kafka
		Kafka: Kafka{
			Brokers:   []string{"127.0.0.1:9092"},
			TopicCard: "showcase.cards",
			GroupID:   "showcase-consumer",
		},

		Server: Server{Port: 8080},
	}

	if ml.ApiUrl != "" {
		config.GithubApi.ApiUrl = ml.ApiUrl
	}
	if ml.RawUrl != "" {
		config.GithubApi.RawUrl = ml.RawUrl
	}
	return config, nil
}
