package cache

import (
	"fmt"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/pkg/db"
)

// OpenStore builds the store named by config.Cache.Driver. The returned
// close func is never nil.
func OpenStore(config *cfg.Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch config.Cache.Driver {
	case "", cfg.CacheDriverMemory:
		return NewMemoryStore(), noop, nil
	case cfg.CacheDriverSqlite:
		s, err := OpenSqlite(config.Cache.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case cfg.CacheDriverMysql:
		mysql := db.NewMysql(config)
		s, err := OpenMysql(mysql)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", cfg.ErrInvalidDriver, config.Cache.Driver)
	}
}
