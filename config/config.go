// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CrawX/go-imap-sync/domain"

	"github.com/BurntSushi/toml"
)

const (
	CacheBackendSqlite = "sqlite"
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

type Config struct {
	Database string

	// Offline replays a previous recording from the cache instead of connecting
	Offline bool

	PoolSize    int
	Compress    bool
	BatchSize   int
	FetchBodies bool

	// Folders are synced on accounts whose provider does not name its own sync folders
	Folders []string

	Cache CacheConfig

	Accounts []AccountConfig

	Loglevel *string
}

type CacheConfig struct {
	Enabled bool
	Backend string

	RedisHost     string
	RedisPassword string
	RedisDb       int
	RedisPrefix   string
}

type AccountConfig struct {
	Id       uint64
	Provider string

	ImapHost string
	User     string
	Password string

	Folders []string
}

func ReadConfig(filename string) (*Config, error) {
	config := &Config{
		Database:  "persistence.db",
		PoolSize:  2,
		BatchSize: 100,
		Folders:   []string{"INBOX"},
		Cache: CacheConfig{
			Backend:     CacheBackendSqlite,
			RedisPrefix: "go-imap-sync",
		},
	}

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Database, "Database name must not be empty, set to a filename for the sqlite database"); err != nil {
		return err
	}

	if c.PoolSize < 1 {
		return fmt.Errorf("PoolSize must be at least 1, got %d", c.PoolSize)
	}

	if c.BatchSize < 1 {
		return fmt.Errorf("BatchSize must be at least 1, got %d", c.BatchSize)
	}

	if err := c.Cache.validate(); err != nil {
		return err
	}

	if c.Offline && c.Cache.Backend == CacheBackendMemory {
		return fmt.Errorf("Offline replay needs a recording, set Cache.Backend to %s or %s", CacheBackendSqlite, CacheBackendRedis)
	}

	if len(c.Accounts) == 0 {
		return fmt.Errorf("no Accounts configured")
	}

	ids := map[uint64]bool{}
	for i := range c.Accounts {
		a := &c.Accounts[i]
		if ids[a.Id] {
			return fmt.Errorf("account id %d is used more than once", a.Id)
		}
		ids[a.Id] = true

		if err := a.validate(c.Offline); err != nil {
			return fmt.Errorf("account %d: %w", a.Id, err)
		}
	}

	return nil
}

func (c *CacheConfig) validate() error {
	switch c.Backend {
	case CacheBackendSqlite, CacheBackendMemory:
	case CacheBackendRedis:
		if err := validateNonEmptyStringField(c.RedisHost, "Cache.RedisHost must be set to host:port if the redis backend is used"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown Cache.Backend %q, use %s, %s or %s", c.Backend, CacheBackendSqlite, CacheBackendRedis, CacheBackendMemory)
	}

	return nil
}

func (a *AccountConfig) validate(offline bool) error {
	provider, err := domain.ParseProvider(a.Provider)
	if err != nil {
		return err
	}
	a.Provider = string(provider)

	// replaying never connects
	if offline {
		return nil
	}

	if err := validateNonEmptyStringField(a.ImapHost, "ImapHost must not be empty, set to host:port of the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(a.User, "User must not be empty, set to username on the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(a.Password, "Password must not be empty, set to password of User on the imap server"); err != nil {
		return err
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}
