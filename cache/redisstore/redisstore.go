// SPDX-License-Identifier: GPL-3.0-or-later
package redisstore

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"

	"github.com/CrawX/go-imap-sync/log"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
)

// Store keeps cache entries in redis so recorded fixtures can be shared between machines.
// Entries never expire.
type Store struct {
	client *redis.Client
	prefix string
	l      *logrus.Logger
}

func NewStore(host, password string, dbindex int, prefix string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     host,
		Password: password,
		DB:       dbindex,
	})

	redis.SetLogger(stdlog.New(io.Discard, "", stdlog.LstdFlags))

	pong, err := client.Ping().Result()
	if err != nil {
		return nil, fmt.Errorf("could not ping redis on %s: %w", host, err)
	}
	if pong != "PONG" {
		return nil, fmt.Errorf("unexpected ping response %q from redis on %s", pong, host)
	}

	l := log.Logger(log.LOG_CACHE)
	l.WithFields(logrus.Fields{"host": host, "db": dbindex}).Info("Connected to redis")

	return &Store{
		client: client,
		prefix: prefix,
		l:      l,
	}, nil
}

func (s *Store) Put(key string, value []byte) error {
	err := s.client.Set(s.prefix+key, value, 0).Err()
	if err != nil {
		return fmt.Errorf("could not set %s: %w", key, err)
	}

	return nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	value, err := s.client.Get(s.prefix + key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not get %s: %w", key, err)
	}

	return value, true, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
