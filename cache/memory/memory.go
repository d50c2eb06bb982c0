// SPDX-License-Identifier: GPL-3.0-or-later
package memory

import (
	"github.com/CrawX/go-imap-sync/log"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Store keeps entries in process memory for the lifetime of the store. Values are copied
// on the way in and out.
type Store struct {
	entries *gocache.Cache
	l       *logrus.Logger
}

func NewStore() *Store {
	return &Store{
		entries: gocache.New(gocache.NoExpiration, 0),
		l:       log.Logger(log.LOG_CACHE),
	}
}

func (s *Store) Put(key string, value []byte) error {
	s.entries.Set(key, clone(value), gocache.NoExpiration)
	s.l.WithFields(logrus.Fields{"key": key, "size": len(value)}).Trace("Stored entry")
	return nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	v, ok := s.entries.Get(key)
	if !ok {
		return nil, false, nil
	}

	return clone(v.([]byte)), true, nil
}

func (s *Store) Len() int {
	return s.entries.ItemCount()
}

func clone(value []byte) []byte {
	c := make([]byte, len(value))
	copy(c, value)
	return c
}
