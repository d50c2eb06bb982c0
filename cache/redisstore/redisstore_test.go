// SPDX-License-Identifier: GPL-3.0-or-later
package redisstore

import (
	"os"
	"testing"

	"github.com/CrawX/go-imap-sync/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	host := os.Getenv("REDIS_HOST")
	if len(host) == 0 {
		t.Skip("REDIS_HOST not set")
	}

	log.InitNullLogging()
	s, err := NewStore(host, os.Getenv("REDIS_PASSWORD"), 0, "go-imap-sync-test:"+t.Name()+":")
	require.NoError(t, err)
	t.Cleanup(func() {
		s.client.Del(s.prefix + "key")
		s.Close()
	})
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Get("key")
	assert.NoError(t, err)
	assert.False(t, ok)

	value := []byte{0x00, 0xff, 'a', 0xe9}
	require.NoError(t, s.Put("key", value))

	stored, ok, err := s.Get("key")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, value, stored)
}
