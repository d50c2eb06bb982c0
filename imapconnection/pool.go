// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"context"
	"fmt"
	"sync"

	"github.com/CrawX/go-imap-sync/domain"
	"github.com/CrawX/go-imap-sync/log"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// Dialer opens a new logged in connection.
type Dialer func() (domain.ImapConnector, error)

func TLSDialer(server, user, password string, compressConnection bool) Dialer {
	return func() (domain.ImapConnector, error) {
		return NewImapConnection(server, user, password, compressConnection)
	}
}

// Pool keeps up to size connections of one account. A connection is held by at most one caller
// at a time, callers wait for a free slot.
type Pool struct {
	dial  Dialer
	slots *semaphore.Weighted

	mu   sync.Mutex
	idle []domain.ImapConnector

	l *logrus.Entry
}

func NewPool(accountId uint64, size int, dial Dialer) *Pool {
	if size < 1 {
		size = 1
	}

	return &Pool{
		dial:  dial,
		slots: semaphore.NewWeighted(int64(size)),
		l:     log.AccountLogger(log.LOG_POOL, accountId),
	}
}

// usable is implemented by connections that can tell whether they survived an error.
type usable interface {
	Usable() bool
}

// WithConnection runs fn with an exclusive connection. A connection fn failed on is only
// returned if it reports itself usable, everything else is closed.
func (p *Pool) WithConnection(ctx context.Context, fn func(c domain.ImapConnector) error) error {
	err := p.slots.Acquire(ctx, 1)
	if err != nil {
		return fmt.Errorf("could not acquire connection: %w", err)
	}
	defer p.slots.Release(1)

	c, err := p.get()
	if err != nil {
		return err
	}

	healthy := false
	defer func() {
		if healthy {
			p.put(c)
		} else {
			p.discard(c)
		}
	}()

	err = fn(c)
	healthy = err == nil || isUsable(c)
	return err
}

func isUsable(c domain.ImapConnector) bool {
	u, ok := c.(usable)
	return ok && u.Usable()
}

func (p *Pool) get() (domain.ImapConnector, error) {
	p.mu.Lock()
	if n := len(p.idle); n > 0 {
		c := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return c, nil
	}
	p.mu.Unlock()

	c, err := p.dial()
	if err != nil {
		return nil, fmt.Errorf("could not open connection: %w", err)
	}
	p.l.Debug("Opened connection")

	return c, nil
}

func (p *Pool) put(c domain.ImapConnector) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idle = append(p.idle, c)
}

func (p *Pool) discard(c domain.ImapConnector) {
	err := c.Close()
	if err != nil {
		p.l.WithError(err).Warn("Could not close connection")
		return
	}
	p.l.Debug("Discarded connection")
}

// Close logs out all idle connections.
func (p *Pool) Close() error {
	p.mu.Lock()
	idle := p.idle
	p.idle = nil
	p.mu.Unlock()

	var firstErr error
	for _, c := range idle {
		err := c.Close()
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("could not close connection: %w", err)
		}
	}

	return firstErr
}

// OfflinePool serves replaying clients which never touch a connection, fn receives nil.
type OfflinePool struct{}

func (OfflinePool) WithConnection(ctx context.Context, fn func(c domain.ImapConnector) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(nil)
}
