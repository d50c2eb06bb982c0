// SPDX-License-Identifier: GPL-3.0-or-later
package crispin

import (
	"fmt"
	"sort"
	"time"

	"github.com/CrawX/go-imap-sync/cache"
	"github.com/CrawX/go-imap-sync/domain"
	"github.com/CrawX/go-imap-sync/log"
)

var (
	imapFlagItems    = []domain.FetchItem{domain.FetchFlags}
	imapMessageItems = []domain.FetchItem{domain.FetchBody, domain.FetchInternalDate, domain.FetchFlags}
)

// ImapClient works against any IMAP4rev1 server. Folders are opened read-only.
type ImapClient struct {
	baseClient

	flagItems    []domain.FetchItem
	messageItems []domain.FetchItem
}

// NewImapClient creates a live client, store is only used if caching is enabled.
func NewImapClient(accountId uint64, store cache.Store, configFunc ...ConfigFunc) (*ImapClient, error) {
	config := &configuration{FetchBatchSize: DefaultFetchBatchSize}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	l := log.AccountLogger(log.LOG_CRISPIN, accountId)

	f := &liveFetcher{
		accountId: accountId,
		batchSize: config.FetchBatchSize,
		l:         l,
	}
	if config.Cache {
		if store == nil {
			return nil, errNoStore
		}
		f.store = store
	}

	return &ImapClient{
		baseClient: baseClient{
			accountId: accountId,
			fetcher:   f,
			l:         l,
		},
		flagItems:    imapFlagItems,
		messageItems: imapMessageItems,
	}, nil
}

// SyncFolders has no generic answer, which folders to sync depends on the provider.
func (ic *ImapClient) SyncFolders(domain.ImapConnector) ([]string, error) {
	return nil, ErrNotImplemented
}

// Flags fetches the flags of uids, on Gmail including the labels.
func (ic *ImapClient) Flags(uids []uint32, c domain.ImapConnector) (map[uint32]*domain.FlagSet, error) {
	defer ic.timed("flags", time.Now())

	messages, err := ic.fetchMessages(uids, cache.KindFlags, ic.flagItems, c)
	if err != nil {
		return nil, err
	}

	flags := make(map[uint32]*domain.FlagSet, len(messages))
	for uid, m := range messages {
		flags[uid] = &domain.FlagSet{
			Flags:  m.Flags,
			Labels: m.GmLabels,
		}
	}

	return flags, nil
}

// Uids downloads the complete messages ordered by ascending uid. Bodies are the bytes sent by
// the server, no charset decoding is applied.
func (ic *ImapClient) Uids(uids []uint32, c domain.ImapConnector) ([]*domain.RawMessage, error) {
	defer ic.timed("uids", time.Now())

	messages, err := ic.fetchMessages(uids, cache.KindBody, ic.messageItems, c)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.RawMessage, 0, len(messages))
	for _, m := range messages {
		result = append(result, &domain.RawMessage{
			Uid:          m.Uid,
			InternalDate: m.InternalDate,
			Flags:        m.Flags,
			Body:         m.Body,
			ThreadId:     m.GmThreadId,
			MessageId:    m.GmMessageId,
			Labels:       m.GmLabels,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Uid < result[j].Uid })

	return result, nil
}
