// SPDX-License-Identifier: GPL-3.0-or-later
package crispin

import (
	"github.com/CrawX/go-imap-sync/cache"
	"github.com/CrawX/go-imap-sync/log"
)

// ReplayClient serves a recorded session from the store without any connection, the
// connection passed to its calls is ignored and may be nil. It offers the Gmail surface, a
// recording of a generic IMAP account replays with empty labels and ids. Every entry that was
// not recorded fails with ErrMissingFixture.
type ReplayClient struct {
	GmailClient
}

func NewReplayClient(accountId uint64, store cache.Store) (*ReplayClient, error) {
	if store == nil {
		return nil, errNoStore
	}

	l := log.AccountLogger(log.LOG_CRISPIN, accountId).WithField("replay", true)
	return &ReplayClient{
		GmailClient: GmailClient{
			ImapClient: ImapClient{
				baseClient: baseClient{
					accountId: accountId,
					fetcher: &replayFetcher{
						accountId: accountId,
						store:     store,
					},
					l: l,
				},
				flagItems:    gmailFlagItems,
				messageItems: gmailMessageItems,
			},
		},
	}, nil
}
