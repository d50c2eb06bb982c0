// SPDX-License-Identifier: GPL-3.0-or-later
package crispin

import (
	"fmt"

	"github.com/CrawX/go-imap-sync/cache"
	"github.com/CrawX/go-imap-sync/domain"
)

// New creates the client for an account. offline selects the replay client whatever the
// provider is, store then has to hold a recording. Otherwise the provider decides between the
// generic and the Gmail client.
func New(accountId uint64, provider domain.Provider, offline bool, store cache.Store, configFunc ...ConfigFunc) (Client, error) {
	var client Client
	var err error
	switch {
	case offline:
		client, err = NewReplayClient(accountId, store)
	case provider == domain.ProviderGmail:
		client, err = NewGmailClient(accountId, store, configFunc...)
	case provider == domain.ProviderImap:
		client, err = NewImapClient(accountId, store, configFunc...)
	default:
		return nil, fmt.Errorf("%w %q", domain.ErrUnknownProvider, provider)
	}

	if err != nil {
		return nil, err
	}
	return client, nil
}

var (
	_ Client          = (*ImapClient)(nil)
	_ GmailExtensions = (*GmailClient)(nil)
	_ GmailExtensions = (*ReplayClient)(nil)
)
