// SPDX-License-Identifier: GPL-3.0-or-later
package crispin

import (
	"fmt"
	"sort"
	"time"

	"github.com/CrawX/go-imap-sync/cache"
	"github.com/CrawX/go-imap-sync/domain"

	"github.com/sirupsen/logrus"
)

// ValidityCallback is invoked after every select with the new selection. It decides how to
// react to a changed UIDVALIDITY, its result is handed back to the caller of SelectFolder.
type ValidityCallback func(folder string, info domain.SelectInfo) (interface{}, error)

// Client is the operation surface shared by all providers.
//
// A client never selects a folder implicitly: every UID based call works on the folder of the
// last SelectFolder and fails with ErrInvalidState if there is none. The connection is passed
// to every call because it belongs to the pool, not to the client. A client is not safe for
// concurrent use.
type Client interface {
	AccountId() uint64

	SelectFolder(folder string, callback ValidityCallback, c domain.ImapConnector) (interface{}, error)
	FolderStatus(folder string, c domain.ImapConnector) (*domain.FolderStatus, error)
	AllUids(c domain.ImapConnector) ([]uint32, error)
	NewAndUpdatedUids(modSeq uint64, c domain.ImapConnector) ([]uint32, error)
	Flags(uids []uint32, c domain.ImapConnector) (map[uint32]*domain.FlagSet, error)
	Uids(uids []uint32, c domain.ImapConnector) ([]*domain.RawMessage, error)
	SyncFolders(c domain.ImapConnector) ([]string, error)

	SelectedFolderName() (string, bool)
	SelectedFolderInfo() (domain.SelectInfo, bool)
	SelectedUidValidity() (uint32, bool)
	SelectedHighestModSeq() (uint64, bool)
}

// GmailExtensions are the label and thread operations only Gmail offers.
type GmailExtensions interface {
	Client

	FolderNames(c domain.ImapConnector) (*domain.FolderNames, error)
	GMetadata(uids []uint32, c domain.ImapConnector) (map[uint32]*domain.GMetadata, error)
	ExpandThreads(threadIds []string, c domain.ImapConnector) ([]uint32, error)
}

type baseClient struct {
	accountId uint64

	session     *Session
	folderNames *domain.FolderNames

	fetcher fetcher

	l *logrus.Entry
}

func (c *baseClient) AccountId() uint64 {
	return c.accountId
}

func (c *baseClient) timed(operation string, start time.Time) {
	c.l.WithFields(logrus.Fields{"operation": operation, "duration": time.Since(start)}).Debug("Took")
}

func (c *baseClient) SelectFolder(folder string, callback ValidityCallback, conn domain.ImapConnector) (interface{}, error) {
	defer c.timed("select", time.Now())

	// folder names are cached per session
	c.folderNames = nil

	info, err := c.fetcher.selectFolder(folder, conn)
	if err != nil {
		// the server leaves the selected state on a failed SELECT
		c.session = nil
		return nil, fmt.Errorf("could not select folder %s: %w", folder, err)
	}

	c.session = &Session{Folder: folder, Info: *info}
	c.l.WithFields(logrus.Fields{"folder": folder, "exists": info.Exists}).Info("Selected folder")

	return callback(folder, *info)
}

// FolderStatus does not change the selected folder.
func (c *baseClient) FolderStatus(folder string, conn domain.ImapConnector) (*domain.FolderStatus, error) {
	defer c.timed("status", time.Now())

	status, err := c.fetcher.folderStatus(folder, conn)
	if err != nil {
		return nil, fmt.Errorf("could not get status of %s: %w", folder, err)
	}

	return status, nil
}

// AllUids lists the uids of all non-deleted messages in ascending order.
func (c *baseClient) AllUids(conn domain.ImapConnector) ([]uint32, error) {
	defer c.timed("all_uids", time.Now())

	s, err := c.requireSession()
	if err != nil {
		return nil, err
	}

	uids, err := c.fetcher.allUids(s, conn)
	if err != nil {
		return nil, fmt.Errorf("could not list uids of %s: %w", s.Folder, err)
	}

	return sortedUnique(uids), nil
}

func (c *baseClient) NewAndUpdatedUids(modSeq uint64, conn domain.ImapConnector) ([]uint32, error) {
	defer c.timed("new_and_updated_uids", time.Now())

	s, err := c.requireSession()
	if err != nil {
		return nil, err
	}

	uids, err := c.fetcher.newAndUpdatedUids(s, modSeq, conn)
	if err != nil {
		return nil, fmt.Errorf("could not list uids of %s changed since %d: %w", s.Folder, modSeq, err)
	}

	return uids, nil
}

func (c *baseClient) fetchMessages(uids []uint32, kind cache.Kind, items []domain.FetchItem, conn domain.ImapConnector) (map[uint32]*domain.FetchedMessage, error) {
	s, err := c.requireSession()
	if err != nil {
		return nil, err
	}

	if len(uids) == 0 {
		return map[uint32]*domain.FetchedMessage{}, nil
	}

	messages, err := c.fetcher.messages(s, uids, kind, items, conn)
	if err != nil {
		return nil, fmt.Errorf("could not fetch %s of %s: %w", kind, s.Folder, err)
	}

	return messages, nil
}

func sortedUnique(uids []uint32) []uint32 {
	sorted := append([]uint32{}, uids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	result := sorted[:0]
	for _, uid := range sorted {
		if len(result) > 0 && uid == result[len(result)-1] {
			continue
		}
		result = append(result, uid)
	}

	return result
}
