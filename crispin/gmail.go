// SPDX-License-Identifier: GPL-3.0-or-later
package crispin

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/CrawX/go-imap-sync/cache"
	"github.com/CrawX/go-imap-sync/domain"

	"github.com/sirupsen/logrus"
)

var (
	gmailFlagItems     = []domain.FetchItem{domain.FetchFlags, domain.FetchGmLabels}
	gmailMessageItems  = []domain.FetchItem{domain.FetchBody, domain.FetchInternalDate, domain.FetchFlags, domain.FetchGmThreadId, domain.FetchGmMessageId, domain.FetchGmLabels}
	gmailMetadataItems = []domain.FetchItem{domain.FetchGmMessageId, domain.FetchGmThreadId}
)

// special-use attributes and the role they mark
var specialUse = []struct {
	attribute string
	role      string
}{
	{`\All`, domain.RoleAll},
	{`\Drafts`, domain.RoleDrafts},
	{`\Important`, domain.RoleImportant},
	{`\Sent`, domain.RoleSent},
	{`\Junk`, domain.RoleJunk},
	{`\Flagged`, domain.RoleFlagged},
	{`\Trash`, domain.RoleTrash},
}

// GmailClient adds labels, global message and thread ids and thread expansion. Every message
// of a Gmail account is in All Mail, labels show up as folders.
type GmailClient struct {
	ImapClient
}

func NewGmailClient(accountId uint64, store cache.Store, configFunc ...ConfigFunc) (*GmailClient, error) {
	ic, err := NewImapClient(accountId, store, configFunc...)
	if err != nil {
		return nil, err
	}

	ic.flagItems = gmailFlagItems
	ic.messageItems = gmailMessageItems
	return &GmailClient{ImapClient: *ic}, nil
}

// SyncFolders returns Inbox and All Mail. Inbox is synced separately so new mail shows up
// while a large archive is still downloading.
func (gc *GmailClient) SyncFolders(c domain.ImapConnector) ([]string, error) {
	names, err := gc.FolderNames(c)
	if err != nil {
		return nil, err
	}

	folders := []string{}
	for _, role := range []string{domain.RoleInbox, domain.RoleAll} {
		name, ok := names.Get(role)
		if !ok {
			return nil, fmt.Errorf("account has no %s folder", role)
		}
		folders = append(folders, name)
	}

	return folders, nil
}

// FolderNames resolves the localized names of the special folders. The result is computed
// once per selected folder.
func (gc *GmailClient) FolderNames(c domain.ImapConnector) (*domain.FolderNames, error) {
	if gc.folderNames != nil {
		return gc.folderNames, nil
	}

	folders, err := gc.fetcher.folderList(c)
	if err != nil {
		return nil, fmt.Errorf("could not list folders: %w", err)
	}

	gc.folderNames = ResolveFolderNames(folders)
	gc.l.WithFields(logrus.Fields{"folders": len(folders), "labels": len(gc.folderNames.Labels)}).Debug("Resolved folder names")
	return gc.folderNames, nil
}

// ResolveFolderNames maps the folders of a LIST response to their roles. Roles are taken from
// the special-use attributes only, names are localized. The inbox is the exception, Gmail
// does not mark it. Every other selectable folder is a label.
func ResolveFolderNames(folders []*domain.FolderInfo) *domain.FolderNames {
	names := &domain.FolderNames{}

	for _, f := range folders {
		isLabel := true
		for _, su := range specialUse {
			if f.HasAttribute(su.attribute) {
				isLabel = false
				names.Set(su.role, f.Name)
			}
		}

		if strings.EqualFold(f.Name, domain.RoleInbox) {
			isLabel = false
			names.Set(domain.RoleInbox, f.Name)
		}

		// containers like [Gmail] hold no messages
		if f.HasAttribute(`\Noselect`) || f.HasAttribute(`\NonExistent`) {
			isLabel = false
		}

		if isLabel {
			names.Labels = append(names.Labels, f.Name)
		}
	}
	sort.Strings(names.Labels)

	return names
}

// GMetadata fetches X-GM-MSGID and X-GM-THRID of uids.
func (gc *GmailClient) GMetadata(uids []uint32, c domain.ImapConnector) (map[uint32]*domain.GMetadata, error) {
	defer gc.timed("g_metadata", time.Now())
	gc.l.WithField("uids", len(uids)).Info("Fetching X-GM-MSGID and X-GM-THRID")

	messages, err := gc.fetchMessages(uids, cache.KindGMetadata, gmailMetadataItems, c)
	if err != nil {
		return nil, err
	}

	metadata := make(map[uint32]*domain.GMetadata, len(messages))
	for uid, m := range messages {
		metadata[uid] = &domain.GMetadata{
			MessageId: m.GmMessageId,
			ThreadId:  m.GmThreadId,
		}
	}

	return metadata, nil
}

// ExpandThreads finds the uids of all messages belonging to threadIds, newest first. All Mail
// has to be selected, it is the only folder guaranteed to contain every message of a thread.
func (gc *GmailClient) ExpandThreads(threadIds []string, c domain.ImapConnector) ([]uint32, error) {
	defer gc.timed("expand_threads", time.Now())

	s, err := gc.requireSession()
	if err != nil {
		return nil, err
	}

	names, err := gc.FolderNames(c)
	if err != nil {
		return nil, err
	}

	allMail, ok := names.Get(domain.RoleAll)
	if !ok || s.Folder != allMail {
		return nil, fmt.Errorf("%w: must select All Mail first, %s is selected", ErrInvalidState, s.Folder)
	}

	if len(threadIds) == 0 {
		return []uint32{}, nil
	}

	uids, err := gc.fetcher.threadUids(s, threadIds, c)
	if err != nil {
		return nil, fmt.Errorf("could not expand threads: %w", err)
	}

	// uids ascend over time
	uids = sortedUnique(uids)
	for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
		uids[i], uids[j] = uids[j], uids[i]
	}

	return uids, nil
}
