// SPDX-License-Identifier: GPL-3.0-or-later
package crispin

import (
	"testing"
	"time"

	"github.com/CrawX/go-imap-sync/cache/memory"
	"github.com/CrawX/go-imap-sync/domain"
	"github.com/CrawX/go-imap-sync/domain/mocks"
	"github.com/CrawX/go-imap-sync/log"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const TEST_ALL_MAIL = "[Gmail]/All Mail"

var gmailFolders = []*domain.FolderInfo{
	{Attributes: []string{`\HasNoChildren`}, Delimiter: "/", Name: "INBOX"},
	{Attributes: []string{`\HasNoChildren`}, Delimiter: "/", Name: "Receipts"},
	{Attributes: []string{`\Noselect`, `\HasChildren`}, Delimiter: "/", Name: "[Gmail]"},
	{Attributes: []string{`\HasNoChildren`, `\All`}, Delimiter: "/", Name: TEST_ALL_MAIL},
	{Attributes: []string{`\HasNoChildren`, `\Drafts`}, Delimiter: "/", Name: "[Gmail]/Drafts"},
	{Attributes: []string{`\HasNoChildren`, `\Important`}, Delimiter: "/", Name: "[Gmail]/Important"},
	{Attributes: []string{`\HasNoChildren`, `\Sent`}, Delimiter: "/", Name: "[Gmail]/Sent Mail"},
	{Attributes: []string{`\HasNoChildren`, `\Junk`}, Delimiter: "/", Name: "[Gmail]/Spam"},
	{Attributes: []string{`\HasNoChildren`, `\Flagged`}, Delimiter: "/", Name: "[Gmail]/Starred"},
	{Attributes: []string{`\HasNoChildren`, `\Trash`}, Delimiter: "/", Name: "[Gmail]/Trash"},
	{Attributes: []string{`\HasNoChildren`}, Delimiter: "/", Name: "Family"},
}

func setupGmailClient(t *testing.T, configFunc ...ConfigFunc) (*gomock.Controller, *GmailClient, *mocks.MockImapConnector, *memory.Store) {
	log.InitNullLogging()
	ctrl := gomock.NewController(t)
	store := memory.NewStore()

	client, err := NewGmailClient(TEST_ACCOUNT, store, configFunc...)
	require.NoError(t, err)

	return ctrl, client, mocks.NewMockImapConnector(ctrl), store
}

func TestResolveFolderNames(t *testing.T) {
	names := ResolveFolderNames(gmailFolders)

	assert.Equal(t, &domain.FolderNames{
		Inbox:     "INBOX",
		All:       TEST_ALL_MAIL,
		Drafts:    "[Gmail]/Drafts",
		Important: "[Gmail]/Important",
		Sent:      "[Gmail]/Sent Mail",
		Junk:      "[Gmail]/Spam",
		Flagged:   "[Gmail]/Starred",
		Trash:     "[Gmail]/Trash",
		Labels:    []string{"Family", "Receipts"},
	}, names)
}

func TestResolveFolderNames_Localized(t *testing.T) {
	names := ResolveFolderNames([]*domain.FolderInfo{
		{Attributes: []string{`\HasNoChildren`, `\Drafts`}, Delimiter: "/", Name: "Brouillons"},
		{Attributes: []string{`\HasNoChildren`, `\All`}, Delimiter: "/", Name: "[Gmail]/Tous les messages"},
		{Attributes: []string{`\HasNoChildren`}, Delimiter: "/", Name: "Inbox"},
		// display names never decide a role
		{Attributes: []string{`\HasNoChildren`}, Delimiter: "/", Name: "Drafts"},
	})

	assert.Equal(t, "Brouillons", names.Drafts)
	assert.Equal(t, "[Gmail]/Tous les messages", names.All)
	assert.Equal(t, "Inbox", names.Inbox)
	assert.Equal(t, []string{"Drafts"}, names.Labels)

	_, ok := names.Get(domain.RoleSent)
	assert.False(t, ok)
}

func TestResolveFolderNames_Labels(t *testing.T) {
	tests := []struct {
		name     string
		folders  []*domain.FolderInfo
		expected []string
	}{
		{"none", []*domain.FolderInfo{{Name: "INBOX"}}, nil},
		{"sorted", []*domain.FolderInfo{{Name: "b"}, {Name: "C"}, {Name: "a"}}, []string{"C", "a", "b"}},
		{"noselect", []*domain.FolderInfo{{Name: "x", Attributes: []string{`\NoSelect`}}, {Name: "y"}}, []string{"y"}},
		{"special use", []*domain.FolderInfo{{Name: "Papierkorb", Attributes: []string{`\Trash`}}, {Name: "z"}}, []string{"z"}},
		{"inbox any case", []*domain.FolderInfo{{Name: "iNbOx"}, {Name: "z"}}, []string{"z"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			names := ResolveFolderNames(tc.folders)
			assert.Equal(t, tc.expected, names.Labels)
		})
	}
}

func TestResolveFolderNames_Idempotent(t *testing.T) {
	assert.Equal(t, ResolveFolderNames(gmailFolders), ResolveFolderNames(gmailFolders))
}

func TestGmailClient_FolderNamesCachedPerSession(t *testing.T) {
	ctrl, client, conn, _ := setupGmailClient(t)
	defer ctrl.Finish()

	conn.EXPECT().ListFolders().Return(gmailFolders, nil).Times(2)

	selectFolder(t, client, conn, TEST_FOLDER, domain.SelectInfo{UidValidity: 1})
	_, err := client.FolderNames(conn)
	assert.NoError(t, err)
	names, err := client.FolderNames(conn)
	assert.NoError(t, err)
	assert.Equal(t, TEST_ALL_MAIL, names.All)

	// a new session lists again
	selectFolder(t, client, conn, TEST_ALL_MAIL, domain.SelectInfo{UidValidity: 2})
	_, err = client.FolderNames(conn)
	assert.NoError(t, err)
}

func TestGmailClient_SyncFolders(t *testing.T) {
	ctrl, client, conn, _ := setupGmailClient(t)
	defer ctrl.Finish()

	conn.EXPECT().ListFolders().Return(gmailFolders, nil)

	folders, err := client.SyncFolders(conn)
	assert.NoError(t, err)
	assert.Equal(t, []string{"INBOX", TEST_ALL_MAIL}, folders)
}

func TestGmailClient_SyncFoldersWithoutAllMail(t *testing.T) {
	ctrl, client, conn, _ := setupGmailClient(t)
	defer ctrl.Finish()

	conn.EXPECT().ListFolders().Return([]*domain.FolderInfo{{Name: "INBOX"}}, nil)

	_, err := client.SyncFolders(conn)
	assert.Error(t, err)
}

func TestGmailClient_Flags(t *testing.T) {
	ctrl, client, conn, _ := setupGmailClient(t)
	defer ctrl.Finish()

	selectFolder(t, client, conn, TEST_ALL_MAIL, domain.SelectInfo{UidValidity: 1})
	conn.EXPECT().
		UidFetch(gomock.Eq(u32a(4)), gomock.Eq([]domain.FetchItem{domain.FetchFlags, domain.FetchGmLabels})).
		Return([]*domain.FetchedMessage{
			{Uid: 4, Flags: []string{`\Seen`}, GmLabels: []string{`\Inbox`, "Family"}},
		}, nil)

	flags, err := client.Flags(u32a(4), conn)
	assert.NoError(t, err)
	assert.Equal(t, map[uint32]*domain.FlagSet{
		4: {Flags: []string{`\Seen`}, Labels: []string{`\Inbox`, "Family"}},
	}, flags)
}

func TestGmailClient_Uids(t *testing.T) {
	ctrl, client, conn, _ := setupGmailClient(t)
	defer ctrl.Finish()

	selectFolder(t, client, conn, TEST_ALL_MAIL, domain.SelectInfo{UidValidity: 1})

	date := time.Date(2014, 1, 2, 3, 4, 5, 0, time.UTC)
	body := []byte("Subject: =?utf-8?q?caf=C3=A9?=\r\n\r\n\xe9t\xe9")
	conn.EXPECT().
		UidFetch(gomock.Eq(u32a(9)), gomock.Eq(gmailMessageItems)).
		Return([]*domain.FetchedMessage{{
			Uid:          9,
			InternalDate: date,
			Flags:        []string{`\Seen`},
			Body:         body,
			GmThreadId:   "1470254834463357845",
			GmMessageId:  "1470254834463357846",
			GmLabels:     []string{"Family"},
		}}, nil)

	messages, err := client.Uids(u32a(9), conn)
	assert.NoError(t, err)
	assert.Equal(t, []*domain.RawMessage{{
		Uid:          9,
		InternalDate: date,
		Flags:        []string{`\Seen`},
		Body:         body,
		ThreadId:     "1470254834463357845",
		MessageId:    "1470254834463357846",
		Labels:       []string{"Family"},
	}}, messages)
}

func TestGmailClient_GMetadata(t *testing.T) {
	ctrl, client, conn, _ := setupGmailClient(t)
	defer ctrl.Finish()

	selectFolder(t, client, conn, TEST_ALL_MAIL, domain.SelectInfo{UidValidity: 1})
	conn.EXPECT().
		UidFetch(gomock.Eq(u32a(1, 2)), gomock.Eq([]domain.FetchItem{domain.FetchGmMessageId, domain.FetchGmThreadId})).
		Return([]*domain.FetchedMessage{
			{Uid: 1, GmMessageId: "18446744073709551615", GmThreadId: "18446744073709551614"},
			{Uid: 2, GmMessageId: "2", GmThreadId: "18446744073709551614"},
		}, nil)

	metadata, err := client.GMetadata(u32a(1, 2), conn)
	assert.NoError(t, err)
	assert.Equal(t, map[uint32]*domain.GMetadata{
		1: {MessageId: "18446744073709551615", ThreadId: "18446744073709551614"},
		2: {MessageId: "2", ThreadId: "18446744073709551614"},
	}, metadata)
}

func TestGmailClient_ExpandThreadsRequiresAllMail(t *testing.T) {
	ctrl, client, conn, _ := setupGmailClient(t)
	defer ctrl.Finish()

	uids, err := client.ExpandThreads([]string{"1"}, conn)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Nil(t, uids)

	selectFolder(t, client, conn, TEST_FOLDER, domain.SelectInfo{UidValidity: 1})
	conn.EXPECT().ListFolders().Return(gmailFolders, nil)

	uids, err = client.ExpandThreads([]string{"1"}, conn)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Nil(t, uids)
}

func TestGmailClient_ExpandThreads(t *testing.T) {
	tests := []struct {
		name     string
		threads  []string
		criteria []string
		found    []uint32
		expected []uint32
	}{
		{
			"single",
			[]string{"111"},
			[]string{"NOT", "DELETED", "X-GM-THRID", "111"},
			u32a(5, 9),
			u32a(9, 5),
		},
		{
			"two",
			[]string{"111", "222"},
			[]string{"NOT", "DELETED", "OR", "X-GM-THRID", "111", "X-GM-THRID", "222"},
			u32a(3, 17, 8),
			u32a(17, 8, 3),
		},
		{
			"three",
			[]string{"111", "222", "333"},
			[]string{"NOT", "DELETED", "OR", "OR", "X-GM-THRID", "111", "X-GM-THRID", "222", "X-GM-THRID", "333"},
			u32a(1, 2, 3),
			u32a(3, 2, 1),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, client, conn, _ := setupGmailClient(t)
			defer ctrl.Finish()

			selectFolder(t, client, conn, TEST_ALL_MAIL, domain.SelectInfo{UidValidity: 1})
			conn.EXPECT().ListFolders().Return(gmailFolders, nil)
			conn.EXPECT().UidSearch(gomock.Eq(tc.criteria)).Return(tc.found, nil)

			uids, err := client.ExpandThreads(tc.threads, conn)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, uids)
		})
	}
}

func TestGmailClient_ExpandNoThreads(t *testing.T) {
	ctrl, client, conn, _ := setupGmailClient(t)
	defer ctrl.Finish()

	selectFolder(t, client, conn, TEST_ALL_MAIL, domain.SelectInfo{UidValidity: 1})
	conn.EXPECT().ListFolders().Return(gmailFolders, nil)

	uids, err := client.ExpandThreads(nil, conn)
	assert.NoError(t, err)
	assert.Empty(t, uids)
}
