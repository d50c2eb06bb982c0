// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Provider string

const (
	ProviderGmail = Provider("Gmail")
	ProviderImap  = Provider("IMAP")
)

var ErrUnknownProvider = errors.New("unknown provider")

func ParseProvider(provider string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return ProviderGmail, nil
	case "imap":
		return ProviderImap, nil
	}

	return "", fmt.Errorf("%w %q, expected Gmail or IMAP", ErrUnknownProvider, provider)
}

// ConnectionPool hands out connections of one account. The connection is only valid inside
// fn and is returned to the pool on every exit path.
type ConnectionPool interface {
	WithConnection(ctx context.Context, fn func(c ImapConnector) error) error
}

// FlagSet is the per-UID result of a flags fetch. Labels is only set on Gmail.
type FlagSet struct {
	Flags  []string `json:"flags"`
	Labels []string `json:"labels"`
}

// RawMessage is one fully downloaded message. Body holds the bytes exactly as sent by the
// server.
type RawMessage struct {
	Uid          uint32
	InternalDate time.Time
	Flags        []string
	Body         []byte
	ThreadId     string
	MessageId    string
	Labels       []string
}

// GMetadata carries the server-wide Gmail identifiers of a message.
type GMetadata struct {
	MessageId string `json:"msgid"`
	ThreadId  string `json:"thrid"`
}

const (
	RoleInbox     = "Inbox"
	RoleAll       = "All"
	RoleDrafts    = "Drafts"
	RoleImportant = "Important"
	RoleSent      = "Sent"
	RoleJunk      = "Junk"
	RoleFlagged   = "Flagged"
	RoleTrash     = "Trash"
	RoleLabels    = "Labels"
)

// FolderNames maps canonical folder roles to the (possibly localized) server names.
type FolderNames struct {
	Inbox     string   `json:"Inbox,omitempty"`
	All       string   `json:"All,omitempty"`
	Drafts    string   `json:"Drafts,omitempty"`
	Important string   `json:"Important,omitempty"`
	Sent      string   `json:"Sent,omitempty"`
	Junk      string   `json:"Junk,omitempty"`
	Flagged   string   `json:"Flagged,omitempty"`
	Trash     string   `json:"Trash,omitempty"`
	Labels    []string `json:"Labels,omitempty"`
}

// Get returns the server name for a role, ok is false if the server has no such folder.
func (f *FolderNames) Get(role string) (string, bool) {
	var name string
	switch role {
	case RoleInbox:
		name = f.Inbox
	case RoleAll:
		name = f.All
	case RoleDrafts:
		name = f.Drafts
	case RoleImportant:
		name = f.Important
	case RoleSent:
		name = f.Sent
	case RoleJunk:
		name = f.Junk
	case RoleFlagged:
		name = f.Flagged
	case RoleTrash:
		name = f.Trash
	}
	return name, len(name) > 0
}

// Set records name under role. Unknown roles are ignored.
func (f *FolderNames) Set(role, name string) {
	switch role {
	case RoleInbox:
		f.Inbox = name
	case RoleAll:
		f.All = name
	case RoleDrafts:
		f.Drafts = name
	case RoleImportant:
		f.Important = name
	case RoleSent:
		f.Sent = name
	case RoleJunk:
		f.Junk = name
	case RoleFlagged:
		f.Flagged = name
	case RoleTrash:
		f.Trash = name
	}
}
