// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"strings"
	"time"
)

//go:generate mockgen -destination=mocks/imap.go -package=mocks . ImapConnector,ConnectionPool

// SelectInfo is the metadata returned by selecting a folder. HighestModSeq is 0 when the
// server did not report one (no CONDSTORE).
type SelectInfo struct {
	Exists        uint32 `json:"exists"`
	UidValidity   uint32 `json:"uidvalidity"`
	HighestModSeq uint64 `json:"highestmodseq"`
}

type FolderStatus struct {
	UidValidity   uint32 `json:"uidvalidity"`
	HighestModSeq uint64 `json:"highestmodseq"`
}

// FolderInfo is one entry of a LIST response.
type FolderInfo struct {
	Attributes []string `json:"attributes"`
	Delimiter  string   `json:"delimiter"`
	Name       string   `json:"name"`
}

// HasAttribute compares case-insensitively, attributes are atoms.
func (f *FolderInfo) HasAttribute(attr string) bool {
	for _, a := range f.Attributes {
		if strings.EqualFold(a, attr) {
			return true
		}
	}
	return false
}

type FetchItem string

const (
	FetchFlags        = FetchItem("FLAGS")
	FetchInternalDate = FetchItem("INTERNALDATE")
	FetchBody         = FetchItem("BODY.PEEK[]")
	FetchGmLabels     = FetchItem("X-GM-LABELS")
	FetchGmThreadId   = FetchItem("X-GM-THRID")
	FetchGmMessageId  = FetchItem("X-GM-MSGID")
)

// FetchedMessage holds the raw result of a UID FETCH for one message. Only the fields for
// the requested items are set, requested lists are never nil. Gmail ids are kept as decimal
// strings, they exceed what a float can carry.
type FetchedMessage struct {
	Uid          uint32    `json:"uid"`
	Flags        []string  `json:"flags"`
	InternalDate time.Time `json:"internaldate"`
	Body         []byte    `json:"body"`
	GmLabels     []string  `json:"gmlabels"`
	GmThreadId   string    `json:"gmthrid,omitempty"`
	GmMessageId  string    `json:"gmmsgid,omitempty"`
}

// Capabilities reports the server extensions relevant to syncing.
type Capabilities struct {
	CondStore bool
	UidPlus   bool
	Move      bool
	Compress  bool
	Gmail     bool
}

// ImapConnector is a single logged in connection. All UID based calls operate on the folder
// that was selected last on this connection.
type ImapConnector interface {
	Select(folder string) (*SelectInfo, error)
	Status(folder string) (*FolderStatus, error)
	ListFolders() ([]*FolderInfo, error)
	// UidSearch sends the criteria as atoms, e.g. "NOT", "DELETED", "MODSEQ", "12".
	UidSearch(criteria []string) ([]uint32, error)
	UidFetch(uids []uint32, items []FetchItem) ([]*FetchedMessage, error)
	Capabilities() Capabilities

	Close() error
}
