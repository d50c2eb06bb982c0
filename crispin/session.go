// SPDX-License-Identifier: GPL-3.0-or-later
package crispin

import (
	"fmt"

	"github.com/CrawX/go-imap-sync/domain"
)

// Session is the selected folder of a connection together with the metadata returned by the
// selection. UIDs and modseqs obtained while a session is active are only meaningful for it.
// A client replaces its session wholesale on every select, a Session is never mutated.
type Session struct {
	Folder string
	Info   domain.SelectInfo
}

func (c *baseClient) SelectedFolderName() (string, bool) {
	if c.session == nil {
		return "", false
	}
	return c.session.Folder, true
}

func (c *baseClient) SelectedFolderInfo() (domain.SelectInfo, bool) {
	if c.session == nil {
		return domain.SelectInfo{}, false
	}
	return c.session.Info, true
}

func (c *baseClient) SelectedUidValidity() (uint32, bool) {
	if c.session == nil {
		return 0, false
	}
	return c.session.Info.UidValidity, true
}

// SelectedHighestModSeq is also absent when the server reported no HIGHESTMODSEQ.
func (c *baseClient) SelectedHighestModSeq() (uint64, bool) {
	if c.session == nil || c.session.Info.HighestModSeq == 0 {
		return 0, false
	}
	return c.session.Info.HighestModSeq, true
}

func (c *baseClient) requireSession() (Session, error) {
	if c.session == nil {
		return Session{}, fmt.Errorf("%w: no folder selected", ErrInvalidState)
	}
	return *c.session, nil
}
