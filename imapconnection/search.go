// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/commands"
	"github.com/emersion/go-imap/responses"
)

const searchName = "SEARCH"

// rawSearch sends the criteria as given, go-imap's SearchCriteria cannot express MODSEQ or
// X-GM-THRID.
type rawSearch struct {
	criteria []interface{}
}

func (s *rawSearch) Command() *imap.Command {
	return &imap.Command{
		Name:      searchName,
		Arguments: s.criteria,
	}
}

func uidCommand(cmd imap.Commander) imap.Commander {
	return &commands.Uid{Cmd: cmd}
}

// searchResponse collects the numbers of SEARCH responses. A CONDSTORE server appends
// (MODSEQ n) to the list which is skipped.
type searchResponse struct {
	uids []uint32
}

func (r *searchResponse) Handle(resp imap.Resp) error {
	name, fields, ok := imap.ParseNamedResp(resp)
	if !ok || name != searchName {
		return responses.ErrUnhandled
	}

	for _, f := range fields {
		if _, isList := f.([]interface{}); isList {
			continue
		}

		uid, err := imap.ParseNumber(f)
		if err != nil {
			return err
		}
		r.uids = append(r.uids, uid)
	}

	return nil
}
