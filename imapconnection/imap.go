// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

//go:generate mockgen -destination=imap_mocks_test.go -package=imapconnection -source imap.go
import (
	"fmt"
	"io"

	"github.com/CrawX/go-imap-sync/domain"
	"github.com/CrawX/go-imap-sync/log"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap-compress"
	"github.com/emersion/go-imap-move"
	"github.com/emersion/go-imap-uidplus"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-imap/responses"
	"github.com/sirupsen/logrus"
)

const (
	statusHighestModSeq = imap.StatusItem("HIGHESTMODSEQ")

	capCondStore = "CONDSTORE"
	capGmail     = "X-GM-EXT-1"
)

// imapClient is the part of *client.Client used by ImapConnection.
type imapClient interface {
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	Status(name string, items []imap.StatusItem) (*imap.MailboxStatus, error)
	List(ref, name string, ch chan *imap.MailboxInfo) error
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	Execute(cmdr imap.Commander, h responses.Handler) (*imap.StatusResp, error)
	Close() error
	State() imap.ConnState
	LoggedOut() <-chan struct{}
	Logout() error
}

type ImapConnection struct {
	connection   imapClient
	capabilities domain.Capabilities

	server string

	selectedFolder string

	l *logrus.Entry
}

func NewImapConnection(server, user, password string, compressConnection bool) (*ImapConnection, error) {
	imapClient, err := client.DialTLS(server, nil)
	if err != nil {
		return nil, fmt.Errorf("could not dial to imap: %w", err)
	}

	err = imapClient.Login(user, password)
	if err != nil {
		return nil, fmt.Errorf("could not login to imap: %w", err)
	}

	capabilities, err := readCapabilities(imapClient)
	if err != nil {
		return nil, err
	}

	baseLogger := log.Logger(log.LOG_IMAP).WithFields(logrus.Fields{"server": server})
	baseLogger.WithFields(logrus.Fields{
		"condstore": capabilities.CondStore,
		"gmail":     capabilities.Gmail,
		"uidplus":   capabilities.UidPlus,
		"move":      capabilities.Move,
		"compress":  capabilities.Compress,
	}).Debug("Logged in to server")

	if !capabilities.CondStore {
		baseLogger.Info("CONDSTORE not supported on server, incremental sync by modseq is unavailable")
	}

	if compressConnection {
		if capabilities.Compress {
			err = compress.NewClient(imapClient).Compress(compress.Deflate)
			if err != nil {
				return nil, fmt.Errorf("could not enable compression: %w", err)
			}
			baseLogger.Debug("Enabled COMPRESS=DEFLATE")
		} else {
			baseLogger.Info("COMPRESS=DEFLATE not supported on server, using uncompressed connection")
		}
	}

	return newImapConnection(imapClient, server, capabilities), nil
}

func newImapConnection(c imapClient, server string, capabilities domain.Capabilities) *ImapConnection {
	return &ImapConnection{
		connection:   c,
		capabilities: capabilities,
		server:       server,
		l:            log.Logger(log.LOG_IMAP).WithField("server", server),
	}
}

func readCapabilities(c *client.Client) (domain.Capabilities, error) {
	capabilities := domain.Capabilities{}
	var err error

	capabilities.CondStore, err = c.Support(capCondStore)
	if err != nil {
		return capabilities, fmt.Errorf("could not check for CONDSTORE support: %w", err)
	}

	capabilities.Gmail, err = c.Support(capGmail)
	if err != nil {
		return capabilities, fmt.Errorf("could not check for X-GM-EXT-1 support: %w", err)
	}

	capabilities.UidPlus, err = uidplus.NewClient(c).SupportUidPlus()
	if err != nil {
		return capabilities, fmt.Errorf("could not check for UIDPLUS support: %w", err)
	}

	capabilities.Move, err = move.NewClient(c).SupportMove()
	if err != nil {
		return capabilities, fmt.Errorf("could not check for MOVE support: %w", err)
	}

	capabilities.Compress, err = compress.NewClient(c).SupportCompress(compress.Deflate)
	if err != nil {
		return capabilities, fmt.Errorf("could not check for COMPRESS support: %w", err)
	}

	return capabilities, nil
}

func (ic *ImapConnection) Capabilities() domain.Capabilities {
	return ic.capabilities
}

// Select examines folder, the folder is opened read-only.
func (ic *ImapConnection) Select(folder string) (*domain.SelectInfo, error) {
	var modSeq uint64
	if ic.capabilities.CondStore {
		var err error
		modSeq, err = ic.highestModSeqBeforeSelect(folder)
		if err != nil {
			return nil, err
		}
	}

	ic.selectedFolder = ""
	m, err := ic.connection.Select(folder, true)
	if err != nil {
		return nil, fmt.Errorf("could not select folder: %w", err)
	}

	info := &domain.SelectInfo{
		Exists:        m.Messages,
		UidValidity:   m.UidValidity,
		HighestModSeq: modSeq,
	}

	ic.selectedFolder = folder
	ic.l.WithFields(logrus.Fields{"folder": folder, "exists": info.Exists}).Trace("Selected folder")
	return info, nil
}

// Status does not touch the selection. Asking for the selected folder works on Gmail and
// Dovecot, RFC 3501 discourages it.
func (ic *ImapConnection) Status(folder string) (*domain.FolderStatus, error) {
	items := []imap.StatusItem{imap.StatusUidValidity}
	if ic.capabilities.CondStore {
		items = append(items, statusHighestModSeq)
	}

	status, err := ic.connection.Status(folder, items)
	if err != nil {
		return nil, fmt.Errorf("could not get folder status: %w", err)
	}

	modSeq, err := highestModSeq(status)
	if err != nil {
		return nil, err
	}

	return &domain.FolderStatus{
		UidValidity:   status.UidValidity,
		HighestModSeq: modSeq,
	}, nil
}

// highestModSeqBeforeSelect asks for HIGHESTMODSEQ with a STATUS, go-imap drops the response
// code of SELECT. STATUS must not target the selected mailbox, a reselected folder is closed
// first. CLOSE never expunges a folder opened read-only. Changes between STATUS and SELECT make
// the value lower than the real one, the next incremental sync fetches them again.
func (ic *ImapConnection) highestModSeqBeforeSelect(folder string) (uint64, error) {
	if ic.selectedFolder == folder {
		ic.selectedFolder = ""
		err := ic.connection.Close()
		if err != nil {
			return 0, fmt.Errorf("could not close folder: %w", err)
		}
	}

	status, err := ic.connection.Status(folder, []imap.StatusItem{statusHighestModSeq})
	if err != nil {
		return 0, fmt.Errorf("could not get highestmodseq: %w", err)
	}

	return highestModSeq(status)
}

func highestModSeq(status *imap.MailboxStatus) (uint64, error) {
	v, ok := status.Items[statusHighestModSeq]
	if !ok || v == nil {
		return 0, nil
	}

	modSeq, err := fieldUint64(v)
	if err != nil {
		return 0, fmt.Errorf("could not parse highestmodseq: %w", err)
	}

	return modSeq, nil
}

func (ic *ImapConnection) ListFolders() ([]*domain.FolderInfo, error) {
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- ic.connection.List("", "*", mailboxes)
	}()

	folders := []*domain.FolderInfo{}
	for m := range mailboxes {
		folders = append(
			folders,
			&domain.FolderInfo{
				Attributes: m.Attributes,
				Delimiter:  m.Delimiter,
				Name:       m.Name,
			},
		)
	}

	err := <-done
	if err != nil {
		return nil, fmt.Errorf("could not list folders: %w", err)
	}

	return folders, nil
}

func (ic *ImapConnection) UidSearch(criteria []string) ([]uint32, error) {
	args := make([]interface{}, len(criteria))
	for i, c := range criteria {
		args[i] = imap.RawString(c)
	}

	res := &searchResponse{}
	status, err := ic.connection.Execute(uidCommand(&rawSearch{criteria: args}), res)
	if err != nil {
		return nil, fmt.Errorf("could not search folder: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return res.uids, nil
}

func (ic *ImapConnection) UidFetch(uids []uint32, items []domain.FetchItem) ([]*domain.FetchedMessage, error) {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)

	bodySection := &imap.BodySectionName{
		Peek: true,
	}
	fetchItems := make([]imap.FetchItem, 0, len(items))
	for _, item := range items {
		if item == domain.FetchBody {
			fetchItems = append(fetchItems, bodySection.FetchItem())
		} else {
			fetchItems = append(fetchItems, imap.FetchItem(item))
		}
	}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- ic.connection.UidFetch(seqset, fetchItems, messages)
	}()

	results := []*domain.FetchedMessage{}
	var convertErr error
	// always drain the channel, UidFetch blocks until every message is consumed
	for msg := range messages {
		if convertErr != nil {
			continue
		}

		m, err := fetchedMessage(msg, items, bodySection)
		if err != nil {
			convertErr = err
			continue
		}
		results = append(results, m)
	}

	err := <-done
	if err != nil {
		return nil, fmt.Errorf("could not fetch mails: %w", err)
	}
	if convertErr != nil {
		return nil, convertErr
	}

	return results, nil
}

func fetchedMessage(msg *imap.Message, items []domain.FetchItem, bodySection *imap.BodySectionName) (*domain.FetchedMessage, error) {
	m := &domain.FetchedMessage{Uid: msg.Uid}

	var err error
	for _, item := range items {
		switch item {
		case domain.FetchFlags:
			m.Flags = append([]string{}, msg.Flags...)
		case domain.FetchInternalDate:
			m.InternalDate = msg.InternalDate
		case domain.FetchBody:
			r := msg.GetBody(bodySection)
			if r == nil {
				return nil, fmt.Errorf("server returned no body for uid %d", msg.Uid)
			}
			m.Body, err = io.ReadAll(r)
			if err != nil {
				return nil, fmt.Errorf("could not read mail body: %w", err)
			}
		case domain.FetchGmLabels:
			m.GmLabels, err = labels(msg.Items[imap.FetchItem(item)])
		case domain.FetchGmThreadId:
			m.GmThreadId, err = fieldString(msg.Items[imap.FetchItem(item)])
		case domain.FetchGmMessageId:
			m.GmMessageId, err = fieldString(msg.Items[imap.FetchItem(item)])
		default:
			return nil, fmt.Errorf("unsupported fetch item %s", item)
		}

		if err != nil {
			return nil, fmt.Errorf("could not parse %s of uid %d: %w", item, msg.Uid, err)
		}
	}

	return m, nil
}

// Usable reports whether the connection is still logged in. A NO or BAD leaves it usable, a
// dropped or timed out connection does not.
func (ic *ImapConnection) Usable() bool {
	select {
	case <-ic.connection.LoggedOut():
		return false
	default:
	}

	return ic.connection.State()&imap.AuthenticatedState != 0
}

func (ic *ImapConnection) Close() error {
	return ic.connection.Logout()
}
