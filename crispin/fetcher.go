// SPDX-License-Identifier: GPL-3.0-or-later
package crispin

import (
	"fmt"
	"strconv"

	"github.com/CrawX/go-imap-sync/cache"
	"github.com/CrawX/go-imap-sync/domain"

	"github.com/sirupsen/logrus"
)

// fetcher is the provider independent half of a client: it talks to the wire or to the
// store. Results are raw, ordering and shaping happen in the clients.
type fetcher interface {
	selectFolder(folder string, c domain.ImapConnector) (*domain.SelectInfo, error)
	folderStatus(folder string, c domain.ImapConnector) (*domain.FolderStatus, error)
	allUids(s Session, c domain.ImapConnector) ([]uint32, error)
	newAndUpdatedUids(s Session, modSeq uint64, c domain.ImapConnector) ([]uint32, error)
	folderList(c domain.ImapConnector) ([]*domain.FolderInfo, error)
	// messages returns the fetched items by uid. kind addresses the per uid cache entry.
	messages(s Session, uids []uint32, kind cache.Kind, items []domain.FetchItem, c domain.ImapConnector) (map[uint32]*domain.FetchedMessage, error)
	threadUids(s Session, threadIds []string, c domain.ImapConnector) ([]uint32, error)
}

var allUidsCriteria = []string{"NOT", "DELETED"}

// liveFetcher issues wire commands. With a store set every result is recorded before it is
// returned.
type liveFetcher struct {
	accountId uint64
	store     cache.Store
	batchSize int

	l *logrus.Entry
}

func (f *liveFetcher) record(value interface{}, components ...interface{}) error {
	if f.store == nil {
		return nil
	}

	key := cache.Key(f.accountId, components...)
	f.l.WithField("key", key).Trace("Recording")
	return cache.Set(f.store, key, value)
}

func connected(c domain.ImapConnector) error {
	if c == nil {
		return fmt.Errorf("%w: no connection", ErrInvalidState)
	}
	return nil
}

func (f *liveFetcher) selectFolder(folder string, c domain.ImapConnector) (*domain.SelectInfo, error) {
	if err := connected(c); err != nil {
		return nil, err
	}

	info, err := c.Select(folder)
	if err != nil {
		return nil, err
	}

	return info, f.record(info, folder, cache.KindSelectInfo)
}

func (f *liveFetcher) folderStatus(folder string, c domain.ImapConnector) (*domain.FolderStatus, error) {
	if err := connected(c); err != nil {
		return nil, err
	}

	status, err := c.Status(folder)
	if err != nil {
		return nil, err
	}

	return status, f.record(status, folder, cache.KindStatus)
}

func (f *liveFetcher) allUids(s Session, c domain.ImapConnector) ([]uint32, error) {
	if err := connected(c); err != nil {
		return nil, err
	}

	uids, err := c.UidSearch(allUidsCriteria)
	if err != nil {
		return nil, err
	}

	return uids, f.record(uids, s.Folder, cache.KindAllUids)
}

func (f *liveFetcher) newAndUpdatedUids(s Session, modSeq uint64, c domain.ImapConnector) ([]uint32, error) {
	if err := connected(c); err != nil {
		return nil, err
	}

	if !c.Capabilities().CondStore {
		return nil, ErrCondStoreUnsupported
	}

	criteria := append(append([]string{}, allUidsCriteria...), "MODSEQ", strconv.FormatUint(modSeq, 10))
	uids, err := c.UidSearch(criteria)
	if err != nil {
		return nil, err
	}

	return uids, f.record(uids, s.Folder, cache.KindUpdated, modSeq)
}

func (f *liveFetcher) folderList(c domain.ImapConnector) ([]*domain.FolderInfo, error) {
	if err := connected(c); err != nil {
		return nil, err
	}

	folders, err := c.ListFolders()
	if err != nil {
		return nil, err
	}

	return folders, f.record(folders, cache.KindFolders)
}

func (f *liveFetcher) messages(s Session, uids []uint32, kind cache.Kind, items []domain.FetchItem, c domain.ImapConnector) (map[uint32]*domain.FetchedMessage, error) {
	if err := connected(c); err != nil {
		return nil, err
	}

	result := make(map[uint32]*domain.FetchedMessage, len(uids))
	for _, batch := range PartitionUids(uids, f.batchSize) {
		fetched, err := c.UidFetch(batch, items)
		if err != nil {
			return nil, err
		}

		for _, m := range fetched {
			result[m.Uid] = m
			err = f.record(m, s.Folder, s.Info.UidValidity, s.Info.HighestModSeq, m.Uid, kind)
			if err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

func (f *liveFetcher) threadUids(s Session, threadIds []string, c domain.ImapConnector) ([]uint32, error) {
	if err := connected(c); err != nil {
		return nil, err
	}

	return c.UidSearch(threadCriteria(threadIds))
}

// threadCriteria combines the thread ids with prefix ORs, OR OR a b c matches any of a, b, c.
func threadCriteria(threadIds []string) []string {
	criteria := append([]string{}, allUidsCriteria...)
	for i := 1; i < len(threadIds); i++ {
		criteria = append(criteria, "OR")
	}
	for _, id := range threadIds {
		criteria = append(criteria, string(domain.FetchGmThreadId), id)
	}

	return criteria
}

// PartitionUids splits uids into batches of at most partitionSize, keeping their order.
// taken from https://github.com/golang/go/wiki/SliceTricks
func PartitionUids(uids []uint32, partitionSize int) [][]uint32 {
	batches := make([][]uint32, 0, (len(uids)+partitionSize-1)/partitionSize)

	for partitionSize < len(uids) {
		uids, batches = uids[partitionSize:], append(batches, uids[0:partitionSize:partitionSize])
	}
	if len(uids) > 0 {
		batches = append(batches, uids)
	}

	return batches
}

// replayFetcher serves everything from the store and never touches a connection.
type replayFetcher struct {
	accountId uint64
	store     cache.Store
}

func (f *replayFetcher) load(value interface{}, components ...interface{}) error {
	key := cache.Key(f.accountId, components...)
	ok, err := cache.Load(f.store, key, value)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingFixture, key)
	}

	return nil
}

func (f *replayFetcher) selectFolder(folder string, _ domain.ImapConnector) (*domain.SelectInfo, error) {
	info := &domain.SelectInfo{}
	return info, f.load(info, folder, cache.KindSelectInfo)
}

func (f *replayFetcher) folderStatus(folder string, _ domain.ImapConnector) (*domain.FolderStatus, error) {
	status := &domain.FolderStatus{}
	return status, f.load(status, folder, cache.KindStatus)
}

func (f *replayFetcher) allUids(s Session, _ domain.ImapConnector) ([]uint32, error) {
	uids := []uint32{}
	return uids, f.load(&uids, s.Folder, cache.KindAllUids)
}

func (f *replayFetcher) newAndUpdatedUids(s Session, modSeq uint64, _ domain.ImapConnector) ([]uint32, error) {
	uids := []uint32{}
	return uids, f.load(&uids, s.Folder, cache.KindUpdated, modSeq)
}

func (f *replayFetcher) folderList(_ domain.ImapConnector) ([]*domain.FolderInfo, error) {
	folders := []*domain.FolderInfo{}
	return folders, f.load(&folders, cache.KindFolders)
}

func (f *replayFetcher) messages(s Session, uids []uint32, kind cache.Kind, _ []domain.FetchItem, _ domain.ImapConnector) (map[uint32]*domain.FetchedMessage, error) {
	result := make(map[uint32]*domain.FetchedMessage, len(uids))
	for _, uid := range uids {
		m := &domain.FetchedMessage{}
		err := f.load(m, s.Folder, s.Info.UidValidity, s.Info.HighestModSeq, uid, kind)
		if err != nil {
			return nil, err
		}
		result[uid] = m
	}

	return result, nil
}

func (f *replayFetcher) threadUids(Session, []string, domain.ImapConnector) ([]uint32, error) {
	return nil, fmt.Errorf("%w: thread expansion is never recorded", ErrNotImplemented)
}
