// SPDX-License-Identifier: GPL-3.0-or-later
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/CrawX/go-imap-sync/crispin"
	"github.com/CrawX/go-imap-sync/domain"
	"github.com/CrawX/go-imap-sync/log"
	"github.com/CrawX/go-imap-sync/mail"

	"github.com/sirupsen/logrus"
)

const DefaultBatchSize = 100

// Syncer runs one sync pass over the folders of an account.
type Syncer struct {
	persistence domain.Persistence
	pool        domain.ConnectionPool
	client      crispin.Client

	configuration *configuration

	l *logrus.Entry
}

// FolderResult summarizes the sync of one folder.
type FolderResult struct {
	Folder      string
	UidValidity uint32
	Incremental bool
	Uids        int
	Bytes       int
}

// folderPlan is what the validity callback decided for a selected folder.
type folderPlan struct {
	incremental bool
	unchanged   bool
	sinceModSeq uint64
}

func NewSyncer(persistence domain.Persistence, pool domain.ConnectionPool, client crispin.Client, configFunc ...ConfigFunc) (*Syncer, error) {
	config := &configuration{BatchSize: DefaultBatchSize}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	if config.GmailMetadata {
		if _, ok := client.(crispin.GmailExtensions); !ok {
			return nil, fmt.Errorf("client %T does not support Gmail metadata", client)
		}
	}

	return &Syncer{
		persistence:   persistence,
		pool:          pool,
		client:        client,
		configuration: config,
		l:             log.AccountLogger(log.LOG_SYNC, client.AccountId()),
	}, nil
}

func (s *Syncer) Sync(ctx context.Context) ([]*FolderResult, error) {
	folders, err := s.folders(ctx)
	if err != nil {
		return nil, err
	}

	knownFolders, err := s.persistence.KnownFolders(s.client.AccountId())
	if err != nil {
		return nil, fmt.Errorf("could not list known folders: %w", err)
	}

	results := []*FolderResult{}
	for _, f := range folders {
		var result *FolderResult
		// one scoped block per folder, the session must not outlive the connection
		err = s.pool.WithConnection(ctx, func(c domain.ImapConnector) error {
			var err error
			result, err = s.syncFolder(f, folderByName(knownFolders, f), c)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("could not sync folder %s: %w", f, err)
		}

		results = append(results, result)
	}

	return results, nil
}

func (s *Syncer) folders(ctx context.Context) ([]string, error) {
	if len(s.configuration.Folders) > 0 {
		return s.configuration.Folders, nil
	}

	var folders []string
	err := s.pool.WithConnection(ctx, func(c domain.ImapConnector) error {
		var err error
		folders, err = s.client.SyncFolders(c)
		return err
	})
	if errors.Is(err, crispin.ErrNotImplemented) {
		return nil, fmt.Errorf("no folders configured and the provider names none: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("could not determine folders to sync: %w", err)
	}

	return folders, nil
}

func (s *Syncer) syncFolder(folder string, knownFolder *domain.ImapFolder, c domain.ImapConnector) (*FolderResult, error) {
	baseFolderLogger := s.l.WithField("folder", folder)

	selected, err := s.client.SelectFolder(folder, s.validityCallback(knownFolder), c)
	if err != nil {
		return nil, err
	}
	plan := selected.(*folderPlan)
	info, _ := s.client.SelectedFolderInfo()

	result := &FolderResult{Folder: folder, UidValidity: info.UidValidity}

	var uids []uint32
	switch {
	case plan.unchanged:
		baseFolderLogger.Info("Folder is unchanged since last sync")
	case plan.incremental:
		uids, err = s.client.NewAndUpdatedUids(plan.sinceModSeq, c)
		if errors.Is(err, crispin.ErrCondStoreUnsupported) {
			baseFolderLogger.Warn("Server lost CONDSTORE support, falling back to a full scan")
			uids, err = s.client.AllUids(c)
		} else {
			result.Incremental = true
		}
	default:
		uids, err = s.client.AllUids(c)
	}
	if err != nil {
		return nil, fmt.Errorf("could not list uids: %w", err)
	}
	result.Uids = len(uids)

	// newest first
	sort.Slice(uids, func(i, j int) bool { return uids[i] > uids[j] })

	batches := crispin.PartitionUids(uids, s.configuration.BatchSize)
	baseFolderLogger.WithFields(logrus.Fields{"uids": len(uids), "batches": len(batches), "incremental": result.Incremental}).Info("Found mails to sync")

	for _, batch := range batches {
		start := time.Now()
		bytes, err := s.syncBatch(batch, c, baseFolderLogger)
		if err != nil {
			return nil, err
		}
		result.Bytes += bytes
		baseFolderLogger.WithFields(logrus.Fields{"batchsize": len(batch), "duration": time.Since(start)}).Debug("Synced batch")
	}

	err = s.persistence.SaveFolder(s.client.AccountId(), folder, info.UidValidity, info.HighestModSeq)
	if err != nil {
		return nil, fmt.Errorf("could not save uidvalidity for %s: %w", folder, err)
	}

	baseFolderLogger.WithFields(logrus.Fields{"uids": result.Uids, "bytes": result.Bytes}).Info("Synced folder")
	return result, nil
}

func (s *Syncer) syncBatch(batch []uint32, c domain.ImapConnector, l *logrus.Entry) (int, error) {
	flags, err := s.client.Flags(batch, c)
	if err != nil {
		return 0, fmt.Errorf("could not fetch flags: %w", err)
	}
	l.WithField("flags", len(flags)).Trace("Fetched flags")

	if s.configuration.GmailMetadata {
		metadata, err := s.client.(crispin.GmailExtensions).GMetadata(batch, c)
		if err != nil {
			return 0, fmt.Errorf("could not fetch gmail metadata: %w", err)
		}
		l.WithField("metadata", len(metadata)).Trace("Fetched gmail metadata")
	}

	if !s.configuration.FetchBodies {
		return 0, nil
	}

	messages, err := s.client.Uids(batch, c)
	if err != nil {
		return 0, fmt.Errorf("could not fetch mails: %w", err)
	}

	bytes := 0
	for _, m := range messages {
		bytes += len(m.Body)

		subject, messageId, err := mail.HeaderInfos(m.Body)
		if err != nil {
			l.WithFields(logrus.Fields{"uid": m.Uid, "error": err}).Warn("Could not parse mail headers")
			continue
		}
		l.WithFields(logrus.Fields{"uid": m.Uid, "subject": mail.ShortSubject(subject), "messageid": messageId}).Debug("Fetched mail")
	}

	return bytes, nil
}

// validityCallback compares the selection with the last synced state. A changed UIDVALIDITY
// invalidates everything known about the folder.
func (s *Syncer) validityCallback(knownFolder *domain.ImapFolder) crispin.ValidityCallback {
	return func(folder string, info domain.SelectInfo) (interface{}, error) {
		if knownFolder == nil {
			s.l.WithField("folder", folder).Debug("Folder is a previously unknown folder, full scan")
			return &folderPlan{}, nil
		}

		if knownFolder.UidValidity != info.UidValidity {
			s.l.WithFields(logrus.Fields{"folder": folder, "known": knownFolder.UidValidity, "current": info.UidValidity}).Warn("UIDVALIDITY changed, full scan")
			err := s.persistence.DeleteFolder(s.client.AccountId(), folder)
			if err != nil {
				return nil, fmt.Errorf("could not forget folder: %w", err)
			}
			return &folderPlan{}, nil
		}

		if knownFolder.HighestModSeq == 0 || info.HighestModSeq == 0 {
			s.l.WithField("folder", folder).Debug("No modseq to compare, full scan")
			return &folderPlan{}, nil
		}

		if knownFolder.HighestModSeq == info.HighestModSeq {
			return &folderPlan{unchanged: true}, nil
		}

		return &folderPlan{incremental: true, sinceModSeq: knownFolder.HighestModSeq + 1}, nil
	}
}

func folderByName(knownFolders []*domain.ImapFolder, folder string) *domain.ImapFolder {
	for i := 0; i < len(knownFolders); i++ {
		if knownFolders[i].Name == folder {
			return knownFolders[i]
		}
	}
	return nil
}
