// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"context"
	"fmt"

	"github.com/CrawX/go-imap-sync/cache"
	"github.com/CrawX/go-imap-sync/cache/memory"
	"github.com/CrawX/go-imap-sync/cache/redisstore"
	"github.com/CrawX/go-imap-sync/config"
	"github.com/CrawX/go-imap-sync/crispin"
	"github.com/CrawX/go-imap-sync/domain"
	"github.com/CrawX/go-imap-sync/imapconnection"
	"github.com/CrawX/go-imap-sync/log"
	"github.com/CrawX/go-imap-sync/persistence"
	"github.com/CrawX/go-imap-sync/syncer"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.InitLogging("debug")
	logger := log.Logger(log.LOG_MAIN)

	conf, err := config.ReadConfig("config.toml")
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load config")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	p, err := persistence.NewPersistence(conf.Database)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not connect to database")
	}
	defer p.Close()

	store, closeStore, err := cacheStore(conf, p)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not open cache")
	}
	defer closeStore()

	if conf.Offline {
		logger.WithField("backend", conf.Cache.Backend).Warn("Offline, replaying the recorded session")
	}

	g, ctx := errgroup.WithContext(context.Background())
	for i := range conf.Accounts {
		account := conf.Accounts[i]
		g.Go(func() error {
			return syncAccount(ctx, conf, account, p, store)
		})
	}

	err = g.Wait()
	if err != nil {
		logger.WithField("error", err).Fatal("Sync failed")
	}
}

// cacheStore opens the configured backend. A nil store disables recording.
func cacheStore(conf *config.Config, p *persistence.Persistence) (cache.Store, func(), error) {
	noop := func() {}
	if !conf.Cache.Enabled && !conf.Offline {
		return nil, noop, nil
	}

	switch conf.Cache.Backend {
	case config.CacheBackendRedis:
		s, err := redisstore.NewStore(conf.Cache.RedisHost, conf.Cache.RedisPassword, conf.Cache.RedisDb, conf.Cache.RedisPrefix)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { s.Close() }, nil
	case config.CacheBackendMemory:
		return memory.NewStore(), noop, nil
	default:
		return p, noop, nil
	}
}

func syncAccount(ctx context.Context, conf *config.Config, account config.AccountConfig, p *persistence.Persistence, store cache.Store) error {
	logger := log.AccountLogger(log.LOG_MAIN, account.Id)
	provider := domain.Provider(account.Provider)

	var pool domain.ConnectionPool
	if conf.Offline {
		pool = imapconnection.OfflinePool{}
	} else {
		imapPool := imapconnection.NewPool(account.Id, conf.PoolSize, imapconnection.TLSDialer(account.ImapHost, account.User, account.Password, conf.Compress))
		defer imapPool.Close()
		pool = imapPool
	}

	clientConfigs := []crispin.ConfigFunc{crispin.WithFetchBatchSize(conf.BatchSize)}
	if store != nil && !conf.Offline {
		clientConfigs = append(clientConfigs, crispin.WithCache())
	}

	client, err := crispin.New(account.Id, provider, conf.Offline, store, clientConfigs...)
	if err != nil {
		return fmt.Errorf("could not create client for account %d: %w", account.Id, err)
	}

	syncConfigs := []syncer.ConfigFunc{syncer.BatchSize(conf.BatchSize)}
	if folders := accountFolders(conf, account); len(folders) > 0 {
		syncConfigs = append(syncConfigs, syncer.Folders(folders...))
	}
	if conf.FetchBodies {
		syncConfigs = append(syncConfigs, syncer.FetchBodies())
	}
	// the replay client offers the Gmail surface for every provider, a recording only holds
	// what the live client of the provider fetched
	if provider == domain.ProviderGmail {
		syncConfigs = append(syncConfigs, syncer.GmailMetadata())
	}

	s, err := syncer.NewSyncer(p, pool, client, syncConfigs...)
	if err != nil {
		return fmt.Errorf("could not start syncer for account %d: %w", account.Id, err)
	}

	logger.WithFields(logrus.Fields{"provider": provider, "offline": conf.Offline, "cache": store != nil}).Info("Syncing account")
	results, err := s.Sync(ctx)
	if err != nil {
		return fmt.Errorf("account %d: %w", account.Id, err)
	}

	for _, r := range results {
		logger.WithFields(logrus.Fields{"folder": r.Folder, "uids": r.Uids, "bytes": r.Bytes, "incremental": r.Incremental}).Info("Folder done")
	}
	return nil
}

// accountFolders returns the folders to sync. Gmail names its own unless the account overrides
// them.
func accountFolders(conf *config.Config, account config.AccountConfig) []string {
	if len(account.Folders) > 0 {
		return account.Folders
	}
	if domain.Provider(account.Provider) == domain.ProviderGmail {
		return nil
	}
	return conf.Folders
}
