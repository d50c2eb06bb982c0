// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/CrawX/go-imap-sync/domain"
	"github.com/CrawX/go-imap-sync/log"
	"github.com/CrawX/go-imap-sync/persistence/migrations"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

// Persistence is the sqlite database holding the folder bookkeeping of all accounts and the
// durable cache/replay entries.
type Persistence struct {
	db *sqlx.DB
	l  *logrus.Logger
}

func NewPersistence(datasource string) (*Persistence, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_PERSISTENCE)
	l.WithField("file", datasource).Info("Connected")

	migrationSource := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations.FS,
		Root:       "sql",
	}

	_, err = db.Exec(`PRAGMA journal_mode=WAL`)
	if err != nil {
		return nil, fmt.Errorf("could not set journal mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA synchronous=normal`)
	if err != nil {
		return nil, fmt.Errorf("could not set synchronous mode: %w", err)
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrationSource, migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &Persistence{
		db: db,
		l:  l,
	}, nil
}

func (p *Persistence) Close() error {
	err := p.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	p.l.Info("Disconnected")
	return nil
}

func (p *Persistence) KnownFolders(accountId uint64) ([]*domain.ImapFolder, error) {
	dbFolders := []struct {
		Name          string
		UidValidity   uint32
		HighestModSeq int64
	}{}

	err := p.db.Select(
		&dbFolders,
		`SELECT name, uidvalidity, highestmodseq from folders WHERE account_id = ?`,
		int64(accountId),
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	folders := []*domain.ImapFolder{}
	for _, f := range dbFolders {
		folders = append(
			folders,
			&domain.ImapFolder{
				AccountId:     accountId,
				Name:          f.Name,
				UidValidity:   f.UidValidity,
				HighestModSeq: uint64(f.HighestModSeq),
			},
		)
	}

	p.l.WithFields(logrus.Fields{"account": accountId, "count": len(folders)}).Debug("Found folders")

	return folders, nil
}

func (p *Persistence) SaveFolder(accountId uint64, name string, uidValidity uint32, highestModSeq uint64) error {
	_, err := p.db.Exec(
		"INSERT OR REPLACE INTO folders (account_id, name, uidvalidity, highestmodseq) VALUES (?, ?, ?, ?)",
		int64(accountId),
		name,
		uidValidity,
		int64(highestModSeq),
	)

	if err != nil {
		return fmt.Errorf("could not save folder: %w", err)
	}

	p.l.WithFields(logrus.Fields{"account": accountId, "name": name, "uidvalidity": uidValidity, "highestmodseq": highestModSeq}).Info("Persisted folder")
	return nil
}

func (p *Persistence) DeleteFolder(accountId uint64, name string) error {
	_, err := p.db.Exec(
		"DELETE FROM folders WHERE account_id = ? AND name = ?",
		int64(accountId),
		name,
	)
	if err != nil {
		return fmt.Errorf("could not delete folder: %w", err)
	}

	p.l.WithFields(logrus.Fields{"account": accountId, "name": name}).Info("Forgot folder")
	return nil
}

// Put stores a cache entry, replacing an existing one.
func (p *Persistence) Put(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	_, err := p.db.Exec(
		"INSERT OR REPLACE INTO cache_entries (key, value) VALUES (?, ?)",
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("could not save cache entry: %w", err)
	}

	return nil
}

func (p *Persistence) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := p.db.Get(
		&value,
		"SELECT value FROM cache_entries WHERE key = ?",
		key,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not query db: %w", err)
	}

	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}
