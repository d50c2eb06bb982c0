// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/persistence.go -package=mocks . Persistence

// ImapFolder is the last synced state of a folder of an account.
type ImapFolder struct {
	AccountId     uint64
	Name          string
	UidValidity   uint32
	HighestModSeq uint64
}

type Persistence interface {
	Close() error
	KnownFolders(accountId uint64) ([]*ImapFolder, error)
	SaveFolder(accountId uint64, name string, uidValidity uint32, highestModSeq uint64) error
	DeleteFolder(accountId uint64, name string) error
}
