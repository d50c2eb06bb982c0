// SPDX-License-Identifier: GPL-3.0-or-later
package syncer

import "fmt"

type ConfigFunc func(c *configuration) error

// Folders overrides the folders the client names for syncing.
func Folders(folders ...string) ConfigFunc {
	return func(c *configuration) error {
		if len(folders) == 0 {
			return fmt.Errorf("Folders cannot be empty")
		}

		c.Folders = folders
		return nil
	}
}

func FetchBodies() ConfigFunc {
	return func(c *configuration) error {
		c.FetchBodies = true
		return nil
	}
}

// GmailMetadata fetches X-GM-MSGID and X-GM-THRID of every synced message.
func GmailMetadata() ConfigFunc {
	return func(c *configuration) error {
		c.GmailMetadata = true
		return nil
	}
}

func BatchSize(size int) ConfigFunc {
	return func(c *configuration) error {
		if size < 1 {
			return fmt.Errorf("BatchSize must be positive")
		}

		c.BatchSize = size
		return nil
	}
}

type configuration struct {
	Folders []string

	FetchBodies   bool
	GmailMetadata bool

	BatchSize int
}
