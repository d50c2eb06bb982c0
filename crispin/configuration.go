// SPDX-License-Identifier: GPL-3.0-or-later
package crispin

import "fmt"

const DefaultFetchBatchSize = 100

type ConfigFunc func(c *configuration) error

// WithCache records every live result in the store so it can be replayed offline.
func WithCache() ConfigFunc {
	return func(c *configuration) error {
		c.Cache = true
		return nil
	}
}

func WithFetchBatchSize(size int) ConfigFunc {
	return func(c *configuration) error {
		if size < 1 {
			return fmt.Errorf("FetchBatchSize must be positive, got %d", size)
		}

		c.FetchBatchSize = size
		return nil
	}
}

type configuration struct {
	Cache          bool
	FetchBatchSize int
}
