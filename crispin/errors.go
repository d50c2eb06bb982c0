// SPDX-License-Identifier: GPL-3.0-or-later
package crispin

import "errors"

var (
	// ErrInvalidState is returned when no folder is selected or the wrong one is.
	ErrInvalidState = errors.New("invalid state")
	// ErrMissingFixture is returned by the replay client for every entry that was never recorded.
	ErrMissingFixture = errors.New("missing fixture")
	ErrNotImplemented = errors.New("not implemented")
	// ErrCondStoreUnsupported separates "server cannot search by modseq" from "nothing changed".
	ErrCondStoreUnsupported = errors.New("server does not support CONDSTORE")

	errNoStore = errors.New("caching and replay need a store")
)
