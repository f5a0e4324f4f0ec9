package testutil

import "errors"

var (
	// ErrSinkDown is returned by fake archive sinks and writers.
	ErrSinkDown = errors.New("archive sink unavailable")
	// ErrStoreDown is returned by fake encounter result stores.
	ErrStoreDown = errors.New("result store unavailable")
)
