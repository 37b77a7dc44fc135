package ui

import "sync/atomic"

type Stats struct {
	TotalFiles    atomic.Int64
	FailedFiles   atomic.Int64
	TotalEntries  atomic.Int64
	HiddenEntries atomic.Int64
	TotalBytes    atomic.Int64
}
