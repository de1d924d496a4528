// Package snapshotfs abstracts the two filesystem operations the ctrlflow
// CLI needs to rewrite a snapshot: opening the input for reading and
// creating the output for writing, plus a Watcher abstraction over
// fsnotify's event stream for watch mode. MemFS backs this package's own
// tests and internal/snapshot's round-trip tests; OSFS and
// FSNotifyWatcher back the real CLI.
package snapshotfs

import (
	"io"
	"time"
)

// File is an open file handle, read or write depending on how it was
// opened.
type File interface {
	io.Reader
	io.Writer
	io.Closer
}

// FileSystem abstracts opening a snapshot for reading and creating one for
// writing.
type FileSystem interface {
	Open(name string) (File, error)
	Create(name string) (File, error)
}

// WatchOp indicates what kind of change a Watcher observed.
type WatchOp uint32

const (
	OpCreate WatchOp = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event describes a filesystem change event.
type Event struct {
	Path string
	Op   WatchOp
	Time time.Time
}

// Watcher provides a platform-independent file watching API.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Remove(name string) error
	Close() error
}
