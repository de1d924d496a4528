package snapshotfs

import "os"

// OSFS is a FileSystem backed by the real filesystem.
type OSFS struct{}

func NewOS() *OSFS { return &OSFS{} }

func (fsys *OSFS) Open(name string) (File, error)   { return os.Open(name) }
func (fsys *OSFS) Create(name string) (File, error) { return os.Create(name) }
