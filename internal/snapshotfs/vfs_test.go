package snapshotfs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOSFS_CreateAndOpenRoundTrip(t *testing.T) {
	fsys := NewOS()
	p := filepath.Join(t.TempDir(), "a.txt")

	w, err := fsys.Create(p)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := fsys.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	buf := make([]byte, 5)
	if _, err := r.Read(buf); err != nil {
		t.Fatal(err)
	}

	if string(buf) != "hello" {
		t.Fatalf("got %q", string(buf))
	}
}

func TestMemFS_CreateAndOpenRoundTrip(t *testing.T) {
	m := NewMem()

	w, err := m.Create("/snapshot.json")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := w.Write([]byte("data")); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := m.Open("/snapshot.json")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	buf := make([]byte, 4)
	if _, err := r.Read(buf); err != nil {
		t.Fatal(err)
	}

	if string(buf) != "data" {
		t.Fatalf("got %q", string(buf))
	}
}

func TestMemFS_OpenMissingReturnsNotExist(t *testing.T) {
	m := NewMem()

	if _, err := m.Open("/missing.json"); !os.IsNotExist(err) {
		t.Fatalf("Open(missing) err = %v, want IsNotExist", err)
	}
}

func TestWatcher_FSNotify(t *testing.T) {
	fw, err := NewFSWatcher()
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer fw.Close()

	dir := t.TempDir()
	if err := fw.Add(dir); err != nil {
		t.Fatal(err)
	}

	go func() {
		f := filepath.Join(dir, "f.txt")
		_ = os.WriteFile(f, []byte("x"), 0o644)
	}()

	select {
	case ev := <-fw.Events():
		if ev.Path == "" {
			t.Fatal("empty path")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for fsnotify event")
	}
}
